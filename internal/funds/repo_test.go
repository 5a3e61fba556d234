package funds

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepo(t *testing.T) (*Repo, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return NewRepo(mock), mock
}

func TestRepo_List(t *testing.T) {
	repo, mock := newTestRepo(t)

	logo := "/uploads/fund.png"
	now := time.Now()
	mock.ExpectQuery(`SELECT(.|\s)*FROM fundos_parceiros(.|\s)*ORDER BY id`).
		WillReturnRows(
			pgxmock.NewRows([]string{
				"id", "parceiro", "tipo_investimento", "tamanho_cheque", "tese", "contato", "logo", "updated_at",
			}).
				AddRow(1, "Fundo A", "Seed", "R$ 500k - R$ 2M", "B2B SaaS", "contato@fundoa.vc", &logo, now).
				AddRow(2, "Fundo B", "Série A", "R$ 2M+", "Fintech", "ola@fundob.vc", nil, now),
		)

	found, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, found, 2)
	assert.Equal(t, "Fundo A", found[0].Parceiro)
	assert.Equal(t, "Seed", found[0].TipoInvestimento)
	require.NotNil(t, found[0].Logo)
	assert.Equal(t, logo, *found[0].Logo)
	assert.Nil(t, found[1].Logo)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepo_Add(t *testing.T) {
	repo, mock := newTestRepo(t)

	now := time.Now()
	mock.ExpectQuery(`INSERT INTO fundos_parceiros`).
		WithArgs("Fundo C", "Pre-seed", "R$ 100k - R$ 500k", "Marketplace", "time@fundoc.vc", (*string)(nil)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "updated_at"}).AddRow(4, now))

	added, err := repo.Add(context.Background(), Fund{
		Parceiro:         "Fundo C",
		TipoInvestimento: "Pre-seed",
		TamanhoCheque:    "R$ 100k - R$ 500k",
		Tese:             "Marketplace",
		Contato:          "time@fundoc.vc",
	})
	require.NoError(t, err)
	assert.Equal(t, 4, added.ID)
	assert.Equal(t, now, added.UpdatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepo_Update(t *testing.T) {
	repo, mock := newTestRepo(t)

	mock.ExpectExec(`UPDATE fundos_parceiros`).
		WithArgs("Fundo A", "Seed", "R$ 1M", "DevTools", "contato@fundoa.vc", (*string)(nil), 1).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	require.NoError(t, repo.Update(context.Background(), Fund{
		ID:               1,
		Parceiro:         "Fundo A",
		TipoInvestimento: "Seed",
		TamanhoCheque:    "R$ 1M",
		Tese:             "DevTools",
		Contato:          "contato@fundoa.vc",
	}))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepo_Update_NotFound(t *testing.T) {
	repo, mock := newTestRepo(t)

	mock.ExpectExec(`UPDATE fundos_parceiros`).
		WithArgs("Fundo X", "Seed", "R$ 1M", "DevTools", "x@x.vc", (*string)(nil), 42).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := repo.Update(context.Background(), Fund{
		ID:               42,
		Parceiro:         "Fundo X",
		TipoInvestimento: "Seed",
		TamanhoCheque:    "R$ 1M",
		Tese:             "DevTools",
		Contato:          "x@x.vc",
	})
	require.ErrorIs(t, err, ErrFundNotFound)
}

func TestRepo_Delete(t *testing.T) {
	repo, mock := newTestRepo(t)

	mock.ExpectExec(`DELETE FROM fundos_parceiros`).
		WithArgs(3).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	require.NoError(t, repo.Delete(context.Background(), 3))

	mock.ExpectExec(`DELETE FROM fundos_parceiros`).
		WithArgs(3).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	err := repo.Delete(context.Background(), 3)
	require.ErrorIs(t, err, ErrFundNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepo_List_DBError(t *testing.T) {
	repo, mock := newTestRepo(t)

	mock.ExpectQuery(`SELECT(.|\s)*FROM fundos_parceiros`).
		WillReturnError(errors.New("connection refused"))

	_, err := repo.List(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
}
