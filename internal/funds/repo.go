package funds

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel/attribute"

	"github.com/paginadofounder/backend/internal/db"
	"github.com/paginadofounder/backend/internal/telemetry/tracing"
)

var ErrFundNotFound = errors.New("fund not found")

type Repo struct {
	db db.Pool
}

func NewRepo(dbPool db.Pool) *Repo {
	return &Repo{
		db: dbPool,
	}
}

func (r *Repo) List(ctx context.Context) (_ []Fund, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.funds.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(
		ctx,
		`
			SELECT
				id, parceiro, tipo_investimento, tamanho_cheque, tese, contato, logo, updated_at
			FROM fundos_parceiros
			ORDER BY id;`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var found []Fund
	for rows.Next() {
		var f Fund
		if err := rows.Scan(
			&f.ID, &f.Parceiro, &f.TipoInvestimento, &f.TamanhoCheque, &f.Tese, &f.Contato, &f.Logo, &f.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		found = append(found, f)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return found, nil
}

func (r *Repo) Add(ctx context.Context, fund Fund) (_ *Fund, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.funds.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(
		ctx,
		`INSERT INTO fundos_parceiros
				(parceiro, tipo_investimento, tamanho_cheque, tese, contato, logo)
				VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id, updated_at;`,
		fund.Parceiro, fund.TipoInvestimento, fund.TamanhoCheque, fund.Tese, fund.Contato, fund.Logo,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, err
	}

	if !rows.Next() {
		return nil, errors.New("unexpected error [no rows next]")
	}

	if err := rows.Scan(&fund.ID, &fund.UpdatedAt); err != nil {
		return nil, fmt.Errorf("rows scan: %w", err)
	}

	span.SetAttributes(attribute.Int("fund.id", fund.ID))

	return &fund, nil
}

func (r *Repo) Update(ctx context.Context, fund Fund) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.funds.update")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", fund.ID))

	tag, err := r.db.Exec(
		ctx,
		`UPDATE fundos_parceiros
			SET parceiro = $1, tipo_investimento = $2, tamanho_cheque = $3,
				tese = $4, contato = $5, logo = $6, updated_at = NOW()
			WHERE id = $7;`,
		fund.Parceiro, fund.TipoInvestimento, fund.TamanhoCheque, fund.Tese, fund.Contato, fund.Logo,
		fund.ID,
	)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return ErrFundNotFound
	}

	return nil
}

func (r *Repo) Delete(ctx context.Context, id int) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.funds.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))

	tag, err := r.db.Exec(
		ctx,
		`DELETE FROM fundos_parceiros WHERE id = $1;`,
		id,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrFundNotFound
	}
	return nil
}
