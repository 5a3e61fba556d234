package benefits

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel/attribute"

	"github.com/paginadofounder/backend/internal/db"
	"github.com/paginadofounder/backend/internal/telemetry/tracing"
)

var ErrBenefitNotFound = errors.New("benefit not found")

type Repo struct {
	db db.Pool
}

func NewRepo(dbPool db.Pool) *Repo {
	return &Repo{
		db: dbPool,
	}
}

func (r *Repo) List(ctx context.Context, category Category) (_ []Benefit, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.benefits.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("category", category.String()))

	rows, err := r.db.Query(
		ctx,
		`
			SELECT
				id, category, parceiro, descricao, beneficio, como_ativar, logo
			FROM benefits
			WHERE category = $1
			ORDER BY id;`,
		category.String(),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var found []Benefit
	for rows.Next() {
		var b Benefit
		if err := rows.Scan(
			&b.ID, &b.Category, &b.Parceiro, &b.Descricao, &b.Beneficio, &b.ComoAtivar, &b.Logo,
		); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		found = append(found, b)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return found, nil
}

func (r *Repo) Add(ctx context.Context, benefit Benefit) (_ *Benefit, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.benefits.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(
		ctx,
		`INSERT INTO benefits
				(category, parceiro, descricao, beneficio, como_ativar, logo)
				VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id;`,
		benefit.Category, benefit.Parceiro, benefit.Descricao, benefit.Beneficio, benefit.ComoAtivar, benefit.Logo,
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

	var id int
	if err := rows.Scan(&id); err != nil {
		return nil, fmt.Errorf("rows scan: %w", err)
	}

	span.SetAttributes(attribute.Int("benefit.id", id))

	benefit.ID = id
	return &benefit, nil
}

// Update scopes by both id and category so a write can never cross a
// category boundary through an id collision.
func (r *Repo) Update(ctx context.Context, benefit Benefit) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.benefits.update")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", benefit.ID))

	tag, err := r.db.Exec(
		ctx,
		`UPDATE benefits
			SET parceiro = $1, descricao = $2, beneficio = $3, como_ativar = $4, logo = $5
			WHERE id = $6 AND category = $7;`,
		benefit.Parceiro, benefit.Descricao, benefit.Beneficio, benefit.ComoAtivar, benefit.Logo,
		benefit.ID, benefit.Category,
	)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return ErrBenefitNotFound
	}

	return nil
}

func (r *Repo) Delete(ctx context.Context, id int, category Category) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.benefits.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))

	tag, err := r.db.Exec(
		ctx,
		`DELETE FROM benefits WHERE id = $1 AND category = $2;`,
		id, category.String(),
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrBenefitNotFound
	}
	return nil
}
