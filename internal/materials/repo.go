package materials

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel/attribute"

	"github.com/paginadofounder/backend/internal/db"
	"github.com/paginadofounder/backend/internal/telemetry/tracing"
)

var ErrMaterialNotFound = errors.New("material not found")

type Repo struct {
	db db.Pool
}

func NewRepo(dbPool db.Pool) *Repo {
	return &Repo{
		db: dbPool,
	}
}

func (r *Repo) List(ctx context.Context) (_ []Material, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.materials.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(
		ctx,
		`
			SELECT
				id, nome, ano, link
			FROM materiais_apoio
			ORDER BY id;`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var found []Material
	for rows.Next() {
		var m Material
		if err := rows.Scan(&m.ID, &m.Nome, &m.Ano, &m.Link); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		found = append(found, m)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return found, nil
}

func (r *Repo) Add(ctx context.Context, material Material) (_ *Material, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.materials.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(
		ctx,
		`INSERT INTO materiais_apoio (nome, ano, link)
				VALUES ($1, $2, $3)
			RETURNING id;`,
		material.Nome, material.Ano, material.Link,
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

	if err := rows.Scan(&material.ID); err != nil {
		return nil, fmt.Errorf("rows scan: %w", err)
	}

	span.SetAttributes(attribute.Int("material.id", material.ID))

	return &material, nil
}

func (r *Repo) Update(ctx context.Context, material Material) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.materials.update")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", material.ID))

	tag, err := r.db.Exec(
		ctx,
		`UPDATE materiais_apoio
			SET nome = $1, ano = $2, link = $3
			WHERE id = $4;`,
		material.Nome, material.Ano, material.Link, material.ID,
	)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return ErrMaterialNotFound
	}

	return nil
}

func (r *Repo) Delete(ctx context.Context, id int) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.materials.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))

	tag, err := r.db.Exec(
		ctx,
		`DELETE FROM materiais_apoio WHERE id = $1;`,
		id,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrMaterialNotFound
	}
	return nil
}
