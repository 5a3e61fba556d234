package mentors

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel/attribute"

	"github.com/paginadofounder/backend/internal/db"
	"github.com/paginadofounder/backend/internal/telemetry/tracing"
)

var ErrMentorNotFound = errors.New("mentor not found")

type Repo struct {
	db db.Pool
}

func NewRepo(dbPool db.Pool) *Repo {
	return &Repo{
		db: dbPool,
	}
}

// List fetches all mentors plus their specialties in two queries and
// merges them in memory, rather than one query per mentor.
func (r *Repo) List(ctx context.Context) (_ []Mentor, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.mentors.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(
		ctx,
		`
			SELECT
				id, nome, cargo, empresa, contato, foto, updated_at
			FROM mentores
			ORDER BY id;`,
	)
	if err != nil {
		return nil, err
	}

	var found []Mentor
	indexByID := make(map[int]int)
	for rows.Next() {
		var m Mentor
		if err := rows.Scan(
			&m.ID, &m.Nome, &m.Cargo, &m.Empresa, &m.Contato, &m.Foto, &m.UpdatedAt,
		); err != nil {
			rows.Close()
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		m.Especialidades = []string{}
		indexByID[m.ID] = len(found)
		found = append(found, m)
	}
	rows.Close()

	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(found) == 0 {
		return found, nil
	}

	specRows, err := r.db.Query(
		ctx,
		`SELECT mentor_id, especialidade FROM mentor_especialidades ORDER BY mentor_id;`,
	)
	if err != nil {
		return nil, err
	}
	defer specRows.Close()

	for specRows.Next() {
		var (
			mentorID      int
			especialidade string
		)
		if err := specRows.Scan(&mentorID, &especialidade); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		if i, ok := indexByID[mentorID]; ok {
			found[i].Especialidades = append(found[i].Especialidades, especialidade)
		}
	}

	if err := specRows.Err(); err != nil {
		return nil, err
	}

	return found, nil
}

func (r *Repo) Add(ctx context.Context, mentor Mentor) (_ *Mentor, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.mentors.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	if err = tx.QueryRow(
		ctx,
		`INSERT INTO mentores (nome, cargo, empresa, contato, foto)
				VALUES ($1, $2, $3, $4, $5)
			RETURNING id, updated_at;`,
		mentor.Nome, mentor.Cargo, mentor.Empresa, mentor.Contato, mentor.Foto,
	).Scan(&mentor.ID, &mentor.UpdatedAt); err != nil {
		return nil, fmt.Errorf("insert mentor: %w", err)
	}

	for _, especialidade := range mentor.Especialidades {
		if _, err = tx.Exec(
			ctx,
			`INSERT INTO mentor_especialidades (mentor_id, especialidade) VALUES ($1, $2);`,
			mentor.ID, especialidade,
		); err != nil {
			return nil, fmt.Errorf("insert especialidade: %w", err)
		}
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit tx: %w", err)
	}

	span.SetAttributes(attribute.Int("mentor.id", mentor.ID))

	if mentor.Especialidades == nil {
		mentor.Especialidades = []string{}
	}
	return &mentor, nil
}

// Update replaces the mentor row and the full specialties set in one
// transaction (delete all, reinsert).
func (r *Repo) Update(ctx context.Context, mentor Mentor) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.mentors.update")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", mentor.ID))

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	tag, err := tx.Exec(
		ctx,
		`UPDATE mentores
			SET nome = $1, cargo = $2, empresa = $3, contato = $4, foto = $5, updated_at = NOW()
			WHERE id = $6;`,
		mentor.Nome, mentor.Cargo, mentor.Empresa, mentor.Contato, mentor.Foto,
		mentor.ID,
	)
	if err != nil {
		return fmt.Errorf("update mentor: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrMentorNotFound
	}

	if _, err = tx.Exec(
		ctx,
		`DELETE FROM mentor_especialidades WHERE mentor_id = $1;`,
		mentor.ID,
	); err != nil {
		return fmt.Errorf("delete especialidades: %w", err)
	}

	for _, especialidade := range mentor.Especialidades {
		if _, err = tx.Exec(
			ctx,
			`INSERT INTO mentor_especialidades (mentor_id, especialidade) VALUES ($1, $2);`,
			mentor.ID, especialidade,
		); err != nil {
			return fmt.Errorf("insert especialidade: %w", err)
		}
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}

	return nil
}

// Delete removes the specialties first, the FK points at the parent.
func (r *Repo) Delete(ctx context.Context, id int) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.mentors.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	if _, err = tx.Exec(
		ctx,
		`DELETE FROM mentor_especialidades WHERE mentor_id = $1;`,
		id,
	); err != nil {
		return fmt.Errorf("delete especialidades: %w", err)
	}

	tag, err := tx.Exec(
		ctx,
		`DELETE FROM mentores WHERE id = $1;`,
		id,
	)
	if err != nil {
		return fmt.Errorf("delete mentor: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrMentorNotFound
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}

	return nil
}
