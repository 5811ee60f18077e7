package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"pet-care/internal/domain/incidents"
)

type IncidentsRepo struct {
	db *sql.DB
}

func NewIncidentsRepo(db *sql.DB) *IncidentsRepo {
	return &IncidentsRepo{db: db}
}

const incidentColumns = `
	id, pet_id,
	type, occurred_at, recorded_at,
	description, product, product_image_uri,
	vet_name, signature, status`

func (r *IncidentsRepo) Create(ctx context.Context, in incidents.Incident) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO pet_incidents (`+incidentColumns+`
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
	`,
		in.ID,
		in.PetID,
		string(in.Type),
		in.OccurredAt,
		in.RecordedAt,
		in.Description,
		in.Product,
		in.ProductImageURI,
		in.VetName,
		in.Signature,
		string(in.Status),
	)
	return err
}

func (r *IncidentsRepo) GetByID(ctx context.Context, petID, id string) (incidents.Incident, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return incidents.Incident{}, incidents.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT `+incidentColumns+`
		FROM pet_incidents
		WHERE pet_id = $1 AND id = $2
	`, petID, id)

	in, err := scanIncident(row)
	if errors.Is(err, sql.ErrNoRows) {
		return incidents.Incident{}, incidents.ErrNotFound
	}
	return in, err
}

func (r *IncidentsRepo) ListByPet(ctx context.Context, petID string, filter incidents.ListFilter) ([]incidents.Incident, error) {
	petID = strings.TrimSpace(petID)
	if petID == "" {
		return nil, nil
	}

	sb := strings.Builder{}
	sb.WriteString(`
		SELECT ` + incidentColumns + `
		FROM pet_incidents
		WHERE pet_id = $1
	`)

	args := []any{petID}
	argN := 2

	if len(filter.Types) > 0 {
		placeholders := make([]string, 0, len(filter.Types))
		for _, t := range filter.Types {
			placeholders = append(placeholders, fmt.Sprintf("$%d", argN))
			args = append(args, string(t))
			argN++
		}
		sb.WriteString(" AND type IN (" + strings.Join(placeholders, ",") + ")")
	}

	if filter.From != nil {
		sb.WriteString(fmt.Sprintf(" AND occurred_at >= $%d", argN))
		args = append(args, *filter.From)
		argN++
	}
	if filter.To != nil {
		sb.WriteString(fmt.Sprintf(" AND occurred_at <= $%d", argN))
		args = append(args, *filter.To)
		argN++
	}

	// q: búsqueda simple en descripción, producto y veterinario
	if q := strings.TrimSpace(filter.Query); q != "" {
		sb.WriteString(fmt.Sprintf(" AND (description ILIKE $%d OR product ILIKE $%d OR vet_name ILIKE $%d)", argN, argN, argN))
		args = append(args, "%"+q+"%")
		argN++
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}

	sb.WriteString(" ORDER BY occurred_at DESC")
	sb.WriteString(fmt.Sprintf(" LIMIT $%d", argN))
	args = append(args, limit)

	rows, err := r.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]incidents.Incident, 0)
	for rows.Next() {
		in, err := scanIncident(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, in)
	}

	return out, rows.Err()
}

func (r *IncidentsRepo) Void(ctx context.Context, petID, id string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE pet_incidents
		SET status = 'voided'
		WHERE pet_id = $1 AND id = $2
	`, petID, strings.TrimSpace(id))
	if err != nil {
		return err
	}

	n, _ := res.RowsAffected()
	if n == 0 {
		return incidents.ErrNotFound
	}
	return nil
}

func (r *IncidentsRepo) DeleteByPet(ctx context.Context, petID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM pet_incidents WHERE pet_id = $1`, petID)
	return err
}

func scanIncident(row rowScanner) (incidents.Incident, error) {
	var in incidents.Incident
	var typ, status string
	if err := row.Scan(
		&in.ID,
		&in.PetID,
		&typ,
		&in.OccurredAt,
		&in.RecordedAt,
		&in.Description,
		&in.Product,
		&in.ProductImageURI,
		&in.VetName,
		&in.Signature,
		&status,
	); err != nil {
		return incidents.Incident{}, err
	}
	in.Type = incidents.Type(typ)
	in.Status = incidents.Status(status)
	return in, nil
}
