package postgres

import (
	"context"
	"database/sql"
	"strings"

	"pet-care/internal/domain/reminders"
	"pet-care/internal/domain/tags"
	"pet-care/internal/domain/weights"
)

// WeightsRepo: el orden de inserción lo da seq (BIGSERIAL).
type WeightsRepo struct {
	db *sql.DB
}

func NewWeightsRepo(db *sql.DB) *WeightsRepo {
	return &WeightsRepo{db: db}
}

func (r *WeightsRepo) Append(ctx context.Context, rec weights.Record) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO pet_weights (id, pet_id, weight_kg, recorded_at)
		VALUES ($1,$2,$3,$4)
	`, rec.ID, rec.PetID, rec.WeightKg, rec.RecordedAt)
	return err
}

func (r *WeightsRepo) ListByPet(ctx context.Context, petID string) ([]weights.Record, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, pet_id, weight_kg, recorded_at
		FROM pet_weights
		WHERE pet_id = $1
		ORDER BY seq ASC
	`, strings.TrimSpace(petID))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]weights.Record, 0)
	for rows.Next() {
		var rec weights.Record
		if err := rows.Scan(&rec.ID, &rec.PetID, &rec.WeightKg, &rec.RecordedAt); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *WeightsRepo) DeleteByPet(ctx context.Context, petID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM pet_weights WHERE pet_id = $1`, petID)
	return err
}

type RemindersRepo struct {
	db *sql.DB
}

func NewRemindersRepo(db *sql.DB) *RemindersRepo {
	return &RemindersRepo{db: db}
}

func (r *RemindersRepo) Create(ctx context.Context, rem reminders.Reminder) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO pet_reminders (id, pet_id, text, due_at, created_at)
		VALUES ($1,$2,$3,$4,$5)
	`, rem.ID, rem.PetID, rem.Text, rem.DueAt, rem.CreatedAt)
	return err
}

func (r *RemindersRepo) ListByPet(ctx context.Context, petID string) ([]reminders.Reminder, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, pet_id, text, due_at, created_at
		FROM pet_reminders
		WHERE pet_id = $1
		ORDER BY due_at ASC
	`, strings.TrimSpace(petID))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]reminders.Reminder, 0)
	for rows.Next() {
		var rem reminders.Reminder
		if err := rows.Scan(&rem.ID, &rem.PetID, &rem.Text, &rem.DueAt, &rem.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, rem)
	}
	return out, rows.Err()
}

func (r *RemindersRepo) Delete(ctx context.Context, petID, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM pet_reminders WHERE pet_id = $1 AND id = $2`, petID, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return reminders.ErrNotFound
	}
	return nil
}

func (r *RemindersRepo) DeleteByPet(ctx context.Context, petID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM pet_reminders WHERE pet_id = $1`, petID)
	return err
}

type TagsRepo struct {
	db *sql.DB
}

func NewTagsRepo(db *sql.DB) *TagsRepo {
	return &TagsRepo{db: db}
}

func (r *TagsRepo) Append(ctx context.Context, s tags.Scan) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO tag_scans (id, owner_user_id, pet_id, tag_data, latitude, longitude, scanned_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
	`, s.ID, s.OwnerUserID, s.PetID, s.TagData, s.Latitude, s.Longitude, s.ScannedAt)
	return err
}

func (r *TagsRepo) ListByOwner(ctx context.Context, ownerUserID string) ([]tags.Scan, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, owner_user_id, pet_id, tag_data, latitude, longitude, scanned_at
		FROM tag_scans
		WHERE owner_user_id = $1
		ORDER BY scanned_at DESC, seq DESC
	`, strings.TrimSpace(ownerUserID))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]tags.Scan, 0)
	for rows.Next() {
		var s tags.Scan
		if err := rows.Scan(&s.ID, &s.OwnerUserID, &s.PetID, &s.TagData, &s.Latitude, &s.Longitude, &s.ScannedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *TagsRepo) DeleteByPet(ctx context.Context, ownerUserID, petID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM tag_scans WHERE owner_user_id = $1 AND pet_id = $2`, ownerUserID, petID)
	return err
}
