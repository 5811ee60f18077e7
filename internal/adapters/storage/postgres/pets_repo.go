package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"pet-care/internal/domain/nutrition"
	"pet-care/internal/domain/pets"
)

type PetsRepo struct {
	db *sql.DB
}

func NewPetsRepo(db *sql.DB) *PetsRepo {
	return &PetsRepo{db: db}
}

const petColumns = `
	id, owner_user_id,
	name, species, breed, sex,
	birth_date, weight_kg, food_kcal_per_100g,
	activity, sterilized, body_condition_score, special_condition,
	image_uri, notes,
	created_at, updated_at`

func (r *PetsRepo) Create(ctx context.Context, p pets.Pet) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO pets (`+petColumns+`
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17)
	`,
		p.ID,
		p.OwnerUserID,
		p.Name,
		p.Species,
		p.Breed,
		string(p.Sex),
		toNullDate(p.BirthDate),
		toNullFloat(p.WeightKg),
		toNullFloat(p.FoodKcalPer100g),
		string(p.Activity),
		p.Sterilized,
		toNullInt(p.BodyConditionScore),
		string(p.SpecialCondition),
		p.ImageURI,
		p.Notes,
		p.CreatedAt,
		p.UpdatedAt,
	)
	return err
}

func (r *PetsRepo) Update(ctx context.Context, p pets.Pet) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE pets
		SET
			name = $2,
			species = $3,
			breed = $4,
			sex = $5,
			birth_date = $6,
			weight_kg = $7,
			food_kcal_per_100g = $8,
			activity = $9,
			sterilized = $10,
			body_condition_score = $11,
			special_condition = $12,
			image_uri = $13,
			notes = $14,
			updated_at = $15
		WHERE id = $1
	`,
		p.ID,
		p.Name,
		p.Species,
		p.Breed,
		string(p.Sex),
		toNullDate(p.BirthDate),
		toNullFloat(p.WeightKg),
		toNullFloat(p.FoodKcalPer100g),
		string(p.Activity),
		p.Sterilized,
		toNullInt(p.BodyConditionScore),
		string(p.SpecialCondition),
		p.ImageURI,
		p.Notes,
		p.UpdatedAt,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return pets.ErrNotFound
	}
	return nil
}

// Delete borra la fila; las tablas hijas caen por ON DELETE CASCADE.
func (r *PetsRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM pets WHERE id = $1`, strings.TrimSpace(id))
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return pets.ErrNotFound
	}
	return nil
}

func (r *PetsRepo) GetByID(ctx context.Context, id string) (pets.Pet, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return pets.Pet{}, pets.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `SELECT `+petColumns+` FROM pets WHERE id = $1`, id)
	p, err := scanPet(row)
	if errors.Is(err, sql.ErrNoRows) {
		return pets.Pet{}, pets.ErrNotFound
	}
	return p, err
}

func (r *PetsRepo) ListByOwner(ctx context.Context, ownerUserID string) ([]pets.Pet, error) {
	ownerUserID = strings.TrimSpace(ownerUserID)
	if ownerUserID == "" {
		return nil, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT `+petColumns+`
		FROM pets
		WHERE owner_user_id = $1
		ORDER BY created_at ASC
	`, ownerUserID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]pets.Pet, 0)
	for rows.Next() {
		p, err := scanPet(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}

	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPet(row rowScanner) (pets.Pet, error) {
	var p pets.Pet
	var sex, activity, condition string
	var bd sql.NullTime
	var weight, kcal sql.NullFloat64
	var bcs sql.NullInt32

	if err := row.Scan(
		&p.ID,
		&p.OwnerUserID,
		&p.Name,
		&p.Species,
		&p.Breed,
		&sex,
		&bd,
		&weight,
		&kcal,
		&activity,
		&p.Sterilized,
		&bcs,
		&condition,
		&p.ImageURI,
		&p.Notes,
		&p.CreatedAt,
		&p.UpdatedAt,
	); err != nil {
		return pets.Pet{}, err
	}

	p.Sex = pets.Sex(sex)
	// ojo: birth_date es date, pgx lo mapea a time.Time midnight UTC
	p.BirthDate = fromNullTime(bd)
	p.WeightKg = fromNullFloat(weight)
	p.FoodKcalPer100g = fromNullFloat(kcal)
	p.Activity = nutrition.Activity(activity)
	p.BodyConditionScore = fromNullInt(bcs)
	p.SpecialCondition = nutrition.Condition(condition)
	return p, nil
}
