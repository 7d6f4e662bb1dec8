package postgres

import (
	"context"

	"github.com/dagmara-szproch/animal-farm/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type animalsRepo struct{ pool *pgxpool.Pool }

const animalCols = `id, category_id, name, slug, species, breed, description, story,
       image_url, is_active, date_deceased, created_at, updated_at`

func scanAnimal(row pgx.Row) (models.Animal, error) {
	var a models.Animal
	var breed, story, imageURL *string
	err := row.Scan(
		&a.ID, &a.CategoryID, &a.Name, &a.Slug, &a.Species, &breed, &a.Description, &story,
		&imageURL, &a.IsActive, &a.DateDeceased, &a.CreatedAt, &a.UpdatedAt,
	)
	if breed != nil {
		a.Breed = *breed
	}
	if story != nil {
		a.Story = *story
	}
	if imageURL != nil {
		a.ImageURL = *imageURL
	}
	return a, err
}

func (r *animalsRepo) List() ([]models.Animal, error) {
	rows, err := r.pool.Query(context.Background(),
		`SELECT `+animalCols+` FROM animals WHERE is_active ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectAnimals(rows)
}

func (r *animalsRepo) ListByCategory(categorySlug string) ([]models.Animal, error) {
	rows, err := r.pool.Query(context.Background(),
		`SELECT `+animalCols+`
		   FROM animals
		  WHERE is_active
		    AND category_id = (SELECT id FROM categories WHERE slug=$1)
		  ORDER BY name`,
		categorySlug,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectAnimals(rows)
}

func collectAnimals(rows pgx.Rows) ([]models.Animal, error) {
	var out []models.Animal
	for rows.Next() {
		a, err := scanAnimal(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *animalsRepo) GetBySlug(slug string) (models.Animal, error) {
	row := r.pool.QueryRow(context.Background(),
		`SELECT `+animalCols+` FROM animals WHERE slug=$1`, slug)
	return scanAnimal(row)
}

func (r *animalsRepo) SlugExists(slug string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(context.Background(),
		`SELECT EXISTS(SELECT 1 FROM animals WHERE slug=$1)`, slug).Scan(&exists)
	return exists, err
}

func (r *animalsRepo) Create(a models.Animal) (models.Animal, error) {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	_, err := r.pool.Exec(context.Background(),
		`INSERT INTO animals(id, category_id, name, slug, species, breed, description, story, image_url, is_active)
		 VALUES($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`,
		a.ID, a.CategoryID, a.Name, a.Slug, a.Species, a.Breed, a.Description, a.Story, a.ImageURL, a.IsActive,
	)
	if err != nil {
		return models.Animal{}, err
	}
	return r.GetBySlug(a.Slug)
}
