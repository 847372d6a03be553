package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/greglas75/coding-ui-sub018/pkg/apperrors"
	"github.com/greglas75/coding-ui-sub018/pkg/database"
	"github.com/greglas75/coding-ui-sub018/pkg/models"
)

// CategoryRepository defines the interface for category data access.
type CategoryRepository interface {
	Get(ctx context.Context, id int64) (*models.Category, error)
	List(ctx context.Context) ([]*models.Category, error)
}

// categoryRepository implements CategoryRepository using PostgreSQL.
type categoryRepository struct {
	db *database.DB
}

// NewCategoryRepository creates a new category repository.
func NewCategoryRepository(db *database.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

const categoryColumns = `
	id, name, preset_name, custom_template, model, vision_model,
	use_web_context, created_at`

func (r *categoryRepository) Get(ctx context.Context, id int64) (*models.Category, error) {
	query := `
		SELECT` + categoryColumns + `
		FROM categories
		WHERE id = $1`

	category, err := scanCategory(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get category: %w", err)
	}
	return category, nil
}

func (r *categoryRepository) List(ctx context.Context) ([]*models.Category, error) {
	query := `
		SELECT` + categoryColumns + `
		FROM categories
		ORDER BY id`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	var categories []*models.Category
	for rows.Next() {
		category, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, category)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate categories: %w", err)
	}
	return categories, nil
}

func scanCategory(row pgx.Row) (*models.Category, error) {
	var category models.Category
	err := row.Scan(
		&category.ID,
		&category.Name,
		&category.PresetName,
		&category.CustomTemplate,
		&category.Model,
		&category.VisionModel,
		&category.UseWebContext,
		&category.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &category, nil
}
