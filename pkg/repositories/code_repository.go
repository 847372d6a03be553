package repositories

import (
	"context"
	"fmt"

	"github.com/greglas75/coding-ui-sub018/pkg/database"
	"github.com/greglas75/coding-ui-sub018/pkg/models"
)

// CodeRepository defines the interface for code vocabulary access.
type CodeRepository interface {
	// ListForCategory returns the codes assigned to a category, ordered by
	// name. An empty result means the category has no vocabulary yet.
	ListForCategory(ctx context.Context, categoryID int64) ([]models.Code, error)
	// ListNamesForCategory returns just the code names, ordered by name.
	ListNamesForCategory(ctx context.Context, categoryID int64) ([]string, error)
}

// codeRepository implements CodeRepository using PostgreSQL.
type codeRepository struct {
	db *database.DB
}

// NewCodeRepository creates a new code repository.
func NewCodeRepository(db *database.DB) CodeRepository {
	return &codeRepository{db: db}
}

func (r *codeRepository) ListForCategory(ctx context.Context, categoryID int64) ([]models.Code, error) {
	query := `
		SELECT c.id, c.name
		FROM codes c
		JOIN codes_categories cc ON cc.code_id = c.id
		WHERE cc.category_id = $1
		ORDER BY c.name`

	rows, err := r.db.Query(ctx, query, categoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to list codes: %w", err)
	}
	defer rows.Close()

	var codes []models.Code
	for rows.Next() {
		var code models.Code
		if err := rows.Scan(&code.ID, &code.Name); err != nil {
			return nil, fmt.Errorf("failed to scan code: %w", err)
		}
		codes = append(codes, code)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate codes: %w", err)
	}
	return codes, nil
}

func (r *codeRepository) ListNamesForCategory(ctx context.Context, categoryID int64) ([]string, error) {
	codes, err := r.ListForCategory(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(codes))
	for _, code := range codes {
		names = append(names, code.Name)
	}
	return names, nil
}
