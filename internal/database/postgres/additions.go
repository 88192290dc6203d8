package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mkarlsen/GameShelf_Go/internal/domain"
	"github.com/mkarlsen/GameShelf_Go/internal/repository"
)

type additionsRepository struct {
	db *pgxpool.Pool
}

// NewAdditionsRepository creates a new PostgreSQL addition catalog repository
func NewAdditionsRepository(db *pgxpool.Pool) repository.Additions {
	return &additionsRepository{db: db}
}

const additionColumns = `addition_id, game_id, addition_name, addition_type,
		is_complete_edition, weight, required_for_full, release_date, created_at`

func (r *additionsRepository) GameExists(ctx context.Context, gameID string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM games WHERE game_id = $1)`

	var exists bool
	if err := r.db.QueryRow(ctx, query, gameID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check game existence: %w", err)
	}
	return exists, nil
}

func (r *additionsRepository) ListByGame(ctx context.Context, gameID string) ([]domain.Addition, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM game_additions
		WHERE game_id = $1
		ORDER BY (addition_type <> 'edition'), addition_name`, additionColumns)

	rows, err := r.db.Query(ctx, query, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to list additions: %w", err)
	}
	defer rows.Close()

	additions := []domain.Addition{}
	for rows.Next() {
		a, err := scanAddition(rows)
		if err != nil {
			return nil, err
		}
		additions = append(additions, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read additions: %w", err)
	}

	return additions, nil
}

func (r *additionsRepository) GetByID(ctx context.Context, additionID string) (*domain.Addition, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM game_additions
		WHERE addition_id = $1`, additionColumns)

	row := r.db.QueryRow(ctx, query, additionID)
	a, err := scanAddition(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return a, nil
}

func (r *additionsRepository) UpdateTuning(ctx context.Context, additionID string, weight float64, requiredForFull bool) (*domain.Addition, error) {
	query := fmt.Sprintf(`
		UPDATE game_additions
		SET weight = $2, required_for_full = $3
		WHERE addition_id = $1
		RETURNING %s`, additionColumns)

	row := r.db.QueryRow(ctx, query, additionID, weight, requiredForFull)
	a, err := scanAddition(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAdditionNotFound
		}
		return nil, fmt.Errorf("failed to update addition tuning: %w", err)
	}
	return a, nil
}

func scanAddition(row pgx.Row) (*domain.Addition, error) {
	var a domain.Addition
	err := row.Scan(
		&a.ID,
		&a.GameID,
		&a.Name,
		&a.Type,
		&a.IsCompleteEdition,
		&a.Weight,
		&a.RequiredForFull,
		&a.ReleaseDate,
		&a.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan addition: %w", err)
	}
	return &a, nil
}
