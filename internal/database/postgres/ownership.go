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

type ownershipRepository struct {
	db *pgxpool.Pool
}

// NewOwnershipRepository creates a new PostgreSQL ownership repository
func NewOwnershipRepository(db *pgxpool.Pool) repository.Ownership {
	return &ownershipRepository{db: db}
}

func (r *ownershipRepository) Get(ctx context.Context, userID, gameID, platformID string) (*domain.OwnershipRecord, error) {
	record := &domain.OwnershipRecord{
		UserID:     userID,
		GameID:     gameID,
		PlatformID: platformID,
		OwnedDLCs:  map[string]bool{},
	}

	query := `
		SELECT edition_id, updated_at
		FROM ownership_records
		WHERE user_id = $1 AND game_id = $2 AND platform_id = $3
	`
	err := r.db.QueryRow(ctx, query, userID, gameID, platformID).
		Scan(&record.EditionID, &record.UpdatedAt)
	haveRecord := true
	if err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("failed to get ownership record: %w", err)
		}
		haveRecord = false
	}

	flagsQuery := `
		SELECT o.addition_id, o.owned
		FROM dlc_ownership o
		JOIN game_additions a ON a.addition_id = o.addition_id
		WHERE o.user_id = $1 AND a.game_id = $2 AND o.platform_id = $3
	`
	rows, err := r.db.Query(ctx, flagsQuery, userID, gameID, platformID)
	if err != nil {
		return nil, fmt.Errorf("failed to get dlc ownership flags: %w", err)
	}
	defer rows.Close()

	haveFlags := false
	for rows.Next() {
		var additionID string
		var owned bool
		if err := rows.Scan(&additionID, &owned); err != nil {
			return nil, fmt.Errorf("failed to scan dlc ownership flag: %w", err)
		}
		record.OwnedDLCs[additionID] = owned
		haveFlags = true
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read dlc ownership flags: %w", err)
	}

	// The record is created lazily; no row anywhere means no ownership yet
	if !haveRecord && !haveFlags {
		return nil, nil
	}
	return record, nil
}

func (r *ownershipRepository) UpsertEdition(ctx context.Context, userID, gameID, platformID string, editionID *string) error {
	query := `
		INSERT INTO ownership_records (user_id, game_id, platform_id, edition_id, updated_at)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (user_id, game_id, platform_id)
		DO UPDATE SET edition_id = EXCLUDED.edition_id, updated_at = NOW()
	`
	if _, err := r.db.Exec(ctx, query, userID, gameID, platformID, editionID); err != nil {
		return fmt.Errorf("failed to upsert edition selection: %w", err)
	}
	return nil
}

// ReplaceDLCOwnership applies the reconciled owned/unowned sets in one
// transaction. Each row write is an independently idempotent upsert, so a
// crash mid-loop leaves a consistent partial state that a retry repairs.
func (r *ownershipRepository) ReplaceDLCOwnership(ctx context.Context, userID, gameID, platformID string, owned, unowned []string) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToBeginTransaction, err)
	}
	defer SafeRollback(ctx, tx)

	// Ensure the parent record exists so the edition selection and the
	// dlc flags share one logical row set
	ensure := `
		INSERT INTO ownership_records (user_id, game_id, platform_id, edition_id, updated_at)
		VALUES ($1, $2, $3, NULL, NOW())
		ON CONFLICT (user_id, game_id, platform_id)
		DO UPDATE SET updated_at = NOW()
	`
	if _, err := tx.Exec(ctx, ensure, userID, gameID, platformID); err != nil {
		return fmt.Errorf("failed to ensure ownership record: %w", err)
	}

	upsert := `
		INSERT INTO dlc_ownership (user_id, platform_id, addition_id, owned, updated_at)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (user_id, platform_id, addition_id)
		DO UPDATE SET owned = EXCLUDED.owned, updated_at = NOW()
	`
	for _, additionID := range owned {
		if _, err := tx.Exec(ctx, upsert, userID, platformID, additionID, true); err != nil {
			return fmt.Errorf("failed to mark dlc owned: %w", err)
		}
	}
	for _, additionID := range unowned {
		if _, err := tx.Exec(ctx, upsert, userID, platformID, additionID, false); err != nil {
			return fmt.Errorf("failed to mark dlc unowned: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToCommitTransaction, err)
	}
	return nil
}
