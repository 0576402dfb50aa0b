package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"obraexpress-store/db"
)

// DispatchDateRepository persists the per-SKU dispatch date chosen in
// the calendar picker. Rows are keyed "dispatch-date-<codigo>" so two
// SKUs never share a cached date.
type DispatchDateRepository struct{}

// NewDispatchDateRepository creates a new DispatchDateRepository
func NewDispatchDateRepository() *DispatchDateRepository {
	return &DispatchDateRepository{}
}

// Ensure DispatchDateRepository implements DispatchDateRepositoryInterface
var _ DispatchDateRepositoryInterface = (*DispatchDateRepository)(nil)

func dispatchDateKey(codigo string) string {
	return "dispatch-date-" + codigo
}

// Get returns the stored ISO date (YYYY-MM-DD) for the SKU, or ""
// when none is stored.
func (r *DispatchDateRepository) Get(ctx context.Context, codigo string) (string, error) {
	query := `SELECT dispatch_date FROM dispatch_dates WHERE key = $1`

	var isoDate string
	err := db.DB.QueryRowContext(ctx, query, dispatchDateKey(codigo)).Scan(&isoDate)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", nil
		}
		return "", fmt.Errorf("failed to get dispatch date for %s: %w", codigo, err)
	}
	return isoDate, nil
}

// Set stores or replaces the ISO date for the SKU.
func (r *DispatchDateRepository) Set(ctx context.Context, codigo string, isoDate string) error {
	query := `
		INSERT INTO dispatch_dates (key, dispatch_date, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (key) DO UPDATE
		SET dispatch_date = EXCLUDED.dispatch_date, updated_at = NOW()
	`

	if _, err := db.DB.ExecContext(ctx, query, dispatchDateKey(codigo), isoDate); err != nil {
		log.Printf("❌ Set: Error saving dispatch date for %s: %v", codigo, err)
		return fmt.Errorf("failed to save dispatch date for %s: %w", codigo, err)
	}

	log.Printf("✅ Set: Dispatch date %s saved for %s", isoDate, codigo)
	return nil
}
