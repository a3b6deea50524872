package planet

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"planet-designer/internal/composition"
	"planet-designer/internal/physical"
	"planet-designer/internal/shared/database"
)

type Repository struct {
	db     *database.DB
	logger *slog.Logger
}

func NewRepository(db *database.DB, logger *slog.Logger) *Repository {
	logger.Debug("Initializing design repository")

	return &Repository{
		db:     db,
		logger: logger,
	}
}

func (r *Repository) getExecutor(tx *database.Tx) database.Executor {
	if tx != nil {
		return tx
	}
	return r.db
}

// WithTx runs fn inside a transaction, rolling back when fn fails
func (r *Repository) WithTx(ctx context.Context, fn func(tx *database.Tx) error) error {
	tx, err := r.db.BeginTxContext(ctx)
	if err != nil {
		return err
	}

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			r.logger.Error("Failed to rollback transaction", "error", rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func encodeStates(d *Design) (string, string, error) {
	phys, err := json.Marshal(d.Physical)
	if err != nil {
		return "", "", fmt.Errorf("failed to encode physical state: %w", err)
	}
	comp, err := json.Marshal(d.Composition)
	if err != nil {
		return "", "", fmt.Errorf("failed to encode composition state: %w", err)
	}
	return string(phys), string(comp), nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanDesign decodes a designs row. Stored states go through full validation again.
func scanDesign(row rowScanner) (*Design, error) {
	var (
		d        Design
		physJSON string
		compJSON string
		phys     physical.State
		comp     composition.State
	)

	if err := row.Scan(&d.ID, &d.Name, &physJSON, &compJSON, &d.CreatedAt, &d.UpdatedAt); err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(physJSON), &phys); err != nil {
		return nil, fmt.Errorf("stored physical state for design %s: %w", d.ID, err)
	}
	if err := json.Unmarshal([]byte(compJSON), &comp); err != nil {
		return nil, fmt.Errorf("stored composition state for design %s: %w", d.ID, err)
	}

	d.Physical = &phys
	d.Composition = &comp
	return &d, nil
}

func (r *Repository) CreateDesign(ctx context.Context, d *Design, tx *database.Tx) error {
	exec := r.getExecutor(tx)

	logger := r.logger.With(
		"component", "design_repository",
		"operation", "create_design",
		"design_id", d.ID,
	)
	logger.Debug("Creating design")

	phys, comp, err := encodeStates(d)
	if err != nil {
		logger.Error("Failed to encode design", "error", err)
		return err
	}

	query := `
		INSERT INTO designs (id, name, physical, composition, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	if _, err := exec.ExecContext(ctx, query, d.ID, d.Name, phys, comp, d.CreatedAt, d.UpdatedAt); err != nil {
		logger.Error("Failed to create design", "error", err)
		return fmt.Errorf("failed to create design: %w", err)
	}

	logger.Debug("Design created successfully")
	return nil
}

func (r *Repository) GetDesign(ctx context.Context, id uuid.UUID, tx *database.Tx) (*Design, error) {
	exec := r.getExecutor(tx)

	logger := r.logger.With("component", "design_repository", "operation", "get_design", "design_id", id)
	logger.Debug("Getting design")

	query := `
		SELECT id, name, physical, composition, created_at, updated_at
		FROM designs
		WHERE id = $1
	`

	design, err := scanDesign(exec.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrDesignNotFound
	}
	if err != nil {
		logger.Error("Failed to get design", "error", err)
		return nil, fmt.Errorf("failed to get design: %w", err)
	}

	return design, nil
}

// ListDesigns returns the newest designs first
func (r *Repository) ListDesigns(ctx context.Context, limit int) ([]Design, error) {
	logger := r.logger.With("component", "design_repository", "operation", "list_designs", "limit", limit)
	logger.Debug("Listing designs")

	query := `
		SELECT id, name, physical, composition, created_at, updated_at
		FROM designs
		ORDER BY created_at DESC, id
		LIMIT $1
	`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		logger.Error("Failed to query designs", "error", err)
		return nil, fmt.Errorf("failed to query designs: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			logger.Error("Failed to close rows", "error", err)
		}
	}()

	var designs []Design
	for rows.Next() {
		design, err := scanDesign(rows)
		if err != nil {
			logger.Error("Failed to scan design row", "error", err)
			return nil, fmt.Errorf("failed to scan design: %w", err)
		}
		designs = append(designs, *design)
	}

	if err := rows.Err(); err != nil {
		logger.Error("Error during rows iteration", "error", err)
		return nil, fmt.Errorf("error iterating designs: %w", err)
	}

	logger.Debug("Designs retrieved", "count", len(designs))
	return designs, nil
}

func (r *Repository) UpdateDesign(ctx context.Context, d *Design, tx *database.Tx) error {
	exec := r.getExecutor(tx)

	logger := r.logger.With("component", "design_repository", "operation", "update_design", "design_id", d.ID)
	logger.Debug("Updating design")

	phys, comp, err := encodeStates(d)
	if err != nil {
		logger.Error("Failed to encode design", "error", err)
		return err
	}

	query := `
		UPDATE designs
		SET name = $1, physical = $2, composition = $3, updated_at = $4
		WHERE id = $5
	`

	result, err := exec.ExecContext(ctx, query, d.Name, phys, comp, d.UpdatedAt, d.ID)
	if err != nil {
		logger.Error("Failed to update design", "error", err)
		return fmt.Errorf("failed to update design: %w", err)
	}

	return checkAffected(result)
}

func (r *Repository) DeleteDesign(ctx context.Context, id uuid.UUID) error {
	logger := r.logger.With("component", "design_repository", "operation", "delete_design", "design_id", id)
	logger.Debug("Deleting design")

	result, err := r.db.ExecContext(ctx, "DELETE FROM designs WHERE id = $1", id)
	if err != nil {
		logger.Error("Failed to delete design", "error", err)
		return fmt.Errorf("failed to delete design: %w", err)
	}

	return checkAffected(result)
}

func checkAffected(result sql.Result) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return ErrDesignNotFound
	}
	return nil
}
