package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/umputun/dossier/pkg/domain"
)

// ErrStyleNotFound is returned when no style with the requested name exists
var ErrStyleNotFound = errors.New("style not found")

// StyleRepository resolves style names to generation instructions
type StyleRepository struct {
	db *sqlx.DB
}

type styleSQL struct {
	Name         string `db:"name"`
	Instructions string `db:"instructions"`
	IsDefault    bool   `db:"is_default"`
}

// NewStyleRepository creates a new style repository
func NewStyleRepository(db *sqlx.DB) *StyleRepository {
	return &StyleRepository{db: db}
}

// Lookup returns instruction text for the style, ErrStyleNotFound on miss
func (r *StyleRepository) Lookup(ctx context.Context, name string) (string, error) {
	var instructions string
	err := r.db.GetContext(ctx, &instructions, "SELECT instructions FROM styles WHERE name = ?",
		strings.ToLower(strings.TrimSpace(name)))
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrStyleNotFound
	}
	if err != nil {
		return "", fmt.Errorf("lookup style %q: %w", name, err)
	}
	return instructions, nil
}

// UpsertStyle stores a style, replacing instructions of an existing one
func (r *StyleRepository) UpsertStyle(ctx context.Context, s domain.Style) error {
	row := styleSQL{Name: strings.ToLower(strings.TrimSpace(s.Name)), Instructions: s.Instructions, IsDefault: s.IsDefault}
	if row.Name == "" || strings.TrimSpace(row.Instructions) == "" {
		return errors.New("style name and instructions are required")
	}

	query := `
		INSERT INTO styles (name, instructions, is_default) VALUES (:name, :instructions, :is_default)
		ON CONFLICT(name) DO UPDATE SET instructions = excluded.instructions, is_default = excluded.is_default
	`
	return withLockRetry(ctx, func() error {
		if _, err := r.db.NamedExecContext(ctx, query, row); err != nil {
			return fmt.Errorf("upsert style %q: %w", row.Name, err)
		}
		return nil
	})
}

// ListStyles returns all known styles ordered by name
func (r *StyleRepository) ListStyles(ctx context.Context) ([]domain.Style, error) {
	var rows []styleSQL
	if err := r.db.SelectContext(ctx, &rows, "SELECT name, instructions, is_default FROM styles ORDER BY name"); err != nil {
		return nil, fmt.Errorf("list styles: %w", err)
	}
	res := make([]domain.Style, 0, len(rows))
	for _, row := range rows {
		res = append(res, domain.Style{Name: row.Name, Instructions: row.Instructions, IsDefault: row.IsDefault})
	}
	return res, nil
}
