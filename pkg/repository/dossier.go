package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/umputun/dossier/pkg/domain"
)

// DossierRepository handles dossier-related database operations
type DossierRepository struct {
	db *sqlx.DB
}

// dossierSQL is a dossiers row
type dossierSQL struct {
	ID           int64     `db:"id"`
	Name         string    `db:"name"`
	Recipient    string    `db:"recipient"`
	Feeds        feedsSQL  `db:"feeds"`
	MaxItems     int       `db:"max_items"`
	Frequency    string    `db:"frequency"`
	DeliveryTime string    `db:"delivery_time"`
	Timezone     string    `db:"timezone"`
	Style        string    `db:"style"`
	Language     string    `db:"language"`
	Instructions string    `db:"instructions"`
	Active       bool      `db:"active"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

// NewDossierRepository creates a new dossier repository
func NewDossierRepository(db *sqlx.DB) *DossierRepository {
	return &DossierRepository{db: db}
}

// UpsertDossier inserts a dossier or updates the existing one with the same name.
// The delivery time is normalized to "HH:MM" on write.
func (r *DossierRepository) UpsertDossier(ctx context.Context, d *domain.Dossier) error {
	if err := d.Validate(); err != nil {
		return fmt.Errorf("invalid dossier %q: %w", d.Name, err)
	}
	deliveryTime, err := domain.NormalizeDeliveryTime(d.DeliveryTime)
	if err != nil {
		return fmt.Errorf("normalize delivery time: %w", err)
	}

	now := time.Now().UTC()
	row := dossierSQL{
		Name:         d.Name,
		Recipient:    d.Recipient,
		Feeds:        feedsSQL(d.Feeds),
		MaxItems:     d.MaxItems,
		Frequency:    string(d.Frequency),
		DeliveryTime: deliveryTime,
		Timezone:     d.Timezone,
		Style:        d.Style,
		Language:     d.Language,
		Instructions: d.Instructions,
		Active:       d.Active,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	query := `
		INSERT INTO dossiers (
			name, recipient, feeds, max_items, frequency, delivery_time,
			timezone, style, language, instructions, active, created_at, updated_at
		) VALUES (
			:name, :recipient, :feeds, :max_items, :frequency, :delivery_time,
			:timezone, :style, :language, :instructions, :active, :created_at, :updated_at
		)
		ON CONFLICT(name) DO UPDATE SET
			recipient = excluded.recipient,
			feeds = excluded.feeds,
			max_items = excluded.max_items,
			frequency = excluded.frequency,
			delivery_time = excluded.delivery_time,
			timezone = excluded.timezone,
			style = excluded.style,
			language = excluded.language,
			instructions = excluded.instructions,
			active = excluded.active,
			updated_at = excluded.updated_at
	`
	err = withLockRetry(ctx, func() error {
		_, execErr := r.db.NamedExecContext(ctx, query, row)
		return execErr
	})
	if err != nil {
		return fmt.Errorf("upsert dossier: %w", err)
	}

	if err := r.db.GetContext(ctx, &d.ID, "SELECT id FROM dossiers WHERE name = ?", d.Name); err != nil {
		return fmt.Errorf("get dossier id: %w", err)
	}
	d.DeliveryTime = deliveryTime
	return nil
}

// GetDossier retrieves a dossier by ID
func (r *DossierRepository) GetDossier(ctx context.Context, id int64) (*domain.Dossier, error) {
	var row dossierSQL
	if err := r.db.GetContext(ctx, &row, "SELECT * FROM dossiers WHERE id = ?", id); err != nil {
		return nil, fmt.Errorf("get dossier %d: %w", id, err)
	}
	return row.toDomain(), nil
}

// ListActive returns all active dossiers ordered by id
func (r *DossierRepository) ListActive(ctx context.Context) ([]domain.Dossier, error) {
	var rows []dossierSQL
	if err := r.db.SelectContext(ctx, &rows, "SELECT * FROM dossiers WHERE active = 1 ORDER BY id"); err != nil {
		return nil, fmt.Errorf("list active dossiers: %w", err)
	}

	res := make([]domain.Dossier, 0, len(rows))
	for _, row := range rows {
		res = append(res, *row.toDomain())
	}
	return res, nil
}

// SetActive enables or disables a dossier
func (r *DossierRepository) SetActive(ctx context.Context, id int64, active bool) error {
	query := "UPDATE dossiers SET active = ?, updated_at = ? WHERE id = ?"
	return withLockRetry(ctx, func() error {
		if _, err := r.db.ExecContext(ctx, query, active, time.Now().UTC(), id); err != nil {
			return fmt.Errorf("set dossier %d active: %w", id, err)
		}
		return nil
	})
}

func (row *dossierSQL) toDomain() *domain.Dossier {
	return &domain.Dossier{
		ID:           row.ID,
		Name:         row.Name,
		Recipient:    row.Recipient,
		Feeds:        []string(row.Feeds),
		MaxItems:     row.MaxItems,
		Frequency:    domain.Frequency(row.Frequency),
		DeliveryTime: row.DeliveryTime,
		Timezone:     row.Timezone,
		Style:        row.Style,
		Language:     row.Language,
		Instructions: row.Instructions,
		Active:       row.Active,
		CreatedAt:    row.CreatedAt,
		UpdatedAt:    row.UpdatedAt,
	}
}
