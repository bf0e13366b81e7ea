package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/umputun/dossier/pkg/domain"
)

// ErrDuplicateDelivery is returned when a successful delivery already exists for the same period
var ErrDuplicateDelivery = errors.New("delivery already recorded for this period")

// DeliveryRepository handles delivery history operations
type DeliveryRepository struct {
	db *sqlx.DB
}

type deliverySQL struct {
	ID          int64     `db:"id"`
	DossierID   int64     `db:"dossier_id"`
	DeliveredAt time.Time `db:"delivered_at"`
	Content     string    `db:"content"`
	ItemCount   int       `db:"item_count"`
	Success     bool      `db:"success"`
	PeriodKey   string    `db:"period_key"`
}

// NewDeliveryRepository creates a new delivery repository
func NewDeliveryRepository(db *sqlx.DB) *DeliveryRepository {
	return &DeliveryRepository{db: db}
}

// RecordDelivery appends a delivery record. A successful record with a period key
// that collides with an existing one is rejected with ErrDuplicateDelivery.
func (r *DeliveryRepository) RecordDelivery(ctx context.Context, d *domain.Delivery) error {
	row := deliverySQL{
		DossierID:   d.DossierID,
		DeliveredAt: d.DeliveredAt.UTC(),
		Content:     d.Content,
		ItemCount:   d.ItemCount,
		Success:     d.Success,
		PeriodKey:   d.PeriodKey,
	}

	query := `
		INSERT INTO deliveries (dossier_id, delivered_at, content, item_count, success, period_key)
		VALUES (:dossier_id, :delivered_at, :content, :item_count, :success, :period_key)
		ON CONFLICT DO NOTHING
	`
	var res sql.Result
	err := withLockRetry(ctx, func() error {
		var execErr error
		res, execErr = r.db.NamedExecContext(ctx, query, row)
		return execErr
	})
	if err != nil {
		return fmt.Errorf("record delivery: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("get affected rows: %w", err)
	}
	if affected == 0 {
		return ErrDuplicateDelivery
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("get insert id: %w", err)
	}
	d.ID = id
	return nil
}

// GetLastDelivery returns the most recent successful delivery of a dossier, nil if there is none
func (r *DeliveryRepository) GetLastDelivery(ctx context.Context, dossierID int64) (*domain.Delivery, error) {
	var row deliverySQL
	query := `
		SELECT * FROM deliveries
		WHERE dossier_id = ? AND success = 1
		ORDER BY delivered_at DESC, id DESC
		LIMIT 1
	`
	err := r.db.GetContext(ctx, &row, query, dossierID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get last delivery for %d: %w", dossierID, err)
	}
	return row.toDomain(), nil
}

// ListDeliveries returns recent deliveries of a dossier, newest first
func (r *DeliveryRepository) ListDeliveries(ctx context.Context, dossierID int64, limit int) ([]domain.Delivery, error) {
	if limit <= 0 {
		limit = 20
	}

	var rows []deliverySQL
	query := `
		SELECT * FROM deliveries
		WHERE dossier_id = ?
		ORDER BY delivered_at DESC, id DESC
		LIMIT ?
	`
	if err := r.db.SelectContext(ctx, &rows, query, dossierID, limit); err != nil {
		return nil, fmt.Errorf("list deliveries for %d: %w", dossierID, err)
	}

	res := make([]domain.Delivery, 0, len(rows))
	for _, row := range rows {
		res = append(res, *row.toDomain())
	}
	return res, nil
}

func (row *deliverySQL) toDomain() *domain.Delivery {
	return &domain.Delivery{
		ID:          row.ID,
		DossierID:   row.DossierID,
		DeliveredAt: row.DeliveredAt,
		Content:     row.Content,
		ItemCount:   row.ItemCount,
		Success:     row.Success,
		PeriodKey:   row.PeriodKey,
	}
}
