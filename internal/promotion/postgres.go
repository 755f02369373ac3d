package promotion

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/gokulraj121/karikalan-restaurant/internal/database"
	"github.com/gokulraj121/karikalan-restaurant/internal/logger"
	"github.com/gokulraj121/karikalan-restaurant/internal/models"
)

// PostgresRepository persists offers and discounts in PostgreSQL.
type PostgresRepository struct {
	db     *database.DB
	logger *logger.Logger
}

var _ Repository = (*PostgresRepository)(nil)

// NewPostgresRepository creates a PostgreSQL-backed promotion repository.
func NewPostgresRepository(db *database.DB, log *logger.Logger) *PostgresRepository {
	return &PostgresRepository{db: db, logger: log}
}

// CreateOffer inserts a new offer and returns its id.
func (r *PostgresRepository) CreateOffer(ctx context.Context, offer *models.Offer) (string, error) {
	id := uuid.NewString()
	err := r.db.Exec(ctx, database.InsertOfferSQL, id, offer.Title, offer.Description, offer.Active)
	if err != nil {
		return "", fmt.Errorf("failed to insert offer: %w", err)
	}
	return id, nil
}

// UpdateOffer rewrites an existing offer.
func (r *PostgresRepository) UpdateOffer(ctx context.Context, offer *models.Offer) error {
	tag, err := r.db.Pool.Exec(ctx, database.UpdateOfferSQL, offer.ID, offer.Title, offer.Description, offer.Active)
	if err != nil {
		return fmt.Errorf("failed to update offer: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteOffer removes an offer.
func (r *PostgresRepository) DeleteOffer(ctx context.Context, id string) error {
	tag, err := r.db.Pool.Exec(ctx, database.DeleteOfferSQL, id)
	if err != nil {
		return fmt.Errorf("failed to delete offer: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ListOffers returns all offers, newest first.
func (r *PostgresRepository) ListOffers(ctx context.Context) ([]*models.Offer, error) {
	rows, err := r.db.Query(ctx, database.ListOffersSQL)
	if err != nil {
		return nil, fmt.Errorf("failed to query offers: %w", err)
	}
	defer rows.Close()

	var offers []*models.Offer
	for rows.Next() {
		var o models.Offer
		if err := rows.Scan(&o.ID, &o.Title, &o.Description, &o.Active, &o.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan offer: %w", err)
		}
		offers = append(offers, &o)
	}
	return offers, rows.Err()
}

// CreateDiscount inserts a new discount record and returns its id.
func (r *PostgresRepository) CreateDiscount(ctx context.Context, d *models.Discount) (string, error) {
	id := uuid.NewString()
	err := r.db.Exec(ctx, database.InsertDiscountSQL,
		id, d.Code, string(d.Type), d.Value, d.MaxDiscount, d.ValidUntil, d.Description, d.Active)
	if err != nil {
		return "", fmt.Errorf("failed to insert discount: %w", err)
	}
	return id, nil
}

// UpdateDiscount rewrites an existing discount record.
func (r *PostgresRepository) UpdateDiscount(ctx context.Context, d *models.Discount) error {
	tag, err := r.db.Pool.Exec(ctx, database.UpdateDiscountSQL,
		d.ID, d.Code, string(d.Type), d.Value, d.MaxDiscount, d.ValidUntil, d.Description, d.Active)
	if err != nil {
		return fmt.Errorf("failed to update discount: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteDiscount removes a discount record.
func (r *PostgresRepository) DeleteDiscount(ctx context.Context, id string) error {
	tag, err := r.db.Pool.Exec(ctx, database.DeleteDiscountSQL, id)
	if err != nil {
		return fmt.Errorf("failed to delete discount: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ListDiscounts returns all discount records, latest expiry first.
func (r *PostgresRepository) ListDiscounts(ctx context.Context) ([]*models.Discount, error) {
	rows, err := r.db.Query(ctx, database.ListDiscountsSQL)
	if err != nil {
		return nil, fmt.Errorf("failed to query discounts: %w", err)
	}
	defer rows.Close()

	var discounts []*models.Discount
	for rows.Next() {
		var d models.Discount
		var typ string
		var validUntil time.Time
		if err := rows.Scan(&d.ID, &d.Code, &typ, &d.Value, &d.MaxDiscount, &validUntil, &d.Description, &d.Active); err != nil {
			return nil, fmt.Errorf("failed to scan discount: %w", err)
		}
		d.Type = models.DiscountType(typ)
		d.ValidUntil = validUntil
		discounts = append(discounts, &d)
	}
	return discounts, rows.Err()
}

// Counts returns the active offer and discount counts for the dashboard.
func (r *PostgresRepository) Counts(ctx context.Context) (*Counts, error) {
	counts := &Counts{}
	if err := r.db.QueryRow(ctx, database.CountActiveOffersSQL).Scan(&counts.ActiveOffers); err != nil {
		return nil, fmt.Errorf("failed to count offers: %w", err)
	}
	if err := r.db.QueryRow(ctx, database.CountActiveDiscountsSQL).Scan(&counts.ActiveDiscounts); err != nil {
		return nil, fmt.Errorf("failed to count discounts: %w", err)
	}
	return counts, nil
}
