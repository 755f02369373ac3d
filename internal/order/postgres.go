package order

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/gokulraj121/karikalan-restaurant/internal/database"
	"github.com/gokulraj121/karikalan-restaurant/internal/logger"
	"github.com/gokulraj121/karikalan-restaurant/internal/models"
)

// PostgresRepository persists orders in PostgreSQL.
type PostgresRepository struct {
	db     *database.DB
	logger *logger.Logger
}

// NewPostgresRepository creates a PostgreSQL-backed order repository.
func NewPostgresRepository(db *database.DB, log *logger.Logger) *PostgresRepository {
	return &PostgresRepository{db: db, logger: log}
}

// Create inserts the draft and its items in one transaction and returns the
// assigned order id.
func (r *PostgresRepository) Create(ctx context.Context, draft *models.DraftOrder) (string, error) {
	id := uuid.NewString()

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var lat, lng *string
	if draft.Location != nil {
		lat, lng = &draft.Location.Lat, &draft.Location.Lng
	}

	_, err = tx.Exec(ctx, database.InsertOrderSQL,
		id, draft.Customer, draft.Phone, draft.Address, string(draft.OrderType),
		lat, lng, draft.Subtotal, draft.GST, draft.Total,
		draft.PaymentMethod, string(models.StatusPending), draft.Date)
	if err != nil {
		return "", fmt.Errorf("failed to insert order: %w", err)
	}

	for _, item := range draft.Items {
		_, err = tx.Exec(ctx, database.InsertOrderItemSQL, id, item.Name, item.Price, item.Quantity)
		if err != nil {
			return "", fmt.Errorf("failed to insert order item %q: %w", item.Name, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return "", fmt.Errorf("failed to commit order: %w", err)
	}

	return id, nil
}

// Get retrieves an order with its items.
func (r *PostgresRepository) Get(ctx context.Context, id string) (*models.PersistedOrder, error) {
	o, err := r.scanOrder(r.db.QueryRow(ctx, database.GetOrderSQL, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to query order: %w", err)
	}

	if err := r.loadItems(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

// List retrieves orders matching the filter, newest first.
func (r *PostgresRepository) List(ctx context.Context, f Filter) ([]*models.PersistedOrder, error) {
	rows, err := r.db.Query(ctx, database.ListOrdersSQL, f.Status, f.OrderType, f.Search)
	if err != nil {
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	var orders []*models.PersistedOrder
	for rows.Next() {
		o, err := r.scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, o := range orders {
		if err := r.loadItems(ctx, o); err != nil {
			return nil, err
		}
	}
	return orders, nil
}

// UpdateStatus sets a new status and returns the previous one along with the
// customer name, for the status-update notification.
func (r *PostgresRepository) UpdateStatus(ctx context.Context, id string, status models.OrderStatus) (models.OrderStatus, string, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return "", "", fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var old models.OrderStatus
	var customer string
	err = tx.QueryRow(ctx, database.GetOrderStatusSQL, id).Scan(&old, &customer)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", "", ErrNotFound
		}
		return "", "", fmt.Errorf("failed to query order status: %w", err)
	}

	if _, err := tx.Exec(ctx, database.UpdateOrderStatusSQL, string(status), id); err != nil {
		return "", "", fmt.Errorf("failed to update order status: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return "", "", fmt.Errorf("failed to commit status update: %w", err)
	}
	return old, customer, nil
}

// Stats computes the order-side dashboard aggregates.
func (r *PostgresRepository) Stats(ctx context.Context) (*Stats, error) {
	stats := &Stats{}

	err := r.db.QueryRow(ctx, database.CountOrdersSQL).Scan(&stats.TotalOrders, &stats.PendingOrders)
	if err != nil {
		return nil, fmt.Errorf("failed to count orders: %w", err)
	}

	err = r.db.QueryRow(ctx, database.MonthlyRevenueSQL).Scan(&stats.MonthlyRevenue)
	if err != nil {
		return nil, fmt.Errorf("failed to compute monthly revenue: %w", err)
	}

	rows, err := r.db.Query(ctx, database.PopularItemsSQL, 5)
	if err != nil {
		return nil, fmt.Errorf("failed to query popular items: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var item PopularItem
		if err := rows.Scan(&item.Name, &item.Count); err != nil {
			return nil, fmt.Errorf("failed to scan popular item: %w", err)
		}
		stats.PopularItems = append(stats.PopularItems, item)
	}
	return stats, rows.Err()
}

func (r *PostgresRepository) scanOrder(row pgx.Row) (*models.PersistedOrder, error) {
	var o models.PersistedOrder
	var orderType string
	var status string
	var lat, lng *string

	err := row.Scan(&o.ID, &o.Customer, &o.Phone, &o.Address, &orderType, &lat, &lng,
		&o.Subtotal, &o.GST, &o.Total, &o.PaymentMethod, &status, &o.Date)
	if err != nil {
		return nil, err
	}

	o.OrderType = models.OrderType(orderType)
	o.Status = models.OrderStatus(status)
	if lat != nil && lng != nil {
		o.Location = &models.Location{Lat: *lat, Lng: *lng}
	}
	return &o, nil
}

func (r *PostgresRepository) loadItems(ctx context.Context, o *models.PersistedOrder) error {
	rows, err := r.db.Query(ctx, database.GetOrderItemsSQL, o.ID)
	if err != nil {
		return fmt.Errorf("failed to query order items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var line models.OrderLine
		if err := rows.Scan(&line.Name, &line.Price, &line.Quantity); err != nil {
			return fmt.Errorf("failed to scan order item: %w", err)
		}
		o.Items = append(o.Items, line)
	}
	return rows.Err()
}
