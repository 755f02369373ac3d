package database

// Order queries
const (
	InsertOrderSQL = `
		INSERT INTO orders (id, customer, phone, address, order_type, location_lat, location_lng,
			subtotal, gst, total, payment_method, status, date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`

	InsertOrderItemSQL = `
		INSERT INTO order_items (order_id, name, price, quantity)
		VALUES ($1, $2, $3, $4)`

	GetOrderSQL = `
		SELECT id, customer, phone, address, order_type, location_lat, location_lng,
			   subtotal, gst, total, payment_method, status, date
		FROM orders WHERE id = $1`

	GetOrderItemsSQL = `
		SELECT name, price, quantity
		FROM order_items WHERE order_id = $1
		ORDER BY id ASC`

	ListOrdersSQL = `
		SELECT id, customer, phone, address, order_type, location_lat, location_lng,
			   subtotal, gst, total, payment_method, status, date
		FROM orders
		WHERE ($1 = '' OR status = $1)
		  AND ($2 = '' OR order_type = $2)
		  AND ($3 = '' OR id ILIKE '%' || $3 || '%' OR customer ILIKE '%' || $3 || '%' OR phone LIKE '%' || $3 || '%')
		ORDER BY date DESC`

	GetOrderStatusSQL = `
		SELECT status, customer FROM orders WHERE id = $1`

	UpdateOrderStatusSQL = `
		UPDATE orders SET status = $1, updated_at = NOW()
		WHERE id = $2`
)

// Dashboard queries
const (
	CountOrdersSQL = `
		SELECT COUNT(*), COUNT(*) FILTER (WHERE status = 'pending')
		FROM orders`

	MonthlyRevenueSQL = `
		SELECT COALESCE(SUM(total), 0)
		FROM orders
		WHERE date >= date_trunc('month', NOW())
		  AND status != 'cancelled'`

	PopularItemsSQL = `
		SELECT name, SUM(quantity) AS ordered
		FROM order_items
		GROUP BY name
		ORDER BY ordered DESC, name ASC
		LIMIT $1`
)

// Offer queries
const (
	InsertOfferSQL = `
		INSERT INTO offers (id, title, description, active)
		VALUES ($1, $2, $3, $4)`

	UpdateOfferSQL = `
		UPDATE offers SET title = $2, description = $3, active = $4
		WHERE id = $1`

	DeleteOfferSQL = `DELETE FROM offers WHERE id = $1`

	ListOffersSQL = `
		SELECT id, title, description, active, created_at
		FROM offers ORDER BY created_at DESC`

	CountActiveOffersSQL = `SELECT COUNT(*) FROM offers WHERE active`
)

// Discount queries
const (
	InsertDiscountSQL = `
		INSERT INTO discounts (id, code, type, value, max_discount, valid_until, description, active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	UpdateDiscountSQL = `
		UPDATE discounts SET code = $2, type = $3, value = $4, max_discount = $5,
			valid_until = $6, description = $7, active = $8
		WHERE id = $1`

	DeleteDiscountSQL = `DELETE FROM discounts WHERE id = $1`

	ListDiscountsSQL = `
		SELECT id, code, type, value, max_discount, valid_until, description, active
		FROM discounts ORDER BY valid_until DESC`

	CountActiveDiscountsSQL = `SELECT COUNT(*) FROM discounts WHERE active`
)
