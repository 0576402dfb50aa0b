package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"

	"obraexpress-store/db"
	"obraexpress-store/models"
)

// OrderRepository handles database operations for checkout orders.
type OrderRepository struct{}

// NewOrderRepository creates a new OrderRepository
func NewOrderRepository() *OrderRepository {
	return &OrderRepository{}
}

// Ensure OrderRepository implements OrderRepositoryInterface
var _ OrderRepositoryInterface = (*OrderRepository)(nil)

// Create inserts the order and its lines in one transaction. The
// order arrives with number, token, totals and customer already set;
// IDs and timestamps are filled in from the database.
func (r *OrderRepository) Create(ctx context.Context, order *models.Order) error {
	log.Printf("📦 Create: Creating order %s (%d lines)", order.OrderNumber, len(order.Lines))

	if len(order.Lines) == 0 {
		return fmt.Errorf("order must have at least one line")
	}

	tx, err := db.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	queryOrder := `
		INSERT INTO orders (
			order_number, payment_token, status,
			customer_name, customer_email, customer_phone, customer_company,
			customer_rut, customer_address, customer_region, customer_comuna,
			subtotal, iva, total
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING id, created_at, updated_at
	`

	c := order.Customer
	err = tx.QueryRowContext(ctx, queryOrder,
		order.OrderNumber,
		order.PaymentToken,
		models.OrderStatusPending,
		c.Nombre,
		c.Email,
		c.Telefono,
		sql.NullString{String: c.Empresa, Valid: c.Empresa != ""},
		sql.NullString{String: c.RUT, Valid: c.RUT != ""},
		c.Direccion,
		c.Region,
		c.Comuna,
		order.Subtotal,
		order.IVA,
		order.Total,
	).Scan(&order.ID, &order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		log.Printf("❌ Create: Error creating order: %v", err)
		return fmt.Errorf("failed to create order: %w", err)
	}
	order.Status = models.OrderStatusPending

	queryLine := `
		INSERT INTO order_lines (order_id, codigo, nombre, cantidad, precio_unitario, total, especificaciones)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`
	for i := range order.Lines {
		line := &order.Lines[i]
		err := tx.QueryRowContext(ctx, queryLine,
			order.ID,
			line.Codigo,
			line.Nombre,
			line.Cantidad,
			line.PrecioUnitario,
			line.Total,
			strings.Join(line.Especificaciones, "\n"),
		).Scan(&line.ID)
		if err != nil {
			log.Printf("❌ Create: Error creating order line %s: %v", line.Codigo, err)
			return fmt.Errorf("failed to create order line: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit order: %w", err)
	}

	log.Printf("✅ Create: Successfully created order %s id=%d", order.OrderNumber, order.ID)
	return nil
}

// GetByToken fetches an order by its payment token, or nil when the
// token is unknown.
func (r *OrderRepository) GetByToken(ctx context.Context, token string) (*models.Order, error) {
	return r.getOne(ctx, `payment_token = $1`, token)
}

// GetByOrderNumber fetches an order by its public number.
func (r *OrderRepository) GetByOrderNumber(ctx context.Context, orderNumber string) (*models.Order, error) {
	return r.getOne(ctx, `order_number = $1`, orderNumber)
}

func (r *OrderRepository) getOne(ctx context.Context, where string, arg any) (*models.Order, error) {
	query := fmt.Sprintf(`
		SELECT id, order_number, payment_token, status,
		       customer_name, customer_email, customer_phone,
		       COALESCE(customer_company, ''), COALESCE(customer_rut, ''),
		       customer_address, customer_region, customer_comuna,
		       subtotal, iva, total,
		       COALESCE(payment_method, ''), COALESCE(authorization_code, ''),
		       paid_at, created_at, updated_at
		FROM orders
		WHERE %s
	`, where)

	var order models.Order
	var paidAt sql.NullTime
	err := db.DB.QueryRowContext(ctx, query, arg).Scan(
		&order.ID,
		&order.OrderNumber,
		&order.PaymentToken,
		&order.Status,
		&order.Customer.Nombre,
		&order.Customer.Email,
		&order.Customer.Telefono,
		&order.Customer.Empresa,
		&order.Customer.RUT,
		&order.Customer.Direccion,
		&order.Customer.Region,
		&order.Customer.Comuna,
		&order.Subtotal,
		&order.IVA,
		&order.Total,
		&order.PaymentMethod,
		&order.AuthorizationCode,
		&paidAt,
		&order.CreatedAt,
		&order.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch order: %w", err)
	}
	if paidAt.Valid {
		order.PaidAt = &paidAt.Time
	}

	lines, err := r.getLines(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	order.Lines = lines
	return &order, nil
}

func (r *OrderRepository) getLines(ctx context.Context, orderID int64) ([]models.OrderLine, error) {
	query := `
		SELECT id, codigo, nombre, cantidad, precio_unitario, total, especificaciones
		FROM order_lines
		WHERE order_id = $1
		ORDER BY id ASC
	`

	rows, err := db.DB.QueryContext(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch order lines: %w", err)
	}
	defer rows.Close()

	var lines []models.OrderLine
	for rows.Next() {
		var line models.OrderLine
		var specs string
		err := rows.Scan(
			&line.ID,
			&line.Codigo,
			&line.Nombre,
			&line.Cantidad,
			&line.PrecioUnitario,
			&line.Total,
			&specs,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order line: %w", err)
		}
		if specs != "" {
			line.Especificaciones = strings.Split(specs, "\n")
		}
		lines = append(lines, line)
	}
	return lines, rows.Err()
}

// MarkPaid records an approved payment on the pending order.
func (r *OrderRepository) MarkPaid(ctx context.Context, token string, result models.PaymentResult) error {
	query := `
		UPDATE orders
		SET status = $1, payment_method = $2, authorization_code = $3,
		    paid_at = NOW(), updated_at = NOW()
		WHERE payment_token = $4 AND status = $5
	`

	res, err := db.DB.ExecContext(ctx, query,
		models.OrderStatusPaid, result.Method, result.AuthorizationCode,
		token, models.OrderStatusPending)
	if err != nil {
		return fmt.Errorf("failed to mark order paid: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("no pending order for token")
	}

	log.Printf("✅ MarkPaid: Order paid, auth=%s", result.AuthorizationCode)
	return nil
}

// MarkFailed records a declined payment on the pending order.
func (r *OrderRepository) MarkFailed(ctx context.Context, token string) error {
	query := `
		UPDATE orders
		SET status = $1, updated_at = NOW()
		WHERE payment_token = $2 AND status = $3
	`

	if _, err := db.DB.ExecContext(ctx, query,
		models.OrderStatusFailed, token, models.OrderStatusPending); err != nil {
		return fmt.Errorf("failed to mark order failed: %w", err)
	}

	log.Printf("⚠️  MarkFailed: Payment declined for order")
	return nil
}
