package models

import "time"

// Order statuses
const (
	OrderStatusPending = "pending"
	OrderStatusPaid    = "paid"
	OrderStatusFailed  = "failed"
)

// Customer holds the billing data collected at checkout.
type Customer struct {
	Nombre    string `json:"nombre" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Telefono  string `json:"telefono" validate:"required"`
	Empresa   string `json:"empresa,omitempty"`
	RUT       string `json:"rut,omitempty"`
	Direccion string `json:"direccion" validate:"required"`
	Region    string `json:"region" validate:"required"`
	Comuna    string `json:"comuna" validate:"required"`
}

// Order is a checkout snapshot of a cart, identified by OrderNumber
// and, while payment is in flight, by the opaque PaymentToken.
type Order struct {
	ID                int64       `json:"id"`
	OrderNumber       string      `json:"order_number"`
	PaymentToken      string      `json:"-"`
	Status            string      `json:"status"`
	Customer          Customer    `json:"cliente"`
	Lines             []OrderLine `json:"lineas"`
	Subtotal          int         `json:"subtotal"`
	IVA               int         `json:"iva"`
	Total             int         `json:"total"`
	PaymentMethod     string      `json:"payment_method,omitempty"`
	AuthorizationCode string      `json:"authorization_code,omitempty"`
	PaidAt            *time.Time  `json:"paid_at,omitempty"`
	CreatedAt         time.Time   `json:"created_at"`
	UpdatedAt         time.Time   `json:"updated_at"`
}

// OrderLine is a priced cart line frozen at checkout time.
type OrderLine struct {
	ID               int64    `json:"id"`
	Codigo           string   `json:"codigo"`
	Nombre           string   `json:"nombre"`
	Cantidad         int      `json:"cantidad"`
	PrecioUnitario   int      `json:"precioUnitario"`
	Total            int      `json:"total"`
	Especificaciones []string `json:"especificaciones"`
}

// CreateOrderRequest is the body of POST /api/checkout.
type CreateOrderRequest struct {
	Session string   `json:"session" validate:"required"`
	Cliente Customer `json:"cliente" validate:"required"`
}

// CreateOrderResponse carries the payment token the simulated
// gateway redirect needs.
type CreateOrderResponse struct {
	OrderNumber string `json:"order_number"`
	Token       string `json:"token"`
	RedirectURL string `json:"redirect_url"`
	Total       int    `json:"total"`
}

// PaymentResult is the outcome of the simulated payment.
type PaymentResult struct {
	Approved          bool   `json:"approved"`
	AuthorizationCode string `json:"authorization_code,omitempty"`
	Method            string `json:"method"`
	ProcessedAt       string `json:"processed_at"`
}
