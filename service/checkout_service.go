package service

import (
	"context"
	"fmt"
	"log"
	"math"
	"strings"
	"sync"
	"time"

	"obraexpress-store/cart"
	"obraexpress-store/models"
	"obraexpress-store/repository"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// ivaRate is the Chilean VAT rate. Catalog prices are tax inclusive,
// so the neto is derived by dividing the total.
const ivaRate = 0.19

// CheckoutService drives the order lifecycle: cart snapshot, simulated
// payment, voucher generation and receipt delivery.
type CheckoutService struct {
	carts     *cart.Store
	orderRepo repository.OrderRepositoryInterface
	payments  *PaymentSimulator
	invoices  InvoiceServiceInterface
	mail      MailServiceInterface
	validate  *validator.Validate

	mu        sync.Mutex
	delivered map[string]bool
}

// NewCheckoutService creates a new CheckoutService
func NewCheckoutService(
	carts *cart.Store,
	orderRepo repository.OrderRepositoryInterface,
	payments *PaymentSimulator,
	invoices InvoiceServiceInterface,
	mail MailServiceInterface,
) *CheckoutService {
	return &CheckoutService{
		carts:     carts,
		orderRepo: orderRepo,
		payments:  payments,
		invoices:  invoices,
		mail:      mail,
		validate:  validator.New(),
		delivered: make(map[string]bool),
	}
}

// CreateOrder validates the customer payload, snapshots the session
// cart into a pending order and issues the payment token the
// simulated gateway redirect carries.
func (s *CheckoutService) CreateOrder(ctx context.Context, req *models.CreateOrderRequest) (*models.CreateOrderResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("invalid checkout request: %w", err)
	}

	items := s.carts.Items(req.Session)
	if len(items) == 0 {
		return nil, fmt.Errorf("cart is empty")
	}

	total := 0
	lines := make([]models.OrderLine, 0, len(items))
	for _, item := range items {
		total += item.Total
		lines = append(lines, models.OrderLine{
			Codigo:           item.ID,
			Nombre:           item.Nombre,
			Cantidad:         item.Cantidad,
			PrecioUnitario:   item.PrecioUnitario,
			Total:            item.Total,
			Especificaciones: item.Especificaciones,
		})
	}

	subtotal := int(math.Round(float64(total) / (1 + ivaRate)))
	order := &models.Order{
		OrderNumber:  newOrderNumber(),
		PaymentToken: uuid.NewString(),
		Customer:     req.Cliente,
		Lines:        lines,
		Subtotal:     subtotal,
		IVA:          total - subtotal,
		Total:        total,
	}

	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, err
	}

	log.Printf("✅ CreateOrder: Order %s created, total=%d", order.OrderNumber, order.Total)
	return &models.CreateOrderResponse{
		OrderNumber: order.OrderNumber,
		Token:       order.PaymentToken,
		RedirectURL: "/api/checkout/simulate-payment?token=" + order.PaymentToken,
		Total:       order.Total,
	}, nil
}

// newOrderNumber builds a public order number: date plus a short
// uuid fragment, e.g. "OE-20260829-1A2B3C".
func newOrderNumber() string {
	fragment := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:6])
	return fmt.Sprintf("OE-%s-%s", time.Now().Format("20060102"), fragment)
}

// SimulatePayment runs the gateway simulation for the token and
// records the outcome on the order.
func (s *CheckoutService) SimulatePayment(ctx context.Context, token string) (*models.PaymentResult, error) {
	order, err := s.orderRepo.GetByToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, fmt.Errorf("unknown payment token")
	}
	if order.Status != models.OrderStatusPending {
		return nil, fmt.Errorf("order %s is not pending payment", order.OrderNumber)
	}

	payment, err := s.payments.Process(ctx, token)
	if err != nil {
		return nil, err
	}

	result := &models.PaymentResult{
		Approved:          payment.Approved,
		AuthorizationCode: payment.AuthorizationCode,
		Method:            payment.Method,
		ProcessedAt:       payment.ProcessedAt.Format(time.RFC3339),
	}

	if !payment.Approved {
		if err := s.orderRepo.MarkFailed(ctx, token); err != nil {
			return nil, err
		}
		return result, nil
	}

	if err := s.orderRepo.MarkPaid(ctx, token, *result); err != nil {
		return nil, err
	}
	return result, nil
}

// CompleteOrder finishes a paid order: clears the session cart and
// dispatches voucher generation and receipt delivery in the
// background. Delivery failures are logged, never surfaced to the
// customer.
func (s *CheckoutService) CompleteOrder(ctx context.Context, token, session string) (*models.Order, error) {
	order, err := s.orderRepo.GetByToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, fmt.Errorf("unknown payment token")
	}
	if order.Status != models.OrderStatusPaid {
		return nil, fmt.Errorf("order %s is not paid", order.OrderNumber)
	}

	if session != "" {
		s.carts.Clear(session)
	}

	// The success page can be reloaded; the receipt goes out once.
	if s.markDelivered(token) {
		go s.deliverReceipt(token, order)
	}

	return order, nil
}

// markDelivered records the receipt send for the token and reports
// whether this call claimed it.
func (s *CheckoutService) markDelivered(token string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.delivered[token] {
		return false
	}
	s.delivered[token] = true
	return true
}

// deliverReceipt generates the PDF voucher and emails it. Runs
// detached from the request that triggered it.
func (s *CheckoutService) deliverReceipt(token string, order *models.Order) {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	invoice := BuildInvoiceData(order)

	pdf, err := s.invoices.GeneratePDF(ctx, token)
	if err != nil {
		log.Printf("⚠️  deliverReceipt: PDF generation failed for order %s: %v", order.OrderNumber, err)
		// Send the email anyway; the voucher stays downloadable.
		pdf = nil
	}

	if err := s.mail.SendReceipt(ctx, order.Customer.Email, invoice, pdf); err != nil {
		log.Printf("⚠️  deliverReceipt: Email delivery failed for order %s: %v", order.OrderNumber, err)
		return
	}
	log.Printf("✅ deliverReceipt: Receipt delivered for order %s", order.OrderNumber)
}

// OrderByNumber loads a stored order by its public order number.
func (s *CheckoutService) OrderByNumber(ctx context.Context, orderNumber string) (*models.Order, error) {
	return s.orderRepo.GetByOrderNumber(ctx, orderNumber)
}

// InvoiceForOrder loads the voucher payload for a stored order number.
func (s *CheckoutService) InvoiceForOrder(ctx context.Context, orderNumber string) (*models.InvoiceData, error) {
	order, err := s.orderRepo.GetByOrderNumber(ctx, orderNumber)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, nil
	}
	invoice := BuildInvoiceData(order)
	return &invoice, nil
}

// InvoiceForToken loads the voucher payload by payment token (used by
// the chromedp render page).
func (s *CheckoutService) InvoiceForToken(ctx context.Context, token string) (*models.InvoiceData, error) {
	order, err := s.orderRepo.GetByToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, nil
	}
	invoice := BuildInvoiceData(order)
	return &invoice, nil
}
