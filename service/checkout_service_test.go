package service

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"obraexpress-store/cart"
	"obraexpress-store/models"
)

// MockOrderRepository is a mock implementation of the order repository
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) Create(ctx context.Context, order *models.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockOrderRepository) GetByToken(ctx context.Context, token string) (*models.Order, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}

func (m *MockOrderRepository) GetByOrderNumber(ctx context.Context, orderNumber string) (*models.Order, error) {
	args := m.Called(ctx, orderNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}

func (m *MockOrderRepository) MarkPaid(ctx context.Context, token string, result models.PaymentResult) error {
	args := m.Called(ctx, token, result)
	return args.Error(0)
}

func (m *MockOrderRepository) MarkFailed(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

// MockInvoiceService is a mock implementation of the voucher renderer
type MockInvoiceService struct {
	mock.Mock
}

func (m *MockInvoiceService) RenderInvoiceHTML(data models.InvoiceData) (string, error) {
	args := m.Called(data)
	return args.String(0), args.Error(1)
}

func (m *MockInvoiceService) GeneratePDF(ctx context.Context, token string) ([]byte, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func validCustomer() models.Customer {
	return models.Customer{
		Nombre:    "María Pérez",
		Email:     "maria@example.cl",
		Telefono:  "+56912345678",
		Direccion: "Av. Siempre Viva 742",
		Region:    "Metropolitana",
		Comuna:    "Ñuñoa",
	}
}

func newCheckoutFixture(t *testing.T) (*CheckoutService, *cart.Store, *MockOrderRepository) {
	t.Helper()
	carts := cart.NewStore()
	orderRepo := new(MockOrderRepository)
	svc := NewCheckoutService(
		carts,
		orderRepo,
		NewPaymentSimulatorForTest(1),
		new(MockInvoiceService),
		LogMailService{},
	)
	return svc, carts, orderRepo
}

func TestCreateOrder(t *testing.T) {
	svc, carts, orderRepo := newCheckoutFixture(t)

	carts.AddItem("s1", models.CartItem{ID: "111001", Nombre: "Policarbonato Alveolar", Cantidad: 10, PrecioUnitario: 4500, Total: 45000})
	carts.AddItem("s1", models.CartItem{ID: "517101", Nombre: "Policarbonato Compacto", Cantidad: 1, PrecioUnitario: 98000, Total: 98000})

	var created *models.Order
	orderRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.Order")).
		Run(func(args mock.Arguments) { created = args.Get(1).(*models.Order) }).
		Return(nil)

	resp, err := svc.CreateOrder(context.Background(), &models.CreateOrderRequest{
		Session: "s1",
		Cliente: validCustomer(),
	})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)
	require.Regexp(t, `^OE-\d{8}-[0-9A-F]{6}$`, resp.OrderNumber)
	require.Equal(t, 143000, resp.Total)
	require.Contains(t, resp.RedirectURL, resp.Token)

	// Prices are tax inclusive: neto derives from the total
	require.Equal(t, 143000, created.Total)
	require.Equal(t, 120168, created.Subtotal)
	require.Equal(t, 22832, created.IVA)
	require.Len(t, created.Lines, 2)

	orderRepo.AssertExpectations(t)
}

func TestCreateOrder_EmptyCart(t *testing.T) {
	svc, _, _ := newCheckoutFixture(t)

	_, err := svc.CreateOrder(context.Background(), &models.CreateOrderRequest{
		Session: "vacia",
		Cliente: validCustomer(),
	})
	require.ErrorContains(t, err, "cart is empty")
}

func TestCreateOrder_InvalidCustomer(t *testing.T) {
	svc, carts, _ := newCheckoutFixture(t)
	carts.AddItem("s1", models.CartItem{ID: "111001", Cantidad: 10, Total: 45000})

	customer := validCustomer()
	customer.Email = "no-es-un-correo"

	_, err := svc.CreateOrder(context.Background(), &models.CreateOrderRequest{
		Session: "s1",
		Cliente: customer,
	})
	require.ErrorContains(t, err, "invalid checkout request")
}

func TestSimulatePayment_UnknownToken(t *testing.T) {
	svc, _, orderRepo := newCheckoutFixture(t)
	orderRepo.On("GetByToken", mock.Anything, "nope").Return(nil, nil)

	_, err := svc.SimulatePayment(context.Background(), "nope")
	require.ErrorContains(t, err, "unknown payment token")
}

func TestSimulatePayment_AlreadySettled(t *testing.T) {
	svc, _, orderRepo := newCheckoutFixture(t)
	orderRepo.On("GetByToken", mock.Anything, "t1").Return(&models.Order{
		OrderNumber: "OE-20250320-ABCDEF",
		Status:      models.OrderStatusPaid,
	}, nil)

	_, err := svc.SimulatePayment(context.Background(), "t1")
	require.ErrorContains(t, err, "not pending")
}

func TestSimulatePayment_RecordsOutcome(t *testing.T) {
	svc, _, orderRepo := newCheckoutFixture(t)
	orderRepo.On("GetByToken", mock.Anything, "t1").Return(&models.Order{
		OrderNumber: "OE-20250320-ABCDEF",
		Status:      models.OrderStatusPending,
	}, nil)
	orderRepo.On("MarkPaid", mock.Anything, "t1", mock.AnythingOfType("models.PaymentResult")).Return(nil).Maybe()
	orderRepo.On("MarkFailed", mock.Anything, "t1").Return(nil).Maybe()

	result, err := svc.SimulatePayment(context.Background(), "t1")
	require.NoError(t, err)
	require.Equal(t, "webpay-simulado", result.Method)
	if result.Approved {
		orderRepo.AssertCalled(t, "MarkPaid", mock.Anything, "t1", mock.AnythingOfType("models.PaymentResult"))
	} else {
		orderRepo.AssertCalled(t, "MarkFailed", mock.Anything, "t1")
	}
}

func TestCompleteOrder_RequiresPaidOrder(t *testing.T) {
	svc, _, orderRepo := newCheckoutFixture(t)
	orderRepo.On("GetByToken", mock.Anything, "t1").Return(&models.Order{
		OrderNumber: "OE-20250320-ABCDEF",
		Status:      models.OrderStatusPending,
	}, nil)

	_, err := svc.CompleteOrder(context.Background(), "t1", "s1")
	require.ErrorContains(t, err, "not paid")
}

func TestCompleteOrder_ClearsCart(t *testing.T) {
	carts := cart.NewStore()
	orderRepo := new(MockOrderRepository)
	invoices := new(MockInvoiceService)
	svc := NewCheckoutService(carts, orderRepo, NewPaymentSimulatorForTest(1), invoices, LogMailService{})

	carts.AddItem("s1", models.CartItem{ID: "111001", Cantidad: 10, Total: 45000})

	paidAt := time.Now()
	orderRepo.On("GetByToken", mock.Anything, "t1").Return(&models.Order{
		OrderNumber: "OE-20250320-ABCDEF",
		Status:      models.OrderStatusPaid,
		Customer:    validCustomer(),
		PaidAt:      &paidAt,
	}, nil)
	invoices.On("GeneratePDF", mock.Anything, "t1").Return([]byte("%PDF"), nil).Maybe()

	order, err := svc.CompleteOrder(context.Background(), "t1", "s1")
	require.NoError(t, err)
	require.Equal(t, "OE-20250320-ABCDEF", order.OrderNumber)
	require.Empty(t, carts.Items("s1"))
}

// countingMailService counts deliveries instead of sending anything.
type countingMailService struct {
	sent *atomic.Int32
}

func (m countingMailService) SendReceipt(ctx context.Context, to string, invoice models.InvoiceData, pdf []byte) error {
	m.sent.Add(1)
	return nil
}

func TestCompleteOrder_DeliversReceiptOnce(t *testing.T) {
	carts := cart.NewStore()
	orderRepo := new(MockOrderRepository)
	invoices := new(MockInvoiceService)
	mail := countingMailService{sent: new(atomic.Int32)}
	svc := NewCheckoutService(carts, orderRepo, NewPaymentSimulatorForTest(1), invoices, mail)

	paidAt := time.Now()
	orderRepo.On("GetByToken", mock.Anything, "t1").Return(&models.Order{
		OrderNumber: "OE-20250320-ABCDEF",
		Status:      models.OrderStatusPaid,
		Customer:    validCustomer(),
		PaidAt:      &paidAt,
	}, nil)
	invoices.On("GeneratePDF", mock.Anything, "t1").Return([]byte("%PDF"), nil)

	_, err := svc.CompleteOrder(context.Background(), "t1", "s1")
	require.NoError(t, err)
	require.Eventually(t, func() bool { return mail.sent.Load() == 1 }, 2*time.Second, 10*time.Millisecond)

	// Reloading the success page must not resend the email.
	_, err = svc.CompleteOrder(context.Background(), "t1", "s1")
	require.NoError(t, err)
	time.Sleep(50 * time.Millisecond)
	require.EqualValues(t, 1, mail.sent.Load())
}

func TestBuildInvoiceData(t *testing.T) {
	paidAt := time.Date(2025, time.March, 20, 15, 4, 0, 0, time.UTC)
	order := &models.Order{
		OrderNumber:       "OE-20250320-ABCDEF",
		Status:            models.OrderStatusPaid,
		Customer:          validCustomer(),
		Lines:             []models.OrderLine{{Codigo: "111001", Total: 45000}},
		Subtotal:          37815,
		IVA:               7185,
		Total:             45000,
		PaymentMethod:     "webpay-simulado",
		AuthorizationCode: "AUTH-012345",
		PaidAt:            &paidAt,
		CreatedAt:         paidAt,
	}

	invoice := BuildInvoiceData(order)
	require.Equal(t, "OE-20250320-ABCDEF", invoice.OrderNumber)
	require.Equal(t, "2025-03-20", invoice.Date)
	require.True(t, invoice.Payment.Approved)
	require.Equal(t, "AUTH-012345", invoice.Payment.AuthorizationCode)
	require.Equal(t, "20-03-2025 15:04", invoice.Payment.ProcessedAt)
}
