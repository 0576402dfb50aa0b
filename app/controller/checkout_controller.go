package controller

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"

	"obraexpress-store/models"
	"obraexpress-store/service"
)

// CheckoutController handles order creation, the simulated payment
// step and voucher retrieval.
type CheckoutController struct {
	checkout *service.CheckoutService
	invoices *service.InvoiceService
}

// NewCheckoutController creates a new CheckoutController
func NewCheckoutController(checkout *service.CheckoutService, invoices *service.InvoiceService) *CheckoutController {
	return &CheckoutController{checkout: checkout, invoices: invoices}
}

// CreateOrder handles POST /api/checkout: validates the customer,
// snapshots the session cart into a pending order and returns the
// payment token.
func (c *CheckoutController) CreateOrder(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req models.CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	resp, err := c.checkout.CreateOrder(context.Background(), &req)
	if err != nil {
		log.Printf("❌ CreateOrder: %v", err)
		errorJSON(w, http.StatusBadRequest, err.Error())
		return
	}

	log.Printf("✅ CreateOrder: Order %s created, total $%d", resp.OrderNumber, resp.Total)
	writeJSON(w, http.StatusCreated, resp)
}

// SimulatePayment handles POST /api/checkout/simulate-payment?token=.
// Blocks for the simulated gateway delay and settles the order.
func (c *CheckoutController) SimulatePayment(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	token := r.URL.Query().Get("token")
	if token == "" {
		errorJSON(w, http.StatusBadRequest, "token query parameter is required")
		return
	}

	result, err := c.checkout.SimulatePayment(r.Context(), token)
	if err != nil {
		log.Printf("❌ SimulatePayment: %v", err)
		errorJSON(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// Success handles GET /api/checkout/success?token=&session=. Confirms
// the paid order, clears the cart and triggers receipt delivery.
func (c *CheckoutController) Success(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	token := r.URL.Query().Get("token")
	if token == "" {
		errorJSON(w, http.StatusBadRequest, "token query parameter is required")
		return
	}

	order, err := c.checkout.CompleteOrder(context.Background(), token, r.URL.Query().Get("session"))
	if err != nil {
		log.Printf("❌ Success: %v", err)
		errorJSON(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, order)
}

// RenderInvoice handles GET /render/invoice?token=. Serves the voucher
// as standalone HTML for the chromedp print pipeline.
func (c *CheckoutController) RenderInvoice(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		http.Error(w, "token query parameter is required", http.StatusBadRequest)
		return
	}

	invoice, err := c.checkout.InvoiceForToken(r.Context(), token)
	if err != nil {
		log.Printf("❌ RenderInvoice: %v", err)
		http.Error(w, "Failed to load voucher", http.StatusInternalServerError)
		return
	}
	if invoice == nil {
		http.Error(w, "Voucher not found", http.StatusNotFound)
		return
	}

	html, err := c.invoices.RenderInvoiceHTML(*invoice)
	if err != nil {
		log.Printf("❌ RenderInvoice: %v", err)
		http.Error(w, "Failed to render voucher", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(html))
}

// DownloadInvoice handles GET /api/orders/{orderNumber}/invoice and
// streams the voucher PDF.
func (c *CheckoutController) DownloadInvoice(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	path := strings.TrimPrefix(r.URL.Path, "/api/orders/")
	orderNumber := strings.TrimSuffix(path, "/invoice")
	if orderNumber == "" || orderNumber == path {
		http.Error(w, "Invalid order path", http.StatusBadRequest)
		return
	}

	order, err := c.checkout.OrderByNumber(r.Context(), orderNumber)
	if err != nil {
		log.Printf("❌ DownloadInvoice: %v", err)
		http.Error(w, "Failed to load order", http.StatusInternalServerError)
		return
	}
	if order == nil {
		http.Error(w, "Order not found", http.StatusNotFound)
		return
	}

	pdf, err := c.invoices.GeneratePDF(r.Context(), order.PaymentToken)
	if err != nil {
		log.Printf("❌ DownloadInvoice: PDF generation failed for %s: %v", orderNumber, err)
		http.Error(w, "Failed to generate PDF", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"voucher-%s.pdf\"", orderNumber))
	w.WriteHeader(http.StatusOK)
	w.Write(pdf)
}
