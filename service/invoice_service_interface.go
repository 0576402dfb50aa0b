package service

import (
	"context"

	"obraexpress-store/models"
)

// InvoiceServiceInterface defines the contract for voucher rendering
type InvoiceServiceInterface interface {
	RenderInvoiceHTML(data models.InvoiceData) (string, error)
	GeneratePDF(ctx context.Context, token string) ([]byte, error)
}
