package service

import (
	"context"

	"obraexpress-store/models"
)

// MailServiceInterface defines the contract for receipt delivery
type MailServiceInterface interface {
	SendReceipt(ctx context.Context, to string, invoice models.InvoiceData, pdf []byte) error
}
