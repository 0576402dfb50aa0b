package repository

import (
	"context"

	"obraexpress-store/models"
)

// ProductRepositoryInterface defines the contract for catalog reads.
type ProductRepositoryInterface interface {
	GetCatalog(ctx context.Context) (map[string][]models.ProductGroup, error)
	GetGroupByID(ctx context.Context, groupID string) (*models.ProductGroup, error)
	GetVariantByCode(ctx context.Context, codigo string) (*models.ProductVariant, error)
}

// DispatchDateRepositoryInterface is the narrow key-value contract for
// the per-SKU dispatch date side channel. Get returns "" (no error)
// when no date is stored for the SKU.
type DispatchDateRepositoryInterface interface {
	Get(ctx context.Context, codigo string) (string, error)
	Set(ctx context.Context, codigo string, isoDate string) error
}

// OrderRepositoryInterface defines the contract for checkout orders.
type OrderRepositoryInterface interface {
	Create(ctx context.Context, order *models.Order) error
	GetByToken(ctx context.Context, token string) (*models.Order, error)
	GetByOrderNumber(ctx context.Context, orderNumber string) (*models.Order, error)
	MarkPaid(ctx context.Context, token string, result models.PaymentResult) error
	MarkFailed(ctx context.Context, token string) error
}
