package repositories

import (
	"context"

	"checkroute/internal/domain/merchant"
	"checkroute/internal/domain/resolution"
)

// MerchantRepository defines the contract for merchant data access
type MerchantRepository interface {
	Save(ctx context.Context, m *merchant.Merchant) error
	FindByID(ctx context.Context, id int64) (*merchant.Merchant, error)
	FindByAPIKeyHash(ctx context.Context, keyHash string) (*merchant.Merchant, error)
	SaveAPIKey(ctx context.Context, apiKey *merchant.APIKey) error
	FindAPIKeyByHash(ctx context.Context, keyHash string) (*merchant.APIKey, error)
}

// ResolutionRepository defines the contract for resolution data access
type ResolutionRepository interface {
	Save(ctx context.Context, res *resolution.Resolution) error
	FindByID(ctx context.Context, id int64) (*resolution.Resolution, error)
	FindByMerchantID(ctx context.Context, merchantID int64, limit, offset int) ([]*resolution.Resolution, error)
	FindUnprocessed(ctx context.Context, limit int) ([]*resolution.Resolution, error)
	MarkProcessed(ctx context.Context, id int64, status resolution.ProcessingStatus) error
	UpsertUsage(ctx context.Context, merchantID int64, widgetKind string, delta int64) error
	UsageByMerchant(ctx context.Context, merchantID int64) (map[string]int64, error)
}
