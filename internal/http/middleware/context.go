package middlewarex

import "context"

type ctxKey string

const (
	ctxMerchantID ctxKey = "merchant_id"
)

func WithMerchantID(ctx context.Context, merchantID int64) context.Context {
	return context.WithValue(ctx, ctxMerchantID, merchantID)
}

func MerchantID(ctx context.Context) (int64, bool) {
	v, ok := ctx.Value(ctxMerchantID).(int64)
	return v, ok
}
