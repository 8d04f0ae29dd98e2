package postgres

import (
	"context"
	"database/sql"

	"checkroute/internal/domain/resolution"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// resolutionRepository implements ResolutionRepository with pure data access
type resolutionRepository struct {
	db *pgxpool.Pool
}

// NewResolutionRepository creates a new resolution repository
func NewResolutionRepository(db *pgxpool.Pool) *resolutionRepository {
	return &resolutionRepository{db: db}
}

const resolutionColumns = `id, merchant_id, trace_id, method_id, gateway, provider_type,
	       modality, widget_kind, rule, matched, created_at, processed_at, processing_status`

// Save inserts a resolution record; records are append-only
func (r *resolutionRepository) Save(ctx context.Context, res *resolution.Resolution) error {
	return r.db.QueryRow(ctx, `
		INSERT INTO resolutions (merchant_id, trace_id, method_id, gateway, provider_type,
		                         modality, widget_kind, rule, matched, created_at, processing_status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id`,
		res.MerchantID, res.TraceID, res.MethodID, res.Gateway, res.Type,
		res.Modality, res.WidgetKind, res.Rule, res.Matched, res.CreatedAt,
		string(res.ProcessingStatus)).Scan(&res.ID)
}

// FindByID finds a resolution by ID
func (r *resolutionRepository) FindByID(ctx context.Context, id int64) (*resolution.Resolution, error) {
	row := r.db.QueryRow(ctx, `
		SELECT `+resolutionColumns+`
		FROM resolutions
		WHERE id = $1`, id)

	return r.scanResolution(row)
}

// FindByMerchantID finds resolutions by merchant with pagination
func (r *resolutionRepository) FindByMerchantID(ctx context.Context, merchantID int64, limit, offset int) ([]*resolution.Resolution, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+resolutionColumns+`
		FROM resolutions
		WHERE merchant_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`, merchantID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return r.scanResolutions(rows)
}

// FindUnprocessed finds resolutions the stats worker has not folded yet
func (r *resolutionRepository) FindUnprocessed(ctx context.Context, limit int) ([]*resolution.Resolution, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+resolutionColumns+`
		FROM resolutions
		WHERE processing_status IN ('pending', 'queued')
		ORDER BY created_at ASC
		LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return r.scanResolutions(rows)
}

// MarkProcessed marks a resolution as folded into usage stats
func (r *resolutionRepository) MarkProcessed(ctx context.Context, id int64, status resolution.ProcessingStatus) error {
	_, err := r.db.Exec(ctx, `
		UPDATE resolutions
		SET processing_status = $1, processed_at = now()
		WHERE id = $2`, string(status), id)
	return err
}

// UpsertUsage increments the per-merchant counter for a widget kind
func (r *resolutionRepository) UpsertUsage(ctx context.Context, merchantID int64, widgetKind string, delta int64) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO widget_usage (merchant_id, widget_kind, resolution_count, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (merchant_id, widget_kind) DO UPDATE SET
		    resolution_count = widget_usage.resolution_count + EXCLUDED.resolution_count,
		    updated_at = now()`,
		merchantID, widgetKind, delta)
	return err
}

// UsageByMerchant returns resolution counts keyed by widget kind
func (r *resolutionRepository) UsageByMerchant(ctx context.Context, merchantID int64) (map[string]int64, error) {
	rows, err := r.db.Query(ctx, `
		SELECT widget_kind, resolution_count
		FROM widget_usage
		WHERE merchant_id = $1`, merchantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	usage := make(map[string]int64)
	for rows.Next() {
		var kind string
		var count int64
		if err := rows.Scan(&kind, &count); err != nil {
			return nil, err
		}
		usage[kind] = count
	}
	return usage, rows.Err()
}

func (r *resolutionRepository) scanResolution(row pgx.Row) (*resolution.Resolution, error) {
	var res resolution.Resolution
	var status string
	var processedAt sql.NullTime
	if err := row.Scan(&res.ID, &res.MerchantID, &res.TraceID, &res.MethodID, &res.Gateway,
		&res.Type, &res.Modality, &res.WidgetKind, &res.Rule, &res.Matched,
		&res.CreatedAt, &processedAt, &status); err != nil {
		return nil, err
	}
	if processedAt.Valid {
		t := processedAt.Time
		res.ProcessedAt = &t
	}
	res.ProcessingStatus = resolution.ProcessingStatus(status)
	return &res, nil
}

func (r *resolutionRepository) scanResolutions(rows pgx.Rows) ([]*resolution.Resolution, error) {
	var out []*resolution.Resolution
	for rows.Next() {
		res, err := r.scanResolutionFromRows(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	return out, rows.Err()
}

func (r *resolutionRepository) scanResolutionFromRows(rows pgx.Rows) (*resolution.Resolution, error) {
	var res resolution.Resolution
	var status string
	var processedAt sql.NullTime
	if err := rows.Scan(&res.ID, &res.MerchantID, &res.TraceID, &res.MethodID, &res.Gateway,
		&res.Type, &res.Modality, &res.WidgetKind, &res.Rule, &res.Matched,
		&res.CreatedAt, &processedAt, &status); err != nil {
		return nil, err
	}
	if processedAt.Valid {
		t := processedAt.Time
		res.ProcessedAt = &t
	}
	res.ProcessingStatus = resolution.ProcessingStatus(status)
	return &res, nil
}
