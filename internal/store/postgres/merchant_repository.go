package postgres

import (
	"context"

	"checkroute/internal/domain/merchant"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// merchantRepository implements MerchantRepository with pure data access
type merchantRepository struct {
	db *pgxpool.Pool
}

// NewMerchantRepository creates a new merchant repository
func NewMerchantRepository(db *pgxpool.Pool) *merchantRepository {
	return &merchantRepository{db: db}
}

// Save saves a merchant (insert or update)
func (r *merchantRepository) Save(ctx context.Context, m *merchant.Merchant) error {
	if m.ID == 0 {
		return r.insert(ctx, m)
	}
	return r.update(ctx, m)
}

// FindByID finds a merchant by ID
func (r *merchantRepository) FindByID(ctx context.Context, id int64) (*merchant.Merchant, error) {
	row := r.db.QueryRow(ctx, `
		SELECT id, name, status
		FROM merchants
		WHERE id = $1`, id)

	return r.scanMerchant(row)
}

// FindByAPIKeyHash finds an active merchant owning an active API key
func (r *merchantRepository) FindByAPIKeyHash(ctx context.Context, keyHash string) (*merchant.Merchant, error) {
	row := r.db.QueryRow(ctx, `
		SELECT m.id, m.name, m.status
		FROM merchants m
		JOIN merchant_api_keys ak ON m.id = ak.merchant_id
		WHERE ak.key_hash = $1 AND ak.is_active AND m.status = 'active'`, keyHash)

	return r.scanMerchant(row)
}

// SaveAPIKey saves an API key record
func (r *merchantRepository) SaveAPIKey(ctx context.Context, apiKey *merchant.APIKey) error {
	if apiKey.ID == 0 {
		return r.insertAPIKey(ctx, apiKey)
	}
	return r.updateAPIKey(ctx, apiKey)
}

// FindAPIKeyByHash finds an API key by hash
func (r *merchantRepository) FindAPIKeyByHash(ctx context.Context, keyHash string) (*merchant.APIKey, error) {
	row := r.db.QueryRow(ctx, `
		SELECT id, merchant_id, name, key_hash, is_active
		FROM merchant_api_keys
		WHERE key_hash = $1`, keyHash)

	var k merchant.APIKey
	if err := row.Scan(&k.ID, &k.MerchantID, &k.Name, &k.KeyHash, &k.IsActive); err != nil {
		return nil, err
	}
	return &k, nil
}

func (r *merchantRepository) insert(ctx context.Context, m *merchant.Merchant) error {
	return r.db.QueryRow(ctx, `
		INSERT INTO merchants (name, status)
		VALUES ($1, $2)
		RETURNING id`,
		m.Name, string(m.Status)).Scan(&m.ID)
}

func (r *merchantRepository) update(ctx context.Context, m *merchant.Merchant) error {
	_, err := r.db.Exec(ctx, `
		UPDATE merchants
		SET name = $1, status = $2
		WHERE id = $3`,
		m.Name, string(m.Status), m.ID)
	return err
}

func (r *merchantRepository) insertAPIKey(ctx context.Context, k *merchant.APIKey) error {
	return r.db.QueryRow(ctx, `
		INSERT INTO merchant_api_keys (merchant_id, name, key_hash, is_active)
		VALUES ($1, $2, $3, $4)
		RETURNING id`,
		k.MerchantID, k.Name, k.KeyHash, k.IsActive).Scan(&k.ID)
}

func (r *merchantRepository) updateAPIKey(ctx context.Context, k *merchant.APIKey) error {
	_, err := r.db.Exec(ctx, `
		UPDATE merchant_api_keys
		SET name = $1, is_active = $2
		WHERE id = $3`,
		k.Name, k.IsActive, k.ID)
	return err
}

func (r *merchantRepository) scanMerchant(row pgx.Row) (*merchant.Merchant, error) {
	var m merchant.Merchant
	var status string
	if err := row.Scan(&m.ID, &m.Name, &status); err != nil {
		return nil, err
	}
	m.Status = merchant.Status(status)
	return &m, nil
}
