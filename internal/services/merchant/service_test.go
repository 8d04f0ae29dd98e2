package merchant

import (
	"context"
	"errors"
	"strings"
	"testing"

	"checkroute/internal/config"
	domain "checkroute/internal/domain/merchant"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeMerchantRepo stores merchants and API keys in memory
type fakeMerchantRepo struct {
	merchants map[int64]*domain.Merchant
	keys      map[string]*domain.APIKey // by hash
	nextID    int64
	saveErr   error
}

func newFakeMerchantRepo() *fakeMerchantRepo {
	return &fakeMerchantRepo{
		merchants: make(map[int64]*domain.Merchant),
		keys:      make(map[string]*domain.APIKey),
	}
}

func (f *fakeMerchantRepo) Save(ctx context.Context, m *domain.Merchant) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	if m.ID == 0 {
		f.nextID++
		m.ID = f.nextID
	}
	f.merchants[m.ID] = m
	return nil
}

func (f *fakeMerchantRepo) FindByID(ctx context.Context, id int64) (*domain.Merchant, error) {
	m, ok := f.merchants[id]
	if !ok {
		return nil, errors.New("merchant not found")
	}
	return m, nil
}

func (f *fakeMerchantRepo) FindByAPIKeyHash(ctx context.Context, keyHash string) (*domain.Merchant, error) {
	k, ok := f.keys[keyHash]
	if !ok || !k.IsActive {
		return nil, errors.New("key not found")
	}
	m, ok := f.merchants[k.MerchantID]
	if !ok || m.Status != domain.StatusActive {
		return nil, errors.New("merchant not active")
	}
	return m, nil
}

func (f *fakeMerchantRepo) SaveAPIKey(ctx context.Context, apiKey *domain.APIKey) error {
	if apiKey.ID == 0 {
		f.nextID++
		apiKey.ID = f.nextID
	}
	f.keys[apiKey.KeyHash] = apiKey
	return nil
}

func (f *fakeMerchantRepo) FindAPIKeyByHash(ctx context.Context, keyHash string) (*domain.APIKey, error) {
	k, ok := f.keys[keyHash]
	if !ok {
		return nil, errors.New("key not found")
	}
	return k, nil
}

func TestOnboard(t *testing.T) {
	repo := newFakeMerchantRepo()
	svc := NewService(repo, config.Cfg{})

	resp, err := svc.Onboard(context.Background(), OnboardingRequest{Name: "Acme Store"})
	require.NoError(t, err)

	assert.NotZero(t, resp.MerchantID)
	assert.True(t, strings.HasPrefix(resp.APIKey, "ck_"))
	assert.Equal(t, "default", resp.APIKeyName)

	// The plaintext key must round-trip through authentication.
	m, err := svc.AuthenticateAPIKey(context.Background(), resp.APIKey)
	require.NoError(t, err)
	assert.Equal(t, resp.MerchantID, m.ID)
	assert.Equal(t, "Acme Store", m.Name)
}

func TestOnboard_NamedKey(t *testing.T) {
	repo := newFakeMerchantRepo()
	svc := NewService(repo, config.Cfg{})

	resp, err := svc.Onboard(context.Background(), OnboardingRequest{Name: "Acme Store", APIKeyName: "staging"})
	require.NoError(t, err)
	assert.Equal(t, "staging", resp.APIKeyName)
}

func TestOnboard_InvalidName(t *testing.T) {
	repo := newFakeMerchantRepo()
	svc := NewService(repo, config.Cfg{})

	_, err := svc.Onboard(context.Background(), OnboardingRequest{Name: ""})
	require.Error(t, err)

	_, err = svc.Onboard(context.Background(), OnboardingRequest{Name: "x"})
	require.Error(t, err)
}

func TestOnboard_RepoFailure(t *testing.T) {
	repo := newFakeMerchantRepo()
	repo.saveErr = errors.New("db down")
	svc := NewService(repo, config.Cfg{})

	_, err := svc.Onboard(context.Background(), OnboardingRequest{Name: "Acme Store"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to save merchant")
}

func TestAuthenticateAPIKey_InvalidKey(t *testing.T) {
	repo := newFakeMerchantRepo()
	svc := NewService(repo, config.Cfg{})

	_, err := svc.AuthenticateAPIKey(context.Background(), "ck_bogus")
	require.Error(t, err)
}

func TestAuthenticateAPIKey_SuspendedMerchant(t *testing.T) {
	repo := newFakeMerchantRepo()
	svc := NewService(repo, config.Cfg{})

	resp, err := svc.Onboard(context.Background(), OnboardingRequest{Name: "Acme Store"})
	require.NoError(t, err)

	repo.merchants[resp.MerchantID].Status = domain.StatusSuspended

	_, err = svc.AuthenticateAPIKey(context.Background(), resp.APIKey)
	require.Error(t, err)
}
