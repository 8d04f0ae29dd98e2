package merchant

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"checkroute/internal/config"
	domain "checkroute/internal/domain/merchant"
	"checkroute/internal/store/repositories"

	"github.com/pkg/errors"
)

// OnboardingRequest represents merchant onboarding data
type OnboardingRequest struct {
	Name       string `json:"name"`
	APIKeyName string `json:"apiKeyName,omitempty"`
}

// OnboardingResponse represents merchant onboarding result. The API key
// is plaintext and shown exactly once.
type OnboardingResponse struct {
	MerchantID int64  `json:"merchantId"`
	APIKey     string `json:"apiKey"`
	APIKeyName string `json:"apiKeyName"`
}

// Service handles merchant management
type Service struct {
	merchantRepo repositories.MerchantRepository
	cfg          config.Cfg
}

// NewService creates a new merchant service
func NewService(merchantRepo repositories.MerchantRepository, cfg config.Cfg) *Service {
	return &Service{
		merchantRepo: merchantRepo,
		cfg:          cfg,
	}
}

// Onboard creates a new merchant and issues its first API key
func (s *Service) Onboard(ctx context.Context, req OnboardingRequest) (*OnboardingResponse, error) {
	newMerchant, err := domain.NewMerchant(strings.TrimSpace(req.Name))
	if err != nil {
		return nil, errors.Wrap(err, "failed to create merchant")
	}

	if err := s.merchantRepo.Save(ctx, newMerchant); err != nil {
		return nil, errors.Wrap(err, "failed to save merchant")
	}

	apiKey, keyName, err := s.createAPIKey(ctx, newMerchant.ID, req.APIKeyName)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create API key")
	}

	return &OnboardingResponse{
		MerchantID: newMerchant.ID,
		APIKey:     apiKey,
		APIKeyName: keyName,
	}, nil
}

// AuthenticateAPIKey resolves a plaintext API key to an active merchant
func (s *Service) AuthenticateAPIKey(ctx context.Context, apiKey string) (*domain.Merchant, error) {
	m, err := s.merchantRepo.FindByAPIKeyHash(ctx, s.hashAPIKey(apiKey))
	if err != nil {
		return nil, errors.Wrap(err, "api key lookup failed")
	}
	if !m.IsUsable() {
		return nil, errors.Errorf("merchant %d is not active", m.ID)
	}
	return m, nil
}

// createAPIKey generates and stores a new API key for the merchant
func (s *Service) createAPIKey(ctx context.Context, merchantID int64, keyName string) (string, string, error) {
	if keyName == "" {
		keyName = "default"
	}

	keyBytes := make([]byte, 32)
	if _, err := rand.Read(keyBytes); err != nil {
		return "", "", errors.Wrap(err, "failed to generate API key")
	}
	apiKey := "ck_" + hex.EncodeToString(keyBytes)

	apiKeyObj, err := domain.NewAPIKey(merchantID, keyName, s.hashAPIKey(apiKey))
	if err != nil {
		return "", "", err
	}

	if err := s.merchantRepo.SaveAPIKey(ctx, apiKeyObj); err != nil {
		return "", "", err
	}

	return apiKey, keyName, nil
}

func (s *Service) hashAPIKey(apiKey string) string {
	h := sha256.Sum256([]byte(apiKey))
	return hex.EncodeToString(h[:])
}
