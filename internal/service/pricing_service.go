package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Gurn0or/golden-haven-navigator/internal/core/domain"
	"github.com/Gurn0or/golden-haven-navigator/internal/core/ports"
	"github.com/Gurn0or/golden-haven-navigator/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// PricingServiceImpl implements ports.PricingService. Spot lookups go
// through a short-TTL cache so the upstream price source is hit at most once
// per TTL window, whatever the dashboard traffic.
type PricingServiceImpl struct {
	pricingRepo ports.PricingRepository
	source      ports.PriceSource
	cache       ports.PriceCache
	cacheTTL    time.Duration
	auditSvc    ports.AuditService
	log         zerolog.Logger
}

// NewPricingService creates a new PricingServiceImpl.
func NewPricingService(
	pricingRepo ports.PricingRepository,
	source ports.PriceSource,
	cache ports.PriceCache,
	cacheTTL time.Duration,
	auditSvc ports.AuditService,
	log zerolog.Logger,
) *PricingServiceImpl {
	return &PricingServiceImpl{
		pricingRepo: pricingRepo,
		source:      source,
		cache:       cache,
		cacheTTL:    cacheTTL,
		auditSvc:    auditSvc,
		log:         log,
	}
}

// Spot returns the current gold price, cache first.
func (s *PricingServiceImpl) Spot(ctx context.Context) (*domain.SpotPrice, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx)
		if err != nil {
			s.log.Warn().Err(err).Msg("price cache read failed, falling through to source")
		} else if cached != nil {
			return cached, nil
		}
	}

	price, err := s.source.FetchSpot(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("fetch spot price: %w", err))
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, price, s.cacheTTL); err != nil {
			s.log.Warn().Err(err).Msg("price cache write failed")
		}
	}
	return price, nil
}

// Quote prices an order of the given size in USD, applying the first active
// rule whose band covers the size. With no matching rule the quote is plain
// spot times grams.
func (s *PricingServiceImpl) Quote(ctx context.Context, grams float64) (float64, error) {
	if grams <= 0 {
		return 0, apperror.Validation("order size must be positive")
	}

	spot, err := s.Spot(ctx)
	if err != nil {
		return 0, err
	}

	rules, err := s.pricingRepo.ListRules(ctx)
	if err != nil {
		return 0, apperror.InternalError(err)
	}

	perGram := spot.USDPerGram
	for i := range rules {
		if rules[i].AppliesTo(grams) {
			perGram = rules[i].Quote(spot.USDPerGram)
			break
		}
	}
	return perGram * grams, nil
}

// ListRules returns all pricing rules.
func (s *PricingServiceImpl) ListRules(ctx context.Context) ([]domain.PricingRule, error) {
	rules, err := s.pricingRepo.ListRules(ctx)
	if err != nil {
		return nil, apperror.InternalError(err)
	}
	return rules, nil
}

// CreateRule registers a new pricing rule.
func (s *PricingServiceImpl) CreateRule(ctx context.Context, rule *domain.PricingRule) error {
	if err := validateRule(rule); err != nil {
		return err
	}

	now := time.Now().UTC()
	rule.ID = uuid.New()
	rule.CreatedAt = now
	rule.UpdatedAt = now

	if err := s.pricingRepo.CreateRule(ctx, rule); err != nil {
		return apperror.InternalError(fmt.Errorf("create rule: %w", err))
	}
	s.audit(ctx, rule.ID.String(), "created")
	return nil
}

// UpdateRule edits an existing pricing rule.
func (s *PricingServiceImpl) UpdateRule(ctx context.Context, rule *domain.PricingRule) error {
	if err := validateRule(rule); err != nil {
		return err
	}

	existing, err := s.pricingRepo.GetRule(ctx, rule.ID)
	if err != nil {
		return apperror.InternalError(err)
	}
	if existing == nil {
		return apperror.ErrNotFound("pricing rule")
	}

	rule.CreatedAt = existing.CreatedAt
	rule.UpdatedAt = time.Now().UTC()
	if err := s.pricingRepo.UpdateRule(ctx, rule); err != nil {
		return apperror.InternalError(fmt.Errorf("update rule: %w", err))
	}
	s.audit(ctx, rule.ID.String(), "updated")
	return nil
}

func (s *PricingServiceImpl) audit(ctx context.Context, ruleID, detail string) {
	if s.auditSvc == nil {
		return
	}
	s.auditSvc.Log(ctx, &domain.AuditLog{
		ID:           uuid.New(),
		Action:       domain.AuditActionPricingChange,
		ResourceType: "pricing_rule",
		ResourceID:   ruleID,
		Details:      fmt.Sprintf(`{"detail":%q}`, detail),
		CreatedAt:    time.Now().UTC(),
	})
}

func validateRule(rule *domain.PricingRule) error {
	if strings.TrimSpace(rule.Name) == "" {
		return apperror.Validation("rule name is required")
	}
	if rule.MinOrderGrams < 0 {
		return apperror.Validation("minimum order size cannot be negative")
	}
	if rule.MaxOrderGrams != 0 && rule.MaxOrderGrams < rule.MinOrderGrams {
		return apperror.Validation("maximum order size cannot be below the minimum")
	}
	return nil
}
