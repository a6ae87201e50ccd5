package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Gurn0or/golden-haven-navigator/internal/core/domain"
	"github.com/Gurn0or/golden-haven-navigator/internal/core/ports/mocks"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type pricingTestDeps struct {
	svc         *PricingServiceImpl
	pricingRepo *mocks.MockPricingRepository
	source      *mocks.MockPriceSource
	cache       *mocks.MockPriceCache
	ctrl        *gomock.Controller
}

func setupPricingService(t *testing.T) *pricingTestDeps {
	ctrl := gomock.NewController(t)
	d := &pricingTestDeps{
		pricingRepo: mocks.NewMockPricingRepository(ctrl),
		source:      mocks.NewMockPriceSource(ctrl),
		cache:       mocks.NewMockPriceCache(ctrl),
		ctrl:        ctrl,
	}
	d.svc = NewPricingService(d.pricingRepo, d.source, d.cache, 30*time.Second, nil, zerolog.Nop())
	return d
}

func spot(usdPerGram float64) *domain.SpotPrice {
	return &domain.SpotPrice{USDPerGram: usdPerGram, Source: "test", FetchedAt: time.Now().UTC()}
}

// ==================== Spot Tests ====================

func TestPricingService_Spot_CacheHitSkipsSource(t *testing.T) {
	d := setupPricingService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	d.cache.EXPECT().Get(ctx).Return(spot(75.5), nil)

	price, err := d.svc.Spot(ctx)
	require.NoError(t, err)
	assert.Equal(t, 75.5, price.USDPerGram)
}

func TestPricingService_Spot_CacheMissFetchesAndStores(t *testing.T) {
	d := setupPricingService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	fresh := spot(76.2)
	d.cache.EXPECT().Get(ctx).Return(nil, nil)
	d.source.EXPECT().FetchSpot(ctx).Return(fresh, nil)
	d.cache.EXPECT().Set(ctx, fresh, 30*time.Second).Return(nil)

	price, err := d.svc.Spot(ctx)
	require.NoError(t, err)
	assert.Equal(t, 76.2, price.USDPerGram)
}

func TestPricingService_Spot_CacheErrorFallsThroughToSource(t *testing.T) {
	d := setupPricingService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	fresh := spot(76.2)
	d.cache.EXPECT().Get(ctx).Return(nil, errors.New("redis down"))
	d.source.EXPECT().FetchSpot(ctx).Return(fresh, nil)
	d.cache.EXPECT().Set(ctx, fresh, 30*time.Second).Return(errors.New("redis down"))

	// a broken cache degrades to direct fetch, never to an error
	price, err := d.svc.Spot(ctx)
	require.NoError(t, err)
	assert.Equal(t, 76.2, price.USDPerGram)
}

func TestPricingService_Spot_SourceFailure(t *testing.T) {
	d := setupPricingService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	d.cache.EXPECT().Get(ctx).Return(nil, nil)
	d.source.EXPECT().FetchSpot(ctx).Return(nil, errors.New("feed unreachable"))

	_, err := d.svc.Spot(ctx)
	assertAppError(t, err, "SYS_001")
}

// ==================== Quote Tests ====================

func TestPricingService_Quote_AppliesFirstMatchingRule(t *testing.T) {
	d := setupPricingService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	d.cache.EXPECT().Get(ctx).Return(spot(100), nil)
	d.pricingRepo.EXPECT().ListRules(ctx).Return([]domain.PricingRule{
		{Name: "retail", SpreadBps: 200, MinOrderGrams: 0, MaxOrderGrams: 100, Active: true},
		{Name: "bulk", SpreadBps: 50, MinOrderGrams: 100, MaxOrderGrams: 0, Active: true},
	}, nil)

	// 50g falls in the retail band: 100 * 1.02 * 50
	total, err := d.svc.Quote(ctx, 50)
	require.NoError(t, err)
	assert.InDelta(t, 5100.0, total, 0.001)
}

func TestPricingService_Quote_InactiveRuleIgnored(t *testing.T) {
	d := setupPricingService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	d.cache.EXPECT().Get(ctx).Return(spot(100), nil)
	d.pricingRepo.EXPECT().ListRules(ctx).Return([]domain.PricingRule{
		{Name: "retail", SpreadBps: 200, MaxOrderGrams: 100, Active: false},
	}, nil)

	total, err := d.svc.Quote(ctx, 50)
	require.NoError(t, err)
	assert.InDelta(t, 5000.0, total, 0.001)
}

func TestPricingService_Quote_NoRulesMeansPlainSpot(t *testing.T) {
	d := setupPricingService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	d.cache.EXPECT().Get(ctx).Return(spot(75), nil)
	d.pricingRepo.EXPECT().ListRules(ctx).Return(nil, nil)

	total, err := d.svc.Quote(ctx, 10)
	require.NoError(t, err)
	assert.InDelta(t, 750.0, total, 0.001)
}

func TestPricingService_Quote_RejectsNonPositiveSize(t *testing.T) {
	d := setupPricingService(t)
	defer d.ctrl.Finish()

	_, err := d.svc.Quote(context.Background(), 0)
	assertAppError(t, err, "GEN_002")

	_, err = d.svc.Quote(context.Background(), -5)
	assertAppError(t, err, "GEN_002")
}

// ==================== Rule Tests ====================

func TestPricingService_CreateRule_AssignsIDAndTimestamps(t *testing.T) {
	d := setupPricingService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	rule := &domain.PricingRule{Name: "bulk", SpreadBps: 50, MinOrderGrams: 100, Active: true}

	d.pricingRepo.EXPECT().CreateRule(ctx, rule).Return(nil)

	require.NoError(t, d.svc.CreateRule(ctx, rule))
	assert.NotEqual(t, uuid.Nil, rule.ID)
	assert.False(t, rule.CreatedAt.IsZero())
}

func TestPricingService_CreateRule_RejectsInvertedBand(t *testing.T) {
	d := setupPricingService(t)
	defer d.ctrl.Finish()

	rule := &domain.PricingRule{Name: "bad", MinOrderGrams: 100, MaxOrderGrams: 50}

	err := d.svc.CreateRule(context.Background(), rule)
	assertAppError(t, err, "GEN_002")
}

func TestPricingService_UpdateRule_PreservesCreatedAt(t *testing.T) {
	d := setupPricingService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	created := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)
	id := uuid.New()
	rule := &domain.PricingRule{ID: id, Name: "bulk", SpreadBps: 75, MinOrderGrams: 100}

	d.pricingRepo.EXPECT().GetRule(ctx, id).Return(&domain.PricingRule{ID: id, CreatedAt: created}, nil)
	d.pricingRepo.EXPECT().UpdateRule(ctx, rule).Return(nil)

	require.NoError(t, d.svc.UpdateRule(ctx, rule))
	assert.Equal(t, created, rule.CreatedAt)
}

func TestPricingService_UpdateRule_NotFound(t *testing.T) {
	d := setupPricingService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	rule := &domain.PricingRule{ID: uuid.New(), Name: "bulk"}

	d.pricingRepo.EXPECT().GetRule(ctx, rule.ID).Return(nil, nil)

	err := d.svc.UpdateRule(ctx, rule)
	assertAppError(t, err, "GEN_001")
}
