package aggregate

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eops/ratesync/internal/engine/source"
	"eops/ratesync/internal/engine/weight"
	"eops/ratesync/internal/engine/zone"
	"eops/ratesync/internal/model"
	"eops/ratesync/pkg/errorutil"
)

type nopLogger struct{}

func (nopLogger) Debugf(context.Context, string, ...interface{}) {}
func (nopLogger) Infof(context.Context, string, ...interface{})  {}
func (nopLogger) Warnf(context.Context, string, ...interface{})  {}
func (nopLogger) Errorf(context.Context, string, ...interface{}) {}
func (nopLogger) Sync() error                                    { return nil }

type fakeZoneRepo struct {
	zones map[string][]int64
}

func (f *fakeZoneRepo) ZonesForCountry(_ context.Context, countryCode string) ([]int64, error) {
	return f.zones[countryCode], nil
}

type fakeClient struct {
	id      string
	class   weight.Class
	entries []model.CarrierRateEntry
	err     error
	gotKG   float64
}

func (f *fakeClient) ID() string          { return f.id }
func (f *fakeClient) Class() weight.Class { return f.class }

func (f *fakeClient) Query(_ context.Context, _ []int64, weightKG float64) ([]model.CarrierRateEntry, error) {
	f.gotKG = weightKG
	return f.entries, f.err
}

type fixedFx struct{ rate float64 }

func (f fixedFx) Rate(context.Context) float64 { return f.rate }

func newResolver(sources ...string) *zone.Resolver {
	repos := make(map[string]zone.Repo, len(sources))
	for _, s := range sources {
		repos[s] = &fakeZoneRepo{zones: map[string][]int64{"US": {1}}}
	}
	return zone.NewResolver(repos)
}

func newAggregator(resolver *zone.Resolver, clients ...source.Client) *Aggregator {
	return NewAggregator(resolver, clients, fixedFx{rate: 150}, Config{}, nopLogger{})
}

func entry(service, tier string, base float64, daysMax int) model.CarrierRateEntry {
	return model.CarrierRateEntry{
		SourceID:        source.IDCourier,
		CarrierCode:     "ELOJI",
		ServiceCode:     service,
		ServiceType:     tier,
		BaseRateJPY:     base,
		DeliveryDaysMin: 3,
		DeliveryDaysMax: daysMax,
	}
}

func TestAggregateOrderingAndTiers(t *testing.T) {
	client := &fakeClient{
		id:    source.IDCourier,
		class: weight.ClassPremium,
		entries: []model.CarrierRateEntry{
			entry("SVC_B", model.ServiceTypeStandard, 2000, 10),
			entry("SVC_A", model.ServiceTypeEconomy, 1000, 14),
			entry("SVC_D", model.ServiceTypeExpress, 1500, 9),
			entry("SVC_C", model.ServiceTypeExpress, 1500, 5),
		},
	}
	agg := newAggregator(newResolver(source.IDCourier), client)

	result, err := agg.Aggregate(context.Background(), &model.QuoteRequest{
		WeightG:            800,
		DestinationCountry: "US",
	})
	require.NoError(t, err)
	require.Len(t, result.Offers, 4)

	// 总价升序，同价（SVC_C/SVC_D）按最大时效更短者优先
	assert.Equal(t, "SVC_A", result.Offers[0].ServiceCode)
	assert.Equal(t, "SVC_C", result.Offers[1].ServiceCode)
	assert.Equal(t, "SVC_D", result.Offers[2].ServiceCode)
	assert.Equal(t, "SVC_B", result.Offers[3].ServiceCode)

	for i := 1; i < len(result.Offers); i++ {
		assert.LessOrEqual(t, result.Offers[i-1].TotalPriceJPY, result.Offers[i].TotalPriceJPY)
	}

	// 每档最优 = 档内排序后的第一条
	require.Len(t, result.Tiers, 3)
	assert.Equal(t, "SVC_A", result.Tiers[model.ServiceTypeEconomy].Cheapest.ServiceCode)
	assert.Equal(t, "SVC_B", result.Tiers[model.ServiceTypeStandard].Cheapest.ServiceCode)
	assert.Equal(t, "SVC_C", result.Tiers[model.ServiceTypeExpress].Cheapest.ServiceCode)
	assert.Len(t, result.Tiers[model.ServiceTypeExpress].Offers, 2)

	assert.Equal(t, 150.0, result.ExchangeRate)
}

func TestAggregateTotalsInvariant(t *testing.T) {
	client := &fakeClient{
		id:    source.IDCourier,
		class: weight.ClassPremium,
		entries: []model.CarrierRateEntry{
			entry("SVC_A", model.ServiceTypeStandard, 3000, 10),
		},
	}
	agg := newAggregator(newResolver(source.IDCourier), client)

	result, err := agg.Aggregate(context.Background(), &model.QuoteRequest{
		WeightG:            800,
		DestinationCountry: "US",
	})
	require.NoError(t, err)
	require.Len(t, result.Offers, 1)

	offer := result.Offers[0]
	assert.Equal(t, offer.BaseRateJPY+offer.Surcharges.Total(), offer.TotalPriceJPY)
	assert.InDelta(t, offer.TotalPriceJPY/150, offer.TotalPriceUSD, 0.005)
	assert.NotEmpty(t, offer.OfferID)
}

func TestAggregateWeightPerSource(t *testing.T) {
	courierEntry := entry("SVC_A", model.ServiceTypeStandard, 2000, 10)
	postEntry := entry("EMS", model.ServiceTypeExpress, 1450, 5)
	postEntry.SourceID = source.IDPost
	postEntry.CarrierCode = "JPPOST"

	courier := &fakeClient{id: source.IDCourier, class: weight.ClassPremium,
		entries: []model.CarrierRateEntry{courierEntry}}
	post := &fakeClient{id: source.IDPost, class: weight.ClassPostal,
		entries: []model.CarrierRateEntry{postEntry}}
	agg := newAggregator(newResolver(source.IDCourier, source.IDPost), courier, post)

	// 实际 800g，30×20×10cm → 容积 1200g
	result, err := agg.Aggregate(context.Background(), &model.QuoteRequest{
		WeightG:            800,
		LengthCM:           30,
		WidthCM:            20,
		HeightCM:           10,
		DestinationCountry: "US",
	})
	require.NoError(t, err)
	require.Len(t, result.Offers, 2)

	// 重量段查询统一用实际重量，与计费重量无关
	assert.InDelta(t, 0.8, courier.gotKG, 1e-9)
	assert.InDelta(t, 0.8, post.gotKG, 1e-9)

	// 计费重量按各源承运商规则体现在报价明细中
	bySource := map[string]model.ShippingOffer{}
	for _, o := range result.Offers {
		bySource[o.SourceID] = o
	}
	assert.InDelta(t, 1200.0, bySource[source.IDCourier].ChargeableWeightG, 1e-9,
		"premium takes the larger volumetric weight")
	assert.InDelta(t, 800.0, bySource[source.IDPost].ChargeableWeightG, 1e-9,
		"postal keeps actual below the double threshold")
}

func TestAggregatePartialFailure(t *testing.T) {
	healthy := &fakeClient{
		id:      source.IDCourier,
		class:   weight.ClassPremium,
		entries: []model.CarrierRateEntry{entry("SVC_A", model.ServiceTypeStandard, 2000, 10)},
	}
	broken := &fakeClient{id: source.IDPost, class: weight.ClassPostal, err: errors.New("connection refused")}
	agg := newAggregator(newResolver(source.IDCourier, source.IDPost), healthy, broken)

	result, err := agg.Aggregate(context.Background(), &model.QuoteRequest{
		WeightG:            800,
		DestinationCountry: "US",
	})
	require.NoError(t, err, "one healthy source keeps the request alive")
	assert.Len(t, result.Offers, 1)
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "post")
	assert.Contains(t, result.Warnings[0], "unavailable")
}

func TestAggregateAllSourcesFailed(t *testing.T) {
	a := &fakeClient{id: source.IDCourier, class: weight.ClassPremium, err: errors.New("timeout")}
	b := &fakeClient{id: source.IDPost, class: weight.ClassPostal, err: errors.New("connection refused")}
	agg := newAggregator(newResolver(source.IDCourier, source.IDPost), a, b)

	_, err := agg.Aggregate(context.Background(), &model.QuoteRequest{
		WeightG:            800,
		DestinationCountry: "US",
	})
	require.Error(t, err)
	assert.Equal(t, errorutil.KindAllSourcesUnavailable, errorutil.KindOf(err))
}

func TestAggregateNoCoverage(t *testing.T) {
	client := &fakeClient{
		id:      source.IDCourier,
		class:   weight.ClassPremium,
		entries: []model.CarrierRateEntry{entry("SVC_A", model.ServiceTypeStandard, 2000, 10)},
	}
	agg := newAggregator(newResolver(source.IDCourier), client)

	// 解析器只认识 US
	result, err := agg.Aggregate(context.Background(), &model.QuoteRequest{
		WeightG:            800,
		DestinationCountry: "BR",
	})
	require.NoError(t, err)
	assert.Empty(t, result.Offers)
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "no coverage")
}

func TestAggregateValidation(t *testing.T) {
	agg := newAggregator(newResolver(source.IDCourier),
		&fakeClient{id: source.IDCourier, class: weight.ClassPremium})

	cases := []*model.QuoteRequest{
		nil,
		{WeightG: 0, DestinationCountry: "US"},
		{WeightG: -100, DestinationCountry: "US"},
		{WeightG: 800, DestinationCountry: "  "},
		{WeightG: 800, DestinationCountry: "US", DeclaredValueJPY: -1},
	}
	for i, req := range cases {
		_, err := agg.Aggregate(context.Background(), req)
		require.Error(t, err, "case %d", i)
		assert.Equal(t, errorutil.KindInvalidRequest, errorutil.KindOf(err), "case %d", i)
	}
}
