package business

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eops/ratesync/internal/engine/aggregate"
	"eops/ratesync/internal/engine/source"
	"eops/ratesync/internal/engine/weight"
	"eops/ratesync/internal/engine/zone"
	"eops/ratesync/internal/model"
	"eops/ratesync/pkg/errorutil"
)

type fakeZoneRepo struct {
	zones map[string][]int64
}

func (f *fakeZoneRepo) ZonesForCountry(_ context.Context, countryCode string) ([]int64, error) {
	return f.zones[countryCode], nil
}

type fakeSourceClient struct {
	id      string
	entries []model.CarrierRateEntry
	err     error
}

func (f *fakeSourceClient) ID() string          { return f.id }
func (f *fakeSourceClient) Class() weight.Class { return weight.ClassPremium }

func (f *fakeSourceClient) Query(context.Context, []int64, float64) ([]model.CarrierRateEntry, error) {
	return f.entries, f.err
}

func newQuoteService(publisher *fakePublisher, clients ...source.Client) *QuoteService {
	repos := make(map[string]zone.Repo, len(clients))
	for _, c := range clients {
		repos[c.ID()] = &fakeZoneRepo{zones: map[string][]int64{"US": {1}}}
	}
	agg := aggregate.NewAggregator(zone.NewResolver(repos), clients,
		fixedFx{rate: 150}, aggregate.Config{}, nopLogger{})
	return NewQuoteService(agg, publisher, "rate_callback", nopLogger{})
}

func TestExecuteQuoteSuccess(t *testing.T) {
	publisher := &fakePublisher{}
	svc := newQuoteService(publisher, &fakeSourceClient{
		id: source.IDCourier,
		entries: []model.CarrierRateEntry{{
			SourceID:    source.IDCourier,
			CarrierCode: "ELOJI",
			ServiceCode: "ELOJI_BASIC",
			ServiceType: model.ServiceTypeStandard,
			BaseRateJPY: 2000,
		}},
	})

	req := &model.QuoteRequest{WeightG: 800, DestinationCountry: "US"}
	require.NoError(t, svc.ExecuteQuote(context.Background(), "req-1", req))

	cb := publisher.lastCallback(t)
	assert.Equal(t, "rate_callback", publisher.queue)
	assert.Equal(t, model.ActionShippingQuote, cb.ActionType)
	assert.Equal(t, model.CallbackStatusSuccess, cb.Status)
	require.NotNil(t, cb.Quote)
	require.Len(t, cb.Quote.Offers, 1)
	assert.Equal(t, "ELOJI_BASIC", cb.Quote.Offers[0].ServiceCode)
	assert.Equal(t, 150.0, cb.Quote.ExchangeRate)
}

func TestExecuteQuoteInvalidRequestStillCallsBack(t *testing.T) {
	publisher := &fakePublisher{}
	svc := newQuoteService(publisher, &fakeSourceClient{id: source.IDCourier})

	err := svc.ExecuteQuote(context.Background(), "req-2",
		&model.QuoteRequest{WeightG: -1, DestinationCountry: "US"})
	require.Error(t, err)
	assert.Equal(t, errorutil.KindInvalidRequest, errorutil.KindOf(err))

	cb := publisher.lastCallback(t)
	assert.Equal(t, model.CallbackStatusFailed, cb.Status)
	assert.NotEmpty(t, cb.Error)
	assert.Nil(t, cb.Quote)
}

func TestExecuteQuoteAllSourcesDownSkipsCallback(t *testing.T) {
	publisher := &fakePublisher{}
	svc := newQuoteService(publisher,
		&fakeSourceClient{id: source.IDCourier, err: errors.New("timeout")},
		&fakeSourceClient{id: source.IDPost, err: errors.New("refused")})

	err := svc.ExecuteQuote(context.Background(), "req-3",
		&model.QuoteRequest{WeightG: 800, DestinationCountry: "US"})
	require.Error(t, err)
	assert.Equal(t, errorutil.KindAllSourcesUnavailable, errorutil.KindOf(err))
	assert.True(t, errorutil.Wrap(err).Retryable)
	assert.Empty(t, publisher.payloads)
}
