package source

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCourierRepo struct {
	rows []CourierRateRow
	err  error
}

func (f *fakeCourierRepo) RatesForZones(_ context.Context, _ []int64, _ float64) ([]CourierRateRow, error) {
	return f.rows, f.err
}

type fakePostRepo struct {
	rows []PostRateRow
	err  error
}

func (f *fakePostRepo) RatesForZones(_ context.Context, _ []int64, _ float64) ([]PostRateRow, error) {
	return f.rows, f.err
}

func fptr(v float64) *float64 { return &v }

func TestCourierClientQuery(t *testing.T) {
	ctx := context.Background()

	t.Run("discount applied before fuel", func(t *testing.T) {
		client := NewCourierClient(&fakeCourierRepo{rows: []CourierRateRow{{
			RateID:       1,
			ServiceCode:  "ELOJI_DHL_EXPRESS",
			ServiceType:  "EXPRESS",
			ZoneCode:     "Z1",
			WeightFromKG: 0.5,
			WeightToKG:   1.0,
			RateJPY:      4000,
			FuelRatePct:  fptr(19.0),
			DiscountPct:  fptr(25.0),
		}}})

		entries, err := client.Query(ctx, []int64{1}, 0.8)
		require.NoError(t, err)
		require.Len(t, entries, 1)

		e := entries[0]
		assert.Equal(t, "ELOJI_DHL", e.CarrierCode)
		assert.Equal(t, IDCourier, e.SourceID)
		assert.Equal(t, 3000.0, e.BaseRateJPY, "25% off 4000")
		assert.Equal(t, 4000.0, e.ListRateJPY)
		assert.Equal(t, 25.0, e.DiscountRatePct)
		assert.True(t, e.HasFuelSchedule)
		assert.Equal(t, 19.0, e.FuelRatePct)
	})

	t.Run("discount is eloji-dhl exclusive", func(t *testing.T) {
		client := NewCourierClient(&fakeCourierRepo{rows: []CourierRateRow{{
			RateID:       2,
			ServiceCode:  "ELOJI_FEDEX_PRIORITY",
			WeightFromKG: 0.5,
			WeightToKG:   1.0,
			RateJPY:      4000,
			DiscountPct:  fptr(25.0),
		}}})

		entries, err := client.Query(ctx, []int64{1}, 0.8)
		require.NoError(t, err)
		require.Len(t, entries, 1)

		e := entries[0]
		assert.Equal(t, "ELOJI_FEDEX", e.CarrierCode)
		assert.Equal(t, 4000.0, e.BaseRateJPY, "discount column ignored outside the DHL combination")
		assert.Zero(t, e.DiscountRatePct)
	})

	t.Run("carrier identity from service code", func(t *testing.T) {
		cases := []struct {
			service string
			carrier string
		}{
			{"ELOJI_DHL_EXPRESS", "ELOJI_DHL"},
			{"ELOJI_FEDEX_PRIORITY", "ELOJI_FEDEX"},
			{"ELOJI_UPS_SAVER", "ELOJI_UPS"},
			{"SPEEDPAK_STANDARD", "SPEEDPAK"},
			{"CPASS_ECONOMY", "CPASS"},
			{"ELOJI_BASIC", "ELOJI"},
		}
		for _, c := range cases {
			code, _ := carrierIdentity(c.service)
			assert.Equal(t, c.carrier, code, "service=%s", c.service)
		}
	})

	t.Run("weight band is inclusive on both ends", func(t *testing.T) {
		client := NewCourierClient(&fakeCourierRepo{rows: []CourierRateRow{{
			ServiceCode: "ELOJI_BASIC", WeightFromKG: 0.5, WeightToKG: 1.0, RateJPY: 2000,
		}}})

		for _, w := range []float64{0.5, 0.75, 1.0} {
			entries, err := client.Query(ctx, []int64{1}, w)
			require.NoError(t, err)
			assert.Len(t, entries, 1, "weight=%v", w)
		}
		for _, w := range []float64{0.49, 1.01} {
			entries, err := client.Query(ctx, []int64{1}, w)
			require.NoError(t, err)
			assert.Empty(t, entries, "weight=%v", w)
		}
	})

	t.Run("repo failure propagates", func(t *testing.T) {
		client := NewCourierClient(&fakeCourierRepo{err: errors.New("timeout")})
		_, err := client.Query(ctx, []int64{1}, 0.8)
		assert.Error(t, err)
	})
}

func TestPostClientQuery(t *testing.T) {
	ctx := context.Background()

	client := NewPostClient(&fakePostRepo{rows: []PostRateRow{
		{
			RateID: 1, ServiceCode: "JPPOST_EMS", ServiceName: "EMS", ServiceType: "EXPRESS",
			CarrierCode: "JPPOST", CarrierName: "Japan Post",
			ZoneCode: "ASIA", WeightFromG: 500, WeightToG: 1000, BasePriceJPY: 2100,
		},
		{
			RateID: 2, ServiceCode: "JPPOST_SAL_REG", ServiceName: "SAL 書留", ServiceType: "ECONOMY",
			CarrierCode: "JPPOST", CarrierName: "Japan Post",
			ZoneCode: "ASIA", WeightFromG: 500, WeightToG: 1000, BasePriceJPY: 1450,
		},
		{
			RateID: 3, ServiceCode: "JPPOST_SMALL_PACKET", ServiceName: "小形包装物", ServiceType: "ECONOMY",
			CarrierCode: "JPPOST", CarrierName: "Japan Post",
			ZoneCode: "ASIA", WeightFromG: 500, WeightToG: 1000, BasePriceJPY: 1200,
		},
	}})

	entries, err := client.Query(ctx, []int64{11}, 0.8)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	byRate := map[int64]int{}
	for i, e := range entries {
		byRate[e.RateID] = i
		assert.Equal(t, IDPost, e.SourceID)
		assert.Equal(t, "JPPOST", e.CarrierCode)
		assert.False(t, e.HasFuelSchedule, "postal services carry no fuel schedule")
		assert.Equal(t, 0.5, e.WeightFromKG)
		assert.Equal(t, 1.0, e.WeightToKG)
	}

	ems := entries[byRate[1]]
	assert.True(t, ems.Tracking)
	assert.True(t, ems.InsuranceInclude)

	registered := entries[byRate[2]]
	assert.True(t, registered.Tracking)
	assert.False(t, registered.InsuranceInclude)

	packet := entries[byRate[3]]
	assert.False(t, packet.Tracking)
	assert.False(t, packet.InsuranceInclude)
}
