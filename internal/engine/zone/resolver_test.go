package zone

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeZoneRepo struct {
	zones map[string][]int64
	err   error
}

func (f *fakeZoneRepo) ZonesForCountry(_ context.Context, countryCode string) ([]int64, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.zones[countryCode], nil
}

func TestResolveZones(t *testing.T) {
	ctx := context.Background()
	resolver := NewResolver(map[string]Repo{
		"courier": &fakeZoneRepo{zones: map[string][]int64{"US": {1, 2}, "DE": {3}}},
		"post":    &fakeZoneRepo{zones: map[string][]int64{"US": {11}}},
	})

	t.Run("resolves per source", func(t *testing.T) {
		zones, err := resolver.ResolveZones(ctx, "courier", "US")
		require.NoError(t, err)
		assert.Equal(t, []int64{1, 2}, zones)

		zones, err = resolver.ResolveZones(ctx, "post", "US")
		require.NoError(t, err)
		assert.Equal(t, []int64{11}, zones)
	})

	t.Run("case insensitive with whitespace", func(t *testing.T) {
		zones, err := resolver.ResolveZones(ctx, "courier", " de ")
		require.NoError(t, err)
		assert.Equal(t, []int64{3}, zones)
	})

	t.Run("malformed country yields empty without error", func(t *testing.T) {
		for _, code := range []string{"", "U", "USA", "1A", "??"} {
			zones, err := resolver.ResolveZones(ctx, "courier", code)
			require.NoError(t, err, "code=%q", code)
			assert.Empty(t, zones, "code=%q", code)
		}
	})

	t.Run("no coverage yields empty", func(t *testing.T) {
		zones, err := resolver.ResolveZones(ctx, "post", "DE")
		require.NoError(t, err)
		assert.Empty(t, zones)
	})

	t.Run("unknown source yields empty", func(t *testing.T) {
		zones, err := resolver.ResolveZones(ctx, "unknown", "US")
		require.NoError(t, err)
		assert.Empty(t, zones)
	})

	t.Run("repo failure propagates", func(t *testing.T) {
		broken := NewResolver(map[string]Repo{"courier": &fakeZoneRepo{err: errors.New("db down")}})
		_, err := broken.ResolveZones(ctx, "courier", "US")
		assert.Error(t, err)
	})
}
