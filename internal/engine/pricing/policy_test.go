package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eops/ratesync/pkg/errorutil"
)

func policyFixtures() []PolicyCandidate {
	return []PolicyCandidate{
		{PolicyID: 1, PolicyName: "Light DDU Low", PricingBasis: "DDU", WeightMinKG: 0, WeightMaxKG: 0.5, TariffSample: 0.05},
		{PolicyID: 2, PolicyName: "Light DDP Low", PricingBasis: "DDP", WeightMinKG: 0, WeightMaxKG: 0.5, TariffSample: 0.10},
		{PolicyID: 3, PolicyName: "Mid DDP Low", PricingBasis: "DDP", WeightMinKG: 0.5, WeightMaxKG: 2.0, TariffSample: 0.20},
		{PolicyID: 4, PolicyName: "Mid DDP Mid", PricingBasis: "DDP", WeightMinKG: 0.5, WeightMaxKG: 2.0, TariffSample: 0.40},
		{PolicyID: 5, PolicyName: "Mid DDU Mid", PricingBasis: "DDU", WeightMinKG: 0.5, WeightMaxKG: 2.0, TariffSample: 0.45},
		{PolicyID: 6, PolicyName: "Heavy DDP High", PricingBasis: "DDP", WeightMinKG: 2.0, WeightMaxKG: 30.0, TariffSample: 0.60},
	}
}

func TestTariffBucket(t *testing.T) {
	assert.Equal(t, 0, tariffBucket(0))
	assert.Equal(t, 0, tariffBucket(0.30), "low bucket includes the boundary")
	assert.Equal(t, 1, tariffBucket(0.31))
	assert.Equal(t, 1, tariffBucket(0.50))
	assert.Equal(t, 2, tariffBucket(0.51))
}

func TestSelectPolicy(t *testing.T) {
	t.Run("ddp preferred at high target margin", func(t *testing.T) {
		p, err := SelectPolicy(1.0, 0.40, 0.30, policyFixtures())
		require.NoError(t, err)
		assert.Equal(t, int64(4), p.PolicyID)
	})

	t.Run("ddu preferred at low target margin", func(t *testing.T) {
		p, err := SelectPolicy(1.0, 0.40, 0.20, policyFixtures())
		require.NoError(t, err)
		assert.Equal(t, int64(5), p.PolicyID)
	})

	t.Run("basis preference falls back when absent", func(t *testing.T) {
		// 低关税桶的中量段只有 DDP 候选，低利润率偏好 DDU 落空后回退
		p, err := SelectPolicy(1.0, 0.10, 0.15, policyFixtures())
		require.NoError(t, err)
		assert.Equal(t, int64(3), p.PolicyID)
	})

	t.Run("weight band half-open at the upper bound", func(t *testing.T) {
		// 0.5kg 只落入 [0.5, 2.0)，不再命中 [0, 0.5) 的轻量段
		p, err := SelectPolicy(0.5, 0.10, 0.20, policyFixtures())
		require.NoError(t, err)
		assert.Equal(t, int64(3), p.PolicyID, "light-band DDU candidate must not match")

		p, err = SelectPolicy(2.0, 0.60, 0.30, policyFixtures())
		require.NoError(t, err)
		assert.Equal(t, int64(6), p.PolicyID, "2.0kg belongs to the heavy band only")
	})

	t.Run("no weight coverage", func(t *testing.T) {
		_, err := SelectPolicy(50, 0.40, 0.30, policyFixtures())
		require.Error(t, err)
		assert.Equal(t, errorutil.KindNoPolicyCandidate, errorutil.KindOf(err))
	})

	t.Run("no tariff bucket match", func(t *testing.T) {
		_, err := SelectPolicy(1.0, 0.60, 0.30, policyFixtures())
		require.Error(t, err)
		assert.Equal(t, errorutil.KindNoPolicyCandidate, errorutil.KindOf(err))
	})

	t.Run("empty candidates", func(t *testing.T) {
		_, err := SelectPolicy(1.0, 0.40, 0.30, nil)
		require.Error(t, err)
		assert.Equal(t, errorutil.KindNoPolicyCandidate, errorutil.KindOf(err))
	})
}
