package pricing

import (
	"fmt"

	"github.com/samber/lo"

	"eops/ratesync/internal/model"
	"eops/ratesync/pkg/errorutil"
)

// 关税率分桶边界与 DDU 偏好的利润率上限
const (
	tariffLowMax = 0.30
	tariffMidMax = 0.50
	dduMarginMax = 0.25
)

// PolicyCandidate 配送政策候选（来自政策表）
type PolicyCandidate struct {
	PolicyID     int64
	PolicyName   string
	PricingBasis string
	WeightMinKG  float64
	WeightMaxKG  float64
	TariffSample float64
}

// tariffBucket 关税率分桶：低（≤30%）/ 中（≤50%）/ 高
func tariffBucket(rate float64) int {
	switch {
	case rate <= tariffLowMax:
		return 0
	case rate <= tariffMidMax:
		return 1
	default:
		return 2
	}
}

// SelectPolicy 自动匹配配送政策
// 重量段（左闭右开，边界重量只落入上一档）→ 关税分桶一致 →
// 低目标利润率偏好 DDU 否则 DDP →
// 偏好落空时回退到分桶结果，取第一条；全部落空报 no_policy_candidate
func SelectPolicy(weightKG, tariffRate, targetMargin float64, candidates []PolicyCandidate) (*PolicyCandidate, error) {
	inBand := lo.Filter(candidates, func(c PolicyCandidate, _ int) bool {
		return weightKG >= c.WeightMinKG && weightKG < c.WeightMaxKG
	})
	if len(inBand) == 0 {
		return nil, errorutil.NoPolicyCandidate(fmt.Sprintf("no policy covers weight %.3fkg", weightKG))
	}

	bucket := tariffBucket(tariffRate)
	inBucket := lo.Filter(inBand, func(c PolicyCandidate, _ int) bool {
		return tariffBucket(c.TariffSample) == bucket
	})
	if len(inBucket) == 0 {
		return nil, errorutil.NoPolicyCandidate(
			fmt.Sprintf("no policy matches tariff rate %.4f at weight %.3fkg", tariffRate, weightKG))
	}

	preferred := model.PricingBasisDDP
	if targetMargin < dduMarginMax {
		preferred = model.PricingBasisDDU
	}
	byBasis := lo.Filter(inBucket, func(c PolicyCandidate, _ int) bool {
		return c.PricingBasis == preferred
	})
	if len(byBasis) == 0 {
		byBasis = inBucket
	}

	selected := byBasis[0]
	return &selected, nil
}
