package mysql

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"eops/ratesync/internal/engine/pricing"
	"eops/ratesync/internal/entity"
	"eops/ratesync/internal/model"
)

// PolicyDAO 配送政策访问对象
type PolicyDAO struct {
	db *gorm.DB
}

// NewPolicyDAO 创建 PolicyDAO 实例
func NewPolicyDAO(db *gorm.DB) *PolicyDAO {
	return &PolicyDAO{db: db}
}

// Candidates 查询全部启用中的政策候选，按政策编号稳定排序
func (dao *PolicyDAO) Candidates(ctx context.Context) ([]pricing.PolicyCandidate, error) {
	var policies []entity.ShippingPolicy
	err := dao.db.WithContext(ctx).
		Where("active = ?", true).
		Order("policy_number ASC").
		Find(&policies).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query shipping policies: %w", err)
	}

	candidates := make([]pricing.PolicyCandidate, 0, len(policies))
	for _, p := range policies {
		candidates = append(candidates, pricing.PolicyCandidate{
			PolicyID:     p.ID,
			PolicyName:   p.PolicyName,
			PricingBasis: p.PricingBasis,
			WeightMinKG:  p.WeightMinKG,
			WeightMaxKG:  p.WeightMaxKG,
			TariffSample: p.TariffSample,
		})
	}
	return candidates, nil
}

// ReferenceZoneRate 查询政策的基准区域费率行
func (dao *PolicyDAO) ReferenceZoneRate(ctx context.Context, policyID int64) (*entity.PolicyZoneRate, error) {
	var row entity.PolicyZoneRate
	err := dao.db.WithContext(ctx).
		Where("policy_id = ? AND zone_type = ?", policyID, model.ZoneTypeReference).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("policy %d has no reference zone rate", policyID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query reference zone rate: %w", err)
	}
	return &row, nil
}

// OtherZoneRate 查询政策在代表性非基准区域的费率行
// 指定编码未命中时回退到任意一条 OTHER 类型费率
func (dao *PolicyDAO) OtherZoneRate(ctx context.Context, policyID int64, zoneCode string) (*entity.PolicyZoneRate, error) {
	var row entity.PolicyZoneRate
	err := dao.db.WithContext(ctx).
		Where("policy_id = ? AND zone_type = ? AND zone_code = ?", policyID, model.ZoneTypeOther, zoneCode).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		err = dao.db.WithContext(ctx).
			Where("policy_id = ? AND zone_type = ?", policyID, model.ZoneTypeOther).
			Order("zone_code ASC").
			First(&row).Error
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query other zone rate: %w", err)
	}
	return &row, nil
}
