package mysql

import (
	"context"
	"fmt"

	gojson "github.com/goccy/go-json"
	"gorm.io/gorm"

	"eops/ratesync/internal/entity"
	"eops/ratesync/internal/model"
)

// ProductDAO 商品数据访问对象
type ProductDAO struct {
	db *gorm.DB
}

// NewProductDAO 创建 ProductDAO 实例
func NewProductDAO(db *gorm.DB) *ProductDAO {
	return &ProductDAO{db: db}
}

// UpdatePricingResult 回写定价结果
// 更新价格与利润字段，并把完整结果序列化到 pricing_result 列
func (dao *ProductDAO) UpdatePricingResult(ctx context.Context, productID string, result *model.PricingResult) error {
	resultJSON, err := gojson.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to marshal pricing result: %w", err)
	}

	reference := result.Zones[result.ReferenceZoneCode]
	updates := map[string]interface{}{
		"price_usd":         result.ProductPriceUSD,
		"profit_margin":     reference.RealizedMarginPct,
		"profit_amount_usd": reference.NetProfitUSD,
		"pricing_result":    resultJSON,
	}
	if result.SelectedPolicy != nil {
		updates["policy_id"] = result.SelectedPolicy.PolicyID
	}

	dbResult := dao.db.WithContext(ctx).
		Model(&entity.Product{}).
		Where("id = ?", productID).
		Updates(updates)

	if dbResult.Error != nil {
		return fmt.Errorf("failed to update product: %w", dbResult.Error)
	}
	if dbResult.RowsAffected == 0 {
		return fmt.Errorf("product not found: %s", productID)
	}
	return nil
}
