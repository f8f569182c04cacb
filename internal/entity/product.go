package entity

import (
	"time"

	"gorm.io/datatypes"
)

// Product 商品行（定价任务可选回写对象）
// ListingData 保存平台侧原始 listing JSON，定价回写只更新价格与利润字段
type Product struct {
	ID              string         `gorm:"column:id;primaryKey;type:varchar(64)"`
	SKU             string         `gorm:"column:sku;type:varchar(64);index:idx_sku"`
	Title           string         `gorm:"column:title;type:varchar(512)"`
	HTSCode         string         `gorm:"column:hts_code;type:varchar(16)"`
	CostJPY         float64        `gorm:"column:cost_jpy;type:decimal(12,2);not null;default:0"`
	WeightKG        float64        `gorm:"column:weight_kg;type:decimal(8,3);not null;default:0"`
	PriceUSD        float64        `gorm:"column:price_usd;type:decimal(10,2)"`
	ProfitMargin    float64        `gorm:"column:profit_margin;type:decimal(6,4)"`
	ProfitAmountUSD float64        `gorm:"column:profit_amount_usd;type:decimal(10,2)"`
	PolicyID        *int64         `gorm:"column:policy_id"`
	ListingData     datatypes.JSON `gorm:"column:listing_data;type:json"`
	PricingResult   datatypes.JSON `gorm:"column:pricing_result;type:json"`
	UpdatedAt       time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName 指定表名
func (Product) TableName() string {
	return "products"
}
