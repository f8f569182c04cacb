package entity

// ShippingPolicy 配送政策（售卖平台侧的运费政策模板）
// TariffSample 为该政策目标商品的典型关税率，用于按关税水平分桶匹配
type ShippingPolicy struct {
	ID           int64   `gorm:"column:id;primaryKey;autoIncrement"`
	PolicyNumber string  `gorm:"column:policy_number;type:varchar(32);not null;uniqueIndex"`
	PolicyName   string  `gorm:"column:policy_name;type:varchar(128);not null"`
	PricingBasis string  `gorm:"column:pricing_basis;type:varchar(8);not null"`
	WeightMinKG  float64 `gorm:"column:weight_min_kg;type:decimal(8,3);not null"`
	WeightMaxKG  float64 `gorm:"column:weight_max_kg;type:decimal(8,3);not null"`
	TariffSample float64 `gorm:"column:tariff_sample;type:decimal(6,4);not null;default:0"`
	Active       bool    `gorm:"column:active;not null;default:true"`
}

// TableName 指定表名
func (ShippingPolicy) TableName() string {
	return "shipping_policies"
}

// PolicyZoneRate 政策区域费率（实际成本 / 展示运费 / 手续费，均为美元）
type PolicyZoneRate struct {
	ID                 int64   `gorm:"column:id;primaryKey;autoIncrement"`
	PolicyID           int64   `gorm:"column:policy_id;not null;index:idx_policy"`
	ZoneCode           string  `gorm:"column:zone_code;type:varchar(16);not null"`
	ZoneName           string  `gorm:"column:zone_name;type:varchar(64)"`
	ZoneType           string  `gorm:"column:zone_type;type:varchar(16);not null"`
	ActualCostUSD      float64 `gorm:"column:actual_cost_usd;type:decimal(10,2);not null"`
	DisplayShippingUSD float64 `gorm:"column:display_shipping_usd;type:decimal(10,2);not null"`
	HandlingFeeUSD     float64 `gorm:"column:handling_fee_usd;type:decimal(10,2);not null;default:0"`
}

// TableName 指定表名
func (PolicyZoneRate) TableName() string {
	return "policy_zone_rates"
}
