package model

// 配送定价基准（关税承担方）
const (
	PricingBasisDDP = "DDP" // 卖家承担关税（含税价）
	PricingBasisDDU = "DDU" // 买家到付关税
)

// 区域类型常量（政策区域费率表中的 zone_type）
const (
	ZoneTypeReference = "USA"   // 基准区域（定价主市场）
	ZoneTypeOther     = "OTHER" // 非基准区域
)

// PricingRequest 目标利润率定价请求
type PricingRequest struct {
	ProductID     string  `json:"product_id,omitempty"` // 商品 ID（提供时回写计算结果）
	CostJPY       float64 `json:"cost_jpy"`             // 仕入成本（日元）
	WeightKG      float64 `json:"weight_kg"`            // 重量（千克）
	HTSCode       string  `json:"hts_code"`             // 关税分类编码
	OriginCountry string  `json:"origin_country,omitempty"`
	TargetMargin  float64 `json:"target_margin"` // 目标利润率（0 < m < 1）
}

// ZoneMargin 单区域的利润评估结果
type ZoneMargin struct {
	ZoneCode          string  `json:"zone_code"`
	ZoneName          string  `json:"zone_name"`
	PricingBasis      string  `json:"pricing_basis"` // DDP/DDU
	ActualCostUSD     float64 `json:"actual_cost_usd"`
	DisplayFeeUSD     float64 `json:"display_shipping_usd"`
	HandlingFeeUSD    float64 `json:"handling_fee_usd"`
	UnrecoveredUSD    float64 `json:"unrecovered_usd"` // 回收不足额 = 实际成本 - (展示运费 + 手续费)
	NetProfitUSD      float64 `json:"net_profit_usd"`
	RealizedMarginPct float64 `json:"realized_margin"` // 实现利润率（小数）
}

// SelectedPolicy 自动选择的配送政策摘要
type SelectedPolicy struct {
	PolicyID     int64   `json:"policy_id"`
	PolicyName   string  `json:"policy_name"`
	PricingBasis string  `json:"pricing_basis"`
	WeightMinKG  float64 `json:"weight_min_kg"`
	WeightMaxKG  float64 `json:"weight_max_kg"`
	TariffSample float64 `json:"tariff_sample"`
}

// PricingResult 定价结果
// 售价针对基准区域求解一次，其余区域用同一售价正向评估实现利润率
type PricingResult struct {
	ProductPriceUSD   float64               `json:"product_price_usd"`
	ProductPriceJPY   float64               `json:"product_price_jpy"`
	ReferenceZoneCode string                `json:"reference_zone_code"` // Zones 中作为求解基准的区域编码
	Zones             map[string]ZoneMargin `json:"zones"`
	SelectedPolicy    *SelectedPolicy       `json:"selected_policy"`
	TariffRate        float64               `json:"tariff_rate"`
	TaxRefundJPY      float64               `json:"tax_refund_jpy"`
	ExchangeRate      float64               `json:"exchange_rate"`
	DivergenceWarning bool                  `json:"divergence_warning"` // 区域间实现利润率偏离超过容差
}
