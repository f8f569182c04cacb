package model

// QuoteRequest 运费试算请求（由上游以 Job 形式投递）
type QuoteRequest struct {
	WeightG            float64 `json:"weight_g"`                     // 实际重量（克）
	LengthCM           float64 `json:"length_cm,omitempty"`          // 长（厘米，可选）
	WidthCM            float64 `json:"width_cm,omitempty"`           // 宽（厘米，可选）
	HeightCM           float64 `json:"height_cm,omitempty"`          // 高（厘米，可选）
	DestinationCountry string  `json:"destination_country"`          // 目的国（ISO2）
	DeclaredValueJPY   float64 `json:"declared_value_jpy,omitempty"` // 申报价值（日元，可选）

	NonCommercial bool `json:"non_commercial,omitempty"` // 小口货件（通关手续费固定低档），默认商业货件
}

// 服务类型常量（费率表中的 service_type）
const (
	ServiceTypeEconomy  = "ECONOMY"
	ServiceTypeStandard = "STANDARD"
	ServiceTypeExpress  = "EXPRESS"
)

// CarrierRateEntry 单条原始费率（数据源返回的基础报价，未叠加附加费）
// 折扣已在数据源内应用到 BaseRateJPY（燃油附加费按折后价计算）
type CarrierRateEntry struct {
	RateID      int64  `json:"rate_id"`
	SourceID    string `json:"source_id"` // 来源数据源（courier/post）
	CarrierCode string `json:"carrier_code"`
	CarrierName string `json:"carrier_name"`
	ServiceCode string `json:"service_code"`
	ServiceName string `json:"service_name"`
	ServiceType string `json:"service_type"` // ECONOMY/STANDARD/EXPRESS
	ZoneCode    string `json:"zone_code"`
	ZoneName    string `json:"zone_name"`

	WeightFromKG float64 `json:"weight_from_kg"`
	WeightToKG   float64 `json:"weight_to_kg"`

	BaseRateJPY      float64 `json:"base_rate_jpy"`      // 基础运费（已折扣）
	ListRateJPY      float64 `json:"list_rate_jpy"`      // 折扣前牌价
	DiscountRatePct  float64 `json:"discount_rate_pct"`  // 应用的折扣率（百分比，0 表示无折扣）
	FuelIncluded     bool    `json:"fuel_included"`      // 燃油附加费是否已含在基础运费中
	FuelRatePct      float64 `json:"fuel_rate_pct"`      // 燃油附加费率（百分比），0 表示无
	HasFuelSchedule  bool    `json:"has_fuel_schedule"`  // 该数据源是否提供燃油费率表
	DeliveryDaysMin  int     `json:"delivery_days_min"`
	DeliveryDaysMax  int     `json:"delivery_days_max"`
	Tracking         bool    `json:"tracking"`
	InsuranceInclude bool    `json:"insurance_included"`
	SignatureAvail   bool    `json:"signature_available"`
}

// SurchargeSet 附加费明细（均为日元，非负）
// 仅通关手续费依赖（基础运费+燃油）作为计费基数，其余各项相互独立
type SurchargeSet struct {
	FuelJPY        float64 `json:"fuel_surcharge_jpy"`
	CustomsJPY     float64 `json:"customs_clearance_jpy"`
	PeakJPY        float64 `json:"peak_surcharge_jpy"`
	ResidentialJPY float64 `json:"residential_surcharge_jpy"`
	RemoteAreaJPY  float64 `json:"remote_area_surcharge_jpy"`
	InsuranceJPY   float64 `json:"insurance_fee_jpy"`
	SignatureJPY   float64 `json:"signature_fee_jpy"`
}

// Total 附加费合计
func (s *SurchargeSet) Total() float64 {
	return s.FuelJPY + s.CustomsJPY + s.PeakJPY + s.ResidentialJPY +
		s.RemoteAreaJPY + s.InsuranceJPY + s.SignatureJPY
}

// ShippingOffer 完整报价（基础费率 + 重量解析 + 附加费 + 双币种合计）
// 不变式：TotalPriceJPY = BaseRateJPY + Surcharges.Total()
type ShippingOffer struct {
	OfferID     string `json:"offer_id"`
	SourceID    string `json:"source_id"`
	CarrierCode string `json:"carrier_code"`
	CarrierName string `json:"carrier_name"`
	ServiceCode string `json:"service_code"`
	ServiceName string `json:"service_name"`
	ServiceType string `json:"service_type"`
	ZoneCode    string `json:"zone_code"`
	ZoneName    string `json:"zone_name"`

	WeightUsedG       float64 `json:"weight_used_g"`       // 实际重量（克）
	VolumetricWeightG float64 `json:"volumetric_weight_g"` // 容积重量（克）
	ChargeableWeightG float64 `json:"chargeable_weight_g"` // 计费重量（克）

	BaseRateJPY float64      `json:"base_rate_jpy"`
	Surcharges  SurchargeSet `json:"surcharges"`

	TotalPriceJPY float64 `json:"total_price_jpy"`
	TotalPriceUSD float64 `json:"total_price_usd"`

	DeliveryDaysMin int `json:"delivery_days_min"`
	DeliveryDaysMax int `json:"delivery_days_max"`

	Tracking          bool `json:"tracking"`
	InsuranceIncluded bool `json:"insurance_included"`
	SignatureAvail    bool `json:"signature_available"`
}

// TierGroup 按服务类型分组后的视图（最优 + 全量排序列表）
type TierGroup struct {
	Cheapest *ShippingOffer  `json:"cheapest"`
	Offers   []ShippingOffer `json:"offers"`
}

// QuoteResult 运费试算结果
// Warnings 记录降级信息（部分数据源失败/无覆盖），不影响其余报价返回
type QuoteResult struct {
	Offers       []ShippingOffer      `json:"offers"`
	Tiers        map[string]TierGroup `json:"tiers"`
	Warnings     []string             `json:"warnings"`
	ExchangeRate float64              `json:"exchange_rate"` // 本次计算使用的 JPY→USD 汇率
}
