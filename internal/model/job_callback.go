package model

// RateJobCallback 计算完成回调消息（ratesync → 上游 callback consumer）
type RateJobCallback struct {
	RequestID   string         `json:"request_id"`               // 对应请求的 request_id（链路追踪）
	ActionType  string         `json:"action_type"`              // shipping_quote / margin_price
	ProductID   string         `json:"product_id,omitempty"`     // 商品 ID（定价任务时返回）
	Status      string         `json:"status"`                   // SUCCESS / FAILED
	Quote       *QuoteResult   `json:"quote_result,omitempty"`   // 试算结果（成功时返回）
	Pricing     *PricingResult `json:"pricing_result,omitempty"` // 定价结果（成功时返回）
	Error       string         `json:"error,omitempty"`
	ProcessedAt int64          `json:"processed_at"` // 处理时间戳（Unix timestamp）
}

// 任务类型常量
const (
	ActionShippingQuote = "shipping_quote"
	ActionMarginPrice   = "margin_price"
)

// 回调状态常量
const (
	CallbackStatusSuccess = "SUCCESS"
	CallbackStatusFailed  = "FAILED"
)
