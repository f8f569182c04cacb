package domains

import (
	"eops/ratesync/internal/domains/common"
	"eops/ratesync/internal/domains/handlers/price"
	"eops/ratesync/internal/domains/handlers/quote"
	"eops/ratesync/internal/model"
)

// HandlerMap 路由表（ActionType → Handler 映射）
var HandlerMap = map[string]common.HandlerServProc{
	model.ActionShippingQuote: quote.NewQuoteHandler,
	model.ActionMarginPrice:   price.NewPriceHandler,
}
