package quote

import (
	"context"
	"fmt"

	gojson "github.com/goccy/go-json"

	"eops/ratesync/internal/business"
	"eops/ratesync/internal/domains/common"
	"eops/ratesync/internal/domains/common/job"
	"eops/ratesync/internal/domains/common/response"
	"eops/ratesync/internal/model"
)

// QuoteHandler 运费试算 Handler
type QuoteHandler struct {
	ctx  context.Context
	meta *job.Meta
	req  *model.QuoteRequest
}

// NewQuoteHandler 创建试算 Handler
// 解析标准化 Job 消息中的业务数据
func NewQuoteHandler(ctx context.Context, meta *job.Meta, payload interface{}) (common.HandlerServ, error) {
	payloadBytes, err := gojson.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal payload failed: %w", err)
	}

	var req model.QuoteRequest
	if err := gojson.Unmarshal(payloadBytes, &req); err != nil {
		return nil, fmt.Errorf("unmarshal quote request failed: %w", err)
	}

	// 校验必填字段（取值合法性由聚合器校验）
	if req.DestinationCountry == "" {
		return nil, fmt.Errorf("destination_country is required")
	}

	return &QuoteHandler{
		ctx:  ctx,
		meta: meta,
		req:  &req,
	}, nil
}

// GetProcess 处理试算请求
func (h *QuoteHandler) GetProcess() *response.Response {
	result := response.NewRateResult()

	err := h.process()

	resp := &response.Response{}
	resp.WrapResponse(result, h.meta, err)

	return resp
}

// process 业务处理逻辑
func (h *QuoteHandler) process() error {
	svc, ok := h.ctx.Value("quote_service").(*business.QuoteService)
	if !ok || svc == nil {
		return fmt.Errorf("QuoteService not found in context")
	}

	return svc.ExecuteQuote(h.ctx, h.meta.RequestID, h.req)
}
