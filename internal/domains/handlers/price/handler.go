package price

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

// PriceHandler 目标利润率定价 Handler
type PriceHandler struct {
	ctx  context.Context
	meta *job.Meta
	req  *model.PricingRequest
}

// NewPriceHandler 创建定价 Handler
func NewPriceHandler(ctx context.Context, meta *job.Meta, payload interface{}) (common.HandlerServ, error) {
	payloadBytes, err := gojson.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal payload failed: %w", err)
	}

	var req model.PricingRequest
	if err := gojson.Unmarshal(payloadBytes, &req); err != nil {
		return nil, fmt.Errorf("unmarshal pricing request failed: %w", err)
	}

	// 校验必填字段（取值合法性由定价服务校验）
	if req.CostJPY == 0 {
		return nil, fmt.Errorf("cost_jpy is required")
	}
	if req.TargetMargin == 0 {
		return nil, fmt.Errorf("target_margin is required")
	}

	return &PriceHandler{
		ctx:  ctx,
		meta: meta,
		req:  &req,
	}, nil
}

// GetProcess 处理定价请求
func (h *PriceHandler) GetProcess() *response.Response {
	result := response.NewRateResult()

	err := h.process()

	resp := &response.Response{}
	resp.WrapResponse(result, h.meta, err)

	return resp
}

// process 业务处理逻辑
func (h *PriceHandler) process() error {
	svc, ok := h.ctx.Value("pricing_service").(*business.PricingService)
	if !ok || svc == nil {
		return fmt.Errorf("PricingService not found in context")
	}

	return svc.ExecutePricing(h.ctx, h.meta.RequestID, h.req)
}
