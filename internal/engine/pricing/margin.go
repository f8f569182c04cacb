// Package pricing 目标利润率定价：基准区域反解售价、全区域正向评估、配送政策匹配
package pricing

import (
	"fmt"

	"eops/ratesync/pkg/errorutil"
)

// 默认利润率偏离容差（0.1 个百分点）
const defaultDivergenceTolerance = 0.001

// ZoneQuote 单区域的政策费率输入（均为美元）
type ZoneQuote struct {
	ZoneCode           string
	ZoneName           string
	Basis              string // DDP/DDU
	ActualCostUSD      float64
	DisplayShippingUSD float64
	HandlingFeeUSD     float64
}

// UnrecoveredGapUSD 回收不足额：实际运费成本超出（展示运费+手续费）的部分
// 可为负（展示运费覆盖有余）
func (z ZoneQuote) UnrecoveredGapUSD() float64 {
	return z.ActualCostUSD - (z.DisplayShippingUSD + z.HandlingFeeUSD)
}

// Forward 正向评估：给定售价计算净利与实现利润率
func Forward(priceUSD, costUSD, gapUSD, refundUSD float64) (profitUSD, margin float64) {
	profitUSD = priceUSD - costUSD - gapUSD + refundUSD
	if priceUSD > 0 {
		margin = profitUSD / priceUSD
	}
	return profitUSD, margin
}

// ReverseInput 反解售价的输入
// Reference 为基准区域；Others 用同一售价正向评估（单一代表区域近似全部非基准区域）
type ReverseInput struct {
	CostUSD      float64
	TaxRefundUSD float64
	TargetMargin float64
	Reference    ZoneQuote
	Others       []ZoneQuote
}

// ZoneOutcome 单区域的正向评估结果
type ZoneOutcome struct {
	Quote          ZoneQuote
	NetProfitUSD   float64
	RealizedMargin float64
}

// ReverseOutput 反解结果：解出的售价 + 各区域实现利润率
type ReverseOutput struct {
	PriceUSD  float64
	Reference ZoneOutcome
	Others    []ZoneOutcome
	Diverged  bool
}

// Engine 定价引擎
type Engine struct {
	tolerance float64
}

// NewEngine 创建定价引擎，tolerance ≤ 0 时取默认容差
func NewEngine(tolerance float64) *Engine {
	if tolerance <= 0 {
		tolerance = defaultDivergenceTolerance
	}
	return &Engine{tolerance: tolerance}
}

// Reverse 针对基准区域反解售价，再用同一售价正向评估全部区域
// price = (cost + gap - refund) / (1 - m)，保证基准区域恰好实现目标利润率
func (e *Engine) Reverse(in ReverseInput) (*ReverseOutput, error) {
	if in.CostUSD <= 0 {
		return nil, errorutil.InvalidMarginRequest(fmt.Sprintf("cost must be positive, got %v", in.CostUSD))
	}
	if in.TargetMargin <= 0 || in.TargetMargin >= 1 {
		return nil, errorutil.InvalidMarginRequest(fmt.Sprintf("target margin must be in (0, 1), got %v", in.TargetMargin))
	}

	refGap := in.Reference.UnrecoveredGapUSD()
	price := (in.CostUSD + refGap - in.TaxRefundUSD) / (1 - in.TargetMargin)
	if price <= 0 {
		return nil, errorutil.InvalidMarginRequest(
			fmt.Sprintf("solved price %v is not positive, refund exceeds cost plus gap", price))
	}

	out := &ReverseOutput{
		PriceUSD:  price,
		Reference: e.evaluate(price, in, in.Reference),
		Others:    make([]ZoneOutcome, 0, len(in.Others)),
	}

	minMargin, maxMargin := out.Reference.RealizedMargin, out.Reference.RealizedMargin
	for _, zq := range in.Others {
		outcome := e.evaluate(price, in, zq)
		out.Others = append(out.Others, outcome)
		if outcome.RealizedMargin < minMargin {
			minMargin = outcome.RealizedMargin
		}
		if outcome.RealizedMargin > maxMargin {
			maxMargin = outcome.RealizedMargin
		}
	}
	out.Diverged = maxMargin-minMargin > e.tolerance

	return out, nil
}

func (e *Engine) evaluate(price float64, in ReverseInput, zq ZoneQuote) ZoneOutcome {
	profit, margin := Forward(price, in.CostUSD, zq.UnrecoveredGapUSD(), in.TaxRefundUSD)
	return ZoneOutcome{Quote: zq, NetProfitUSD: profit, RealizedMargin: margin}
}
