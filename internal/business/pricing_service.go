package business

import (
	"context"
	"fmt"
	"time"

	gojson "github.com/goccy/go-json"

	"eops/ratesync/internal/engine/pricing"
	"eops/ratesync/internal/entity"
	"eops/ratesync/internal/model"
	"eops/ratesync/pkg/errorutil"
	"eops/ratesync/pkg/infra/redis"
	"eops/ratesync/pkg/logger"
)

// 消费税退税估算：税込成本中的消费税部分（税率 10%）
const taxRefundFactor = 0.10 / 1.10

// TariffRepo 关税率仓库
type TariffRepo interface {
	RateForCode(ctx context.Context, htsCode string) (rate float64, matchedCode string, found bool, err error)
}

// PolicyRepo 配送政策仓库
type PolicyRepo interface {
	Candidates(ctx context.Context) ([]pricing.PolicyCandidate, error)
	ReferenceZoneRate(ctx context.Context, policyID int64) (*entity.PolicyZoneRate, error)
	OtherZoneRate(ctx context.Context, policyID int64, zoneCode string) (*entity.PolicyZoneRate, error)
}

// ProductRepo 商品仓库（定价结果回写）
type ProductRepo interface {
	UpdatePricingResult(ctx context.Context, productID string, result *model.PricingResult) error
}

// FxProvider 汇率提供方（JPY per USD）
type FxProvider interface {
	Rate(ctx context.Context) float64
}

// PricingNotifier 定价完成通知发布方
type PricingNotifier interface {
	PublishPricingComplete(ctx context.Context, channel string, notification *redis.PricingNotification) error
}

// PricingService 目标利润率定价服务
// 职责：关税率解析 → 政策匹配 → 反解售价 → 回写商品 → 通知 + 回调
type PricingService struct {
	engine        *pricing.Engine
	tariffs       TariffRepo
	policies      PolicyRepo
	products      ProductRepo
	fx            FxProvider
	notifier      PricingNotifier
	notifyChannel string
	otherZoneCode string
	publisher     CallbackPublisher
	callbackQueue string
	log           logger.Logger
}

// PricingDeps 定价服务依赖
type PricingDeps struct {
	Engine        *pricing.Engine
	Tariffs       TariffRepo
	Policies      PolicyRepo
	Products      ProductRepo // 可为 nil，此时不回写
	Fx            FxProvider
	Notifier      PricingNotifier // 可为 nil，此时不发通知
	NotifyChannel string
	OtherZoneCode string
	Publisher     CallbackPublisher
	CallbackQueue string
	Logger        logger.Logger
}

// NewPricingService 创建定价服务实例
func NewPricingService(deps PricingDeps) *PricingService {
	return &PricingService{
		engine:        deps.Engine,
		tariffs:       deps.Tariffs,
		policies:      deps.Policies,
		products:      deps.Products,
		fx:            deps.Fx,
		notifier:      deps.Notifier,
		notifyChannel: deps.NotifyChannel,
		otherZoneCode: deps.OtherZoneCode,
		publisher:     deps.Publisher,
		callbackQueue: deps.CallbackQueue,
		log:           deps.Logger,
	}
}

// ExecutePricing 执行定价并发送回调
// 可重试错误直接返回交给队列重试，不发送失败回调
func (s *PricingService) ExecutePricing(ctx context.Context, requestID string, req *model.PricingRequest) error {
	result, priceErr := s.price(ctx, req)
	if priceErr != nil && errorutil.Wrap(priceErr).Retryable {
		return priceErr
	}

	if priceErr == nil && req.ProductID != "" {
		s.persist(ctx, req.ProductID, result)
	}

	callback := model.RateJobCallback{
		RequestID:   requestID,
		ActionType:  model.ActionMarginPrice,
		ProductID:   req.ProductID,
		ProcessedAt: time.Now().Unix(),
	}
	if priceErr != nil {
		callback.Status = model.CallbackStatusFailed
		callback.Error = priceErr.Error()
	} else {
		callback.Status = model.CallbackStatusSuccess
		callback.Pricing = result
	}

	callbackJSON, err := gojson.Marshal(callback)
	if err != nil {
		return fmt.Errorf("failed to marshal callback: %w", err)
	}
	if err := s.publisher.Publish(s.callbackQueue, callbackJSON, 0, 0); err != nil {
		return fmt.Errorf("failed to publish callback: %w", err)
	}

	return priceErr
}

// price 定价主流程
func (s *PricingService) price(ctx context.Context, req *model.PricingRequest) (*model.PricingResult, error) {
	if req == nil {
		return nil, errorutil.InvalidMarginRequest("pricing request is nil")
	}
	if req.WeightKG <= 0 {
		return nil, errorutil.InvalidMarginRequest(fmt.Sprintf("weight must be positive, got %vkg", req.WeightKG))
	}

	// 汇率每次请求只取一次
	fx := s.fx.Rate(ctx)

	tariffRate, matched, found, err := s.tariffs.RateForCode(ctx, req.HTSCode)
	if err != nil {
		return nil, errorutil.SourceUnavailable("tariff lookup failed", err.Error())
	}
	if !found && req.HTSCode != "" {
		s.log.Warnf(ctx, "no tariff rate for hts code %s, assuming duty free", req.HTSCode)
	}

	candidates, err := s.policies.Candidates(ctx)
	if err != nil {
		return nil, errorutil.SourceUnavailable("policy lookup failed", err.Error())
	}

	selected, err := pricing.SelectPolicy(req.WeightKG, tariffRate, req.TargetMargin, candidates)
	if err != nil {
		return nil, err
	}

	refRow, err := s.policies.ReferenceZoneRate(ctx, selected.PolicyID)
	if err != nil {
		return nil, errorutil.SourceUnavailable("reference zone rate lookup failed", err.Error())
	}
	otherRow, err := s.policies.OtherZoneRate(ctx, selected.PolicyID, s.otherZoneCode)
	if err != nil {
		return nil, errorutil.SourceUnavailable("other zone rate lookup failed", err.Error())
	}

	taxRefundJPY := req.CostJPY * taxRefundFactor

	in := pricing.ReverseInput{
		CostUSD:      req.CostJPY / fx,
		TaxRefundUSD: taxRefundJPY / fx,
		TargetMargin: req.TargetMargin,
		Reference:    zoneQuote(refRow, selected.PricingBasis),
	}
	if otherRow != nil {
		in.Others = []pricing.ZoneQuote{zoneQuote(otherRow, selected.PricingBasis)}
	}

	out, err := s.engine.Reverse(in)
	if err != nil {
		return nil, err
	}
	if out.Diverged {
		s.log.Warnf(ctx, "realized margins diverge across zones for policy %s at price %.2f USD",
			selected.PolicyName, out.PriceUSD)
	}

	zones := make(map[string]model.ZoneMargin, 1+len(out.Others))
	zones[out.Reference.Quote.ZoneCode] = zoneMargin(out.Reference)
	for _, outcome := range out.Others {
		zones[outcome.Quote.ZoneCode] = zoneMargin(outcome)
	}

	result := &model.PricingResult{
		ProductPriceUSD:   out.PriceUSD,
		ProductPriceJPY:   out.PriceUSD * fx,
		ReferenceZoneCode: out.Reference.Quote.ZoneCode,
		Zones:             zones,
		SelectedPolicy: &model.SelectedPolicy{
			PolicyID:     selected.PolicyID,
			PolicyName:   selected.PolicyName,
			PricingBasis: selected.PricingBasis,
			WeightMinKG:  selected.WeightMinKG,
			WeightMaxKG:  selected.WeightMaxKG,
			TariffSample: selected.TariffSample,
		},
		TariffRate:        tariffRate,
		TaxRefundJPY:      taxRefundJPY,
		ExchangeRate:      fx,
		DivergenceWarning: out.Diverged,
	}

	s.log.Infof(ctx, "priced at %.2f USD (policy %s, tariff %s=%.4f, margin %.4f)",
		out.PriceUSD, selected.PolicyName, matched, tariffRate, req.TargetMargin)

	return result, nil
}

// persist 回写商品并发布通知，失败降级为日志
func (s *PricingService) persist(ctx context.Context, productID string, result *model.PricingResult) {
	if s.products != nil {
		if err := s.products.UpdatePricingResult(ctx, productID, result); err != nil {
			s.log.Errorf(ctx, "pricing write-back failed for product %s: %v", productID, err)
		}
	}
	if s.notifier != nil {
		notification := &redis.PricingNotification{
			ProductID: productID,
			PriceUSD:  result.ProductPriceUSD,
			Status:    model.CallbackStatusSuccess,
			Timestamp: time.Now().Unix(),
		}
		if err := s.notifier.PublishPricingComplete(ctx, s.notifyChannel, notification); err != nil {
			s.log.Warnf(ctx, "pricing notification failed for product %s: %v", productID, err)
		}
	}
}

// zoneQuote 政策区域费率行 → 引擎输入
func zoneQuote(row *entity.PolicyZoneRate, basis string) pricing.ZoneQuote {
	return pricing.ZoneQuote{
		ZoneCode:           row.ZoneCode,
		ZoneName:           row.ZoneName,
		Basis:              basis,
		ActualCostUSD:      row.ActualCostUSD,
		DisplayShippingUSD: row.DisplayShippingUSD,
		HandlingFeeUSD:     row.HandlingFeeUSD,
	}
}

// zoneMargin 引擎输出 → 回调视图
func zoneMargin(outcome pricing.ZoneOutcome) model.ZoneMargin {
	return model.ZoneMargin{
		ZoneCode:          outcome.Quote.ZoneCode,
		ZoneName:          outcome.Quote.ZoneName,
		PricingBasis:      outcome.Quote.Basis,
		ActualCostUSD:     outcome.Quote.ActualCostUSD,
		DisplayFeeUSD:     outcome.Quote.DisplayShippingUSD,
		HandlingFeeUSD:    outcome.Quote.HandlingFeeUSD,
		UnrecoveredUSD:    outcome.Quote.UnrecoveredGapUSD(),
		NetProfitUSD:      outcome.NetProfitUSD,
		RealizedMarginPct: outcome.RealizedMargin,
	}
}
