// Package aggregate 多数据源费率聚合：区域解析、并发查询、附加费叠加、排序分组
package aggregate

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"
	"github.com/samber/lo"

	"eops/ratesync/internal/engine/source"
	"eops/ratesync/internal/engine/surcharge"
	"eops/ratesync/internal/engine/weight"
	"eops/ratesync/internal/engine/zone"
	"eops/ratesync/internal/model"
	"eops/ratesync/pkg/errorutil"
	"eops/ratesync/pkg/logger"
)

// 单数据源默认查询超时
const defaultSourceTimeout = 3 * time.Second

// FxProvider 汇率提供方（JPY per USD），每次请求只读取一次
type FxProvider interface {
	Rate(ctx context.Context) float64
}

// Config 聚合器配置
type Config struct {
	SourceTimeout time.Duration
}

// Aggregator 费率聚合器
// 每个数据源独立超时，单源失败降级为 warning，全部失败才报错
type Aggregator struct {
	resolver *zone.Resolver
	clients  []source.Client
	fx       FxProvider
	cfg      Config
	log      logger.Logger
}

// NewAggregator 创建费率聚合器
func NewAggregator(resolver *zone.Resolver, clients []source.Client, fx FxProvider, cfg Config, log logger.Logger) *Aggregator {
	if cfg.SourceTimeout <= 0 {
		cfg.SourceTimeout = defaultSourceTimeout
	}
	return &Aggregator{
		resolver: resolver,
		clients:  clients,
		fx:       fx,
		cfg:      cfg,
		log:      log,
	}
}

// validate 请求参数校验，任何 I/O 之前完成
func validate(req *model.QuoteRequest) error {
	if req == nil {
		return errorutil.InvalidRequest("quote request is nil")
	}
	if req.WeightG <= 0 {
		return errorutil.InvalidRequest(fmt.Sprintf("weight must be positive, got %vg", req.WeightG))
	}
	if strings.TrimSpace(req.DestinationCountry) == "" {
		return errorutil.InvalidRequest("destination country is required")
	}
	if req.DeclaredValueJPY < 0 {
		return errorutil.InvalidRequest("declared value must not be negative")
	}
	return nil
}

// sourceResult 单数据源查询结果
type sourceResult struct {
	sourceID    string
	entries     []model.CarrierRateEntry
	chargeableG float64
	noCoverage  bool
	err         error
}

// Aggregate 聚合全部数据源的报价
func (a *Aggregator) Aggregate(ctx context.Context, req *model.QuoteRequest) (*model.QuoteResult, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	// 汇率每次请求只取一次，贯穿整次计算
	fx := a.fx.Rate(ctx)
	volumetricG := weight.VolumetricG(req.LengthCM, req.WidthCM, req.HeightCM, weight.UnitCM)

	ch := make(chan sourceResult, len(a.clients))
	for _, client := range a.clients {
		go a.querySource(ctx, client, req, volumetricG, ch)
	}

	var (
		offers   []model.ShippingOffer
		warnings []string
		failures *multierror.Error
		failed   int
	)
	for range a.clients {
		res := <-ch
		switch {
		case res.err != nil:
			failed++
			failures = multierror.Append(failures, fmt.Errorf("source %s: %w", res.sourceID, res.err))
			warnings = append(warnings, fmt.Sprintf("source %s unavailable: %v", res.sourceID, res.err))
			a.log.Warnf(ctx, "rate source %s failed: %v", res.sourceID, res.err)
		case res.noCoverage:
			warnings = append(warnings, fmt.Sprintf("source %s: no coverage for %s", res.sourceID, req.DestinationCountry))
		case len(res.entries) == 0:
			warnings = append(warnings, fmt.Sprintf("source %s: no rates for chargeable weight %.0fg", res.sourceID, res.chargeableG))
		default:
			for _, entry := range res.entries {
				offers = append(offers, a.buildOffer(req, entry, volumetricG, res.chargeableG, fx))
			}
		}
	}

	if failed > 0 && failed == len(a.clients) {
		return nil, errorutil.AllSourcesUnavailable("all rate sources unavailable", failures.Error())
	}

	sortOffers(offers)

	tiers := make(map[string]model.TierGroup)
	for tier, group := range lo.GroupBy(offers, func(o model.ShippingOffer) string { return o.ServiceType }) {
		cheapest := group[0]
		tiers[tier] = model.TierGroup{Cheapest: &cheapest, Offers: group}
	}

	a.log.Infof(ctx, "aggregated %d offers from %d sources, %d warnings",
		len(offers), len(a.clients), len(warnings))

	return &model.QuoteResult{
		Offers:       offers,
		Tiers:        tiers,
		Warnings:     warnings,
		ExchangeRate: fx,
	}, nil
}

// querySource 单数据源查询：独立超时
// 费率重量段按实际重量命中；计费重量仅用于报价明细，不参与查询
func (a *Aggregator) querySource(ctx context.Context, client source.Client, req *model.QuoteRequest, volumetricG float64, ch chan<- sourceResult) {
	res := sourceResult{sourceID: client.ID()}
	res.chargeableG = weight.ChargeableG(req.WeightG, volumetricG, client.Class())

	qctx, cancel := context.WithTimeout(ctx, a.cfg.SourceTimeout)
	defer cancel()

	zones, err := a.resolver.ResolveZones(qctx, client.ID(), req.DestinationCountry)
	if err != nil {
		res.err = err
		ch <- res
		return
	}
	if len(zones) == 0 {
		res.noCoverage = true
		ch <- res
		return
	}

	res.entries, res.err = client.Query(qctx, zones, req.WeightG/1000)
	ch <- res
}

// buildOffer 费率行 + 重量解析 + 附加费 → 完整报价
func (a *Aggregator) buildOffer(req *model.QuoteRequest, entry model.CarrierRateEntry, volumetricG, chargeableG, fx float64) model.ShippingOffer {
	set := surcharge.Calculate(surcharge.Input{
		BaseRateJPY:     entry.BaseRateJPY,
		FuelIncluded:    entry.FuelIncluded,
		FuelRatePct:     entry.FuelRatePct,
		HasFuelSchedule: entry.HasFuelSchedule,

		FxJPYPerUSD:   fx,
		NonCommercial: req.NonCommercial,

		DeclaredValueJPY: req.DeclaredValueJPY,
		CarrierCode:      entry.CarrierCode,
	})

	totalJPY := entry.BaseRateJPY + set.Total()
	totalUSD := 0.0
	if fx > 0 {
		totalUSD = math.Round(totalJPY/fx*100) / 100
	}

	return model.ShippingOffer{
		OfferID:     uuid.NewString(),
		SourceID:    entry.SourceID,
		CarrierCode: entry.CarrierCode,
		CarrierName: entry.CarrierName,
		ServiceCode: entry.ServiceCode,
		ServiceName: entry.ServiceName,
		ServiceType: entry.ServiceType,
		ZoneCode:    entry.ZoneCode,
		ZoneName:    entry.ZoneName,

		WeightUsedG:       req.WeightG,
		VolumetricWeightG: volumetricG,
		ChargeableWeightG: chargeableG,

		BaseRateJPY: entry.BaseRateJPY,
		Surcharges:  set,

		TotalPriceJPY: totalJPY,
		TotalPriceUSD: totalUSD,

		DeliveryDaysMin: entry.DeliveryDaysMin,
		DeliveryDaysMax: entry.DeliveryDaysMax,

		Tracking:          entry.Tracking,
		InsuranceIncluded: entry.InsuranceInclude,
		SignatureAvail:    entry.SignatureAvail,
	}
}

// sortOffers 总价升序，同价按最大时效更短者优先
func sortOffers(offers []model.ShippingOffer) {
	sort.SliceStable(offers, func(i, j int) bool {
		if offers[i].TotalPriceJPY != offers[j].TotalPriceJPY {
			return offers[i].TotalPriceJPY < offers[j].TotalPriceJPY
		}
		return offers[i].DeliveryDaysMax < offers[j].DeliveryDaysMax
	})
}
