package source

import (
	"context"
	"math"
	"strings"

	"eops/ratesync/internal/engine/weight"
	"eops/ratesync/internal/model"
)

// CourierRateRow 快递数据源联表费率行（费率 + 服务元数据 + 区域）
type CourierRateRow struct {
	RateID        int64
	ServiceCode   string
	ServiceNameJA string
	ServiceNameEN string
	ServiceType   string
	ZoneCode      string
	ZoneName      string

	WeightFromKG float64
	WeightToKG   float64
	RateJPY      float64

	FuelIncluded bool
	FuelRatePct  *float64
	DiscountPct  *float64

	DeliveryDaysMin int
	DeliveryDaysMax int
}

// CourierRepo 快递费率仓库
type CourierRepo interface {
	RatesForZones(ctx context.Context, zoneIDs []int64, weightKG float64) ([]CourierRateRow, error)
}

// CourierClient 快递数据源客户端（Eloji/CPaSS 系渠道）
type CourierClient struct {
	repo CourierRepo
}

// NewCourierClient 创建快递数据源客户端
func NewCourierClient(repo CourierRepo) *CourierClient {
	return &CourierClient{repo: repo}
}

// ID 数据源标识
func (c *CourierClient) ID() string {
	return IDCourier
}

// Class 快递渠道按商业快递规则取计费重量
func (c *CourierClient) Class() weight.Class {
	return weight.ClassPremium
}

// carrierIdentity 按服务编码推导承运商标识
func carrierIdentity(serviceCode string) (code, name string) {
	s := strings.ToUpper(serviceCode)
	switch {
	case strings.Contains(s, "DHL"):
		return "ELOJI_DHL", "Eloji DHL"
	case strings.Contains(s, "FEDEX"):
		return "ELOJI_FEDEX", "Eloji FedEx"
	case strings.Contains(s, "UPS"):
		return "ELOJI_UPS", "Eloji UPS"
	case strings.Contains(s, "SPEEDPAK"):
		return "SPEEDPAK", "SpeedPAK"
	case strings.HasPrefix(s, "CPASS"):
		return "CPASS", "CPaSS"
	default:
		return "ELOJI", "Eloji"
	}
}

// Query 查询快递费率
// Eloji DHL 专属折扣在此处折入基础运费，下游燃油附加费按折后价计算
func (c *CourierClient) Query(ctx context.Context, zoneIDs []int64, weightKG float64) ([]model.CarrierRateEntry, error) {
	rows, err := c.repo.RatesForZones(ctx, zoneIDs, weightKG)
	if err != nil {
		return nil, err
	}

	entries := make([]model.CarrierRateEntry, 0, len(rows))
	for _, row := range rows {
		if weightKG < row.WeightFromKG || weightKG > row.WeightToKG {
			continue
		}

		carrierCode, carrierName := carrierIdentity(row.ServiceCode)

		base := row.RateJPY
		discount := 0.0
		if carrierCode == "ELOJI_DHL" && row.DiscountPct != nil && *row.DiscountPct > 0 {
			discount = *row.DiscountPct
			base = math.Round(row.RateJPY * (100 - discount) / 100)
		}

		fuelRate := 0.0
		hasFuel := row.FuelRatePct != nil
		if hasFuel {
			fuelRate = *row.FuelRatePct
		}

		serviceName := row.ServiceNameEN
		if serviceName == "" {
			serviceName = row.ServiceNameJA
		}

		entries = append(entries, model.CarrierRateEntry{
			RateID:      row.RateID,
			SourceID:    IDCourier,
			CarrierCode: carrierCode,
			CarrierName: carrierName,
			ServiceCode: row.ServiceCode,
			ServiceName: serviceName,
			ServiceType: row.ServiceType,
			ZoneCode:    row.ZoneCode,
			ZoneName:    row.ZoneName,

			WeightFromKG: row.WeightFromKG,
			WeightToKG:   row.WeightToKG,

			BaseRateJPY:     base,
			ListRateJPY:     row.RateJPY,
			DiscountRatePct: discount,
			FuelIncluded:    row.FuelIncluded,
			FuelRatePct:     fuelRate,
			HasFuelSchedule: hasFuel,

			DeliveryDaysMin: row.DeliveryDaysMin,
			DeliveryDaysMax: row.DeliveryDaysMax,

			Tracking:       true,
			SignatureAvail: true,
		})
	}
	return entries, nil
}
