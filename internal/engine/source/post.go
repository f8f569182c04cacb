package source

import (
	"context"
	"strings"

	"eops/ratesync/internal/engine/weight"
	"eops/ratesync/internal/model"
)

// PostRateRow 邮政数据源联表费率行（克为单位的重量段）
type PostRateRow struct {
	RateID      int64
	ServiceCode string
	ServiceName string
	ServiceType string
	CarrierCode string
	CarrierName string
	ZoneCode    string
	ZoneName    string

	WeightFromG  float64
	WeightToG    float64
	BasePriceJPY float64

	DeliveryDaysMin int
	DeliveryDaysMax int
}

// PostRepo 邮政费率仓库
type PostRepo interface {
	RatesForZones(ctx context.Context, zoneIDs []int64, weightG float64) ([]PostRateRow, error)
}

// PostClient 邮政数据源客户端（日本郵便系渠道）
type PostClient struct {
	repo PostRepo
}

// NewPostClient 创建邮政数据源客户端
func NewPostClient(repo PostRepo) *PostClient {
	return &PostClient{repo: repo}
}

// ID 数据源标识
func (c *PostClient) ID() string {
	return IDPost
}

// Class 邮政渠道按邮政规则取计费重量
func (c *PostClient) Class() weight.Class {
	return weight.ClassPostal
}

// Query 查询邮政费率
// 邮政无燃油费率表；EMS 自带追踪与保险，书留（REG）服务自带追踪
func (c *PostClient) Query(ctx context.Context, zoneIDs []int64, weightKG float64) ([]model.CarrierRateEntry, error) {
	weightG := weightKG * 1000

	rows, err := c.repo.RatesForZones(ctx, zoneIDs, weightG)
	if err != nil {
		return nil, err
	}

	entries := make([]model.CarrierRateEntry, 0, len(rows))
	for _, row := range rows {
		if weightG < row.WeightFromG || weightG > row.WeightToG {
			continue
		}

		service := strings.ToUpper(row.ServiceCode)
		isEMS := strings.Contains(service, "EMS")
		isRegistered := strings.Contains(service, "REG")

		entries = append(entries, model.CarrierRateEntry{
			RateID:      row.RateID,
			SourceID:    IDPost,
			CarrierCode: row.CarrierCode,
			CarrierName: row.CarrierName,
			ServiceCode: row.ServiceCode,
			ServiceName: row.ServiceName,
			ServiceType: row.ServiceType,
			ZoneCode:    row.ZoneCode,
			ZoneName:    row.ZoneName,

			WeightFromKG: row.WeightFromG / 1000,
			WeightToKG:   row.WeightToG / 1000,

			BaseRateJPY: row.BasePriceJPY,
			ListRateJPY: row.BasePriceJPY,

			DeliveryDaysMin: row.DeliveryDaysMin,
			DeliveryDaysMax: row.DeliveryDaysMax,

			Tracking:         isEMS || isRegistered,
			InsuranceInclude: isEMS,
		})
	}
	return entries, nil
}
