package mysql

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"eops/ratesync/internal/engine/source"
	"eops/ratesync/internal/entity"
)

// PostDAO 邮政数据源访问对象
type PostDAO struct {
	db *gorm.DB
}

// NewPostDAO 创建 PostDAO 实例
func NewPostDAO(db *gorm.DB) *PostDAO {
	return &PostDAO{db: db}
}

// ZonesForCountry 查询目的国覆盖的邮政区域编号
func (dao *PostDAO) ZonesForCountry(ctx context.Context, countryCode string) ([]int64, error) {
	var zoneIDs []int64
	err := dao.db.WithContext(ctx).
		Model(&entity.PostCountryZone{}).
		Where("country_code = ?", countryCode).
		Distinct().
		Pluck("zone_id", &zoneIDs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query post zones: %w", err)
	}
	return zoneIDs, nil
}

// postRateJoined 费率联表行（费率 + 服务 + 区域）
type postRateJoined struct {
	RateID          int64   `gorm:"column:rate_id"`
	ServiceCode     string  `gorm:"column:service_code"`
	ServiceName     string  `gorm:"column:service_name"`
	ServiceType     string  `gorm:"column:service_type"`
	CarrierCode     string  `gorm:"column:carrier_code"`
	CarrierName     string  `gorm:"column:carrier_name"`
	ZoneCode        string  `gorm:"column:zone_code"`
	ZoneName        string  `gorm:"column:zone_name"`
	WeightFromG     float64 `gorm:"column:weight_from_g"`
	WeightToG       float64 `gorm:"column:weight_to_g"`
	BasePriceJPY    float64 `gorm:"column:base_price_jpy"`
	DeliveryDaysMin int     `gorm:"column:delivery_days_min"`
	DeliveryDaysMax int     `gorm:"column:delivery_days_max"`
}

// RatesForZones 查询指定区域、命中重量段的邮政费率
func (dao *PostDAO) RatesForZones(ctx context.Context, zoneIDs []int64, weightG float64) ([]source.PostRateRow, error) {
	if len(zoneIDs) == 0 {
		return nil, nil
	}

	var joined []postRateJoined
	err := dao.db.WithContext(ctx).
		Table("post_rates AS r").
		Select("r.id AS rate_id, r.weight_from_g, r.weight_to_g, r.base_price_jpy, "+
			"s.service_code, s.service_name, s.service_type, s.carrier_code, s.carrier_name, "+
			"s.delivery_days_min, s.delivery_days_max, "+
			"z.zone_code, z.zone_name").
		Joins("JOIN post_services AS s ON s.id = r.service_id").
		Joins("JOIN post_zones AS z ON z.id = r.zone_id").
		Where("r.zone_id IN ?", zoneIDs).
		Where("r.weight_from_g <= ? AND r.weight_to_g >= ?", weightG, weightG).
		Scan(&joined).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query post rates: %w", err)
	}

	rows := make([]source.PostRateRow, 0, len(joined))
	for _, j := range joined {
		rows = append(rows, source.PostRateRow{
			RateID:      j.RateID,
			ServiceCode: j.ServiceCode,
			ServiceName: j.ServiceName,
			ServiceType: j.ServiceType,
			CarrierCode: j.CarrierCode,
			CarrierName: j.CarrierName,
			ZoneCode:    j.ZoneCode,
			ZoneName:    j.ZoneName,

			WeightFromG:  j.WeightFromG,
			WeightToG:    j.WeightToG,
			BasePriceJPY: j.BasePriceJPY,

			DeliveryDaysMin: j.DeliveryDaysMin,
			DeliveryDaysMax: j.DeliveryDaysMax,
		})
	}
	return rows, nil
}
