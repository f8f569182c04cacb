package mysql

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"eops/ratesync/internal/engine/source"
	"eops/ratesync/internal/entity"
)

// CourierDAO 快递数据源访问对象
// 同时充当快递侧的区域仓库与费率仓库
type CourierDAO struct {
	db *gorm.DB
}

// NewCourierDAO 创建 CourierDAO 实例
func NewCourierDAO(db *gorm.DB) *CourierDAO {
	return &CourierDAO{db: db}
}

// ZonesForCountry 查询目的国覆盖的快递区域编号
func (dao *CourierDAO) ZonesForCountry(ctx context.Context, countryCode string) ([]int64, error) {
	var zoneIDs []int64
	err := dao.db.WithContext(ctx).
		Model(&entity.CourierZoneCountry{}).
		Where("country_code = ?", countryCode).
		Distinct().
		Pluck("zone_id", &zoneIDs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query courier zones: %w", err)
	}
	return zoneIDs, nil
}

// courierRateJoined 费率联表行（费率 + 服务元数据）
type courierRateJoined struct {
	RateID          int64    `gorm:"column:rate_id"`
	ZoneID          int64    `gorm:"column:zone_id"`
	ServiceCode     string   `gorm:"column:service_code"`
	ServiceNameJA   string   `gorm:"column:service_name_ja"`
	ServiceNameEN   string   `gorm:"column:service_name_en"`
	ServiceType     string   `gorm:"column:service_type"`
	FuelIncluded    bool     `gorm:"column:fuel_surcharge_included"`
	FuelRatePct     *float64 `gorm:"column:fuel_surcharge_rate"`
	DiscountPct     *float64 `gorm:"column:discount_rate"`
	DeliveryDaysMin int      `gorm:"column:delivery_days_min"`
	DeliveryDaysMax int      `gorm:"column:delivery_days_max"`
	WeightFromKG    float64  `gorm:"column:weight_from_kg"`
	WeightToKG      float64  `gorm:"column:weight_to_kg"`
	RateJPY         float64  `gorm:"column:rate_jpy"`
}

// RatesForZones 查询指定区域、命中重量段的快递费率
func (dao *CourierDAO) RatesForZones(ctx context.Context, zoneIDs []int64, weightKG float64) ([]source.CourierRateRow, error) {
	if len(zoneIDs) == 0 {
		return nil, nil
	}

	var joined []courierRateJoined
	err := dao.db.WithContext(ctx).
		Table("courier_rates AS r").
		Select("r.id AS rate_id, r.zone_id, r.weight_from_kg, r.weight_to_kg, r.rate_jpy, "+
			"s.service_code, s.service_name_ja, s.service_name_en, s.service_type, "+
			"s.fuel_surcharge_included, s.fuel_surcharge_rate, s.discount_rate, "+
			"s.delivery_days_min, s.delivery_days_max").
		Joins("JOIN courier_services AS s ON s.id = r.service_id").
		Where("r.zone_id IN ?", zoneIDs).
		Where("r.weight_from_kg <= ? AND r.weight_to_kg >= ?", weightKG, weightKG).
		Scan(&joined).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query courier rates: %w", err)
	}

	zoneCodes, err := dao.zoneCodes(ctx, zoneIDs)
	if err != nil {
		return nil, err
	}

	rows := make([]source.CourierRateRow, 0, len(joined))
	for _, j := range joined {
		code := zoneCodes[j.ZoneID]
		rows = append(rows, source.CourierRateRow{
			RateID:        j.RateID,
			ServiceCode:   j.ServiceCode,
			ServiceNameJA: j.ServiceNameJA,
			ServiceNameEN: j.ServiceNameEN,
			ServiceType:   j.ServiceType,
			ZoneCode:      code,
			ZoneName:      code,

			WeightFromKG: j.WeightFromKG,
			WeightToKG:   j.WeightToKG,
			RateJPY:      j.RateJPY,

			FuelIncluded: j.FuelIncluded,
			FuelRatePct:  j.FuelRatePct,
			DiscountPct:  j.DiscountPct,

			DeliveryDaysMin: j.DeliveryDaysMin,
			DeliveryDaysMax: j.DeliveryDaysMax,
		})
	}
	return rows, nil
}

// zoneCodes 区域编号到区域编码的映射
func (dao *CourierDAO) zoneCodes(ctx context.Context, zoneIDs []int64) (map[int64]string, error) {
	var mappings []entity.CourierZoneCountry
	err := dao.db.WithContext(ctx).
		Where("zone_id IN ?", zoneIDs).
		Find(&mappings).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query courier zone codes: %w", err)
	}

	codes := make(map[int64]string, len(mappings))
	for _, m := range mappings {
		if _, ok := codes[m.ZoneID]; !ok {
			codes[m.ZoneID] = m.ZoneCode
		}
	}
	return codes, nil
}
