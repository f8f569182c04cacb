package entity

// CourierService 快递渠道服务（courier 数据源）
// 费率调度元数据：燃油附加费是否含在基础运费、费率、指定渠道折扣率
type CourierService struct {
	ID                    int64    `gorm:"column:id;primaryKey;autoIncrement"`
	ServiceCode           string   `gorm:"column:service_code;type:varchar(64);not null;uniqueIndex"`
	ServiceNameJA         string   `gorm:"column:service_name_ja;type:varchar(128)"`
	ServiceNameEN         string   `gorm:"column:service_name_en;type:varchar(128)"`
	ServiceType           string   `gorm:"column:service_type;type:varchar(16);not null;default:'STANDARD'"`
	FuelSurchargeIncluded bool     `gorm:"column:fuel_surcharge_included;not null;default:false"`
	FuelSurchargeRate     *float64 `gorm:"column:fuel_surcharge_rate;type:decimal(6,3)"`
	DiscountRate          *float64 `gorm:"column:discount_rate;type:decimal(6,3)"`
	DeliveryDaysMin       int      `gorm:"column:delivery_days_min;not null;default:5"`
	DeliveryDaysMax       int      `gorm:"column:delivery_days_max;not null;default:14"`
}

// TableName 指定表名
func (CourierService) TableName() string {
	return "courier_services"
}

// CourierZoneCountry 快递区域-国家映射（courier 数据源自有区域体系）
type CourierZoneCountry struct {
	ID            int64  `gorm:"column:id;primaryKey;autoIncrement"`
	ZoneID        int64  `gorm:"column:zone_id;not null;index:idx_zone"`
	CountryCode   string `gorm:"column:country_code;type:char(2);not null;index:idx_country"`
	CountryNameJA string `gorm:"column:country_name_ja;type:varchar(64)"`
	ZoneCode      string `gorm:"column:zone_code;type:varchar(16)"`
}

// TableName 指定表名
func (CourierZoneCountry) TableName() string {
	return "courier_zone_countries"
}

// CourierRate 快递费率行（区域 × 重量段 → 基础运费）
type CourierRate struct {
	ID           int64   `gorm:"column:id;primaryKey;autoIncrement"`
	ServiceID    int64   `gorm:"column:service_id;not null;index:idx_service"`
	ZoneID       int64   `gorm:"column:zone_id;not null;index:idx_zone_weight"`
	WeightFromKG float64 `gorm:"column:weight_from_kg;type:decimal(8,3);not null;index:idx_zone_weight"`
	WeightToKG   float64 `gorm:"column:weight_to_kg;type:decimal(8,3);not null"`
	RateJPY      float64 `gorm:"column:rate_jpy;type:decimal(12,2);not null"`
}

// TableName 指定表名
func (CourierRate) TableName() string {
	return "courier_rates"
}
