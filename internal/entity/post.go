package entity

// PostZone 邮政区域（post 数据源自有区域体系，与 courier 不共享编号）
type PostZone struct {
	ID       int64  `gorm:"column:id;primaryKey;autoIncrement"`
	ZoneCode string `gorm:"column:zone_code;type:varchar(16);not null;uniqueIndex"`
	ZoneName string `gorm:"column:zone_name;type:varchar(64)"`
}

// TableName 指定表名
func (PostZone) TableName() string {
	return "post_zones"
}

// PostCountryZone 邮政国家-区域映射
type PostCountryZone struct {
	ID          int64  `gorm:"column:id;primaryKey;autoIncrement"`
	CountryCode string `gorm:"column:country_code;type:char(2);not null;index:idx_country"`
	ZoneID      int64  `gorm:"column:zone_id;not null"`
}

// TableName 指定表名
func (PostCountryZone) TableName() string {
	return "post_country_zones"
}

// PostService 邮政服务（EMS、小形包装物等）
type PostService struct {
	ID              int64  `gorm:"column:id;primaryKey;autoIncrement"`
	ServiceCode     string `gorm:"column:service_code;type:varchar(64);not null;uniqueIndex"`
	ServiceName     string `gorm:"column:service_name;type:varchar(128)"`
	ServiceType     string `gorm:"column:service_type;type:varchar(16);not null;default:'ECONOMY'"`
	CarrierCode     string `gorm:"column:carrier_code;type:varchar(32);not null"`
	CarrierName     string `gorm:"column:carrier_name;type:varchar(64)"`
	DeliveryDaysMin int    `gorm:"column:delivery_days_min;not null;default:3"`
	DeliveryDaysMax int    `gorm:"column:delivery_days_max;not null;default:14"`
}

// TableName 指定表名
func (PostService) TableName() string {
	return "post_services"
}

// PostRate 邮政费率行（克为单位的重量段）
type PostRate struct {
	ID           int64   `gorm:"column:id;primaryKey;autoIncrement"`
	ServiceID    int64   `gorm:"column:service_id;not null;index:idx_service"`
	ZoneID       int64   `gorm:"column:zone_id;not null;index:idx_zone_weight"`
	WeightFromG  float64 `gorm:"column:weight_from_g;type:decimal(10,1);not null;index:idx_zone_weight"`
	WeightToG    float64 `gorm:"column:weight_to_g;type:decimal(10,1);not null"`
	BasePriceJPY float64 `gorm:"column:base_price_jpy;type:decimal(12,2);not null"`
}

// TableName 指定表名
func (PostRate) TableName() string {
	return "post_rates"
}
