package entity

import "time"

// ExchangeRate 汇率快照行（JPY per USD），按 created_at 取最新一条
type ExchangeRate struct {
	ID        int64     `gorm:"column:id;primaryKey;autoIncrement"`
	RateJPY   float64   `gorm:"column:rate_jpy;type:decimal(10,4);not null"`
	Source    string    `gorm:"column:source;type:varchar(32)"`
	CreatedAt time.Time `gorm:"column:created_at;not null;index:idx_created"`
}

// TableName 指定表名
func (ExchangeRate) TableName() string {
	return "exchange_rates"
}
