package mysql

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"eops/ratesync/internal/entity"
)

// FxDAO 汇率快照访问对象
type FxDAO struct {
	db *gorm.DB
}

// NewFxDAO 创建 FxDAO 实例
func NewFxDAO(db *gorm.DB) *FxDAO {
	return &FxDAO{db: db}
}

// Latest 查询最新一条汇率（JPY per USD）
func (dao *FxDAO) Latest(ctx context.Context) (float64, error) {
	var row entity.ExchangeRate
	err := dao.db.WithContext(ctx).
		Order("created_at DESC").
		First(&row).Error
	if err != nil {
		return 0, fmt.Errorf("failed to query latest exchange rate: %w", err)
	}
	return row.RateJPY, nil
}
