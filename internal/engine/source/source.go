// Package source 费率数据源客户端
// 每个数据源自带独立的区域体系与重量段表结构，客户端负责把原始费率行
// 归一化为统一的 CarrierRateEntry
package source

import (
	"context"

	"eops/ratesync/internal/engine/weight"
	"eops/ratesync/internal/model"
)

// 数据源 ID
const (
	IDCourier = "courier"
	IDPost    = "post"
)

// Client 费率数据源客户端接口
type Client interface {
	// ID 数据源标识
	ID() string
	// Class 该数据源承运商的计费重量规则分类
	Class() weight.Class
	// Query 查询覆盖指定区域、实际重量命中重量段的费率
	// 重量段匹配为双闭区间：weight_from ≤ w ≤ weight_to
	Query(ctx context.Context, zoneIDs []int64, weightKG float64) ([]model.CarrierRateEntry, error)
}
