// Package zone 目的国到各数据源区域编号的解析
// courier 与 post 各自维护独立的区域体系，编号不可互换
package zone

import (
	"context"
	"strings"
)

// Repo 单数据源的国家-区域映射仓库
type Repo interface {
	ZonesForCountry(ctx context.Context, countryCode string) ([]int64, error)
}

// Resolver 区域解析器，按数据源 ID 分发到对应仓库
type Resolver struct {
	repos map[string]Repo
}

// NewResolver 创建区域解析器
func NewResolver(repos map[string]Repo) *Resolver {
	return &Resolver{repos: repos}
}

// normalizeCountry 规范化国家编码，非两位字母返回空串
func normalizeCountry(countryCode string) string {
	code := strings.ToUpper(strings.TrimSpace(countryCode))
	if len(code) != 2 {
		return ""
	}
	for _, r := range code {
		if r < 'A' || r > 'Z' {
			return ""
		}
	}
	return code
}

// ResolveZones 解析目的国在指定数据源下的区域编号列表
// 编码非法或无覆盖返回空列表；仓库查询失败返回错误（由上层按数据源失败处理）
func (r *Resolver) ResolveZones(ctx context.Context, sourceID, countryCode string) ([]int64, error) {
	code := normalizeCountry(countryCode)
	if code == "" {
		return nil, nil
	}

	repo, ok := r.repos[sourceID]
	if !ok {
		return nil, nil
	}
	return repo.ZonesForCountry(ctx, code)
}
