package mysql

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"gorm.io/gorm"

	"eops/ratesync/internal/entity"
)

// TariffDAO 关税分类编码访问对象
type TariffDAO struct {
	db *gorm.DB
}

// NewTariffDAO 创建 TariffDAO 实例
func NewTariffDAO(db *gorm.DB) *TariffDAO {
	return &TariffDAO{db: db}
}

// normalizeHTS 去掉分隔符后的纯数字编码
func normalizeHTS(code string) string {
	var b strings.Builder
	for _, r := range code {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// parseGeneralRate 解析税率文本（"Free"、"4.4%"、"5.5¢/kg + 6%" 等）
// 取文本中出现的百分比，无法解析返回 false
func parseGeneralRate(raw string) (float64, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, false
	}
	if strings.EqualFold(s, "Free") {
		return 0, true
	}

	idx := strings.Index(s, "%")
	if idx < 0 {
		return 0, false
	}
	start := idx
	for start > 0 && (s[start-1] == '.' || (s[start-1] >= '0' && s[start-1] <= '9')) {
		start--
	}
	if start == idx {
		return 0, false
	}
	v, err := strconv.ParseFloat(s[start:idx], 64)
	if err != nil {
		return 0, false
	}
	return v / 100, true
}

// RateForCode 按编码查询关税率（小数）
// 完整编码未命中时按 8/6/4/2 位前缀逐级回退；全部未命中返回 found=false
func (dao *TariffDAO) RateForCode(ctx context.Context, htsCode string) (rate float64, matchedCode string, found bool, err error) {
	normalized := normalizeHTS(htsCode)
	if normalized == "" {
		return 0, "", false, nil
	}

	for _, length := range []int{10, 8, 6, 4, 2} {
		if length > len(normalized) {
			continue
		}
		prefix := normalized[:length]

		var row entity.HTSCode
		qerr := dao.db.WithContext(ctx).
			Where("hts_number = ?", prefix).
			First(&row).Error
		if errors.Is(qerr, gorm.ErrRecordNotFound) {
			continue
		}
		if qerr != nil {
			return 0, "", false, fmt.Errorf("failed to query hts code %s: %w", prefix, qerr)
		}

		if parsed, ok := parseGeneralRate(row.GeneralRate); ok {
			return parsed, row.HTSNumber, true, nil
		}
	}
	return 0, "", false, nil
}
