// Package weight 重量解析：容积重量换算与按承运商规则选取计费重量
package weight

import "strings"

// DimensionUnit 体积尺寸单位
type DimensionUnit string

const (
	UnitCM   DimensionUnit = "cm"
	UnitInch DimensionUnit = "inch"
)

// 容积重量换算系数
const (
	metricDivisor   = 5000.0 // cm³ → kg
	imperialDivisor = 139.0  // inch³ → lb
	gramsPerKG      = 1000.0
	gramsPerLB      = 453.59237
)

// Class 计费重量规则分类
type Class int

const (
	ClassDefault Class = iota // 未知承运商，取实际与容积较大者
	ClassPremium              // 商业快递，取实际与容积较大者
	ClassPostal               // 邮政，仅当容积超过实际 2 倍时改用容积
)

// VolumetricG 计算容积重量（克）
// 任一边长缺失（≤0）视为未提供尺寸，返回 0
func VolumetricG(length, width, height float64, unit DimensionUnit) float64 {
	if length <= 0 || width <= 0 || height <= 0 {
		return 0
	}
	volume := length * width * height
	if unit == UnitInch {
		return volume / imperialDivisor * gramsPerLB
	}
	return volume / metricDivisor * gramsPerKG
}

// CarrierClass 按承运商编码推导计费重量规则
func CarrierClass(carrierCode string) Class {
	code := strings.ToUpper(carrierCode)
	switch {
	case strings.Contains(code, "DHL"),
		strings.Contains(code, "FEDEX"),
		strings.Contains(code, "UPS"),
		strings.HasPrefix(code, "ELOJI"),
		strings.HasPrefix(code, "CPASS"):
		return ClassPremium
	case strings.HasPrefix(code, "JPPOST"):
		return ClassPostal
	default:
		return ClassDefault
	}
}

// ChargeableG 计算计费重量（克）
// 商业快递取实际与容积较大者；邮政仅在容积超过实际 2 倍时采用容积
func ChargeableG(actualG, volumetricG float64, class Class) float64 {
	if class == ClassPostal {
		if volumetricG > actualG*2 {
			return volumetricG
		}
		return actualG
	}
	if volumetricG > actualG {
		return volumetricG
	}
	return actualG
}
