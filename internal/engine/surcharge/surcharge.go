// Package surcharge 附加费计算：燃油、通关手续费、保险、签名、旺季、住宅、偏远地区
// 各项均为日元整数（四舍五入），仅通关手续费以（基础运费+燃油）为计费基数
package surcharge

import (
	"math"
	"strings"

	"eops/ratesync/internal/model"
)

// 通关手续费（MPF）常量，美元
const (
	customsFlatUSD      = 2.62
	customsThresholdUSD = 2500.0
	mpfRatePct          = 0.3464
	mpfMinUSD           = 32.71
	mpfMaxUSD           = 634.62
)

// 其余附加费常量
const (
	insuranceMinJPY    = 500.0
	insuranceRatePct   = 0.5
	defaultDeclaredJPY = 10000.0
	signatureFeeJPY    = 500.0
	peakRatePct        = 12.0
	residentialFeeJPY  = 210.0
	remoteAreaFeeJPY   = 850.0
)

// Fuel 燃油附加费
// 基础运费已含燃油、或该渠道无燃油费率表时为 0
func Fuel(baseJPY float64, included bool, ratePct float64, hasSchedule bool) float64 {
	if included || !hasSchedule || ratePct <= 0 {
		return 0
	}
	return math.Round(baseJPY * ratePct / 100)
}

// Customs 通关手续费（美国 MPF 规则，返回日元）
// 计费基数为基础运费+燃油，按汇率折算为美元判档：
// 非商业货件或基数低于正式报关门槛走固定低档，否则按比例并钳制在上下限之间
func Customs(baseJPY, fuelJPY, fxJPYPerUSD float64, commercial bool) float64 {
	if fxJPYPerUSD <= 0 {
		return 0
	}
	basisUSD := (baseJPY + fuelJPY) / fxJPYPerUSD
	if !commercial || basisUSD < customsThresholdUSD {
		return math.Round(customsFlatUSD * fxJPYPerUSD)
	}
	feeUSD := basisUSD * mpfRatePct / 100
	if feeUSD < mpfMinUSD {
		feeUSD = mpfMinUSD
	}
	if feeUSD > mpfMaxUSD {
		feeUSD = mpfMaxUSD
	}
	return math.Round(feeUSD * fxJPYPerUSD)
}

// Insurance 保险费：申报价值的 0.5%，下限 500 日元
// 申报价值缺失时按默认 10000 日元估算
func Insurance(declaredJPY float64) float64 {
	if declaredJPY <= 0 {
		declaredJPY = defaultDeclaredJPY
	}
	fee := math.Round(declaredJPY * insuranceRatePct / 100)
	if fee < insuranceMinJPY {
		return insuranceMinJPY
	}
	return fee
}

// Signature 签名签收费
func Signature() float64 {
	return signatureFeeJPY
}

// Peak 旺季附加费：（基础运费+燃油）的 12%
func Peak(baseJPY, fuelJPY float64) float64 {
	return math.Round((baseJPY + fuelJPY) * peakRatePct / 100)
}

// Residential 住宅配送附加费，仅 Eloji 系承运商收取
func Residential(carrierCode string) float64 {
	if strings.HasPrefix(strings.ToUpper(carrierCode), "ELOJI") {
		return residentialFeeJPY
	}
	return 0
}

// RemoteArea 偏远地区附加费
func RemoteArea() float64 {
	return remoteAreaFeeJPY
}

// Input 附加费整组计算入参
type Input struct {
	BaseRateJPY     float64
	FuelIncluded    bool
	FuelRatePct     float64
	HasFuelSchedule bool

	FxJPYPerUSD   float64
	NonCommercial bool // 小口货件走固定低档通关，默认商业货件

	DeclaredValueJPY float64
	CarrierCode      string
}

// Calculate 计算整组附加费
// 七项全部恒定计入，住宅项仅按承运商系别生效
func Calculate(in Input) model.SurchargeSet {
	fuel := Fuel(in.BaseRateJPY, in.FuelIncluded, in.FuelRatePct, in.HasFuelSchedule)

	return model.SurchargeSet{
		FuelJPY:        fuel,
		CustomsJPY:     Customs(in.BaseRateJPY, fuel, in.FxJPYPerUSD, !in.NonCommercial),
		PeakJPY:        Peak(in.BaseRateJPY, fuel),
		InsuranceJPY:   Insurance(in.DeclaredValueJPY),
		SignatureJPY:   Signature(),
		ResidentialJPY: Residential(in.CarrierCode),
		RemoteAreaJPY:  RemoteArea(),
	}
}
