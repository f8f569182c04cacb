package response

import (
	"eops/ratesync/internal/domains/common/job"
	"eops/ratesync/pkg/errorutil"
)

// RateResult 费率任务结果（实现 ResultI 接口）
// 计算明细通过 callback 队列回传，这里只承载任务级状态
type RateResult struct {
	ID     string           `json:"id"`
	Status string           `json:"status"`
	Error  *errorutil.Error `json:"error,omitempty"`
}

const (
	RateStatusSuccess = "SUCCESS"
	RateStatusFailed  = "FAILED"
)

// NewRateResult 创建费率任务结果
func NewRateResult() *RateResult {
	return &RateResult{}
}

// Set 实现 ResultI 接口
func (r *RateResult) Set(meta *job.Meta, err error) {
	r.ID = meta.ID
	if err != nil {
		r.Status = RateStatusFailed
		r.Error = errorutil.Wrap(err)
	} else {
		r.Status = RateStatusSuccess
	}
}

// GetStatus 实现 ResultI 接口
func (r *RateResult) GetStatus() string {
	return r.Status
}
