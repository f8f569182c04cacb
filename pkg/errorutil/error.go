package errorutil

import "fmt"

// 错误类别（业务语义分类，回调内容与队列重试决策依赖）
const (
	KindSourceUnavailable     = "source_unavailable"      // 单个费率数据源不可用
	KindAllSourcesUnavailable = "all_sources_unavailable" // 全部费率数据源不可用
	KindInvalidRequest        = "invalid_request"         // 试算请求参数非法
	KindInvalidMarginRequest  = "invalid_margin_request"  // 定价请求参数非法（成本/目标利润率越界）
	KindNoPolicyCandidate     = "no_policy_candidate"     // 无匹配的配送政策
)

// Error 错误结构（包含类别与可重试标记）
type Error struct {
	Code       int    `json:"code"`
	Kind       string `json:"kind,omitempty"`
	Message    string `json:"message"`
	Retryable  bool   `json:"retryable"`
	DevDetails string `json:"dev_details,omitempty"`
}

// Error 实现 error 接口
func (e *Error) Error() string {
	return e.Message
}

// SourceUnavailable 创建单数据源不可用错误（超时/查询失败，可重试）
func SourceUnavailable(message string, details string) *Error {
	return &Error{
		Code:       503,
		Kind:       KindSourceUnavailable,
		Message:    message,
		Retryable:  true,
		DevDetails: details,
	}
}

// AllSourcesUnavailable 创建全数据源不可用错误（可重试）
func AllSourcesUnavailable(message string, details string) *Error {
	return &Error{
		Code:       503,
		Kind:       KindAllSourcesUnavailable,
		Message:    message,
		Retryable:  true,
		DevDetails: details,
	}
}

// InvalidRequest 创建试算请求参数错误（不可重试）
func InvalidRequest(message string) *Error {
	return &Error{
		Code:      400,
		Kind:      KindInvalidRequest,
		Message:   message,
		Retryable: false,
	}
}

// InvalidMarginRequest 创建定价请求参数错误（不可重试）
func InvalidMarginRequest(message string) *Error {
	return &Error{
		Code:      400,
		Kind:      KindInvalidMarginRequest,
		Message:   message,
		Retryable: false,
	}
}

// NoPolicyCandidate 创建无匹配政策错误（不可重试）
func NoPolicyCandidate(message string) *Error {
	return &Error{
		Code:      404,
		Kind:      KindNoPolicyCandidate,
		Message:   message,
		Retryable: false,
	}
}

// KindOf 提取错误类别，非 Error 类型返回空串
func KindOf(err error) string {
	if e, ok := err.(*Error); ok {
		return e.Kind
	}
	return ""
}

// Wrap 包装错误（自动判断是否可重试）
func Wrap(err error) *Error {
	if err == nil {
		return nil
	}

	// 如果已经是 Error 类型，直接返回
	if e, ok := err.(*Error); ok {
		return e
	}

	// 默认为不可重试错误
	return &Error{
		Code:       500,
		Message:    err.Error(),
		Retryable:  false,
		DevDetails: fmt.Sprintf("%+v", err),
	}
}

// UnWrapResponse 解包错误（用于 Response）
func UnWrapResponse(err error) *Error {
	if err == nil {
		return nil
	}
	return Wrap(err)
}
