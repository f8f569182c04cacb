package business

import (
	"context"
	"fmt"
	"time"

	gojson "github.com/goccy/go-json"

	"eops/ratesync/internal/engine/aggregate"
	"eops/ratesync/internal/model"
	"eops/ratesync/pkg/errorutil"
	"eops/ratesync/pkg/logger"
)

// CallbackPublisher 回调队列发布接口（lmstfy.Client 实现）
type CallbackPublisher interface {
	Publish(queue string, data []byte, ttl, delay uint32) error
}

// QuoteService 运费试算服务
// 职责：执行聚合试算 → 发送回调到 callback 队列
type QuoteService struct {
	aggregator    *aggregate.Aggregator
	publisher     CallbackPublisher
	callbackQueue string
	log           logger.Logger
}

// NewQuoteService 创建运费试算服务实例
func NewQuoteService(
	aggregator *aggregate.Aggregator,
	publisher CallbackPublisher,
	callbackQueue string,
	log logger.Logger,
) *QuoteService {
	return &QuoteService{
		aggregator:    aggregator,
		publisher:     publisher,
		callbackQueue: callbackQueue,
		log:           log,
	}
}

// ExecuteQuote 执行试算并发送回调
// 可重试错误（数据源全挂等）直接返回交给队列重试，不发送失败回调
func (s *QuoteService) ExecuteQuote(ctx context.Context, requestID string, req *model.QuoteRequest) error {
	result, quoteErr := s.aggregator.Aggregate(ctx, req)
	if quoteErr != nil && errorutil.Wrap(quoteErr).Retryable {
		return quoteErr
	}

	callback := model.RateJobCallback{
		RequestID:   requestID,
		ActionType:  model.ActionShippingQuote,
		ProcessedAt: time.Now().Unix(),
	}
	if quoteErr != nil {
		callback.Status = model.CallbackStatusFailed
		callback.Error = quoteErr.Error()
	} else {
		callback.Status = model.CallbackStatusSuccess
		callback.Quote = result
		s.log.Infof(ctx, "quote done: %d offers for %s", len(result.Offers), req.DestinationCountry)
	}

	callbackJSON, err := gojson.Marshal(callback)
	if err != nil {
		return fmt.Errorf("failed to marshal callback: %w", err)
	}

	// ttl=0 表示永不过期, delay=0 表示立即可用
	if err := s.publisher.Publish(s.callbackQueue, callbackJSON, 0, 0); err != nil {
		return fmt.Errorf("failed to publish callback: %w", err)
	}

	return quoteErr
}
