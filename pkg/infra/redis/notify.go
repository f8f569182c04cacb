package redis

import (
	"context"
	"fmt"

	gojson "github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
)

// Notifier 定价完成通知发布器
type Notifier struct {
	client *redis.Client
}

// NewNotifier 创建 Notifier 实例
func NewNotifier(client *redis.Client) *Notifier {
	return &Notifier{client: client}
}

// PricingNotification 定价完成通知消息
type PricingNotification struct {
	ProductID string  `json:"product_id"`
	PriceUSD  float64 `json:"price_usd"`
	Status    string  `json:"status"` // SUCCESS/FAILED
	Timestamp int64   `json:"timestamp"`
}

// PublishPricingComplete 发布定价完成通知
func (n *Notifier) PublishPricingComplete(ctx context.Context, channel string, notification *PricingNotification) error {
	msgJSON, err := gojson.Marshal(notification)
	if err != nil {
		return fmt.Errorf("failed to marshal notification: %w", err)
	}

	if err := n.client.Publish(ctx, channel, msgJSON).Err(); err != nil {
		return fmt.Errorf("failed to publish notification: %w", err)
	}
	return nil
}

// Subscribe 订阅通知频道（用于测试）
func (n *Notifier) Subscribe(ctx context.Context, channel string) *redis.PubSub {
	return n.client.Subscribe(ctx, channel)
}
