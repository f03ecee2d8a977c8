package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Publisher публикует события уведомлений в Redis канал (pub/sub)
// Подписчики: websocket-шлюз и фоновые воркеры доставки
type Publisher struct {
	client  *redis.Client
	channel string
}

// NewPublisher создает новый экземпляр публикатора событий
func NewPublisher(client *redis.Client, channel string) *Publisher {
	return &Publisher{
		client:  client,
		channel: channel,
	}
}

// Publish сериализует событие в JSON и публикует его в канал
func (p *Publisher) Publish(ctx context.Context, event interface{}) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("events: failed to marshal event: %w", err)
	}

	if err := p.client.Publish(ctx, p.channel, payload).Err(); err != nil {
		return fmt.Errorf("events: failed to publish to channel %s: %w", p.channel, err)
	}

	return nil
}
