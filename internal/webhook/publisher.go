package webhook

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/bayillag/epigeo_surveillance/internal/models"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const (
	webhookQueueKey = "outbreak_events"
)

// OutbreakEvent - событие смены статуса вспышки
type OutbreakEvent struct {
	OutbreakID uuid.UUID             `json:"outbreak_id"`
	RegionCode string                `json:"region_code"`
	Transition string                `json:"transition"`
	From       models.OutbreakStatus `json:"from"`
	To         models.OutbreakStatus `json:"to"`
	// Promoted - подтверждение положительным результатом лаборатории
	Promoted    bool      `json:"promoted"`
	DiseaseCode *string   `json:"disease_code,omitempty"`
	Version     int       `json:"version"`
	Timestamp   time.Time `json:"timestamp"`
}

// WebhookPublisher - интерфейс для публикации вебхуков
type WebhookPublisher interface {
	Publish(ctx context.Context, event OutbreakEvent) error
}

// RedisWebhookPublisher - реализация WebhookPublisher, использующая Redis
type RedisWebhookPublisher struct {
	redisClient *redis.Client
}

// NewRedisWebhookPublisher создает новый RedisWebhookPublisher
func NewRedisWebhookPublisher(client *redis.Client) *RedisWebhookPublisher {
	return &RedisWebhookPublisher{
		redisClient: client,
	}
}

// Publish публикует событие вебхука в очередь Redis
func (p *RedisWebhookPublisher) Publish(ctx context.Context, event OutbreakEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal outbreak event: %w", err)
	}

	// LPUSH слева, воркер забирает справа
	if err := p.redisClient.LPush(ctx, webhookQueueKey, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish outbreak event to Redis: %w", err)
	}
	return nil
}

// LogPublisher только пишет события в лог; используется без Redis
type LogPublisher struct {
	logger *logrus.Logger
}

func NewLogPublisher(logger *logrus.Logger) *LogPublisher {
	return &LogPublisher{logger: logger}
}

func (p *LogPublisher) Publish(_ context.Context, event OutbreakEvent) error {
	p.logger.WithFields(logrus.Fields{
		"outbreak_id": event.OutbreakID,
		"transition":  event.Transition,
		"from":        event.From,
		"to":          event.To,
		"promoted":    event.Promoted,
	}).Info("Outbreak event (webhook queue disabled)")
	return nil
}
