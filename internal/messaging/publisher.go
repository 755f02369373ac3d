package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rabbitmq/amqp091-go"

	"github.com/gokulraj121/karikalan-restaurant/internal/logger"
	"github.com/gokulraj121/karikalan-restaurant/internal/models"
)

// StatusPublisher publishes order status updates to the fanout exchange.
// The notification channel is informational: publish failures are reported
// to the caller but must never fail the order operation that triggered them.
type StatusPublisher struct {
	conn   *Connection
	logger *logger.Logger
}

// NewStatusPublisher creates a new status publisher
func NewStatusPublisher(conn *Connection, log *logger.Logger) *StatusPublisher {
	return &StatusPublisher{
		conn:   conn,
		logger: log,
	}
}

// PublishStatusUpdate publishes a status update to the fanout exchange.
func (p *StatusPublisher) PublishStatusUpdate(ctx context.Context, msg *models.StatusUpdateMessage) error {
	if p.conn.IsClosed() {
		if err := p.conn.Reconnect(); err != nil {
			return fmt.Errorf("failed to reconnect: %w", err)
		}
	}

	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal status update: %w", err)
	}

	publishing := amqp091.Publishing{
		ContentType:  "application/json",
		Body:         body,
		DeliveryMode: 2, // persistent
		Timestamp:    time.Now(),
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	err = p.conn.Channel().PublishWithContext(
		ctx,
		StatusExchange, // exchange
		"",             // routing key (fanout)
		false,          // mandatory
		false,          // immediate
		publishing,
	)
	if err != nil {
		p.logger.Error("message_publish_failed",
			fmt.Sprintf("Failed to publish status update for order %s", msg.OrderID),
			"", err, map[string]interface{}{
				"order_id":   msg.OrderID,
				"new_status": msg.NewStatus,
			})
		return fmt.Errorf("failed to publish status update: %w", err)
	}

	p.logger.Debug("message_published",
		fmt.Sprintf("Published status update for order %s", msg.OrderID),
		"", map[string]interface{}{
			"order_id":   msg.OrderID,
			"old_status": msg.OldStatus,
			"new_status": msg.NewStatus,
		})

	return nil
}

// Close closes the publisher
func (p *StatusPublisher) Close() error {
	return p.conn.Close()
}
