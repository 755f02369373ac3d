// Package notification consumes order status updates from the fanout
// exchange and renders them as human-readable console notifications.
package notification

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/gokulraj121/karikalan-restaurant/internal/logger"
	"github.com/gokulraj121/karikalan-restaurant/internal/messaging"
	"github.com/gokulraj121/karikalan-restaurant/internal/models"
)

// Subscriber handles notification messages
type Subscriber struct {
	consumer *messaging.Consumer
	logger   *logger.Logger
}

// NewSubscriber creates a new notification subscriber
func NewSubscriber(consumer *messaging.Consumer, log *logger.Logger) *Subscriber {
	return &Subscriber{
		consumer: consumer,
		logger:   log,
	}
}

// Start consumes status updates until ctx is cancelled.
func (s *Subscriber) Start(ctx context.Context) error {
	requestID := logger.GenerateRequestID()
	s.logger.Info("service_started", "Notification subscriber started", requestID, nil)
	return s.consumer.StartConsuming(ctx, s.handleNotification)
}

// handleNotification processes incoming status update notifications
func (s *Subscriber) handleNotification(ctx context.Context, body []byte) error {
	requestID := logger.GenerateRequestID()

	var statusUpdate models.StatusUpdateMessage
	if err := json.Unmarshal(body, &statusUpdate); err != nil {
		s.logger.Error("message_parsing_failed", "Failed to parse notification message", requestID, err, nil)
		return fmt.Errorf("failed to parse notification: %w", err)
	}

	s.logger.Debug("notification_received", "Received status update notification", requestID, map[string]interface{}{
		"order_id":   statusUpdate.OrderID,
		"new_status": statusUpdate.NewStatus,
		"changed_by": statusUpdate.ChangedBy,
	})

	s.displayNotification(&statusUpdate)
	return nil
}

// displayNotification displays a human-readable notification to console
func (s *Subscriber) displayNotification(statusUpdate *models.StatusUpdateMessage) {
	fmt.Println(formatNotification(statusUpdate))

	s.logger.Info("notification_displayed", "Notification displayed to user", "", map[string]interface{}{
		"order_id":   statusUpdate.OrderID,
		"old_status": statusUpdate.OldStatus,
		"new_status": statusUpdate.NewStatus,
		"changed_by": statusUpdate.ChangedBy,
		"timestamp":  statusUpdate.Timestamp.Format("2006-01-02 15:04:05"),
	})
}

// formatNotification creates a human-readable notification message
func formatNotification(statusUpdate *models.StatusUpdateMessage) string {
	timestamp := statusUpdate.Timestamp.Format("2006-01-02 15:04:05")

	switch statusUpdate.NewStatus {
	case string(models.StatusPending):
		return fmt.Sprintf(
			"🧾 [%s] New order %s received from %s.",
			timestamp,
			statusUpdate.OrderID,
			statusUpdate.Customer,
		)
	case string(models.StatusPreparing):
		return fmt.Sprintf(
			"🍳 [%s] Order %s for %s is now being prepared.",
			timestamp,
			statusUpdate.OrderID,
			statusUpdate.Customer,
		)
	case string(models.StatusReady):
		return fmt.Sprintf(
			"✅ [%s] Order %s for %s is ready for pickup/delivery!",
			timestamp,
			statusUpdate.OrderID,
			statusUpdate.Customer,
		)
	case string(models.StatusCompleted):
		return fmt.Sprintf(
			"🎉 [%s] Order %s has been completed. Thank you, %s!",
			timestamp,
			statusUpdate.OrderID,
			statusUpdate.Customer,
		)
	case string(models.StatusCancelled):
		return fmt.Sprintf(
			"❌ [%s] Order %s for %s has been cancelled.",
			timestamp,
			statusUpdate.OrderID,
			statusUpdate.Customer,
		)
	default:
		return fmt.Sprintf(
			"📋 [%s] Order %s status changed from '%s' to '%s' by %s.",
			timestamp,
			statusUpdate.OrderID,
			statusUpdate.OldStatus,
			statusUpdate.NewStatus,
			statusUpdate.ChangedBy,
		)
	}
}
