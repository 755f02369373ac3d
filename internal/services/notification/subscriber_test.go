package notification

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/gokulraj121/karikalan-restaurant/internal/logger"
	"github.com/gokulraj121/karikalan-restaurant/internal/models"
)

func TestFormatNotification(t *testing.T) {
	ts := time.Date(2025, 3, 14, 12, 30, 0, 0, time.UTC)

	tests := []struct {
		name      string
		newStatus string
		want      string
	}{
		{"pending", "pending", "New order"},
		{"preparing", "preparing", "being prepared"},
		{"ready", "ready", "ready for pickup/delivery"},
		{"completed", "completed", "completed"},
		{"cancelled", "cancelled", "cancelled"},
		{"unknown", "on-hold", "status changed from"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := &models.StatusUpdateMessage{
				OrderID:   "abc-123",
				Customer:  "Anitha",
				OldStatus: "pending",
				NewStatus: tt.newStatus,
				ChangedBy: "admin-service",
				Timestamp: ts,
			}
			got := formatNotification(msg)
			if !strings.Contains(got, tt.want) {
				t.Errorf("formatNotification(%s) = %q, want substring %q", tt.newStatus, got, tt.want)
			}
			if !strings.Contains(got, "abc-123") {
				t.Errorf("notification missing order id: %q", got)
			}
			if !strings.Contains(got, "2025-03-14 12:30:00") {
				t.Errorf("notification missing timestamp: %q", got)
			}
		})
	}
}

func TestHandleNotificationRejectsGarbage(t *testing.T) {
	s := NewSubscriber(nil, logger.New("notification-test"))
	if err := s.handleNotification(context.Background(), []byte("not json")); err == nil {
		t.Fatal("expected an error for unparseable payload")
	}
}

func TestHandleNotificationAcceptsStatusUpdate(t *testing.T) {
	s := NewSubscriber(nil, logger.New("notification-test"))
	body := []byte(`{"order_id":"abc-123","customer":"Anitha","old_status":"pending","new_status":"ready","changed_by":"admin-service","timestamp":"2025-03-14T12:30:00Z"}`)
	if err := s.handleNotification(context.Background(), body); err != nil {
		t.Fatalf("expected payload to be accepted: %v", err)
	}
}
