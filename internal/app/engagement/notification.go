package engagement

import (
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/studyflow-app/studyflow/internal/domain"
)

// NotificationService queues engagement notifications under a quiet policy:
// a hard daily cap per user and no messages during quiet hours. Suppression
// is silent — a capped notification is dropped, not deferred.
type NotificationService struct {
	store  domain.NotificationStore
	policy domain.NotificationPolicy
	now    func() time.Time
}

// NewNotificationService creates a notification service with the default policy.
func NewNotificationService(store domain.NotificationStore) *NotificationService {
	return NewNotificationServiceWithPolicy(store, domain.DefaultNotificationPolicy())
}

// NewNotificationServiceWithPolicy creates a notification service with a custom policy.
func NewNotificationServiceWithPolicy(store domain.NotificationStore, policy domain.NotificationPolicy) *NotificationService {
	return &NotificationService{store: store, policy: policy, now: time.Now}
}

// Create queues a notification if policy allows it.
// Returns the notification ID, or 0 when suppressed. A caller-set CreatedAt
// is honored, which keeps quiet-hour behavior testable.
func (n *NotificationService) Create(notif domain.Notification) (int64, error) {
	if notif.CreatedAt.IsZero() {
		notif.CreatedAt = n.now()
	}

	count, err := n.store.NotificationCountToday(notif.UserID, notif.CreatedAt)
	if err != nil {
		return 0, err
	}
	if count >= n.policy.MaxPerDay {
		return 0, nil // Daily limit reached
	}
	if n.isQuietHour(notif.CreatedAt) {
		return 0, nil // Quiet hours
	}

	notif.Shown = false
	return n.store.InsertNotification(notif)
}

// Notify is Create with logging instead of an error return, for callers whose
// own operation must not fail because a notification could not be written.
func (n *NotificationService) Notify(userID string, typ domain.NotificationType, title, body string) {
	_, err := n.Create(domain.Notification{UserID: userID, Type: typ, Title: title, Body: body})
	if err != nil {
		log.Printf("engagement: queue %s notification for %s: %v", typ, userID, err)
	}
}

// Pending returns unshown notifications for a user.
func (n *NotificationService) Pending(userID string, limit int) ([]domain.Notification, error) {
	return n.store.ListPendingNotifications(userID, limit)
}

// MarkShown marks a notification as shown.
func (n *NotificationService) MarkShown(id int64) error {
	return n.store.MarkNotificationShown(id)
}

// Policy returns the active notification policy.
func (n *NotificationService) Policy() domain.NotificationPolicy {
	return n.policy
}

// isQuietHour returns true if t falls within the policy's quiet window.
func (n *NotificationService) isQuietHour(t time.Time) bool {
	startHour, startMin := parseHHMM(n.policy.QuietStart)
	endHour, endMin := parseHHMM(n.policy.QuietEnd)

	timeMinutes := t.Hour()*60 + t.Minute()
	startMinutes := startHour*60 + startMin
	endMinutes := endHour*60 + endMin

	if startMinutes > endMinutes {
		// Wraps midnight: e.g., 22:00 – 08:00
		return timeMinutes >= startMinutes || timeMinutes < endMinutes
	}
	return timeMinutes >= startMinutes && timeMinutes < endMinutes
}

// parseHHMM parses "HH:MM" into hour and minute.
func parseHHMM(s string) (int, int) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return 0, 0
	}
	h, _ := strconv.Atoi(parts[0])
	m, _ := strconv.Atoi(parts[1])
	return h, m
}
