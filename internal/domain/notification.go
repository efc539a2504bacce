package domain

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

type NotificationType string

const (
	NotificationSuccess NotificationType = "success"
	NotificationError   NotificationType = "error"
	NotificationInfo    NotificationType = "info"
	NotificationWarning NotificationType = "warning"
)

const (
	// MaxNotifications caps the retained queue; the oldest entry is evicted first.
	MaxNotifications = 5

	NotificationAutoHideDelay = 5 * time.Second
	NotificationMaxAge        = 30 * time.Second
	NotificationSweepInterval = 30 * time.Second
)

// Valid reports whether t is one of the known notification types
func (t NotificationType) Valid() bool {
	switch t {
	case NotificationSuccess, NotificationError, NotificationInfo, NotificationWarning:
		return true
	default:
		return false
	}
}

// Notification is an ephemeral message shown to the user
type Notification struct {
	ID        string           `json:"id"`
	Type      NotificationType `json:"type"`
	Message   string           `json:"message"`
	Timestamp int64            `json:"timestamp"`
	AutoHide  bool             `json:"autoHide,omitempty"`
}

// NewNotification stamps a notification with a unique id and its creation time
func NewNotification(t NotificationType, message string, autoHide bool, now time.Time) Notification {
	ms := now.UnixMilli()
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:9]

	return Notification{
		ID:        strconv.FormatInt(ms, 10) + suffix,
		Type:      t,
		Message:   message,
		Timestamp: ms,
		AutoHide:  autoHide,
	}
}

// Expired reports whether the notification is at least NotificationMaxAge old at now
func (n Notification) Expired(now time.Time) bool {
	return now.UnixMilli()-n.Timestamp >= NotificationMaxAge.Milliseconds()
}
