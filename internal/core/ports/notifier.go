package ports

import (
	"context"

	"github.com/iwellness/admin-users/internal/core/domain"
)

// Notifier hands a notification off for asynchronous delivery. It never blocks
// the caller and never reports delivery failures.
type Notifier interface {
	Notify(n domain.Notification)
}

// NotificationPublisher delivers a serialized payload to other services.
type NotificationPublisher interface {
	Publish(ctx context.Context, kind string, payload []byte) error
}

// Mailer sends a plain-text email.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}
