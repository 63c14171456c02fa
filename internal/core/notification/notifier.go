// Package notification implements the request-scoped aggregator that collects
// business-rule violations raised while handling a single request. Handlers
// create one Notifier per request and consult it when shaping the response;
// instances are never shared across requests.
package notification

// Notification is a single recorded business or validation failure.
type Notification struct {
	Message string
}

// New creates a Notification carrying the given message.
func New(message string) Notification {
	return Notification{Message: message}
}

// Notifier accumulates notifications in insertion order. While it stays
// empty the request is considered successful.
type Notifier struct {
	notifications []Notification
}

// NewNotifier returns an empty Notifier.
func NewNotifier() *Notifier {
	return &Notifier{}
}

// Handle appends a notification. No deduplication, no other side effects.
func (n *Notifier) Handle(notification Notification) {
	n.notifications = append(n.notifications, notification)
}

// HasNotification reports whether at least one notification was recorded.
func (n *Notifier) HasNotification() bool {
	return len(n.notifications) > 0
}

// GetNotifications returns a snapshot of the recorded notifications in
// insertion order. The collection is not cleared.
func (n *Notifier) GetNotifications() []Notification {
	out := make([]Notification, len(n.notifications))
	copy(out, n.notifications)
	return out
}
