package email

import "time"

// DefaultSubject is used when a contact message arrives without one.
const DefaultSubject = "New message from your website"

// Notifier turns stored contact messages into queued notification mail.
type Notifier struct {
	service    *EmailService
	dispatcher *Dispatcher
}

func NewNotifier(service *EmailService, dispatcher *Dispatcher) *Notifier {
	return &Notifier{service: service, dispatcher: dispatcher}
}

// NotifyNewMessage reports whether the mail was queued.
func (n *Notifier) NotifyNewMessage(data MessageEmailData) bool {
	if n == nil || n.dispatcher == nil || !n.dispatcher.Enabled() {
		return false
	}
	if data.Subject == "" {
		data.Subject = DefaultSubject
	}
	if data.SentAt.IsZero() {
		data.SentAt = time.Now()
	}
	m, err := n.service.BuildMessageMail(data)
	if err != nil {
		n.dispatcher.log.Error("failed to build notification email", "error", err)
		return false
	}
	return n.dispatcher.Enqueue(m)
}
