/*
Package notify delivers the approval workflows' outbound messages.

PURPOSE:
  The scheduling core emits a schedule.Notification whenever a time-off
  request or weekend shift is approved, rejected, or denied. This
  package implements the delivery side:

  - Outbox: persists every notification to the store, then optionally
    mirrors it to the addressee's email. The write is the source of
    truth; mail is best-effort on top.
  - Mailer: thin SMTP sender (gomail).

  Keeping delivery behind the schedule.Notifier interface means the
  approval logic is testable without a live notification sink.

SEE ALSO:
  - schedule/service.go: The emitter
  - cmd/server/main.go:  Wiring, SMTP config
*/
package notify

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	gomail "gopkg.in/gomail.v2"

	"github.com/harborline/crew-scheduler/schedule"
)

// Sender delivers one plain-text message. Mailer is the SMTP
// implementation; tests substitute a fake.
type Sender interface {
	Send(to, subject, body string) error
}

// Outbox implements schedule.Notifier.
type Outbox struct {
	Store  schedule.NotificationStore
	Staff  schedule.Store // for addressee email lookup
	Mailer Sender         // optional
}

func NewOutbox(store schedule.NotificationStore, staff schedule.Store, mailer Sender) *Outbox {
	return &Outbox{Store: store, Staff: staff, Mailer: mailer}
}

// Notify persists the notification, then mirrors it to mail when a
// mailer is configured and the addressee has an email on file. A mail
// failure is logged, not returned: the notification row already exists.
func (o *Outbox) Notify(ctx context.Context, n schedule.Notification) error {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now().UTC()
	}
	if err := o.Store.AppendNotification(ctx, n); err != nil {
		return fmt.Errorf("append notification: %w", err)
	}

	if o.Mailer == nil {
		return nil
	}
	email, ok := o.lookupEmail(ctx, n.UserID)
	if !ok {
		return nil
	}
	if err := o.Mailer.Send(email, n.Title, n.Message); err != nil {
		log.Printf("notify: mail to %s failed: %v", n.UserID, err)
	}
	return nil
}

func (o *Outbox) lookupEmail(ctx context.Context, userID string) (string, bool) {
	if o.Staff == nil {
		return "", false
	}
	p, err := o.Staff.GetStaff(ctx, userID)
	if err != nil || p.Email == "" {
		return "", false
	}
	return p.Email, true
}

// =============================================================================
// MAILER
// =============================================================================

// Mailer sends plain-text mail over SMTP.
type Mailer struct {
	dialer *gomail.Dialer
	from   string
}

func NewMailer(host string, port int, username, password, from string) *Mailer {
	return &Mailer{dialer: gomail.NewDialer(host, port, username, password), from: from}
}

func (m *Mailer) Send(to, subject, body string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)
	return m.dialer.DialAndSend(msg)
}
