package service

import (
	"context"
	"fmt"
	"net/smtp"

	"github.com/Vyomx1010/gatiyan-full-original-sub000/internal/domain"
)

// Mailer sends transactional email as a post-transition side effect.
// Failures are logged by callers and never roll back the state change.
type Mailer interface {
	// SendRideAssigned mails both parties after dispatch.
	SendRideAssigned(ctx context.Context, riderEmail, captainEmail string, ride *domain.Ride) error
}

// SMTPMailer is a Mailer backed by a plain SMTP relay.
type SMTPMailer struct {
	addr string
	auth smtp.Auth
	from string
}

var _ Mailer = (*SMTPMailer)(nil)

// NewSMTPMailer creates a mailer for the given relay.
func NewSMTPMailer(host string, port int, username, password, from string) *SMTPMailer {
	var auth smtp.Auth
	if username != "" {
		auth = smtp.PlainAuth("", username, password, host)
	}
	return &SMTPMailer{
		addr: fmt.Sprintf("%s:%d", host, port),
		auth: auth,
		from: from,
	}
}

// SendRideAssigned mails the rider and captain about the assignment.
func (m *SMTPMailer) SendRideAssigned(ctx context.Context, riderEmail, captainEmail string, ride *domain.Ride) error {
	subject := "Your ride has been assigned"
	body := fmt.Sprintf(
		"Ride %s from %s to %s on %s %s has been assigned a captain.\r\nFare: %d",
		ride.ID, ride.Pickup, ride.Destination, ride.RideDate, ride.RideTime, ride.Fare,
	)

	for _, to := range []string{riderEmail, captainEmail} {
		if to == "" {
			continue
		}
		msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s\r\n", m.from, to, subject, body)
		if err := smtp.SendMail(m.addr, m.auth, m.from, []string{to}, []byte(msg)); err != nil {
			return fmt.Errorf("send mail to %s: %w", to, err)
		}
	}

	return nil
}
