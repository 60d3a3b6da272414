package mailer

import (
	"bytes"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/cerebrexia/fest-backend/internal/config"
	"github.com/cerebrexia/fest-backend/internal/domain"
)

// Mailer delivers confirmation emails over SMTP. Callers are expected to
// invoke it off the request path; every method does a full SMTP round trip.
type Mailer struct {
	conf *config.SMTPConfig
	fest *config.FestConfig

	// deliver hands a built message to the transport. Tests swap it out.
	deliver func(to []string, subject, htmlBody string) error
}

func NewMailer(conf *config.SMTPConfig, fest *config.FestConfig) *Mailer {
	m := &Mailer{
		conf: conf,
		fest: fest,
	}
	m.deliver = m.send

	return m
}

// SendFestPassEmails mails every attendee their personal pass, with the
// leader's copy carrying the whole group's passes, then notifies the head
// coordinator with a summary of the completed registration.
func (m *Mailer) SendFestPassEmails(reg domain.Registration) error {
	for _, a := range reg.Attendees {
		if a.Email == "" {
			continue
		}

		data := festPassData{
			FestName:     m.fest.Name,
			Attendee:     a,
			Registration: reg,
			ContactEmail: m.fest.ContactEmail,
			ContactPhone: m.fest.ContactPhone,
		}
		if a.IsLeader {
			data.Group = reg.Attendees
		}

		var body bytes.Buffer
		if err := festPassTmpl.Execute(&body, data); err != nil {
			return fmt.Errorf("festPassTmpl.Execute -> %w", err)
		}

		subject := fmt.Sprintf("%s Fest Pass - %s", m.fest.Name, a.Name)
		if err := m.deliver([]string{a.Email}, subject, body.String()); err != nil {
			return fmt.Errorf("m.deliver -> %w", err)
		}
	}

	if m.fest.HeadCoordinatorEmail != "" {
		leader, _ := reg.Leader()

		var body bytes.Buffer
		err := adminFestPassTmpl.Execute(&body, adminFestPassData{
			FestName:     m.fest.Name,
			Registration: reg,
			Leader:       leader,
		})
		if err != nil {
			return fmt.Errorf("adminFestPassTmpl.Execute -> %w", err)
		}

		subject := fmt.Sprintf("%s - New Fest Pass Registration: %s", m.fest.Name, leader.Name)
		if err := m.deliver([]string{m.fest.HeadCoordinatorEmail}, subject, body.String()); err != nil {
			return fmt.Errorf("m.deliver -> %w", err)
		}
	}

	return nil
}

// SendEventConfirmation mails the team leader, with copies to the event
// coordinator and the head coordinator.
func (m *Mailer) SendEventConfirmation(reg domain.Registration) error {
	leader, ok := reg.Leader()
	if !ok || leader.Email == "" {
		return nil
	}

	var body bytes.Buffer
	err := eventConfirmationTmpl.Execute(&body, eventConfirmationData{
		FestName:     m.fest.Name,
		Registration: reg,
		Leader:       leader,
		ContactEmail: m.fest.ContactEmail,
		ContactPhone: m.fest.ContactPhone,
	})
	if err != nil {
		return fmt.Errorf("eventConfirmationTmpl.Execute -> %w", err)
	}

	recipients := []string{leader.Email}
	if reg.CoordinatorEmail != "" {
		recipients = append(recipients, reg.CoordinatorEmail)
	}
	if m.fest.HeadCoordinatorEmail != "" {
		recipients = append(recipients, m.fest.HeadCoordinatorEmail)
	}

	subject := fmt.Sprintf("%s - Registration Confirmed: %s", m.fest.Name, reg.EventName)
	if err := m.deliver(recipients, subject, body.String()); err != nil {
		return fmt.Errorf("m.deliver -> %w", err)
	}

	return nil
}

// SendEntryConfirmation mails an attendee their allotted pass number after a
// successful gate scan.
func (m *Mailer) SendEntryConfirmation(reg domain.Registration, attendee domain.Attendee) error {
	if attendee.Email == "" {
		return nil
	}

	var body bytes.Buffer
	err := entryConfirmationTmpl.Execute(&body, entryConfirmationData{
		FestName:     m.fest.Name,
		Attendee:     attendee,
		Registration: reg,
	})
	if err != nil {
		return fmt.Errorf("entryConfirmationTmpl.Execute -> %w", err)
	}

	subject := fmt.Sprintf("%s - Entry Confirmed (%s)", m.fest.Name, attendee.PassNumber)
	if err := m.deliver([]string{attendee.Email}, subject, body.String()); err != nil {
		return fmt.Errorf("m.deliver -> %w", err)
	}

	return nil
}

func (m *Mailer) send(to []string, subject, htmlBody string) error {
	addr := fmt.Sprintf("%s:%s", m.conf.Host, m.conf.Port)
	auth := smtp.PlainAuth("", m.conf.Username, m.conf.Password, m.conf.Host)

	msg := m.buildMessage(to, subject, htmlBody)

	if err := smtp.SendMail(addr, auth, m.conf.Sender, to, msg); err != nil {
		return fmt.Errorf("smtp.SendMail -> %w", err)
	}

	return nil
}

func (m *Mailer) buildMessage(to []string, subject, htmlBody string) []byte {
	var msg strings.Builder

	msg.WriteString(fmt.Sprintf("From: %s <%s>\r\n", m.fest.Name, m.conf.Sender))
	msg.WriteString(fmt.Sprintf("To: %s\r\n", strings.Join(to, ", ")))
	msg.WriteString(fmt.Sprintf("Subject: %s\r\n", subject))
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/html; charset=UTF-8\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(htmlBody)

	return []byte(msg.String())
}
