package mailer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cerebrexia/fest-backend/internal/config"
	"github.com/cerebrexia/fest-backend/internal/domain"
)

type capturedMail struct {
	to      []string
	subject string
	body    string
}

func newTestMailer(fest *config.FestConfig) (*Mailer, *[]capturedMail) {
	m := NewMailer(&config.SMTPConfig{}, fest)

	var sent []capturedMail
	m.deliver = func(to []string, subject, htmlBody string) error {
		sent = append(sent, capturedMail{to: to, subject: subject, body: htmlBody})
		return nil
	}

	return m, &sent
}

func groupRegistration() domain.Registration {
	return domain.Registration{
		ID:             "reg-group-1",
		OwnerID:        "owner-1",
		Kind:           domain.KindFestPass,
		EnrollmentType: domain.EnrollmentGroup,
		NumMembers:     3,
		Amount:         299.5,
		PaymentStatus:  domain.PaymentCompleted,
		PaymentID:      "pay_abc",
		Attendees: []domain.Attendee{
			{MemberID: "owner-1", Name: "Asha Verma", Email: "asha@example.com", College: "NIT Patna", IsLeader: true, QRCode: "data:image/png;base64,LEADER"},
			{MemberID: "m-2", Name: "Ravi Kumar", Email: "ravi@example.com", College: "NIT Patna", QRCode: "data:image/png;base64,RAVI"},
			{MemberID: "m-3", Name: "Neha Singh", Email: "", College: "NIT Patna", QRCode: "data:image/png;base64,NEHA"},
		},
	}
}

func TestMailer_SendFestPassEmails(t *testing.T) {
	t.Run("mails attendees and the head coordinator", func(t *testing.T) {
		m, sent := newTestMailer(&config.FestConfig{
			Name:                 "CEREBREXIA'25",
			HeadCoordinatorEmail: "head@example.com",
			ContactEmail:         "contact@example.com",
		})

		err := m.SendFestPassEmails(groupRegistration())
		require.NoError(t, err)

		// Two attendees carry an email address, plus one coordinator copy.
		require.Len(t, *sent, 3)

		last := (*sent)[2]
		assert.Equal(t, []string{"head@example.com"}, last.to)
		assert.Contains(t, last.subject, "New Fest Pass Registration")
		assert.Contains(t, last.subject, "Asha Verma")
		assert.Contains(t, last.body, "reg-group-1")
		assert.Contains(t, last.body, "Ravi Kumar")
		assert.Contains(t, last.body, "Neha Singh")
		assert.Contains(t, last.body, "pay_abc")
	})

	t.Run("leader copy embeds every group member's pass", func(t *testing.T) {
		m, sent := newTestMailer(&config.FestConfig{Name: "CEREBREXIA'25"})

		err := m.SendFestPassEmails(groupRegistration())
		require.NoError(t, err)
		require.Len(t, *sent, 2)

		leaderCopy := (*sent)[0]
		assert.Equal(t, []string{"asha@example.com"}, leaderCopy.to)
		assert.Contains(t, leaderCopy.body, "data:image/png;base64,LEADER")
		assert.Contains(t, leaderCopy.body, "data:image/png;base64,RAVI")
		assert.Contains(t, leaderCopy.body, "data:image/png;base64,NEHA")

		memberCopy := (*sent)[1]
		assert.Equal(t, []string{"ravi@example.com"}, memberCopy.to)
		assert.Contains(t, memberCopy.body, "data:image/png;base64,RAVI")
		assert.NotContains(t, memberCopy.body, "data:image/png;base64,LEADER")
	})

	t.Run("no coordinator copy when none is configured", func(t *testing.T) {
		m, sent := newTestMailer(&config.FestConfig{Name: "CEREBREXIA'25"})

		err := m.SendFestPassEmails(groupRegistration())
		require.NoError(t, err)

		for _, mail := range *sent {
			assert.False(t, strings.Contains(mail.subject, "New Fest Pass Registration"))
		}
	})
}

func TestMailer_SendEventConfirmation(t *testing.T) {
	m, sent := newTestMailer(&config.FestConfig{
		Name:                 "CEREBREXIA'25",
		HeadCoordinatorEmail: "head@example.com",
	})

	reg := domain.Registration{
		ID:               "reg-event-1",
		Kind:             domain.KindEvent,
		EventName:        "RoboWars",
		CoordinatorEmail: "robo@example.com",
		NumMembers:       1,
		Attendees: []domain.Attendee{
			{MemberID: "owner-1", Name: "Asha Verma", Email: "asha@example.com", IsLeader: true},
		},
	}

	err := m.SendEventConfirmation(reg)
	require.NoError(t, err)

	require.Len(t, *sent, 1)
	assert.Equal(t, []string{"asha@example.com", "robo@example.com", "head@example.com"}, (*sent)[0].to)
	assert.Contains(t, (*sent)[0].body, "RoboWars")
}
