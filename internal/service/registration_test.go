package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cerebrexia/fest-backend/internal/domain"
)

func newRegistrationService(store *fakeStore, users *fakeUsers, gateway *fakeGateway, notifier *fakeNotifier) *RegistrationService {
	return NewRegistrationService(store, users, gateway, notifier, declaredFee{})
}

func festPassInput(ownerID string, amount float64) domain.Registration {
	return domain.Registration{
		OwnerID:        ownerID,
		EnrollmentType: domain.EnrollmentIndividual,
		Amount:         amount,
		Attendees: []domain.Attendee{
			{Name: "Asha Verma", Email: "asha@example.com", College: "NIT Patna", IsLeader: true},
		},
	}
}

func TestRegisterFest_PaidPathOpensOrder(t *testing.T) {
	store := newFakeStore()
	gateway := newFakeGateway()
	notifier := &fakeNotifier{}
	svc := newRegistrationService(store, newFakeUsers(), gateway, notifier)

	outcome, err := svc.RegisterFest(context.Background(), festPassInput("user-1", 299.5))
	require.NoError(t, err)

	assert.True(t, outcome.PaymentRequired)
	assert.Equal(t, int64(29950), outcome.Order.Amount)
	assert.Equal(t, "INR", outcome.Order.Currency)
	assert.Equal(t, outcome.Registration.ID, outcome.Order.RegistrationID)

	require.Len(t, gateway.created, 1)
	assert.Equal(t, "festpass_"+outcome.Registration.ID, gateway.created[0].Receipt)

	// The order id is persisted, the registration stays pending, and no
	// credentials exist before payment.
	stored := store.get(outcome.Registration.ID)
	assert.Equal(t, outcome.Order.ID, stored.OrderID)
	assert.Equal(t, domain.PaymentPending, stored.PaymentStatus)
	assert.Empty(t, stored.Attendees[0].QRCode)
}

func TestRegisterFest_FreePathCompletesInline(t *testing.T) {
	store := newFakeStore()
	notifier := &fakeNotifier{}
	svc := newRegistrationService(store, newFakeUsers(), newFakeGateway(), notifier)

	outcome, err := svc.RegisterFest(context.Background(), festPassInput("user-1", 0))
	require.NoError(t, err)

	assert.False(t, outcome.PaymentRequired)
	assert.Equal(t, domain.PaymentCompleted, outcome.Registration.PaymentStatus)
	require.Len(t, outcome.Registration.Attendees, 1)
	assert.True(t, strings.HasPrefix(outcome.Registration.Attendees[0].QRCode, "data:image/png;base64,"))

	require.Eventually(t, func() bool {
		return notifier.festPassSendCount() == 1
	}, time.Second, 10*time.Millisecond)
}

func TestRegisterFest_DuplicateCompletedRejected(t *testing.T) {
	store := newFakeStore()
	store.put(domain.Registration{
		ID:            "existing",
		OwnerID:       "user-1",
		Kind:          domain.KindFestPass,
		PaymentStatus: domain.PaymentCompleted,
	})
	svc := newRegistrationService(store, newFakeUsers(), newFakeGateway(), &fakeNotifier{})

	_, err := svc.RegisterFest(context.Background(), festPassInput("user-1", 100))
	assert.ErrorIs(t, err, ErrAlreadyRegistered)
}

func TestRegisterFest_PendingDoesNotBlockRetry(t *testing.T) {
	store := newFakeStore()
	store.put(domain.Registration{
		ID:            "abandoned",
		OwnerID:       "user-1",
		Kind:          domain.KindFestPass,
		PaymentStatus: domain.PaymentPending,
	})
	svc := newRegistrationService(store, newFakeUsers(), newFakeGateway(), &fakeNotifier{})

	_, err := svc.RegisterFest(context.Background(), festPassInput("user-1", 100))
	assert.NoError(t, err)
}

func TestRegisterFest_GroupMemberIDs(t *testing.T) {
	store := newFakeStore()
	svc := newRegistrationService(store, newFakeUsers(), newFakeGateway(), &fakeNotifier{})

	reg := domain.Registration{
		OwnerID:        "leader-user",
		EnrollmentType: domain.EnrollmentGroup,
		Amount:         500,
		Attendees: []domain.Attendee{
			{Name: "Asha Verma", College: "NIT Patna", IsLeader: true},
			{Name: "Ravi Kumar", College: "NIT Patna"},
			{Name: "Meera Singh", College: "NIT Patna"},
		},
	}

	outcome, err := svc.RegisterFest(context.Background(), reg)
	require.NoError(t, err)

	attendees := outcome.Registration.Attendees
	require.Len(t, attendees, 3)
	assert.Equal(t, 3, outcome.Registration.NumMembers)

	// The leader carries the owner's id; every member id is distinct.
	assert.Equal(t, "leader-user", attendees[0].MemberID)
	seen := map[string]bool{}
	for _, a := range attendees {
		assert.NotEmpty(t, a.MemberID)
		assert.False(t, seen[a.MemberID], "duplicate member id %v", a.MemberID)
		seen[a.MemberID] = true
	}
}

func TestRegisterEvent_DuplicateScopedToEvent(t *testing.T) {
	store := newFakeStore()
	store.put(domain.Registration{
		ID:            "existing",
		OwnerID:       "user-1",
		Kind:          domain.KindEvent,
		EventID:       "ev-robotics",
		PaymentStatus: domain.PaymentCompleted,
	})
	svc := newRegistrationService(store, newFakeUsers(), newFakeGateway(), &fakeNotifier{})

	input := domain.Registration{
		OwnerID:        "user-1",
		EnrollmentType: domain.EnrollmentIndividual,
		EventID:        "ev-robotics",
		EventName:      "Robotics",
		Amount:         150,
		Attendees:      []domain.Attendee{{Name: "Asha Verma", IsLeader: true}},
	}

	_, err := svc.RegisterEvent(context.Background(), input)
	assert.ErrorIs(t, err, ErrAlreadyRegistered)

	// A different event for the same owner is fine.
	input.EventID = "ev-quiz"
	input.EventName = "Quiz"
	_, err = svc.RegisterEvent(context.Background(), input)
	assert.NoError(t, err)
}

func TestRegisterEvent_LeaderCollegeFromProfile(t *testing.T) {
	store := newFakeStore()
	users := newFakeUsers(domain.User{ID: 1, UserID: "user-1", College: "IGIMS, Patna"})
	svc := newRegistrationService(store, users, newFakeGateway(), &fakeNotifier{})

	outcome, err := svc.RegisterEvent(context.Background(), domain.Registration{
		OwnerID:        "user-1",
		EnrollmentType: domain.EnrollmentIndividual,
		EventID:        "ev-quiz",
		EventName:      "Quiz",
		Amount:         150,
		Attendees:      []domain.Attendee{{Name: "Asha Verma", IsLeader: true}},
	})
	require.NoError(t, err)
	assert.Equal(t, "IGIMS, Patna", outcome.Registration.Attendees[0].College)
}

func TestRegisterEvent_UnknownOwnerStillRegisters(t *testing.T) {
	store := newFakeStore()
	svc := newRegistrationService(store, newFakeUsers(), newFakeGateway(), &fakeNotifier{})

	outcome, err := svc.RegisterEvent(context.Background(), domain.Registration{
		OwnerID:        "anonymous",
		EnrollmentType: domain.EnrollmentIndividual,
		EventID:        "ev-quiz",
		EventName:      "Quiz",
		Amount:         150,
		Attendees:      []domain.Attendee{{Name: "Asha Verma", IsLeader: true}},
	})
	require.NoError(t, err)
	assert.True(t, outcome.PaymentRequired)
}

func TestRegisterEvent_FreeCompletesAndNotifies(t *testing.T) {
	store := newFakeStore()
	notifier := &fakeNotifier{}
	svc := newRegistrationService(store, newFakeUsers(), newFakeGateway(), notifier)

	outcome, err := svc.RegisterEvent(context.Background(), domain.Registration{
		OwnerID:        "user-1",
		EnrollmentType: domain.EnrollmentIndividual,
		EventID:        "ev-openmic",
		EventName:      "Open Mic",
		Amount:         0,
		Attendees:      []domain.Attendee{{Name: "Asha Verma", Email: "asha@example.com", IsLeader: true}},
	})
	require.NoError(t, err)

	assert.False(t, outcome.PaymentRequired)
	assert.Equal(t, domain.PaymentCompleted, outcome.Registration.PaymentStatus)

	require.Eventually(t, func() bool {
		return notifier.eventSendCount() == 1
	}, time.Second, 10*time.Millisecond)
}

func TestFestPassWaiverPolicy(t *testing.T) {
	store := newFakeStore()
	store.put(domain.Registration{
		ID:            "fest-reg",
		OwnerID:       "waived-user",
		Kind:          domain.KindFestPass,
		PaymentStatus: domain.PaymentCompleted,
	})
	policy := NewFestPassWaiverPolicy(store, "IGIMS, Patna")

	tests := []struct {
		name  string
		owner domain.User
		want  float64
	}{
		{
			name:  "waiver college with completed fest pass pays nothing",
			owner: domain.User{UserID: "waived-user", College: "IGIMS, Patna"},
			want:  0,
		},
		{
			name:  "waiver college without fest pass pays the declared fee",
			owner: domain.User{UserID: "other-user", College: "IGIMS, Patna"},
			want:  150,
		},
		{
			name:  "other college pays the declared fee",
			owner: domain.User{UserID: "waived-user", College: "NIT Patna"},
			want:  150,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fee, err := policy.EventFee(context.Background(), tt.owner, 150)
			require.NoError(t, err)
			assert.Equal(t, tt.want, fee)
		})
	}
}
