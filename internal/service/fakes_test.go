package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/cerebrexia/fest-backend/internal/domain"
	"github.com/cerebrexia/fest-backend/internal/payment"
	"github.com/cerebrexia/fest-backend/internal/repository"
)

// fakeStore is an in-memory registration store with the same conditional
// update semantics as the real DAO.
type fakeStore struct {
	mu       sync.Mutex
	regs     map[string]domain.Registration
	lastPass int64
}

func newFakeStore() *fakeStore {
	return &fakeStore{regs: make(map[string]domain.Registration)}
}

func (f *fakeStore) put(reg domain.Registration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.regs[reg.ID] = reg
}

func (f *fakeStore) get(id string) domain.Registration {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.regs[id]
}

func (f *fakeStore) Create(_ context.Context, reg domain.Registration) (domain.Registration, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.regs[reg.ID] = reg
	return reg, nil
}

func (f *fakeStore) FindByID(_ context.Context, id string) (domain.Registration, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	reg, ok := f.regs[id]
	if !ok {
		return domain.Registration{}, repository.ErrRegistrationNotFound
	}
	return reg, nil
}

func (f *fakeStore) FindCompletedByOwner(_ context.Context, ownerID string, kind domain.RegistrationKind, eventID string) (domain.Registration, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, reg := range f.regs {
		if reg.OwnerID != ownerID || reg.Kind != kind || reg.PaymentStatus != domain.PaymentCompleted {
			continue
		}
		if eventID != "" && reg.EventID != eventID {
			continue
		}
		return reg, nil
	}
	return domain.Registration{}, repository.ErrRegistrationNotFound
}

func (f *fakeStore) UpdateOrderID(_ context.Context, id, orderID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	reg, ok := f.regs[id]
	if !ok {
		return repository.ErrRegistrationNotFound
	}
	reg.OrderID = orderID
	f.regs[id] = reg
	return nil
}

func (f *fakeStore) CompletePayment(_ context.Context, id, paymentID string, attendees []domain.Attendee) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	reg, ok := f.regs[id]
	if !ok || reg.PaymentStatus != domain.PaymentPending {
		return false, nil
	}
	now := time.Now().UTC()
	reg.PaymentStatus = domain.PaymentCompleted
	reg.PaymentID = paymentID
	reg.PaymentCompletedAt = &now
	if attendees != nil {
		reg.Attendees = attendees
	}
	f.regs[id] = reg
	return true, nil
}

// MarkEntered mirrors the DAO's locked re-check: the mutex plays the role of
// the row lock, so exactly one concurrent scan sees fresh=true.
func (f *fakeStore) MarkEntered(_ context.Context, regID, memberID, agentID string) (domain.Registration, domain.Attendee, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	reg, ok := f.regs[regID]
	if !ok {
		return domain.Registration{}, domain.Attendee{}, false, repository.ErrRegistrationNotFound
	}

	idx, ok := reg.FindAttendee(memberID)
	if !ok {
		return domain.Registration{}, domain.Attendee{}, false, repository.ErrMemberNotFound
	}

	if reg.Attendees[idx].HasEntered {
		return reg, reg.Attendees[idx], false, nil
	}

	f.lastPass++
	now := time.Now().UTC()
	attendee := reg.Attendees[idx]
	attendee.HasEntered = true
	attendee.EntryTime = &now
	attendee.EnteredBy = agentID
	attendee.PassNumber = fmt.Sprintf("FP%d", 1000+f.lastPass)
	reg.Attendees[idx] = attendee
	f.regs[regID] = reg

	return reg, attendee, true, nil
}

type fakeGateway struct {
	mu      sync.Mutex
	orders  map[string]payment.Order
	created []payment.OrderRequest
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{orders: make(map[string]payment.Order)}
}

func (g *fakeGateway) CreateOrder(_ context.Context, req payment.OrderRequest) (payment.Order, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.created = append(g.created, req)
	order := payment.Order{
		ID:             fmt.Sprintf("order_%d", len(g.created)),
		Amount:         req.AmountPaise,
		Currency:       req.Currency,
		RegistrationID: req.RegistrationID,
		Kind:           req.Kind,
		OwnerID:        req.OwnerID,
	}
	g.orders[order.ID] = order
	return order, nil
}

func (g *fakeGateway) FetchOrder(_ context.Context, orderID string) (payment.Order, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	order, ok := g.orders[orderID]
	if !ok {
		return payment.Order{}, fmt.Errorf("order %v not found", orderID)
	}
	return order, nil
}

type fakeNotifier struct {
	mu            sync.Mutex
	festPassSends []domain.Registration
	eventSends    []domain.Registration
	entrySends    []domain.Attendee
}

func (n *fakeNotifier) SendFestPassEmails(reg domain.Registration) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.festPassSends = append(n.festPassSends, reg)
	return nil
}

func (n *fakeNotifier) SendEventConfirmation(reg domain.Registration) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.eventSends = append(n.eventSends, reg)
	return nil
}

func (n *fakeNotifier) SendEntryConfirmation(_ domain.Registration, attendee domain.Attendee) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.entrySends = append(n.entrySends, attendee)
	return nil
}

func (n *fakeNotifier) festPassSendCount() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.festPassSends)
}

func (n *fakeNotifier) eventSendCount() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.eventSends)
}

func (n *fakeNotifier) entrySendCount() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.entrySends)
}

type fakeUsers struct {
	mu    sync.Mutex
	users map[string]domain.User
}

func newFakeUsers(users ...domain.User) *fakeUsers {
	f := &fakeUsers{users: make(map[string]domain.User)}
	for _, u := range users {
		f.users[u.UserID] = u
	}
	return f
}

func (f *fakeUsers) Create(_ context.Context, user domain.User) (domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == user.Email {
			return domain.User{}, repository.ErrUserEmailExists
		}
	}
	user.ID = uint(len(f.users) + 1)
	f.users[user.UserID] = user
	return user, nil
}

func (f *fakeUsers) FindByID(_ context.Context, id uint) (domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return domain.User{}, repository.ErrUserNotFound
}

func (f *fakeUsers) FindByUserID(_ context.Context, userID string) (domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[userID]
	if !ok {
		return domain.User{}, repository.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUsers) FindByEmail(_ context.Context, email string) (domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return domain.User{}, repository.ErrUserNotFound
}

type declaredFee struct{}

func (declaredFee) EventFee(_ context.Context, _ domain.User, declared float64) (float64, error) {
	return declared, nil
}
