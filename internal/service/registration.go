package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cerebrexia/fest-backend/internal/credential"
	"github.com/cerebrexia/fest-backend/internal/domain"
	"github.com/cerebrexia/fest-backend/internal/payment"
	"github.com/cerebrexia/fest-backend/internal/repository"
)

var (
	ErrRegistrationNotFound = repository.ErrRegistrationNotFound
	ErrMemberNotFound       = repository.ErrMemberNotFound
	ErrAlreadyRegistered    = errors.New("a completed registration already exists for this user")
)

const orderCurrency = "INR"

// RegistrationRepository is the store surface the registration flow needs.
type RegistrationRepository interface {
	Create(ctx context.Context, reg domain.Registration) (domain.Registration, error)
	FindCompletedByOwner(ctx context.Context, ownerID string, kind domain.RegistrationKind, eventID string) (domain.Registration, error)
	UpdateOrderID(ctx context.Context, id, orderID string) error
	CompletePayment(ctx context.Context, id, paymentID string, attendees []domain.Attendee) (bool, error)
}

// Notifier sends confirmation emails. All sends are best-effort: services fire
// them on a detached goroutine after the state change has committed.
type Notifier interface {
	SendFestPassEmails(reg domain.Registration) error
	SendEventConfirmation(reg domain.Registration) error
	SendEntryConfirmation(reg domain.Registration, attendee domain.Attendee) error
}

// FeePolicy adjusts a declared event fee before an order is opened. The
// precedence of waivers versus coupon codes lives behind this interface so the
// business rule stays pluggable.
type FeePolicy interface {
	EventFee(ctx context.Context, owner domain.User, declared float64) (float64, error)
}

// RegistrationOutcome is returned to the handler: either the registration
// completed inline (zero amount) or an order must be settled by the frontend.
type RegistrationOutcome struct {
	Registration    domain.Registration
	PaymentRequired bool
	Order           payment.Order
}

type RegistrationService struct {
	repo     RegistrationRepository
	users    UserRepository
	gateway  payment.Gateway
	notifier Notifier
	fees     FeePolicy
}

func NewRegistrationService(repo RegistrationRepository, users UserRepository, gateway payment.Gateway, notifier Notifier, fees FeePolicy) *RegistrationService {
	return &RegistrationService{
		repo:     repo,
		users:    users,
		gateway:  gateway,
		notifier: notifier,
		fees:     fees,
	}
}

// RegisterFest creates a fest-pass registration. A zero amount completes the
// registration inline, credentials included; otherwise a gateway order is
// opened for the frontend checkout.
func (s *RegistrationService) RegisterFest(ctx context.Context, reg domain.Registration) (RegistrationOutcome, error) {
	if err := s.checkNotRegistered(ctx, reg.OwnerID, domain.KindFestPass, ""); err != nil {
		return RegistrationOutcome{}, err
	}

	reg.ID = uuid.New().String()
	reg.Kind = domain.KindFestPass
	reg.PaymentStatus = domain.PaymentPending
	reg.RegisteredAt = time.Now().UTC()
	assignMemberIDs(&reg)

	created, err := s.repo.Create(ctx, reg)
	if err != nil {
		return RegistrationOutcome{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	if created.Amount <= 0 {
		completed, err := s.completeFree(ctx, created)
		if err != nil {
			return RegistrationOutcome{}, err
		}

		s.dispatch(func() error { return s.notifier.SendFestPassEmails(completed) })

		return RegistrationOutcome{Registration: completed}, nil
	}

	order, err := s.openOrder(ctx, created, "festpass_"+created.ID)
	if err != nil {
		return RegistrationOutcome{}, err
	}

	return RegistrationOutcome{Registration: created, PaymentRequired: true, Order: order}, nil
}

// RegisterEvent creates a single-event registration. The fee policy may lower
// the declared fee (e.g. fest-pass holders from the waiver college enter free).
func (s *RegistrationService) RegisterEvent(ctx context.Context, reg domain.Registration) (RegistrationOutcome, error) {
	if err := s.checkNotRegistered(ctx, reg.OwnerID, domain.KindEvent, reg.EventID); err != nil {
		return RegistrationOutcome{}, err
	}

	owner, err := s.users.FindByUserID(ctx, reg.OwnerID)
	if err != nil && !errors.Is(err, repository.ErrUserNotFound) {
		return RegistrationOutcome{}, fmt.Errorf("s.users.FindByUserID -> %w", err)
	}
	if err == nil {
		// Enrich from the stored profile; the form no longer collects these.
		for i := range reg.Attendees {
			if reg.Attendees[i].IsLeader && reg.Attendees[i].College == "" {
				reg.Attendees[i].College = owner.College
			}
		}
	}

	fee, err := s.fees.EventFee(ctx, owner, reg.Amount)
	if err != nil {
		return RegistrationOutcome{}, fmt.Errorf("s.fees.EventFee -> %w", err)
	}
	reg.Amount = fee

	reg.ID = uuid.New().String()
	reg.Kind = domain.KindEvent
	reg.PaymentStatus = domain.PaymentPending
	reg.RegisteredAt = time.Now().UTC()
	assignMemberIDs(&reg)

	created, err := s.repo.Create(ctx, reg)
	if err != nil {
		return RegistrationOutcome{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	if created.Amount <= 0 {
		applied, err := s.repo.CompletePayment(ctx, created.ID, "", nil)
		if err != nil {
			return RegistrationOutcome{}, fmt.Errorf("s.repo.CompletePayment -> %w", err)
		}
		if applied {
			created.PaymentStatus = domain.PaymentCompleted
		}

		s.dispatch(func() error { return s.notifier.SendEventConfirmation(created) })

		return RegistrationOutcome{Registration: created}, nil
	}

	order, err := s.openOrder(ctx, created, "event_"+created.ID)
	if err != nil {
		return RegistrationOutcome{}, err
	}

	return RegistrationOutcome{Registration: created, PaymentRequired: true, Order: order}, nil
}

func (s *RegistrationService) checkNotRegistered(ctx context.Context, ownerID string, kind domain.RegistrationKind, eventID string) error {
	_, err := s.repo.FindCompletedByOwner(ctx, ownerID, kind, eventID)
	if err == nil {
		return ErrAlreadyRegistered
	}
	if !errors.Is(err, repository.ErrRegistrationNotFound) {
		return fmt.Errorf("s.repo.FindCompletedByOwner -> %w", err)
	}

	return nil
}

// completeFree issues credentials and flips the status for a zero-amount
// fest registration. The conditional update keeps a retried request from
// issuing twice.
func (s *RegistrationService) completeFree(ctx context.Context, reg domain.Registration) (domain.Registration, error) {
	attendees, err := credential.Issue(reg, "")
	if err != nil {
		return domain.Registration{}, fmt.Errorf("credential.Issue -> %w", err)
	}

	applied, err := s.repo.CompletePayment(ctx, reg.ID, "", attendees)
	if err != nil {
		return domain.Registration{}, fmt.Errorf("s.repo.CompletePayment -> %w", err)
	}
	if applied {
		reg.PaymentStatus = domain.PaymentCompleted
		reg.Attendees = attendees
	}

	return reg, nil
}

func (s *RegistrationService) openOrder(ctx context.Context, reg domain.Registration, receipt string) (payment.Order, error) {
	order, err := s.gateway.CreateOrder(ctx, payment.OrderRequest{
		AmountPaise:    int64(math.Round(reg.Amount * 100)),
		Currency:       orderCurrency,
		Receipt:        receipt,
		RegistrationID: reg.ID,
		Kind:           reg.Kind,
		OwnerID:        reg.OwnerID,
	})
	if err != nil {
		return payment.Order{}, fmt.Errorf("s.gateway.CreateOrder -> %w", err)
	}

	if err = s.repo.UpdateOrderID(ctx, reg.ID, order.ID); err != nil {
		return payment.Order{}, fmt.Errorf("s.repo.UpdateOrderID -> %w", err)
	}

	return order, nil
}

// dispatch runs a notification send in the background. Failures are logged,
// never propagated: the committed state change is the fact of record.
func (s *RegistrationService) dispatch(send func() error) {
	go func() {
		if err := send(); err != nil {
			zap.L().Error("notification send failed", zap.Error(err))
		}
	}()
}

// assignMemberIDs stamps member identifiers: the leader carries the owner's
// external id, group members get fresh random ids.
func assignMemberIDs(reg *domain.Registration) {
	for i := range reg.Attendees {
		if reg.Attendees[i].IsLeader {
			reg.Attendees[i].MemberID = reg.OwnerID
		} else if reg.Attendees[i].MemberID == "" {
			reg.Attendees[i].MemberID = uuid.New().String()
		}
	}
	reg.NumMembers = len(reg.Attendees)
}
