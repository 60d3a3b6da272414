package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/cerebrexia/fest-backend/internal/credential"
	"github.com/cerebrexia/fest-backend/internal/domain"
	"github.com/cerebrexia/fest-backend/internal/payment"
)

var (
	// ErrSignatureMismatch means the callback signature did not verify; the
	// assertion is rejected with no state change.
	ErrSignatureMismatch = errors.New("payment signature verification failed")

	// ErrOrderMetadataMissing means the gateway order carries no registration
	// reference, so the callback cannot be attributed.
	ErrOrderMetadataMissing = errors.New("registration metadata missing from order")
)

// PaymentRepository is the store surface the confirmation flow needs.
type PaymentRepository interface {
	FindByID(ctx context.Context, id string) (domain.Registration, error)
	CompletePayment(ctx context.Context, id, paymentID string, attendees []domain.Attendee) (bool, error)
}

// ConfirmationResult reports the outcome of a verified callback.
// AlreadyProcessed is still a success: duplicate gateway callbacks are
// expected in production and must be acknowledged without re-issuing.
type ConfirmationResult struct {
	Registration     domain.Registration
	AlreadyProcessed bool
}

type PaymentService struct {
	repo      PaymentRepository
	gateway   payment.Gateway
	notifier  Notifier
	keySecret string
}

func NewPaymentService(repo PaymentRepository, gateway payment.Gateway, notifier Notifier, keySecret string) *PaymentService {
	return &PaymentService{
		repo:      repo,
		gateway:   gateway,
		notifier:  notifier,
		keySecret: keySecret,
	}
}

// ConfirmCallback verifies a payment assertion and completes the registration
// exactly once.
//
// Order of operations matters: signature verification happens before any
// store read, and the pending -> completed flip is a single conditional store
// update. Two near-simultaneous callbacks can both pass the in-memory status
// check, but only one conditional update applies; the loser is treated as the
// idempotent already-processed case.
func (s *PaymentService) ConfirmCallback(ctx context.Context, orderID, paymentID, signature string) (ConfirmationResult, error) {
	order, err := s.gateway.FetchOrder(ctx, orderID)
	if err != nil {
		return ConfirmationResult{}, fmt.Errorf("s.gateway.FetchOrder -> %w", err)
	}
	if order.RegistrationID == "" || order.Kind == "" {
		return ConfirmationResult{}, ErrOrderMetadataMissing
	}

	if !payment.VerifySignature(orderID, paymentID, signature, s.keySecret) {
		return ConfirmationResult{}, ErrSignatureMismatch
	}

	reg, err := s.repo.FindByID(ctx, order.RegistrationID)
	if err != nil {
		return ConfirmationResult{}, err
	}

	if reg.PaymentStatus == domain.PaymentCompleted {
		return ConfirmationResult{Registration: reg, AlreadyProcessed: true}, nil
	}

	// Event-kind registrations carry no group credential grid.
	var attendees []domain.Attendee
	if reg.Kind == domain.KindFestPass {
		attendees, err = credential.Issue(reg, paymentID)
		if err != nil {
			return ConfirmationResult{}, fmt.Errorf("credential.Issue -> %w", err)
		}
	}

	applied, err := s.repo.CompletePayment(ctx, reg.ID, paymentID, attendees)
	if err != nil {
		return ConfirmationResult{}, fmt.Errorf("s.repo.CompletePayment -> %w", err)
	}
	if !applied {
		// Lost the race against a concurrent duplicate callback.
		return ConfirmationResult{Registration: reg, AlreadyProcessed: true}, nil
	}

	reg.PaymentStatus = domain.PaymentCompleted
	reg.OrderID = orderID
	reg.PaymentID = paymentID
	if attendees != nil {
		reg.Attendees = attendees
	}

	s.notify(reg)

	return ConfirmationResult{Registration: reg}, nil
}

func (s *PaymentService) notify(reg domain.Registration) {
	go func() {
		var err error
		switch reg.Kind {
		case domain.KindFestPass:
			err = s.notifier.SendFestPassEmails(reg)
		default:
			err = s.notifier.SendEventConfirmation(reg)
		}
		if err != nil {
			zap.L().Error("payment confirmation email failed",
				zap.String("registrationID", reg.ID),
				zap.Error(err))
		}
	}()
}
