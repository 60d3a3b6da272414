package repository

import (
	"context"
	"fmt"

	"github.com/cerebrexia/fest-backend/internal/domain"
	"github.com/cerebrexia/fest-backend/internal/repository/dao"
)

var (
	ErrRegistrationNotFound = dao.ErrRegistrationNotFound
	ErrMemberNotFound       = dao.ErrMemberNotFound
)

type RegistrationDAO interface {
	Insert(ctx context.Context, reg dao.Registration) (dao.Registration, error)
	FindByID(ctx context.Context, id string) (dao.Registration, error)
	FindCompletedByOwner(ctx context.Context, ownerID, kind, eventID string) (dao.Registration, error)
	UpdateOrderID(ctx context.Context, id, orderID string) error
	CompletePayment(ctx context.Context, id, paymentID string, attendees dao.AttendeeList) (bool, error)
	MarkEntered(ctx context.Context, regID, memberID, agentID string) (dao.Registration, dao.Attendee, bool, error)
}

type RegistrationRepository struct {
	dao RegistrationDAO
}

func NewRegistrationRepository(dao RegistrationDAO) *RegistrationRepository {
	return &RegistrationRepository{
		dao: dao,
	}
}

func (r *RegistrationRepository) Create(ctx context.Context, reg domain.Registration) (domain.Registration, error) {
	created, err := r.dao.Insert(ctx, domainToDao(reg))
	if err != nil {
		return domain.Registration{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return daoToDomain(created), nil
}

func (r *RegistrationRepository) FindByID(ctx context.Context, id string) (domain.Registration, error) {
	reg, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Registration{}, err
	}

	return daoToDomain(reg), nil
}

func (r *RegistrationRepository) FindCompletedByOwner(ctx context.Context, ownerID string, kind domain.RegistrationKind, eventID string) (domain.Registration, error) {
	reg, err := r.dao.FindCompletedByOwner(ctx, ownerID, string(kind), eventID)
	if err != nil {
		return domain.Registration{}, err
	}

	return daoToDomain(reg), nil
}

func (r *RegistrationRepository) UpdateOrderID(ctx context.Context, id, orderID string) error {
	return r.dao.UpdateOrderID(ctx, id, orderID)
}

func (r *RegistrationRepository) CompletePayment(ctx context.Context, id, paymentID string, attendees []domain.Attendee) (bool, error) {
	var list dao.AttendeeList
	if attendees != nil {
		list = attendeesToDao(attendees)
	}

	return r.dao.CompletePayment(ctx, id, paymentID, list)
}

func (r *RegistrationRepository) MarkEntered(ctx context.Context, regID, memberID, agentID string) (domain.Registration, domain.Attendee, bool, error) {
	reg, attendee, fresh, err := r.dao.MarkEntered(ctx, regID, memberID, agentID)
	if err != nil {
		return domain.Registration{}, domain.Attendee{}, false, err
	}

	return daoToDomain(reg), attendeeToDomain(attendee), fresh, nil
}

func domainToDao(reg domain.Registration) dao.Registration {
	return dao.Registration{
		ID:                 reg.ID,
		OwnerID:            reg.OwnerID,
		Kind:               string(reg.Kind),
		EnrollmentType:     string(reg.EnrollmentType),
		EventID:            reg.EventID,
		EventName:          reg.EventName,
		TeamName:           reg.TeamName,
		SubmissionLink:     reg.SubmissionLink,
		Purpose:            reg.Purpose,
		CoordinatorEmail:   reg.CoordinatorEmail,
		NumMembers:         reg.NumMembers,
		CouponCode:         reg.CouponCode,
		Amount:             reg.Amount,
		PaymentStatus:      string(reg.PaymentStatus),
		OrderID:            reg.OrderID,
		PaymentID:          reg.PaymentID,
		Attendees:          attendeesToDao(reg.Attendees),
		RegisteredAt:       reg.RegisteredAt,
		PaymentCompletedAt: reg.PaymentCompletedAt,
	}
}

func daoToDomain(reg dao.Registration) domain.Registration {
	return domain.Registration{
		ID:                 reg.ID,
		OwnerID:            reg.OwnerID,
		Kind:               domain.RegistrationKind(reg.Kind),
		EnrollmentType:     domain.EnrollmentType(reg.EnrollmentType),
		EventID:            reg.EventID,
		EventName:          reg.EventName,
		TeamName:           reg.TeamName,
		SubmissionLink:     reg.SubmissionLink,
		Purpose:            reg.Purpose,
		CoordinatorEmail:   reg.CoordinatorEmail,
		NumMembers:         reg.NumMembers,
		CouponCode:         reg.CouponCode,
		Amount:             reg.Amount,
		PaymentStatus:      domain.PaymentStatus(reg.PaymentStatus),
		OrderID:            reg.OrderID,
		PaymentID:          reg.PaymentID,
		Attendees:          attendeesToDomain(reg.Attendees),
		RegisteredAt:       reg.RegisteredAt,
		PaymentCompletedAt: reg.PaymentCompletedAt,
	}
}

func attendeesToDao(attendees []domain.Attendee) dao.AttendeeList {
	list := make(dao.AttendeeList, len(attendees))
	for i, a := range attendees {
		list[i] = dao.Attendee(a)
	}

	return list
}

func attendeesToDomain(list dao.AttendeeList) []domain.Attendee {
	attendees := make([]domain.Attendee, len(list))
	for i, a := range list {
		attendees[i] = attendeeToDomain(a)
	}

	return attendees
}

func attendeeToDomain(a dao.Attendee) domain.Attendee {
	return domain.Attendee(a)
}
