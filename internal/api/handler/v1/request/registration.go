package request

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"

	"github.com/cerebrexia/fest-backend/internal/domain"
)

var (
	errMissingAmount      = errors.New("registration amount is required")
	errMissingTeamName    = errors.New("team name and number of team members are required for team events")
	errIncompleteTeam     = errors.New("please provide details for all additional team members")
	errMissingEventFee    = errors.New("event fee is required")
	errInvalidEnrollment  = errors.New("enrollmentType must be individual or group")
	errMissingGroupMember = errors.New("group enrollment requires at least one additional member")
)

type GroupMember struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number"`
}

type RegisterFestRequest struct {
	UserID         string        `json:"userId"`
	Name           string        `json:"name"`
	Email          string        `json:"email"`
	PhoneNumber    string        `json:"phone_number"`
	College        string        `json:"college"`
	EnrollmentType string        `json:"enrollmentType"`
	NumMembers     int           `json:"numMembers"`
	GroupMembers   []GroupMember `json:"groupMembers"`
	CouponCode     string        `json:"couponCode,omitempty"`
	Amount         *float64      `json:"amount"`
	EventName      string        `json:"eventName,omitempty"`
}

func (req *RegisterFestRequest) Validate() error {
	err := validation.ValidateStruct(
		req,
		validation.Field(&req.UserID, validation.Required),
		validation.Field(&req.Name, validation.Required),
		validation.Field(&req.Email, validation.Required, is.Email),
		validation.Field(&req.PhoneNumber, validation.Required),
		validation.Field(&req.College, validation.Required),
	)
	if err != nil {
		return err
	}

	if req.Amount == nil {
		return errMissingAmount
	}

	switch req.EnrollmentType {
	case "", string(domain.EnrollmentIndividual):
	case string(domain.EnrollmentGroup):
		if len(req.GroupMembers) == 0 {
			return errMissingGroupMember
		}
	default:
		return errInvalidEnrollment
	}

	return nil
}

// ToDomain builds the pending registration. The leader is attendee zero;
// group members share the leader's college.
func (req *RegisterFestRequest) ToDomain() domain.Registration {
	enrollment := domain.EnrollmentIndividual
	if req.EnrollmentType == string(domain.EnrollmentGroup) {
		enrollment = domain.EnrollmentGroup
	}

	attendees := []domain.Attendee{
		{
			Name:        req.Name,
			Email:       req.Email,
			College:     req.College,
			PhoneNumber: req.PhoneNumber,
			IsLeader:    true,
		},
	}
	if enrollment == domain.EnrollmentGroup {
		for _, m := range req.GroupMembers {
			attendees = append(attendees, domain.Attendee{
				Name:        m.Name,
				Email:       m.Email,
				College:     req.College,
				PhoneNumber: m.PhoneNumber,
			})
		}
	}

	return domain.Registration{
		OwnerID:        req.UserID,
		EnrollmentType: enrollment,
		EventName:      req.EventName,
		CouponCode:     req.CouponCode,
		Amount:         *req.Amount,
		Attendees:      attendees,
	}
}

type TeamMember struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type RegisterEventRequest struct {
	UserID           string       `json:"userId"`
	EventID          string       `json:"eventId"`
	EventName        string       `json:"eventName"`
	FullName         string       `json:"fullName"`
	Email            string       `json:"email"`
	Phone            string       `json:"phone"`
	IsTeamEvent      bool         `json:"isTeamEvent"`
	TeamName         string       `json:"teamName,omitempty"`
	TeamMembersCount int          `json:"teamMembersCount,omitempty"`
	TeamDetails      []TeamMember `json:"teamDetails,omitempty"`
	SubmissionLink   string       `json:"submissionLink,omitempty"`
	Purpose          string       `json:"purpose,omitempty"`
	EventFeeValue    *float64     `json:"eventFeeValue"`
	CoordinatorEmail string       `json:"coordinatorEmail,omitempty"`
}

func (req *RegisterEventRequest) Validate() error {
	err := validation.ValidateStruct(
		req,
		validation.Field(&req.UserID, validation.Required),
		validation.Field(&req.EventID, validation.Required),
		validation.Field(&req.EventName, validation.Required),
		validation.Field(&req.FullName, validation.Required),
		validation.Field(&req.Email, validation.Required, is.Email),
		validation.Field(&req.Phone, validation.Required),
		validation.Field(&req.CoordinatorEmail, is.Email),
	)
	if err != nil {
		return err
	}

	if req.EventFeeValue == nil {
		return errMissingEventFee
	}

	if req.IsTeamEvent {
		if req.TeamName == "" || req.TeamMembersCount == 0 {
			return errMissingTeamName
		}
		if req.TeamMembersCount > 1 && len(req.TeamDetails) != req.TeamMembersCount-1 {
			return errIncompleteTeam
		}
	}

	return nil
}

func (req *RegisterEventRequest) ToDomain() domain.Registration {
	enrollment := domain.EnrollmentIndividual
	if req.IsTeamEvent {
		enrollment = domain.EnrollmentGroup
	}

	attendees := []domain.Attendee{
		{
			Name:        req.FullName,
			Email:       req.Email,
			PhoneNumber: req.Phone,
			IsLeader:    true,
		},
	}
	for _, m := range req.TeamDetails {
		attendees = append(attendees, domain.Attendee{
			Name:        m.Name,
			Email:       m.Email,
			PhoneNumber: m.Phone,
		})
	}

	return domain.Registration{
		OwnerID:          req.UserID,
		EnrollmentType:   enrollment,
		EventID:          req.EventID,
		EventName:        req.EventName,
		TeamName:         req.TeamName,
		SubmissionLink:   req.SubmissionLink,
		Purpose:          req.Purpose,
		CoordinatorEmail: req.CoordinatorEmail,
		Amount:           *req.EventFeeValue,
		Attendees:        attendees,
	}
}
