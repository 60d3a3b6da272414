package domain

import "time"

// RegistrationKind distinguishes a fest-wide pass from a single-event signup.
type RegistrationKind string

const (
	KindFestPass RegistrationKind = "festPass"
	KindEvent    RegistrationKind = "event"
)

type EnrollmentType string

const (
	EnrollmentIndividual EnrollmentType = "individual"
	EnrollmentGroup      EnrollmentType = "group"
)

// PaymentStatus moves pending -> completed exactly once and never reverts.
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
)

// Attendee is one person covered by a registration. The whole list is stored
// embedded in the registration record, so entry-state updates always rewrite
// the list as a unit.
type Attendee struct {
	MemberID    string     `json:"memberId"`
	Name        string     `json:"name"`
	Email       string     `json:"email"`
	College     string     `json:"college"`
	PhoneNumber string     `json:"phone_number"`
	IsLeader    bool       `json:"isLeader"`
	QRCode      string     `json:"qrCodeUrl,omitempty"`
	HasEntered  bool       `json:"hasEntered"`
	EntryTime   *time.Time `json:"entryTime,omitempty"`
	EnteredBy   string     `json:"enteredBy,omitempty"`
	PassNumber  string     `json:"passNumber,omitempty"`
}

type Registration struct {
	ID             string
	OwnerID        string
	Kind           RegistrationKind
	EnrollmentType EnrollmentType

	// Event-kind fields.
	EventID          string
	EventName        string
	TeamName         string
	SubmissionLink   string
	Purpose          string
	CoordinatorEmail string

	NumMembers int
	CouponCode string
	Amount     float64

	PaymentStatus      PaymentStatus
	OrderID            string
	PaymentID          string
	Attendees          []Attendee
	RegisteredAt       time.Time
	PaymentCompletedAt *time.Time
}

// Leader returns the attendee that initiated the registration.
func (r Registration) Leader() (Attendee, bool) {
	for _, a := range r.Attendees {
		if a.IsLeader {
			return a, true
		}
	}

	return Attendee{}, false
}

// FindAttendee looks up an attendee by member id, returning its index.
func (r Registration) FindAttendee(memberID string) (int, bool) {
	for i, a := range r.Attendees {
		if a.MemberID == memberID {
			return i, true
		}
	}

	return -1, false
}

// EntryStatus is the outcome variant of a venue scan.
type EntryStatus string

const (
	EntryNew       EntryStatus = "success"
	EntryDuplicate EntryStatus = "warning"
)

// EntryResult carries what a front-of-house terminal needs to render a
// decision without a second lookup. For a duplicate scan the attendee holds
// the original entry metadata untouched.
type EntryResult struct {
	Status         EntryStatus
	Attendee       Attendee
	EnrollmentType EnrollmentType
	NumMembers     int
}
