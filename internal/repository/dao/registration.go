package dao

import (
	"context"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrRegistrationNotFound = errors.New("registration not found")
	ErrMemberNotFound       = errors.New("member not found in registration")
)

// Attendee mirrors domain.Attendee inside the registrations.attendees JSONB
// column. Attendees are embedded, not rows: every mutation rewrites the whole
// list inside one transaction.
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

type AttendeeList []Attendee

func (l AttendeeList) Value() (driver.Value, error) {
	if l == nil {
		l = AttendeeList{}
	}

	return json.Marshal(l)
}

func (l *AttendeeList) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*l = nil
		return nil
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return fmt.Errorf("unsupported attendee list source type %T", src)
	}
}

type Registration struct {
	ID             string `gorm:"primaryKey"`
	OwnerID        string `gorm:"index;not null"`
	Kind           string `gorm:"index;not null"`
	EnrollmentType string `gorm:"not null"`

	EventID          string
	EventName        string
	TeamName         string
	SubmissionLink   string
	Purpose          string
	CoordinatorEmail string

	NumMembers int
	CouponCode string
	Amount     float64 `gorm:"not null"`

	PaymentStatus      string       `gorm:"index;not null"`
	OrderID            string       `gorm:"index"`
	PaymentID          string
	Attendees          AttendeeList `gorm:"type:jsonb"`
	RegisteredAt       time.Time    `gorm:"not null"`
	PaymentCompletedAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

type RegistrationDAO struct {
	db *gorm.DB
}

func NewRegistrationDAO(db *gorm.DB) *RegistrationDAO {
	return &RegistrationDAO{
		db: db,
	}
}

func (d *RegistrationDAO) Insert(ctx context.Context, reg Registration) (Registration, error) {
	result := d.db.WithContext(ctx).Create(&reg)
	if result.Error != nil {
		return Registration{}, result.Error
	}

	return reg, nil
}

func (d *RegistrationDAO) FindByID(ctx context.Context, id string) (Registration, error) {
	var reg Registration
	err := d.db.WithContext(ctx).First(&reg, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Registration{}, ErrRegistrationNotFound
		}

		return Registration{}, err
	}

	return reg, nil
}

// FindCompletedByOwner backs the duplicate-registration guard (HTTP 409).
// eventID scopes the lookup for event-kind registrations; it is empty for the
// fest pass, which is unique per owner regardless of event.
func (d *RegistrationDAO) FindCompletedByOwner(ctx context.Context, ownerID, kind, eventID string) (Registration, error) {
	query := d.db.WithContext(ctx).
		Where("owner_id = ? AND kind = ? AND payment_status = ?", ownerID, kind, "completed")
	if eventID != "" {
		query = query.Where("event_id = ?", eventID)
	}

	var reg Registration
	err := query.First(&reg).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Registration{}, ErrRegistrationNotFound
		}

		return Registration{}, err
	}

	return reg, nil
}

func (d *RegistrationDAO) UpdateOrderID(ctx context.Context, id, orderID string) error {
	result := d.db.WithContext(ctx).Model(&Registration{}).
		Where("id = ?", id).
		Update("order_id", orderID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrRegistrationNotFound
	}

	return nil
}

// CompletePayment flips payment_status pending -> completed, records the
// gateway payment reference and, if attendees is non-nil, the freshly issued
// credentials. The WHERE clause on payment_status makes the transition happen
// at most once: a duplicate callback loses the race and gets applied=false.
func (d *RegistrationDAO) CompletePayment(ctx context.Context, id, paymentID string, attendees AttendeeList) (bool, error) {
	now := time.Now().UTC()
	updates := map[string]interface{}{
		"payment_status":       "completed",
		"payment_id":           paymentID,
		"payment_completed_at": &now,
	}
	if attendees != nil {
		updates["attendees"] = attendees
	}

	result := d.db.WithContext(ctx).Model(&Registration{}).
		Where("id = ? AND payment_status = ?", id, "pending").
		Updates(updates)
	if result.Error != nil {
		return false, result.Error
	}

	return result.RowsAffected > 0, nil
}

// MarkEntered records a venue check-in. The registration row is locked FOR
// UPDATE, the target attendee's hasEntered flag is re-checked under that lock,
// and the pass number comes from the counter inside the same transaction.
// Two concurrent scans of one member therefore serialize: exactly one sees
// fresh=true and exactly one pass number is consumed.
func (d *RegistrationDAO) MarkEntered(ctx context.Context, regID, memberID, agentID string) (Registration, Attendee, bool, error) {
	var (
		reg     Registration
		entered Attendee
		fresh   bool
	)

	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&reg, "id = ?", regID).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRegistrationNotFound
			}

			return err
		}

		idx := -1
		for i, a := range reg.Attendees {
			if a.MemberID == memberID {
				idx = i
				break
			}
		}
		if idx == -1 {
			return ErrMemberNotFound
		}

		if reg.Attendees[idx].HasEntered {
			entered = reg.Attendees[idx]
			fresh = false

			return nil
		}

		pass, err := nextPassNumber(tx)
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		attendee := reg.Attendees[idx]
		attendee.HasEntered = true
		attendee.EntryTime = &now
		attendee.EnteredBy = agentID
		attendee.PassNumber = pass
		reg.Attendees[idx] = attendee

		if err = tx.Model(&Registration{}).
			Where("id = ?", regID).
			Update("attendees", reg.Attendees).Error; err != nil {
			return err
		}

		entered = attendee
		fresh = true

		return nil
	})
	if err != nil {
		return Registration{}, Attendee{}, false, err
	}

	return reg, entered, fresh, nil
}
