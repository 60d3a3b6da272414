package response

import (
	"time"

	"github.com/cerebrexia/fest-backend/internal/domain"
	"github.com/cerebrexia/fest-backend/internal/payment"
	"github.com/cerebrexia/fest-backend/internal/service"
)

// RegistrationCompleted is returned when no payment is due and the
// registration is confirmed immediately.
type RegistrationCompleted struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// RegistrationInitiated is returned when a gateway order has been opened and
// the client must complete the checkout flow.
type RegistrationInitiated struct {
	Message          string `json:"message"`
	OrderID          string `json:"orderId"`
	Amount           int64  `json:"amount"`
	Currency         string `json:"currency"`
	RazorpayKey      string `json:"razorpayKey"`
	DBRegistrationID string `json:"dbRegistrationId"`
	RegistrationType string `json:"registration_type,omitempty"`
}

func NewRegistrationCompleted(message string) RegistrationCompleted {
	return RegistrationCompleted{
		Status:  "success",
		Message: message,
	}
}

func NewRegistrationInitiated(message, gatewayKey string, order payment.Order, kind string) RegistrationInitiated {
	return RegistrationInitiated{
		Message:          message,
		OrderID:          order.ID,
		Amount:           order.Amount,
		Currency:         order.Currency,
		RazorpayKey:      gatewayKey,
		DBRegistrationID: order.RegistrationID,
		RegistrationType: kind,
	}
}

// PaymentConfirmed is returned by the payment callback endpoint.
type PaymentConfirmed struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

func NewPaymentConfirmed(result service.ConfirmationResult) PaymentConfirmed {
	if result.AlreadyProcessed {
		return PaymentConfirmed{
			Status:  "success",
			Message: "Payment was already processed.",
		}
	}

	return PaymentConfirmed{
		Status:  "success",
		Message: "Payment successful and registration confirmed!",
	}
}

// ScanData mirrors what the gate scanner UI displays after a scan.
type ScanData struct {
	Name           string     `json:"name"`
	College        string     `json:"college"`
	EnrollmentType string     `json:"enrollmentType"`
	NumMembers     int        `json:"numMembers"`
	MemberID       string     `json:"memberId"`
	PassNumber     string     `json:"passNumber"`
	LastScanTime   *time.Time `json:"lastScanTime"`
	LastScannedBy  string     `json:"lastScannedBy"`
}

type ScanResponse struct {
	Status  string   `json:"status"`
	Message string   `json:"message"`
	Data    ScanData `json:"data"`
}

func NewScanResponse(result domain.EntryResult) ScanResponse {
	message := "Entry Successful!"
	if result.Status == domain.EntryDuplicate {
		message = "Already Scanned!"
	}

	return ScanResponse{
		Status:  string(result.Status),
		Message: message,
		Data: ScanData{
			Name:           result.Attendee.Name,
			College:        result.Attendee.College,
			EnrollmentType: string(result.EnrollmentType),
			NumMembers:     result.NumMembers,
			MemberID:       result.Attendee.MemberID,
			PassNumber:     result.Attendee.PassNumber,
			LastScanTime:   result.Attendee.EntryTime,
			LastScannedBy:  result.Attendee.EnteredBy,
		},
	}
}
