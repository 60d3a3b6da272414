// Package credential encodes per-attendee entry credentials and renders them
// as scannable QR images. The payload is what the venue scanner posts back:
// it must round-trip (regId, memberId) without any further lookup.
package credential

import (
	"encoding/base64"
	"encoding/json"
	"fmt"

	qrcode "github.com/skip2/go-qrcode"

	"github.com/cerebrexia/fest-backend/internal/domain"
)

// PayloadType marks a fest-pass member credential.
const PayloadType = "FestPass_Member"

const qrImageSize = 256

// Payload is the JSON document embedded in each QR image.
type Payload struct {
	Type      string `json:"type"`
	RegID     string `json:"regId"`
	MemberID  string `json:"memberId"`
	Name      string `json:"name"`
	College   string `json:"college"`
	IsLeader  bool   `json:"isLeader"`
	PaymentID string `json:"paymentId,omitempty"`
}

// Encode serializes the payload to the JSON text embedded in the QR image.
func (p Payload) Encode() (string, error) {
	raw, err := json.Marshal(p)
	if err != nil {
		return "", fmt.Errorf("json.Marshal -> %w", err)
	}

	return string(raw), nil
}

// DecodePayload parses a scanned QR payload.
func DecodePayload(s string) (Payload, error) {
	var p Payload
	if err := json.Unmarshal([]byte(s), &p); err != nil {
		return Payload{}, fmt.Errorf("json.Unmarshal -> %w", err)
	}

	return p, nil
}

// RenderDataURL renders the payload as a PNG data URL suitable for embedding
// in confirmation emails.
func RenderDataURL(p Payload) (string, error) {
	text, err := p.Encode()
	if err != nil {
		return "", err
	}

	png, err := qrcode.Encode(text, qrcode.Medium, qrImageSize)
	if err != nil {
		return "", fmt.Errorf("qrcode.Encode -> %w", err)
	}

	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}

// Issue returns a copy of the registration's attendees with a rendered
// credential stamped on each. paymentID is empty on the zero-amount path.
func Issue(reg domain.Registration, paymentID string) ([]domain.Attendee, error) {
	attendees := make([]domain.Attendee, len(reg.Attendees))
	for i, a := range reg.Attendees {
		qr, err := RenderDataURL(Payload{
			Type:      PayloadType,
			RegID:     reg.ID,
			MemberID:  a.MemberID,
			Name:      a.Name,
			College:   a.College,
			IsLeader:  a.IsLeader,
			PaymentID: paymentID,
		})
		if err != nil {
			return nil, fmt.Errorf("rendering credential for member %v -> %w", a.MemberID, err)
		}

		a.QRCode = qr
		attendees[i] = a
	}

	return attendees, nil
}
