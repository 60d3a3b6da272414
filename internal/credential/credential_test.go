package credential

import (
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cerebrexia/fest-backend/internal/domain"
)

func TestPayload_RoundTrip(t *testing.T) {
	original := Payload{
		Type:      PayloadType,
		RegID:     "reg-123",
		MemberID:  "member-456",
		Name:      "Asha Verma",
		College:   "NIT Patna",
		IsLeader:  true,
		PaymentID: "pay_N5q3Jb0cF7",
	}

	encoded, err := original.Encode()
	require.NoError(t, err)

	decoded, err := DecodePayload(encoded)
	require.NoError(t, err)
	assert.Equal(t, original, decoded)
}

func TestDecodePayload_InvalidJSON(t *testing.T) {
	_, err := DecodePayload("not-json")
	assert.Error(t, err)
}

func TestRenderDataURL(t *testing.T) {
	url, err := RenderDataURL(Payload{
		Type:     PayloadType,
		RegID:    "reg-123",
		MemberID: "member-456",
		Name:     "Asha Verma",
	})
	require.NoError(t, err)

	const prefix = "data:image/png;base64,"
	require.True(t, strings.HasPrefix(url, prefix))

	png, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(url, prefix))
	require.NoError(t, err)
	assert.Equal(t, []byte("\x89PNG"), png[:4])
}

func TestIssue(t *testing.T) {
	reg := domain.Registration{
		ID: "reg-123",
		Attendees: []domain.Attendee{
			{MemberID: "leader-1", Name: "Asha Verma", College: "NIT Patna", IsLeader: true},
			{MemberID: "member-2", Name: "Ravi Kumar", College: "NIT Patna"},
		},
	}

	issued, err := Issue(reg, "pay_123")
	require.NoError(t, err)
	require.Len(t, issued, 2)

	for i, a := range issued {
		assert.NotEmpty(t, a.QRCode, "attendee %d", i)
		assert.True(t, strings.HasPrefix(a.QRCode, "data:image/png;base64,"))
	}

	// Input attendees are untouched.
	assert.Empty(t, reg.Attendees[0].QRCode)
	assert.Empty(t, reg.Attendees[1].QRCode)
}
