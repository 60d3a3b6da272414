package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

type ScanRequest struct {
	RegID    string `json:"regId"`
	MemberID string `json:"memberId"`
}

func (req *ScanRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.RegID, validation.Required),
		validation.Field(&req.MemberID, validation.Required),
	)
}
