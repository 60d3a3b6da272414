package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

type PaymentCallbackRequest struct {
	RazorpayOrderID   string `json:"razorpay_order_id"`
	RazorpayPaymentID string `json:"razorpay_payment_id"`
	RazorpaySignature string `json:"razorpay_signature"`
}

func (req *PaymentCallbackRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.RazorpayOrderID, validation.Required),
		validation.Field(&req.RazorpayPaymentID, validation.Required),
		validation.Field(&req.RazorpaySignature, validation.Required),
	)
}
