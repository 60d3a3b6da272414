package payment

import (
	"context"
	"fmt"

	razorpay "github.com/razorpay/razorpay-go"

	"github.com/cerebrexia/fest-backend/internal/config"
	"github.com/cerebrexia/fest-backend/internal/domain"
)

const (
	noteRegistrationID   = "registrationId"
	noteRegistrationType = "registration_type"
	noteUserID           = "userId"
)

// RazorpayGateway implements Gateway against the Razorpay Orders API.
type RazorpayGateway struct {
	client *razorpay.Client
}

func NewRazorpayGateway(conf *config.RazorpayConfig) *RazorpayGateway {
	return &RazorpayGateway{
		client: razorpay.NewClient(conf.KeyID, conf.KeySecret),
	}
}

func (g *RazorpayGateway) CreateOrder(_ context.Context, req OrderRequest) (Order, error) {
	data := map[string]interface{}{
		"amount":   req.AmountPaise,
		"currency": req.Currency,
		"receipt":  req.Receipt,
		"notes": map[string]interface{}{
			noteRegistrationID:   req.RegistrationID,
			noteUserID:           req.OwnerID,
			noteRegistrationType: string(req.Kind),
		},
	}

	body, err := g.client.Order.Create(data, nil)
	if err != nil {
		return Order{}, fmt.Errorf("razorpay order create -> %w", err)
	}

	return parseOrder(body)
}

func (g *RazorpayGateway) FetchOrder(_ context.Context, orderID string) (Order, error) {
	body, err := g.client.Order.Fetch(orderID, nil, nil)
	if err != nil {
		return Order{}, fmt.Errorf("razorpay order fetch -> %w", err)
	}

	return parseOrder(body)
}

func parseOrder(body map[string]interface{}) (Order, error) {
	order := Order{
		ID:       stringField(body, "id"),
		Currency: stringField(body, "currency"),
	}
	if order.ID == "" {
		return Order{}, fmt.Errorf("razorpay response missing order id")
	}

	if amount, ok := body["amount"].(float64); ok {
		order.Amount = int64(amount)
	}

	if notes, ok := body["notes"].(map[string]interface{}); ok {
		order.RegistrationID = stringField(notes, noteRegistrationID)
		order.Kind = domain.RegistrationKind(stringField(notes, noteRegistrationType))
		order.OwnerID = stringField(notes, noteUserID)
	}

	return order, nil
}

func stringField(m map[string]interface{}, key string) string {
	s, _ := m[key].(string)
	return s
}
