package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cerebrexia/fest-backend/internal/api/handler/v1/request"
	"github.com/cerebrexia/fest-backend/internal/api/handler/v1/response"
	"github.com/cerebrexia/fest-backend/internal/service"
)

type PaymentService interface {
	ConfirmCallback(ctx context.Context, orderID, paymentID, signature string) (service.ConfirmationResult, error)
}

type PaymentHandler struct {
	svc PaymentService
}

func NewPaymentHandler(svc PaymentService) *PaymentHandler {
	return &PaymentHandler{
		svc: svc,
	}
}

// HandlePaymentCallback godoc
// @Summary      Confirm a gateway payment
// @Tags         payments
// @Produce      json
// @Param        request   body      request.PaymentCallbackRequest true "request body"
// @Success      200      {object}   response.PaymentConfirmed
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /payment/callback [post]
func (h *PaymentHandler) HandlePaymentCallback(ctx *gin.Context) {
	var req request.PaymentCallbackRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	result, err := h.svc.ConfirmCallback(ctx.Request.Context(),
		req.RazorpayOrderID, req.RazorpayPaymentID, req.RazorpaySignature)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSignatureMismatch):
			response.RenderErr(ctx, response.ErrPaymentVerificationFailed(errors.New("payment verification failed")))
		case errors.Is(err, service.ErrOrderMetadataMissing):
			response.RenderErr(ctx, response.ErrPaymentVerificationFailed(errors.New("registration not found in order notes")))
		case errors.Is(err, service.ErrRegistrationNotFound):
			response.RenderErr(ctx, response.ErrNotFound(errors.New("registration record not found")))
		default:
			err = fmt.Errorf("v1.HandlePaymentCallback -> h.svc.ConfirmCallback -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusOK, response.NewPaymentConfirmed(result))
}
