package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cerebrexia/fest-backend/internal/api/handler/v1/request"
	"github.com/cerebrexia/fest-backend/internal/api/handler/v1/response"
	"github.com/cerebrexia/fest-backend/internal/config"
	"github.com/cerebrexia/fest-backend/internal/domain"
	"github.com/cerebrexia/fest-backend/internal/service"
)

type RegistrationService interface {
	RegisterFest(ctx context.Context, reg domain.Registration) (service.RegistrationOutcome, error)
	RegisterEvent(ctx context.Context, reg domain.Registration) (service.RegistrationOutcome, error)
}

type RegistrationHandler struct {
	conf *config.RazorpayConfig
	svc  RegistrationService
}

func NewRegistrationHandler(conf *config.RazorpayConfig, svc RegistrationService) *RegistrationHandler {
	return &RegistrationHandler{
		conf: conf,
		svc:  svc,
	}
}

// HandleRegisterFest godoc
// @Summary      Register for a fest pass
// @Tags         registrations
// @Produce      json
// @Param        request   body      request.RegisterFestRequest true "request body"
// @Success      200      {object}   response.RegistrationInitiated
// @Failure      400      {object}   response.Err
// @Failure      409      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /register [post]
func (h *RegistrationHandler) HandleRegisterFest(ctx *gin.Context) {
	var req request.RegisterFestRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	outcome, err := h.svc.RegisterFest(ctx.Request.Context(), req.ToDomain())
	if err != nil {
		if errors.Is(err, service.ErrAlreadyRegistered) {
			response.RenderErr(ctx, response.ErrConflict(errors.New("you have already successfully registered for the fest pass")))
			return
		}

		err = fmt.Errorf("v1.HandleRegisterFest -> h.svc.RegisterFest -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	if !outcome.PaymentRequired {
		ctx.JSON(http.StatusOK, response.NewRegistrationCompleted("Free registration successful!"))
		return
	}

	ctx.JSON(http.StatusOK, response.NewRegistrationInitiated(
		"Fest Pass registration initiated.", h.conf.KeyID, outcome.Order, ""))
}

// HandleRegisterEvent godoc
// @Summary      Register for a single event
// @Tags         registrations
// @Produce      json
// @Param        request   body      request.RegisterEventRequest true "request body"
// @Success      200      {object}   response.RegistrationInitiated
// @Failure      400      {object}   response.Err
// @Failure      409      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /register-event [post]
func (h *RegistrationHandler) HandleRegisterEvent(ctx *gin.Context) {
	var req request.RegisterEventRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	outcome, err := h.svc.RegisterEvent(ctx.Request.Context(), req.ToDomain())
	if err != nil {
		if errors.Is(err, service.ErrAlreadyRegistered) {
			response.RenderErr(ctx, response.ErrConflict(
				fmt.Errorf("you have already successfully registered for %s", req.EventName)))
			return
		}

		err = fmt.Errorf("v1.HandleRegisterEvent -> h.svc.RegisterEvent -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	if !outcome.PaymentRequired {
		ctx.JSON(http.StatusOK, response.NewRegistrationCompleted(
			fmt.Sprintf("Successfully registered for %s!", req.EventName)))
		return
	}

	ctx.JSON(http.StatusOK, response.NewRegistrationInitiated(
		"Event registration initiated.", h.conf.KeyID, outcome.Order, string(domain.KindEvent)))
}
