package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cerebrexia/fest-backend/internal/api/handler/v1/request"
	"github.com/cerebrexia/fest-backend/internal/api/handler/v1/response"
	"github.com/cerebrexia/fest-backend/internal/domain"
	"github.com/cerebrexia/fest-backend/internal/service"
)

type EntryService interface {
	Scan(ctx context.Context, regID, memberID, agentID string) (domain.EntryResult, error)
}

type ScanHandler struct {
	svc EntryService
}

func NewScanHandler(svc EntryService) *ScanHandler {
	return &ScanHandler{
		svc: svc,
	}
}

// HandleScanQR godoc
// @Summary      Record a venue entry from a scanned pass
// @Tags         entries
// @Produce      json
// @Param        X-Volunteer-ID   header     string true "scanning volunteer ID"
// @Param        request          body       request.ScanRequest true "request body"
// @Success      200      {object}   response.ScanResponse
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /scan-qr [post]
func (h *ScanHandler) HandleScanQR(ctx *gin.Context) {
	volunteerID := ctx.GetHeader("X-Volunteer-ID")
	if volunteerID == "" {
		response.RenderErr(ctx, response.ErrBadRequest(errors.New("missing required scan data (RegID, MemberID, or Volunteer ID)")))
		return
	}

	var req request.ScanRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	result, err := h.svc.Scan(ctx.Request.Context(), req.RegID, req.MemberID, volunteerID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRegistrationNotFound):
			response.RenderErr(ctx, response.ErrNotFound(errors.New("registration not found, invalid QR code")))
		case errors.Is(err, service.ErrMemberNotFound):
			response.RenderErr(ctx, response.ErrNotFound(errors.New("member not found for this registration, invalid QR code")))
		default:
			err = fmt.Errorf("v1.HandleScanQR -> h.svc.Scan -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusOK, response.NewScanResponse(result))
}
