package v1

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/rifasoft/raffle-admin/internal/api/handler/v1/response"
	"github.com/rifasoft/raffle-admin/internal/domain"
)

type DashboardService interface {
	Metrics() (domain.DashboardMetrics, error)
	GetConfig() (domain.RaffleConfig, error)
	UpdateConfig(fields map[string]any) (domain.RaffleConfig, error)
}

type NotifierVerifier interface {
	Verify(ctx context.Context) domain.NotificationResult
}

type DashboardHandler struct {
	svc      DashboardService
	notifier NotifierVerifier
}

func NewDashboardHandler(svc DashboardService, notifier NotifierVerifier) *DashboardHandler {
	return &DashboardHandler{
		svc:      svc,
		notifier: notifier,
	}
}

// HandleGetMetrics godoc
// @Summary      Aggregate sales metrics for the dashboard
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  response.Envelope
// @Failure      500  {object}  response.Err
// @Router       /dashboard [get]
// @Security     BearerAuth
func (h *DashboardHandler) HandleGetMetrics(ctx *gin.Context) {
	metrics, err := h.svc.Metrics()
	if err != nil {
		err = fmt.Errorf("HandleGetMetrics -> h.svc.Metrics -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	response.OK(ctx, metrics)
}

// HandleGetConfig godoc
// @Summary      Current raffle configuration, defaults merged in
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  response.Envelope
// @Failure      500  {object}  response.Err
// @Router       /dashboard/config [get]
// @Security     BearerAuth
func (h *DashboardHandler) HandleGetConfig(ctx *gin.Context) {
	conf, err := h.svc.GetConfig()
	if err != nil {
		err = fmt.Errorf("HandleGetConfig -> h.svc.GetConfig -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	response.OK(ctx, conf)
}

// HandleUpdateConfig godoc
// @Summary      Patch raffle configuration fields
// @Description  Only the fields present in the body change; the rest keep their stored values.
// @Tags         dashboard
// @Accept       json
// @Produce      json
// @Param        input  body  object  true  "fields to change"
// @Success      200  {object}  response.Envelope
// @Failure      400  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /dashboard/config [put]
// @Security     BearerAuth
func (h *DashboardHandler) HandleUpdateConfig(ctx *gin.Context) {
	var fields map[string]any
	if err := ctx.ShouldBindJSON(&fields); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	conf, err := h.svc.UpdateConfig(fields)
	if err != nil {
		err = fmt.Errorf("HandleUpdateConfig -> h.svc.UpdateConfig -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	response.OK(ctx, conf)
}

// HandleTestEmail godoc
// @Summary      Verify the configured SMTP connection
// @Description  Dials the SMTP server from the stored configuration and reports the outcome without sending anything.
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  response.Envelope
// @Router       /dashboard/test-email [post]
// @Security     BearerAuth
func (h *DashboardHandler) HandleTestEmail(ctx *gin.Context) {
	result := h.notifier.Verify(ctx.Request.Context())
	response.OK(ctx, result)
}
