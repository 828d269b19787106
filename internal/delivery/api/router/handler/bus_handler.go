package handler

import (
	"log/slog"

	"mirror/internal/delivery/api/middleware"
	"mirror/internal/delivery/api/response"
	"mirror/internal/infra/realtime"
	"mirror/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// BusHandlerParams holds dependencies for BusHandler, injected by Fx.
type BusHandlerParams struct {
	fx.In

	Hub    *realtime.Hub
	SyncUC usecase.SyncUsecase
	Logger *slog.Logger
}

// BusHandler upgrades authenticated requests to change bus connections
type BusHandler struct {
	hub    *realtime.Hub
	syncUC usecase.SyncUsecase
	logger *slog.Logger
}

// NewBusHandler is the constructor for BusHandler
func NewBusHandler(params BusHandlerParams) *BusHandler {
	return &BusHandler{
		hub:    params.Hub,
		syncUC: params.SyncUC,
		logger: params.Logger,
	}
}

// Connect handles GET /api/v1/bus. The connection is scoped to the token's group
// and refused before the upgrade when the device is no longer a member.
func (h *BusHandler) Connect(c echo.Context) error {
	caller, ok := middleware.GetCaller(c)
	if !ok {
		return response.MissingDevice(c)
	}

	if err := h.syncUC.RequireMember(c.Request().Context(), caller); err != nil {
		return response.HandleAppError(c, err)
	}

	if err := h.hub.ServeConn(c.Response(), c.Request(), caller.GroupID, caller.DeviceID); err != nil {
		h.logger.Warn("Change bus upgrade failed",
			slog.String("device_id", caller.DeviceID),
			slog.Any("error", err),
		)
	}

	return nil
}
