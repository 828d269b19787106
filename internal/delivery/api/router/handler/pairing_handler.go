package handler

import (
	"log/slog"
	"net/http"

	"mirror/internal/delivery/api/dto"
	"mirror/internal/delivery/api/middleware"
	"mirror/internal/delivery/api/response"
	domainerrors "mirror/internal/domain/errors"
	"mirror/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// PairingHandlerParams holds dependencies for PairingHandler, injected by Fx.
type PairingHandlerParams struct {
	fx.In

	PairingUC usecase.PairingUsecase
	Logger    *slog.Logger
}

// PairingHandler holds dependencies for group and membership handlers
type PairingHandler struct {
	pairingUC usecase.PairingUsecase
	logger    *slog.Logger
}

// NewPairingHandler is the constructor for PairingHandler
func NewPairingHandler(params PairingHandlerParams) *PairingHandler {
	return &PairingHandler{
		pairingUC: params.PairingUC,
		logger:    params.Logger,
	}
}

// bindAndValidate decodes the body into req and validates it.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return domainerrors.ErrValidationFailed.WithDetails("invalid request body")
	}
	if err := c.Validate(req); err != nil {
		return domainerrors.ErrValidationFailed.WithDetails(err.Error())
	}

	return nil
}

func toPairingResponse(out *usecase.PairingOutput) dto.PairingResponse {
	return dto.PairingResponse{
		GroupID:     out.GroupID,
		Token:       out.Token,
		DeviceCount: out.DeviceCount,
		DeviceLimit: out.DeviceLimit,
		Rejoined:    out.Rejoined,
		Group:       out.Info,
	}
}

// CreateGroup handles POST /api/v1/groups
func (h *PairingHandler) CreateGroup(c echo.Context) error {
	var req dto.DeviceRequest
	if err := bindAndValidate(c, &req); err != nil {
		return response.HandleAppError(c, err)
	}

	out, err := h.pairingUC.CreateGroup(c.Request().Context(), req.Identity())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, toPairingResponse(out))
}

// JoinGroup handles POST /api/v1/groups/:groupId/join
func (h *PairingHandler) JoinGroup(c echo.Context) error {
	var req dto.DeviceRequest
	if err := bindAndValidate(c, &req); err != nil {
		return response.HandleAppError(c, err)
	}

	out, err := h.pairingUC.JoinGroup(c.Request().Context(), c.Param("groupId"), req.Identity())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, toPairingResponse(out))
}

// RecoverGroup handles POST /api/v1/groups/recover
func (h *PairingHandler) RecoverGroup(c echo.Context) error {
	var req dto.RecoverRequest
	if err := bindAndValidate(c, &req); err != nil {
		return response.HandleAppError(c, err)
	}

	out, err := h.pairingUC.RecoverGroup(c.Request().Context(), req.DeviceID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, toPairingResponse(out))
}

// LeaveGroup handles POST /api/v1/group/leave
func (h *PairingHandler) LeaveGroup(c echo.Context) error {
	caller, ok := middleware.GetCaller(c)
	if !ok {
		return response.MissingDevice(c)
	}

	var req dto.LeaveRequest
	if err := bindAndValidate(c, &req); err != nil {
		return response.HandleAppError(c, err)
	}

	if err := h.pairingUC.LeaveGroup(c.Request().Context(), caller, req.DeviceID); err != nil {
		return response.HandleAppError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// GetGroupInfo handles GET /api/v1/group
func (h *PairingHandler) GetGroupInfo(c echo.Context) error {
	caller, ok := middleware.GetCaller(c)
	if !ok {
		return response.MissingDevice(c)
	}

	info, err := h.pairingUC.GetGroupInfo(c.Request().Context(), caller)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, info)
}

// UpdatePlan handles PUT /api/v1/group/plan
func (h *PairingHandler) UpdatePlan(c echo.Context) error {
	caller, ok := middleware.GetCaller(c)
	if !ok {
		return response.MissingDevice(c)
	}

	var req dto.UpdatePlanRequest
	if err := bindAndValidate(c, &req); err != nil {
		return response.HandleAppError(c, err)
	}

	info, err := h.pairingUC.UpdatePlan(c.Request().Context(), caller, req.Plan)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, info)
}

// PairingQR handles GET /api/v1/group/qr
func (h *PairingHandler) PairingQR(c echo.Context) error {
	caller, ok := middleware.GetCaller(c)
	if !ok {
		return response.MissingDevice(c)
	}

	png, err := h.pairingUC.PairingQR(c.Request().Context(), caller)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return c.Blob(http.StatusOK, "image/png", png)
}

// RegisterPushToken handles PUT /api/v1/group/push-token
func (h *PairingHandler) RegisterPushToken(c echo.Context) error {
	caller, ok := middleware.GetCaller(c)
	if !ok {
		return response.MissingDevice(c)
	}

	var req dto.PushTokenRequest
	if err := bindAndValidate(c, &req); err != nil {
		return response.HandleAppError(c, err)
	}

	if err := h.pairingUC.RegisterPushToken(c.Request().Context(), caller, req.Token); err != nil {
		return response.HandleAppError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// GroupHistory handles GET /api/v1/group/history
func (h *PairingHandler) GroupHistory(c echo.Context) error {
	caller, ok := middleware.GetCaller(c)
	if !ok {
		return response.MissingDevice(c)
	}

	events, err := h.pairingUC.GroupHistory(c.Request().Context(), caller)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, events)
}
