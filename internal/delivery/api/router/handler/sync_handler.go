package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"mirror/internal/delivery/api/dto"
	"mirror/internal/delivery/api/middleware"
	"mirror/internal/delivery/api/response"
	"mirror/internal/domain/entity"
	domainerrors "mirror/internal/domain/errors"
	"mirror/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// SyncHandlerParams holds dependencies for SyncHandler, injected by Fx.
type SyncHandlerParams struct {
	fx.In

	SyncUC usecase.SyncUsecase
	Logger *slog.Logger
}

// SyncHandler exposes delta sync pull and record mutations
type SyncHandler struct {
	syncUC usecase.SyncUsecase
	logger *slog.Logger
}

// NewSyncHandler is the constructor for SyncHandler
func NewSyncHandler(params SyncHandlerParams) *SyncHandler {
	return &SyncHandler{
		syncUC: params.SyncUC,
		logger: params.Logger,
	}
}

func parsePullInput(c echo.Context) (usecase.PullInput, error) {
	input := usecase.PullInput{
		DataType: entity.DataType(c.Param("dataType")),
		Cursor:   entity.Cursor{RecordID: c.QueryParam(dto.QueryAfterID)},
	}

	if raw := c.QueryParam(dto.QuerySince); raw != "" {
		since, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return input, domainerrors.ErrValidationFailed.WithDetails("since must be an integer")
		}
		input.Cursor.Timestamp = since
	}
	if raw := c.QueryParam(dto.QueryLimit); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			return input, domainerrors.ErrValidationFailed.WithDetails("limit must be an integer")
		}
		input.Limit = limit
	}

	return input, nil
}

// Pull handles GET /api/v1/sync/:dataType
func (h *SyncHandler) Pull(c echo.Context) error {
	caller, ok := middleware.GetCaller(c)
	if !ok {
		return response.MissingDevice(c)
	}

	input, err := parsePullInput(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	result, err := h.syncUC.Pull(c.Request().Context(), caller, input)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	records := result.Records
	if records == nil {
		records = []entity.RawRecord{}
	}

	return response.Success(c, http.StatusOK, dto.PullResponse{
		DataType:   input.DataType,
		Records:    records,
		NextCursor: result.NextCursor,
		HasMore:    result.HasMore,
	})
}

// PutRecord handles PUT /api/v1/sync/:dataType/records
func (h *SyncHandler) PutRecord(c echo.Context) error {
	caller, ok := middleware.GetCaller(c)
	if !ok {
		return response.MissingDevice(c)
	}

	var record entity.RawRecord
	if err := c.Bind(&record); err != nil {
		return response.HandleAppError(c, domainerrors.ErrValidationFailed.WithDetails("invalid record body"))
	}

	kind, err := h.syncUC.PutRecord(c.Request().Context(), caller, entity.DataType(c.Param("dataType")), record)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	status := http.StatusOK
	if kind == entity.DeltaAdded {
		status = http.StatusCreated
	}

	return response.Success(c, status, dto.PutRecordResponse{Kind: kind})
}

// DeleteRecord handles DELETE /api/v1/sync/:dataType/records/:id
func (h *SyncHandler) DeleteRecord(c echo.Context) error {
	caller, ok := middleware.GetCaller(c)
	if !ok {
		return response.MissingDevice(c)
	}

	err := h.syncUC.DeleteRecord(c.Request().Context(), caller, entity.DataType(c.Param("dataType")), c.Param("id"))
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}
