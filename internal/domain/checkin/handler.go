package checkin

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cliniq/cliniq/pkg/respond"
)

type Handler struct {
	engine *Engine
}

func NewHandler(engine *Engine) *Handler {
	return &Handler{engine: engine}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.POST("/checkin/start", h.Start)
	api.GET("/checkin/current", h.Current)
	api.POST("/checkin/complete", h.Complete)
	api.POST("/checkin/skip", h.Skip)
	api.POST("/checkin/cancel", h.Cancel)
}

type startResponse struct {
	Count int `json:"count"`
}

func (h *Handler) Start(c echo.Context) error {
	count, err := h.engine.Start(c.Request().Context())
	if errors.Is(err, ErrEmptyQueue) {
		// An empty day is an expected outcome, not a fault.
		return c.JSON(http.StatusOK, respond.Envelope{
			Success: false,
			Message: "No scheduled visits for today",
		})
	}
	if errors.Is(err, ErrSessionActive) {
		return echo.NewHTTPError(http.StatusConflict, "Check-in session already active")
	}
	if err != nil {
		return err
	}
	return respond.OKMessage(c, startResponse{Count: count}, "Check-in started")
}

func (h *Handler) Current(c echo.Context) error {
	return respond.OK(c, h.engine.Current())
}

type completeRequest struct {
	Notes string `json:"notes"`
}

func (h *Handler) Complete(c echo.Context) error {
	var req completeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	progress, err := h.engine.Complete(c.Request().Context(), req.Notes)
	if errors.Is(err, ErrNoSession) {
		return echo.NewHTTPError(http.StatusBadRequest, "No active check-in session")
	}
	if err != nil {
		return err
	}

	if progress.Done {
		return respond.OKMessage(c, progress, "All patients checked in")
	}
	return respond.OK(c, progress)
}

func (h *Handler) Skip(c echo.Context) error {
	progress, err := h.engine.Skip()
	if errors.Is(err, ErrNoSession) {
		return echo.NewHTTPError(http.StatusBadRequest, "No active check-in session")
	}
	if err != nil {
		return err
	}

	if progress.Done {
		return respond.OKMessage(c, progress, "Queue finished")
	}
	return respond.OK(c, progress)
}

func (h *Handler) Cancel(c echo.Context) error {
	h.engine.Cancel()
	return respond.Message(c, "Check-in cancelled")
}
