package patient

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/cliniq/cliniq/internal/platform/apperr"
	"github.com/cliniq/cliniq/pkg/respond"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/patients", h.List)
	api.POST("/patients", h.Create)
	api.GET("/patients/:id", h.Get)
	api.DELETE("/patients/:id", h.Delete)
}

func (h *Handler) List(c echo.Context) error {
	items, err := h.svc.List(c.Request().Context())
	if err != nil {
		return err
	}
	return respond.List(c, items, len(items))
}

func (h *Handler) Get(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	item, err := h.svc.Get(c.Request().Context(), id)
	if apperr.IsNotFound(err) {
		return respond.NotFoundMessage(c, "Patient not found")
	}
	if err != nil {
		return err
	}
	return respond.OK(c, item)
}

func (h *Handler) Create(c echo.Context) error {
	var params CreateParams
	if err := c.Bind(&params); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	item, err := h.svc.Create(c.Request().Context(), params)
	if err != nil {
		return err
	}
	return respond.Created(c, item, "Patient created successfully")
}

func (h *Handler) Delete(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	err = h.svc.Delete(c.Request().Context(), id)
	if apperr.IsNotFound(err) {
		return respond.NotFoundMessage(c, "Patient not found")
	}
	if apperr.IsForeignKey(err) {
		return echo.NewHTTPError(http.StatusBadRequest, "Cannot delete patient with existing visits")
	}
	if err != nil {
		return err
	}
	return respond.Message(c, "Patient deleted successfully")
}

func parseID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return id, nil
}
