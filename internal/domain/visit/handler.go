package visit

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
	api.GET("/visits", h.List)
	api.POST("/visits", h.Create)
	api.GET("/visits/:id", h.Get)
	api.PUT("/visits/:id", h.Update)
	api.DELETE("/visits/:id", h.Delete)
}

// List returns visits matching the optional clinician_id, patient_id,
// status, start_date and end_date query parameters.
func (h *Handler) List(c echo.Context) error {
	q := Query{
		ClinicianID: c.QueryParam("clinician_id"),
		PatientID:   c.QueryParam("patient_id"),
		Status:      c.QueryParam("status"),
		StartDate:   c.QueryParam("start_date"),
		EndDate:     c.QueryParam("end_date"),
	}

	items, err := h.svc.List(c.Request().Context(), q)
	if verr, ok := apperr.AsValidation(err); ok {
		return c.JSON(http.StatusBadRequest, respond.Envelope{
			Success: false,
			Message: "Invalid query parameters",
			Errors:  verr.Fields,
		})
	}
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
		return respond.NotFoundMessage(c, "Visit not found")
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
	return respond.Created(c, item, "Visit created successfully")
}

func (h *Handler) Update(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var params UpdateParams
	if err := c.Bind(&params); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	item, err := h.svc.Update(c.Request().Context(), id, params)
	if apperr.IsNotFound(err) {
		return respond.NotFoundMessage(c, "Visit not found")
	}
	if err != nil {
		return err
	}
	return respond.OKMessage(c, item, "Visit updated successfully")
}

func (h *Handler) Delete(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	err = h.svc.Delete(c.Request().Context(), id)
	if apperr.IsNotFound(err) {
		return respond.NotFoundMessage(c, "Visit not found")
	}
	if err != nil {
		return err
	}
	return respond.Message(c, "Visit deleted successfully")
}

func parseID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return id, nil
}
