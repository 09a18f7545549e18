package respond

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/cliniq/cliniq/internal/platform/apperr"
)

// ErrorHandler returns an echo.HTTPErrorHandler that maps the application
// error taxonomy onto the response envelope:
//
//	ValidationError      -> 400 with field-level errors
//	ErrForeignKey        -> 400 with an actionable message
//	ErrNotFound          -> 404
//	*echo.HTTPError      -> its own status code
//	anything else        -> 500, logged, message kept opaque
func ErrorHandler(logger zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status := http.StatusInternalServerError
		env := Envelope{Success: false, Message: "internal server error"}

		switch {
		case err == nil:
			return
		default:
			if ve, ok := apperr.AsValidation(err); ok {
				status = http.StatusBadRequest
				env.Message = "Validation failed"
				env.Errors = ve.Fields
				break
			}
			if apperr.IsForeignKey(err) {
				status = http.StatusBadRequest
				env.Message = "Invalid clinician_id or patient_id. Make sure both exist."
				break
			}
			if apperr.IsNotFound(err) {
				status = http.StatusNotFound
				env.Message = "Not found"
				break
			}
			if he, ok := err.(*echo.HTTPError); ok {
				status = he.Code
				if msg, ok := he.Message.(string); ok {
					env.Message = msg
				}
				break
			}
			rid, _ := c.Get("request_id").(string)
			logger.Error().
				Err(err).
				Str("request_id", rid).
				Str("path", c.Request().URL.Path).
				Msg("unhandled error")
		}

		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(status)
			return
		}
		_ = c.JSON(status, env)
	}
}

// NotFoundMessage writes a 404 envelope with a custom message. Used where a
// handler wants a resource-specific phrasing instead of the generic mapping.
func NotFoundMessage(c echo.Context, message string) error {
	return c.JSON(http.StatusNotFound, Envelope{Success: false, Message: message})
}
