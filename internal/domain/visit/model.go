package visit

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"
)

// DateTimeLayout is the wire format for visit dates: a naive local
// date-time with minute precision.
const DateTimeLayout = "2006-01-02 15:04"

// DateTime is a naive local date-time with minute precision. It marshals
// to and from "YYYY-MM-DD HH:MM" in JSON and stores as a timestamp.
type DateTime struct {
	t time.Time
}

// ParseDateTime parses a "YYYY-MM-DD HH:MM" string.
func ParseDateTime(s string) (DateTime, error) {
	t, err := time.Parse(DateTimeLayout, s)
	if err != nil {
		return DateTime{}, fmt.Errorf("parse date-time %q: %w", s, err)
	}
	return DateTime{t: t}, nil
}

func (d DateTime) Time() time.Time   { return d.t }
func (d DateTime) IsZero() bool      { return d.t.IsZero() }
func (d DateTime) String() string    { return d.t.Format(DateTimeLayout) }
func (d DateTime) Before(o DateTime) bool { return d.t.Before(o.t) }

func (d DateTime) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

func (d *DateTime) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	parsed, err := ParseDateTime(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Value implements driver.Valuer so the type binds as a timestamp.
func (d DateTime) Value() (driver.Value, error) {
	return d.t, nil
}

// Scan implements sql.Scanner for timestamp columns.
func (d *DateTime) Scan(src interface{}) error {
	switch v := src.(type) {
	case time.Time:
		d.t = v.Truncate(time.Minute)
		return nil
	case string:
		parsed, err := ParseDateTime(v)
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	default:
		return fmt.Errorf("cannot scan %T into DateTime", src)
	}
}

// Visit statuses. Transitions are unconstrained; the intended lifecycle is
// scheduled -> completed or scheduled -> cancelled.
const (
	StatusScheduled = "scheduled"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

var validStatuses = map[string]bool{
	StatusScheduled: true,
	StatusCompleted: true,
	StatusCancelled: true,
}

// Record is a visit row as stored.
type Record struct {
	ID              int64
	ClinicianID     int64
	PatientID       int64
	VisitDate       DateTime
	DurationMinutes int
	Status          string
	Notes           *string
	CreatedAt       time.Time
}

// View is a visit joined with its clinician and patient for display.
type View struct {
	ID                 int64     `json:"id"`
	ClinicianID        int64     `json:"clinician_id"`
	PatientID          int64     `json:"patient_id"`
	VisitDate          DateTime  `json:"visit_date"`
	DurationMinutes    int       `json:"duration_minutes"`
	Status             string    `json:"status"`
	Notes              *string   `json:"notes"`
	CreatedAt          time.Time `json:"created_at"`
	ClinicianName      string    `json:"clinician_name"`
	ClinicianSpecialty *string   `json:"clinician_specialty"`
	PatientName        string    `json:"patient_name"`
	PatientEmail       *string   `json:"patient_email"`
}

// CreateParams is the accepted input for creating a visit.
type CreateParams struct {
	ClinicianID     int64  `json:"clinician_id"`
	PatientID       int64  `json:"patient_id"`
	VisitDate       string `json:"visit_date"`
	DurationMinutes *int   `json:"duration_minutes"`
	Status          string `json:"status"`
	Notes           string `json:"notes"`
}

// UpdateParams is the sparse input for updating a visit. Only fields that
// are present are written; clinician_id and patient_id cannot be changed.
type UpdateParams struct {
	VisitDate       *string `json:"visit_date"`
	DurationMinutes *int    `json:"duration_minutes"`
	Status          *string `json:"status"`
	Notes           *string `json:"notes"`
}

// Empty reports whether no fields are set.
func (p UpdateParams) Empty() bool {
	return p.VisitDate == nil && p.DurationMinutes == nil && p.Status == nil && p.Notes == nil
}

// Query holds raw filter parameters as received from the client.
type Query struct {
	ClinicianID string
	PatientID   string
	Status      string
	StartDate   string
	EndDate     string
}

// Filter is a validated, normalized set of list filters.
type Filter struct {
	ClinicianID int64
	PatientID   int64
	Status      string
	StartDate   *DateTime
	EndDate     *DateTime
}
