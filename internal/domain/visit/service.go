package visit

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/cliniq/cliniq/internal/platform/apperr"
)

const (
	// Duration bounds in minutes (15 minutes to 8 hours).
	MinDuration     = 15
	MaxDuration     = 480
	DefaultDuration = 30

	maxNotesLen = 1000
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create validates the input, applies defaults, inserts the visit and
// returns its enriched view.
func (s *Service) Create(ctx context.Context, params CreateParams) (*View, error) {
	verr := &apperr.ValidationError{}

	if params.ClinicianID <= 0 {
		verr.Add("clinician_id", "Clinician ID must be a positive integer")
	}
	if params.PatientID <= 0 {
		verr.Add("patient_id", "Patient ID must be a positive integer")
	}

	var visitDate DateTime
	if params.VisitDate == "" {
		verr.Add("visit_date", "Visit date is required")
	} else {
		dt, err := ParseDateTime(params.VisitDate)
		if err != nil {
			verr.Add("visit_date", "Visit date must be in YYYY-MM-DD HH:MM format")
		} else {
			visitDate = dt
		}
	}

	duration := DefaultDuration
	if params.DurationMinutes != nil {
		duration = *params.DurationMinutes
		if duration < MinDuration || duration > MaxDuration {
			verr.Add("duration_minutes", fmt.Sprintf("Duration must be between %d and %d minutes", MinDuration, MaxDuration))
		}
	}

	status := params.Status
	if status == "" {
		status = StatusScheduled
	} else if !validStatuses[status] {
		verr.Add("status", "Status must be one of: scheduled, completed, cancelled")
	}

	if len(params.Notes) > maxNotesLen {
		verr.Add("notes", fmt.Sprintf("Notes must be at most %d characters", maxNotesLen))
	}

	if len(verr.Fields) > 0 {
		return nil, verr
	}

	rec := &Record{
		ClinicianID:     params.ClinicianID,
		PatientID:       params.PatientID,
		VisitDate:       visitDate,
		DurationMinutes: duration,
		Status:          status,
	}
	if params.Notes != "" {
		rec.Notes = &params.Notes
	}

	id, err := s.repo.Insert(ctx, rec)
	if err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Get(ctx context.Context, id int64) (*View, error) {
	return s.repo.GetByID(ctx, id)
}

// List validates and normalizes the raw query filters, then returns matching
// visits newest first. Bare dates are widened to cover the whole day: a
// start_date of "2024-01-15" matches from "2024-01-15 00:00" and an
// end_date of "2024-01-15" matches through "2024-01-15 23:59", inclusive.
func (s *Service) List(ctx context.Context, q Query) ([]*View, error) {
	f, err := s.buildFilter(q)
	if err != nil {
		return nil, err
	}
	return s.repo.List(ctx, f)
}

func (s *Service) buildFilter(q Query) (Filter, error) {
	verr := &apperr.ValidationError{}
	var f Filter

	if q.ClinicianID != "" {
		id, err := strconv.ParseInt(q.ClinicianID, 10, 64)
		if err != nil || id <= 0 {
			verr.Add("clinician_id", "Clinician ID must be a positive integer")
		} else {
			f.ClinicianID = id
		}
	}
	if q.PatientID != "" {
		id, err := strconv.ParseInt(q.PatientID, 10, 64)
		if err != nil || id <= 0 {
			verr.Add("patient_id", "Patient ID must be a positive integer")
		} else {
			f.PatientID = id
		}
	}
	if q.Status != "" {
		if !validStatuses[q.Status] {
			verr.Add("status", "Status must be one of: scheduled, completed, cancelled")
		} else {
			f.Status = q.Status
		}
	}
	if q.StartDate != "" {
		dt, err := parseBoundary(q.StartDate, "00:00")
		if err != nil {
			verr.Add("start_date", "Start date must be YYYY-MM-DD or YYYY-MM-DD HH:MM")
		} else {
			f.StartDate = &dt
		}
	}
	if q.EndDate != "" {
		dt, err := parseBoundary(q.EndDate, "23:59")
		if err != nil {
			verr.Add("end_date", "End date must be YYYY-MM-DD or YYYY-MM-DD HH:MM")
		} else {
			f.EndDate = &dt
		}
	}

	if len(verr.Fields) > 0 {
		return Filter{}, verr
	}
	return f, nil
}

// parseBoundary widens a bare date to the given time of day.
func parseBoundary(s, timeOfDay string) (DateTime, error) {
	if !strings.Contains(s, " ") {
		s = s + " " + timeOfDay
	}
	return ParseDateTime(s)
}

// Update applies a sparse update and returns the resulting view. An empty
// update is a no-op that returns the current record.
func (s *Service) Update(ctx context.Context, id int64, params UpdateParams) (*View, error) {
	if params.Empty() {
		return s.repo.GetByID(ctx, id)
	}

	verr := &apperr.ValidationError{}
	if params.VisitDate != nil {
		if _, err := ParseDateTime(*params.VisitDate); err != nil {
			verr.Add("visit_date", "Visit date must be in YYYY-MM-DD HH:MM format")
		}
	}
	if params.DurationMinutes != nil {
		if *params.DurationMinutes < MinDuration || *params.DurationMinutes > MaxDuration {
			verr.Add("duration_minutes", fmt.Sprintf("Duration must be between %d and %d minutes", MinDuration, MaxDuration))
		}
	}
	if params.Status != nil && !validStatuses[*params.Status] {
		verr.Add("status", "Status must be one of: scheduled, completed, cancelled")
	}
	if params.Notes != nil && len(*params.Notes) > maxNotesLen {
		verr.Add("notes", fmt.Sprintf("Notes must be at most %d characters", maxNotesLen))
	}
	if len(verr.Fields) > 0 {
		return nil, verr
	}

	if err := s.repo.Update(ctx, id, params); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
