package patient

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/cliniq/cliniq/internal/platform/apperr"
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Patient, error) {
	verr := &apperr.ValidationError{}

	name := strings.TrimSpace(params.Name)
	if name == "" {
		verr.Add("name", "Name is required")
	} else if len(name) > 100 {
		verr.Add("name", "Name must be at most 100 characters")
	}
	if params.DateOfBirth != "" {
		if _, err := time.Parse("2006-01-02", params.DateOfBirth); err != nil {
			verr.Add("date_of_birth", "Date of birth must be in YYYY-MM-DD format")
		}
	}
	if params.Email != "" && !emailPattern.MatchString(params.Email) {
		verr.Add("email", "Invalid email format")
	}
	if len(params.Phone) > 20 {
		verr.Add("phone", "Phone must be at most 20 characters")
	}
	if len(verr.Fields) > 0 {
		return nil, verr
	}

	p := &Patient{Name: name}
	if params.DateOfBirth != "" {
		p.DateOfBirth = &params.DateOfBirth
	}
	if params.Email != "" {
		p.Email = &params.Email
	}
	if params.Phone != "" {
		p.Phone = &params.Phone
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("create patient: %w", err)
	}
	return p, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*Patient, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]*Patient, error) {
	return s.repo.List(ctx)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
