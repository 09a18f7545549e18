package clinician

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/cliniq/cliniq/internal/platform/apperr"
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Clinician, error) {
	verr := &apperr.ValidationError{}

	name := strings.TrimSpace(params.Name)
	if name == "" {
		verr.Add("name", "Name is required")
	} else if len(name) > 100 {
		verr.Add("name", "Name must be at most 100 characters")
	}
	if len(params.Specialty) > 100 {
		verr.Add("specialty", "Specialty must be at most 100 characters")
	}
	if params.Email != "" && !emailPattern.MatchString(params.Email) {
		verr.Add("email", "Invalid email format")
	}
	if len(verr.Fields) > 0 {
		return nil, verr
	}

	c := &Clinician{Name: name}
	if params.Specialty != "" {
		c.Specialty = &params.Specialty
	}
	if params.Email != "" {
		c.Email = &params.Email
	}

	if err := s.repo.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("create clinician: %w", err)
	}
	return c, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*Clinician, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]*Clinician, error) {
	return s.repo.List(ctx)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
