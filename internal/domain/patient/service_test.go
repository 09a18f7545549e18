package patient

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/cliniq/cliniq/internal/platform/apperr"
)

type mockRepo struct {
	items  map[int64]*Patient
	nextID int64
	delErr error
}

func newMockRepo() *mockRepo {
	return &mockRepo{items: make(map[int64]*Patient)}
}

func (m *mockRepo) Create(ctx context.Context, p *Patient) error {
	m.nextID++
	p.ID = m.nextID
	p.CreatedAt = time.Now()
	cp := *p
	m.items[p.ID] = &cp
	return nil
}

func (m *mockRepo) GetByID(ctx context.Context, id int64) (*Patient, error) {
	p, ok := m.items[id]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	return p, nil
}

func (m *mockRepo) List(ctx context.Context) ([]*Patient, error) {
	out := []*Patient{}
	for _, p := range m.items {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *mockRepo) Delete(ctx context.Context, id int64) error {
	if m.delErr != nil {
		return m.delErr
	}
	if _, ok := m.items[id]; !ok {
		return apperr.ErrNotFound
	}
	delete(m.items, id)
	return nil
}

func TestCreatePatient(t *testing.T) {
	svc := NewService(newMockRepo())

	p, err := svc.Create(context.Background(), CreateParams{
		Name:        "Jane Doe",
		DateOfBirth: "1985-04-12",
		Email:       "jane@example.test",
		Phone:       "555-0101",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if p.ID == 0 {
		t.Error("expected assigned id")
	}
	if p.DateOfBirth == nil || *p.DateOfBirth != "1985-04-12" {
		t.Errorf("unexpected date_of_birth: %v", p.DateOfBirth)
	}
}

func TestCreatePatientValidation(t *testing.T) {
	svc := NewService(newMockRepo())

	cases := []struct {
		name   string
		params CreateParams
		field  string
	}{
		{"missing name", CreateParams{}, "name"},
		{"bad dob", CreateParams{Name: "Jane", DateOfBirth: "12/04/1985"}, "date_of_birth"},
		{"bad email", CreateParams{Name: "Jane", Email: "nope"}, "email"},
		{"long phone", CreateParams{Name: "Jane", Phone: "123456789012345678901"}, "phone"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), tc.params)
			verr, ok := apperr.AsValidation(err)
			if !ok {
				t.Fatalf("expected ValidationError, got %T (%v)", err, err)
			}
			found := false
			for _, f := range verr.Fields {
				if f.Field == tc.field {
					found = true
				}
			}
			if !found {
				t.Errorf("expected error on field %s, got %v", tc.field, verr.Fields)
			}
		})
	}
}

func TestListPatientsSortedByName(t *testing.T) {
	svc := NewService(newMockRepo())
	for _, name := range []string{"Zoe", "Amir", "Mila"} {
		if _, err := svc.Create(context.Background(), CreateParams{Name: name}); err != nil {
			t.Fatalf("Create %s: %v", name, err)
		}
	}

	items, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("expected 3 patients, got %d", len(items))
	}
	if items[0].Name != "Amir" || items[2].Name != "Zoe" {
		t.Errorf("expected name-sorted list, got %s..%s", items[0].Name, items[2].Name)
	}
}

func TestDeletePatientNotFound(t *testing.T) {
	svc := NewService(newMockRepo())
	if err := svc.Delete(context.Background(), 42); !apperr.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestDeletePatientWithVisits(t *testing.T) {
	repo := newMockRepo()
	repo.delErr = apperr.ErrForeignKey
	svc := NewService(repo)

	if err := svc.Delete(context.Background(), 1); !apperr.IsForeignKey(err) {
		t.Errorf("expected foreign key error, got %v", err)
	}
}
