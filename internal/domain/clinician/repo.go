package clinician

import "context"

type Repository interface {
	Create(ctx context.Context, c *Clinician) error
	GetByID(ctx context.Context, id int64) (*Clinician, error)
	List(ctx context.Context) ([]*Clinician, error)
	Delete(ctx context.Context, id int64) error
}
