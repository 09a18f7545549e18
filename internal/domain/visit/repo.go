package visit

import "context"

type Repository interface {
	Insert(ctx context.Context, rec *Record) (int64, error)
	GetByID(ctx context.Context, id int64) (*View, error)
	List(ctx context.Context, f Filter) ([]*View, error)
	Update(ctx context.Context, id int64, params UpdateParams) error
	Delete(ctx context.Context, id int64) error
}
