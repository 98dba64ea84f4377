package person

import "context"

type Repository interface {
	ListPeople(ctx context.Context, tenantID string, f Filter, limit, offset int) ([]*Person, int, error)
	GetPerson(ctx context.Context, tenantID, id string) (*Person, error)
	CreatePerson(ctx context.Context, p *Person) error
	UpdatePerson(ctx context.Context, p *Person) error
	DeletePerson(ctx context.Context, tenantID, id string) error
}
