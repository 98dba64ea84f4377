package tenant

import "context"

type Repository interface {
	ListTenants(ctx context.Context, f Filter, limit, offset int) ([]*Tenant, int, error)
	GetTenant(ctx context.Context, id string) (*Tenant, error)
	CreateTenant(ctx context.Context, t *Tenant) error
	UpdateTenant(ctx context.Context, t *Tenant) error
	DeactivateTenant(ctx context.Context, id string) error
	ReactivateTenant(ctx context.Context, id string) error
}
