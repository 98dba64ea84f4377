package tenant

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/dentora/dentora/internal/platform/validate"
)

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (service *Service) ListTenants(ctx context.Context, filter Filter, limit, offset int) ([]*Tenant, int, error) {
	return service.repo.ListTenants(ctx, filter, limit, offset)
}

func (service *Service) GetTenant(ctx context.Context, id string) (*Tenant, error) {
	return service.repo.GetTenant(ctx, id)
}

func (service *Service) CreateTenant(ctx context.Context, tenant *Tenant) error {
	validator := &validate.Validator{}
	validator.Required(FieldTaxID, tenant.TaxID).MaxLen(FieldTaxID, tenant.TaxID, 20).
		Required(FieldName, tenant.Name).MaxLen(FieldName, tenant.Name, 200)

	if err := validator.Err(); err != nil {
		return err
	}

	tenant.ID = uuid.NewString()
	tenant.DeactivatedAt = nil

	if err := service.repo.CreateTenant(ctx, tenant); err != nil {
		return err
	}

	service.logger.Info("tenant_created",
		slog.String("tenant_id", tenant.ID),
		slog.String("tax_id", tenant.TaxID),
	)
	return nil
}

func (service *Service) UpdateTenant(ctx context.Context, id string, tenant *Tenant) error {
	tenant.ID = id
	validator := &validate.Validator{}
	validator.Required(FieldTaxID, tenant.TaxID).MaxLen(FieldTaxID, tenant.TaxID, 20).
		Required(FieldName, tenant.Name).MaxLen(FieldName, tenant.Name, 200)

	if err := validator.Err(); err != nil {
		return err
	}

	if err := service.repo.UpdateTenant(ctx, tenant); err != nil {
		return err
	}

	service.logger.Info("tenant_updated", slog.String("tenant_id", id))
	return nil
}

// DeactivateTenant terminates the subscription: every future login for the
// tenant is rejected, while tokens already in flight keep their lifetime.
func (service *Service) DeactivateTenant(ctx context.Context, id string) error {
	if err := service.repo.DeactivateTenant(ctx, id); err != nil {
		return err
	}

	service.logger.Warn("tenant_deactivated", slog.String("tenant_id", id))
	return nil
}

func (service *Service) ReactivateTenant(ctx context.Context, id string) error {
	if err := service.repo.ReactivateTenant(ctx, id); err != nil {
		return err
	}

	service.logger.Info("tenant_reactivated", slog.String("tenant_id", id))
	return nil
}
