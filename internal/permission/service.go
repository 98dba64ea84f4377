package permission

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

func (service *Service) ListPermissions(ctx context.Context, filter Filter, limit, offset int) ([]*Permission, int, error) {
	return service.repo.ListPermissions(ctx, filter, limit, offset)
}

func (service *Service) GetPermission(ctx context.Context, id string) (*Permission, error) {
	return service.repo.GetPermission(ctx, id)
}

func (service *Service) CreatePermission(ctx context.Context, permission *Permission) error {
	if err := validatePermission(permission); err != nil {
		return err
	}

	permission.ID = uuid.NewString()

	if err := service.repo.CreatePermission(ctx, permission); err != nil {
		return err
	}

	service.logger.Info("permission_created",
		slog.String("permission_id", permission.ID),
		slog.String("name", permission.Name),
	)
	return nil
}

func (service *Service) UpdatePermission(ctx context.Context, id string, permission *Permission) error {
	permission.ID = id

	if err := validatePermission(permission); err != nil {
		return err
	}

	if err := service.repo.UpdatePermission(ctx, permission); err != nil {
		return err
	}

	service.logger.Info("permission_updated", slog.String("permission_id", id))
	return nil
}

func (service *Service) DeletePermission(ctx context.Context, id string) error {
	if err := service.repo.DeletePermission(ctx, id); err != nil {
		return err
	}

	service.logger.Warn("permission_deleted", slog.String("permission_id", id))
	return nil
}

func validatePermission(permission *Permission) error {
	validator := &validate.Validator{}
	validator.Required(FieldName, permission.Name).MaxLen(FieldName, permission.Name, 100).
		MaxLen(FieldDescription, permission.Description, 300).
		Required(FieldModuleID, permission.ModuleID).UUID(FieldModuleID, permission.ModuleID)

	return validator.Err()
}
