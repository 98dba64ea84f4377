package module

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

func (service *Service) ListModules(ctx context.Context, filter Filter, limit, offset int) ([]*Module, int, error) {
	return service.repo.ListModules(ctx, filter, limit, offset)
}

func (service *Service) GetModule(ctx context.Context, id string) (*Module, error) {
	return service.repo.GetModule(ctx, id)
}

func (service *Service) CreateModule(ctx context.Context, module *Module) error {
	validator := &validate.Validator{}
	validator.Required(FieldDescription, module.Description).MaxLen(FieldDescription, module.Description, 200)

	if err := validator.Err(); err != nil {
		return err
	}

	module.ID = uuid.NewString()

	if err := service.repo.CreateModule(ctx, module); err != nil {
		return err
	}

	service.logger.Info("module_created", slog.String("module_id", module.ID))
	return nil
}

func (service *Service) UpdateModule(ctx context.Context, id string, module *Module) error {
	module.ID = id
	validator := &validate.Validator{}
	validator.Required(FieldDescription, module.Description).MaxLen(FieldDescription, module.Description, 200)

	if err := validator.Err(); err != nil {
		return err
	}

	if err := service.repo.UpdateModule(ctx, module); err != nil {
		return err
	}

	service.logger.Info("module_updated", slog.String("module_id", id))
	return nil
}

func (service *Service) DeleteModule(ctx context.Context, id string) error {
	if err := service.repo.DeleteModule(ctx, id); err != nil {
		return err
	}

	service.logger.Warn("module_deleted", slog.String("module_id", id))
	return nil
}
