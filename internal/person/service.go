package person

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

func (service *Service) ListPeople(ctx context.Context, tenantID string, filter Filter, limit, offset int) ([]*Person, int, error) {
	return service.repo.ListPeople(ctx, tenantID, filter, limit, offset)
}

func (service *Service) GetPerson(ctx context.Context, tenantID, id string) (*Person, error) {
	return service.repo.GetPerson(ctx, tenantID, id)
}

func (service *Service) CreatePerson(ctx context.Context, tenantID string, person *Person) error {
	if err := validatePerson(person); err != nil {
		return err
	}

	person.ID = uuid.NewString()
	person.TenantID = tenantID

	if err := service.repo.CreatePerson(ctx, person); err != nil {
		return err
	}

	service.logger.Info("person_created",
		slog.String("person_id", person.ID),
		slog.String("tenant_id", tenantID),
	)
	return nil
}

func (service *Service) UpdatePerson(ctx context.Context, tenantID, id string, person *Person) error {
	person.ID = id
	person.TenantID = tenantID

	if err := validatePerson(person); err != nil {
		return err
	}

	if err := service.repo.UpdatePerson(ctx, person); err != nil {
		return err
	}

	service.logger.Info("person_updated",
		slog.String("person_id", id),
		slog.String("tenant_id", tenantID),
	)
	return nil
}

func (service *Service) DeletePerson(ctx context.Context, tenantID, id string) error {
	if err := service.repo.DeletePerson(ctx, tenantID, id); err != nil {
		return err
	}

	service.logger.Warn("person_deleted",
		slog.String("person_id", id),
		slog.String("tenant_id", tenantID),
	)
	return nil
}

func validatePerson(person *Person) error {
	validator := &validate.Validator{}
	validator.Required(FieldFirstName, person.FirstName).MaxLen(FieldFirstName, person.FirstName, 100).
		Required(FieldLastName, person.LastName).MaxLen(FieldLastName, person.LastName, 100).
		Required(FieldDocumentType, person.DocumentType).
		Required(FieldDocumentNumber, person.DocumentNumber).MaxLen(FieldDocumentNumber, person.DocumentNumber, 30)

	if person.Email != nil && *person.Email != "" {
		validator.Email(FieldEmail, *person.Email)
	}

	return validator.Err()
}
