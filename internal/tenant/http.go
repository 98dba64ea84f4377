package tenant

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/dentora/dentora/internal/platform/request"
	"github.com/dentora/dentora/internal/platform/respond"
	"github.com/dentora/dentora/pkg/pagination"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/", handler.listTenants)
	router.Get("/{id}", handler.getTenant)
	router.Post("/", handler.createTenant)
	router.Put("/{id}", handler.updateTenant)
	router.Post("/{id}/deactivate", handler.deactivateTenant)
	router.Post("/{id}/reactivate", handler.reactivateTenant)
}

func (handler *Handler) listTenants(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)

	filter := Filter{
		Query: request.URL.Query().Get("search"),
	}

	tenants, total, err := handler.service.ListTenants(request.Context(), filter, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, tenants, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

func (handler *Handler) getTenant(writer http.ResponseWriter, request *http.Request) {
	tenant, err := handler.service.GetTenant(request.Context(), requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, tenant)
}

func (handler *Handler) createTenant(writer http.ResponseWriter, request *http.Request) {
	var input Tenant
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.CreateTenant(request.Context(), &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, input)
}

func (handler *Handler) updateTenant(writer http.ResponseWriter, request *http.Request) {
	var input Tenant
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.UpdateTenant(request.Context(), requestutil.ID(request, "id"), &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, input)
}

func (handler *Handler) deactivateTenant(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.DeactivateTenant(request.Context(), requestutil.ID(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

func (handler *Handler) reactivateTenant(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.ReactivateTenant(request.Context(), requestutil.ID(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
