package person

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
	router.Get("/", handler.listPeople)
	router.Get("/{id}", handler.getPerson)
	router.Post("/", handler.createPerson)
	router.Put("/{id}", handler.updatePerson)
	router.Delete("/{id}", handler.deletePerson)
}

func (handler *Handler) listPeople(writer http.ResponseWriter, request *http.Request) {
	tenantID, err := requestutil.RequiredTenantID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	paginationParams := pagination.FromRequest(request)
	filter := Filter{
		Query: request.URL.Query().Get("search"),
	}

	people, total, err := handler.service.ListPeople(request.Context(), tenantID, filter, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, people, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

func (handler *Handler) getPerson(writer http.ResponseWriter, request *http.Request) {
	tenantID, err := requestutil.RequiredTenantID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	person, err := handler.service.GetPerson(request.Context(), tenantID, requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, person)
}

func (handler *Handler) createPerson(writer http.ResponseWriter, request *http.Request) {
	tenantID, err := requestutil.RequiredTenantID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input Person
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.CreatePerson(request.Context(), tenantID, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, input)
}

func (handler *Handler) updatePerson(writer http.ResponseWriter, request *http.Request) {
	tenantID, err := requestutil.RequiredTenantID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input Person
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.UpdatePerson(request.Context(), tenantID, requestutil.ID(request, "id"), &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, input)
}

func (handler *Handler) deletePerson(writer http.ResponseWriter, request *http.Request) {
	tenantID, err := requestutil.RequiredTenantID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeletePerson(request.Context(), tenantID, requestutil.ID(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
