package module

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
	router.Get("/", handler.listModules)
	router.Get("/{id}", handler.getModule)
	router.Post("/", handler.createModule)
	router.Put("/{id}", handler.updateModule)
	router.Delete("/{id}", handler.deleteModule)
}

func (handler *Handler) listModules(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)

	filter := Filter{
		Query: request.URL.Query().Get("search"),
	}

	modules, total, err := handler.service.ListModules(request.Context(), filter, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, modules, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

func (handler *Handler) getModule(writer http.ResponseWriter, request *http.Request) {
	module, err := handler.service.GetModule(request.Context(), requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, module)
}

func (handler *Handler) createModule(writer http.ResponseWriter, request *http.Request) {
	var input Module
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.CreateModule(request.Context(), &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, input)
}

func (handler *Handler) updateModule(writer http.ResponseWriter, request *http.Request) {
	var input Module
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.UpdateModule(request.Context(), requestutil.ID(request, "id"), &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, input)
}

func (handler *Handler) deleteModule(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.DeleteModule(request.Context(), requestutil.ID(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
