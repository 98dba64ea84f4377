package permission

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
	router.Get("/", handler.listPermissions)
	router.Get("/{id}", handler.getPermission)
	router.Post("/", handler.createPermission)
	router.Put("/{id}", handler.updatePermission)
	router.Delete("/{id}", handler.deletePermission)
}

func (handler *Handler) listPermissions(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)

	filter := Filter{
		Query: request.URL.Query().Get("search"),
	}

	permissions, total, err := handler.service.ListPermissions(request.Context(), filter, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, permissions, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

func (handler *Handler) getPermission(writer http.ResponseWriter, request *http.Request) {
	permission, err := handler.service.GetPermission(request.Context(), requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, permission)
}

func (handler *Handler) createPermission(writer http.ResponseWriter, request *http.Request) {
	var input Permission
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.CreatePermission(request.Context(), &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, input)
}

func (handler *Handler) updatePermission(writer http.ResponseWriter, request *http.Request) {
	var input Permission
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.UpdatePermission(request.Context(), requestutil.ID(request, "id"), &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, input)
}

func (handler *Handler) deletePermission(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.DeletePermission(request.Context(), requestutil.ID(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
