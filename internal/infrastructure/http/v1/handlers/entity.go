package handlers

import (
	"context"

	"github.com/gin-gonic/gin"

	"stratum/internal/core/apperror"
	"stratum/internal/core/id"
	"stratum/internal/domain/lifecycle"
	"stratum/internal/infrastructure/http/v1/dto"
	"stratum/internal/infrastructure/storage/postgres/entity_repo"
)

// Lister lists instances of one entity type.
type Lister[T lifecycle.Entity] interface {
	List(ctx context.Context, opts entity_repo.ListOptions) ([]T, error)
}

// EntityHandler provides generic HTTP handlers for archivable entities.
// Archive and unarchive transitions go through the lifecycle service, so
// every route observes the same guards as programmatic callers.
type EntityHandler[T lifecycle.Entity, CreateDTO any, UpdateDTO any] struct {
	*BaseHandler
	service *lifecycle.Service[T]
	lister  Lister[T]

	// Mapper functions
	mapCreateDTO func(dto CreateDTO) (T, error)
	mapUpdateDTO func(dto UpdateDTO, existing T)
	mapToDTO     func(e T) any
}

// EntityHandlerConfig configures the entity handler.
type EntityHandlerConfig[T lifecycle.Entity, CreateDTO any, UpdateDTO any] struct {
	Service      *lifecycle.Service[T]
	Lister       Lister[T]
	MapCreateDTO func(dto CreateDTO) (T, error)
	MapUpdateDTO func(dto UpdateDTO, existing T)
	MapToDTO     func(e T) any
}

// NewEntityHandler creates a new entity handler.
func NewEntityHandler[T lifecycle.Entity, CreateDTO any, UpdateDTO any](
	base *BaseHandler,
	cfg EntityHandlerConfig[T, CreateDTO, UpdateDTO],
) *EntityHandler[T, CreateDTO, UpdateDTO] {
	return &EntityHandler[T, CreateDTO, UpdateDTO]{
		BaseHandler:  base,
		service:      cfg.Service,
		lister:       cfg.Lister,
		mapCreateDTO: cfg.MapCreateDTO,
		mapUpdateDTO: cfg.MapUpdateDTO,
		mapToDTO:     cfg.MapToDTO,
	}
}

// List handles GET /{entity} - list with paging.
// Archived instances are excluded unless includeArchived=true.
func (h *EntityHandler[T, CreateDTO, UpdateDTO]) List(c *gin.Context) {
	ctx := c.Request.Context()

	opts := entity_repo.ListOptions{
		IncludeArchived: c.Query("includeArchived") == "true",
		Limit:           h.ParseIntQuery(c, "limit", 50),
		Offset:          h.ParseIntQuery(c, "offset", 0),
	}

	result, err := h.lister.List(ctx, opts)
	if err != nil {
		h.Error(c, err)
		return
	}

	items := make([]any, len(result))
	for i, item := range result {
		items[i] = h.mapToDTO(item)
	}

	h.OK(c, dto.ListResponse{
		Items:  items,
		Count:  len(items),
		Limit:  opts.Limit,
		Offset: opts.Offset,
	})
}

// Get handles GET /{entity}/:id - get single instance.
func (h *EntityHandler[T, CreateDTO, UpdateDTO]) Get(c *gin.Context) {
	ctx := c.Request.Context()

	entityID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	e, err := h.service.GetByID(ctx, entityID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, h.mapToDTO(e))
}

// Create handles POST /{entity} - create new instance.
func (h *EntityHandler[T, CreateDTO, UpdateDTO]) Create(c *gin.Context) {
	ctx := c.Request.Context()

	var req CreateDTO
	if !h.BindJSON(c, &req) {
		return
	}

	e, err := h.mapCreateDTO(req)
	if err != nil {
		h.Error(c, err)
		return
	}

	if err := h.service.Save(ctx, e, lifecycle.SaveOptions{}); err != nil {
		h.Error(c, err)
		return
	}

	h.Created(c, h.mapToDTO(e))
}

// Update handles PUT /{entity}/:id - update existing instance.
// force=true permits modifying archived instances.
func (h *EntityHandler[T, CreateDTO, UpdateDTO]) Update(c *gin.Context) {
	ctx := c.Request.Context()

	entityID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	var req UpdateDTO
	if !h.BindJSON(c, &req) {
		return
	}

	existing, err := h.service.GetByID(ctx, entityID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.mapUpdateDTO(req, existing)

	opts := lifecycle.SaveOptions{Force: c.Query("force") == "true"}
	if err := h.service.Save(ctx, existing, opts); err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, h.mapToDTO(existing))
}

// Delete handles DELETE /{entity}/:id - permanently delete instance.
// force=true skips the archived-first requirement.
func (h *EntityHandler[T, CreateDTO, UpdateDTO]) Delete(c *gin.Context) {
	ctx := c.Request.Context()

	entityID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	e, err := h.service.GetByID(ctx, entityID)
	if err != nil {
		h.Error(c, err)
		return
	}

	opts := lifecycle.DeleteOptions{Force: c.Query("force") == "true"}
	if err := h.service.Delete(ctx, e, opts); err != nil {
		h.Error(c, err)
		return
	}

	h.NoContent(c)
}

// Archive handles POST /{entity}/:id/archive - archive with cascade.
func (h *EntityHandler[T, CreateDTO, UpdateDTO]) Archive(c *gin.Context) {
	h.transition(c, h.service.Archive)
}

// Unarchive handles POST /{entity}/:id/unarchive - unarchive with cascade.
func (h *EntityHandler[T, CreateDTO, UpdateDTO]) Unarchive(c *gin.Context) {
	h.transition(c, h.service.Unarchive)
}

func (h *EntityHandler[T, CreateDTO, UpdateDTO]) transition(c *gin.Context, op func(context.Context, T) error) {
	ctx := c.Request.Context()

	entityID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	e, err := h.service.GetByID(ctx, entityID)
	if err != nil {
		h.Error(c, err)
		return
	}

	if err := op(ctx, e); err != nil {
		h.Error(c, err)
		return
	}

	// Return post-cascade state, not the in-memory copy.
	if err := h.service.Reload(ctx, e); err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, h.mapToDTO(e))
}
