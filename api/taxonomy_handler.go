package api

import (
	"net/http"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/chainblog-backend/database"
	"github.com/rpupo63/chainblog-backend/errs"
	"github.com/rpupo63/chainblog-backend/models"
	"github.com/rpupo63/chainblog-backend/services"
)

// taxonomyHandler serves categories and tags
type taxonomyHandler struct {
	responder    Responder
	logger       zerolog.Logger
	blog         *services.Blog
	categoryRepo database.CategoryRepository
	tagRepo      database.TagRepository
}

func newTaxonomyHandler(blog *services.Blog) taxonomyHandler {
	logger := log.With().Str("handlerName", "taxonomyHandler").Logger()

	return taxonomyHandler{
		responder:    NewResponder(logger),
		logger:       logger,
		blog:         blog,
		categoryRepo: blog.DB().CategoryRepo(),
		tagRepo:      blog.DB().TagRepo(),
	}
}

// @Summary List categories by name
// @Tags Categories
// @Success 200 {array} models.Category
// @Router /api/categories [get]
func (h taxonomyHandler) getAllCategories() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categories, err := h.blog.Categories(r.Context())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, categories)
	}
}

// @Summary Get category
// @Tags Categories
// @Param id path string true "Category id"
// @Success 200 {object} models.Category
// @Failure 404 {object} ErrorResponse
// @Router /api/categories/{id} [get]
func (h taxonomyHandler) getCategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathParam(r, "id")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		category, err := h.categoryRepo.FindByID(r.Context(), id)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "category", err))
			return
		}
		if category == nil {
			h.responder.WriteError(w, errs.NewNotFound("Category"))
			return
		}
		h.responder.WriteJSON(w, category)
	}
}

// @Summary Get category by slug
// @Tags Categories
// @Param slug path string true "Category slug"
// @Success 200 {object} models.Category
// @Failure 404 {object} ErrorResponse
// @Router /api/categories/slug/{slug} [get]
func (h taxonomyHandler) getCategoryBySlug() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slug, err := pathParam(r, "slug")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		category, err := h.categoryRepo.FindBySlug(r.Context(), slug)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "category", err))
			return
		}
		if category == nil {
			h.responder.WriteError(w, errs.NewNotFound("Category"))
			return
		}
		h.responder.WriteJSON(w, category)
	}
}

// @Summary Create category
// @Tags Categories
// @Accept json
// @Param category body models.InsertCategory true "Category"
// @Success 201 {object} models.Category
// @Failure 409 {object} ErrorResponse "Name or slug taken"
// @Router /api/categories [post]
func (h taxonomyHandler) createCategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in models.InsertCategory
		if err := decodeJSON(w, r, &in); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		category, err := h.blog.CreateCategory(r.Context(), in)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSONWithStatus(w, http.StatusCreated, category)
	}
}

// @Summary Update category
// @Tags Categories
// @Accept json
// @Param id path string true "Category id"
// @Param patch body models.CategoryPatch true "Fields to change"
// @Success 200 {object} models.Category
// @Router /api/categories/{id} [put]
func (h taxonomyHandler) updateCategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathParam(r, "id")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		var patch models.CategoryPatch
		if err := decodeJSON(w, r, &patch); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		category, err := h.blog.UpdateCategory(r.Context(), id, patch)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, category)
	}
}

// @Summary List tags by post count
// @Tags Tags
// @Success 200 {array} models.Tag
// @Router /api/tags [get]
func (h taxonomyHandler) getAllTags() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tags, err := h.tagRepo.All(r.Context())
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "tags", err))
			return
		}
		h.responder.WriteJSON(w, tags)
	}
}

// @Summary Most used tags
// @Tags Tags
// @Param limit query int false "Default 10"
// @Success 200 {array} models.Tag
// @Router /api/tags/trending [get]
func (h taxonomyHandler) getTrendingTags() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, err := queryInt(r, "limit", defaultListLimit)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if limit == 0 {
			h.responder.WriteJSON(w, []models.Tag{})
			return
		}
		tags, err := h.blog.TrendingTags(r.Context(), limit)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, tags)
	}
}

// @Summary Get tag
// @Tags Tags
// @Param id path string true "Tag id"
// @Success 200 {object} models.Tag
// @Failure 404 {object} ErrorResponse
// @Router /api/tags/{id} [get]
func (h taxonomyHandler) getTag() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathParam(r, "id")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		tag, err := h.tagRepo.FindByID(r.Context(), id)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "tag", err))
			return
		}
		if tag == nil {
			h.responder.WriteError(w, errs.NewNotFound("Tag"))
			return
		}
		h.responder.WriteJSON(w, tag)
	}
}

// @Summary Get tag by slug
// @Tags Tags
// @Param slug path string true "Tag slug"
// @Success 200 {object} models.Tag
// @Failure 404 {object} ErrorResponse
// @Router /api/tags/slug/{slug} [get]
func (h taxonomyHandler) getTagBySlug() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slug, err := pathParam(r, "slug")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		tag, err := h.tagRepo.FindBySlug(r.Context(), slug)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "tag", err))
			return
		}
		if tag == nil {
			h.responder.WriteError(w, errs.NewNotFound("Tag"))
			return
		}
		h.responder.WriteJSON(w, tag)
	}
}

// @Summary Create tag
// @Tags Tags
// @Accept json
// @Param tag body models.InsertTag true "Tag"
// @Success 201 {object} models.Tag
// @Router /api/tags [post]
func (h taxonomyHandler) createTag() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in models.InsertTag
		if err := decodeJSON(w, r, &in); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		tag, err := h.blog.CreateTag(r.Context(), in)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSONWithStatus(w, http.StatusCreated, tag)
	}
}

// @Summary Update tag
// @Tags Tags
// @Accept json
// @Param id path string true "Tag id"
// @Param patch body models.TagPatch true "Fields to change"
// @Success 200 {object} models.Tag
// @Router /api/tags/{id} [put]
func (h taxonomyHandler) updateTag() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathParam(r, "id")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		var patch models.TagPatch
		if err := decodeJSON(w, r, &patch); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		tag, err := h.blog.UpdateTag(r.Context(), id, patch)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, tag)
	}
}
