package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/inkfold/blog-backend/content"
	"github.com/inkfold/blog-backend/errs"
)

type categoryHandler struct {
	responder Responder
	logger    zerolog.Logger
	service   *content.Service
}

func newCategoryHandler(service *content.Service) categoryHandler {
	logger := log.With().Str("handlerName", "categoryHandler").Logger()

	return categoryHandler{
		responder: NewResponder(logger),
		logger:    logger,
		service:   service,
	}
}

// createCategoryRequest is the payload for creating a category
type createCategoryRequest struct {
	Name string `json:"name"`
}

// getAllCategories retrieves all categories
// @Summary Get all categories
// @Tags Categories
// @Produce json
// @Success 200 {array} models.Category "List of categories"
// @Failure 500 {object} ErrorResponse "Internal Server Error"
// @Router /api/categories [get]
func (h categoryHandler) getAllCategories() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categories, err := h.service.ListCategories()
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, categories)
	}
}

// getCategory retrieves a specific category by ID
// @Summary Get category
// @Tags Categories
// @Produce json
// @Param categoryID path string true "Category ID" format(uuid)
// @Success 200 {object} models.Category "Category details"
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid categoryID"
// @Failure 404 {object} ErrorResponse "Not Found - Category not found"
// @Router /api/categories/{categoryID} [get]
func (h categoryHandler) getCategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categoryID, err := uuid.Parse(chi.URLParam(r, "categoryID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewValidationError("invalid categoryID"))
			return
		}

		category, err := h.service.GetCategory(categoryID)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, category)
	}
}

// createCategory returns the category with the given name, creating it when
// absent
// @Summary Create category
// @Tags Categories
// @Accept json
// @Produce json
// @Param category body createCategoryRequest true "Category name"
// @Success 200 {object} models.Category "Existing category"
// @Success 201 {object} models.Category "Created category"
// @Failure 400 {object} ErrorResponse "Bad Request - Missing name"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Router /api/categories [post]
func (h categoryHandler) createCategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createCategoryRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode category request body")
			h.responder.WriteError(w, errs.NewValidationError("malformed request body"))
			return
		}

		category, created, err := h.service.GetOrCreateCategory(req.Name)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if created {
			h.responder.WriteStatusJSON(w, http.StatusCreated, category)
			return
		}
		h.responder.WriteJSON(w, category)
	}
}
