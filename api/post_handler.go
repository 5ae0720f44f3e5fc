package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/inkfold/blog-backend/content"
	"github.com/inkfold/blog-backend/errs"
)

type postHandler struct {
	responder Responder
	logger    zerolog.Logger
	service   *content.Service
}

func newPostHandler(service *content.Service) postHandler {
	logger := log.With().Str("handlerName", "postHandler").Logger()

	return postHandler{
		responder: NewResponder(logger),
		logger:    logger,
		service:   service,
	}
}

// getAllPosts retrieves posts newest first, optionally filtered
// @Summary Get all posts
// @Tags Posts
// @Produce json
// @Param limit query int false "Maximum number of posts, 0 means unbounded"
// @Param author query string false "Filter by author email"
// @Param categoryId query string false "Filter by category ID" format(uuid)
// @Success 200 {array} models.Post "List of posts, newest first"
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid query parameter"
// @Router /api/posts [get]
func (h postHandler) getAllPosts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var filter content.PostFilter
		filter.AuthorEmail = r.URL.Query().Get("author")

		if categoryIDStr := r.URL.Query().Get("categoryId"); categoryIDStr != "" {
			categoryID, err := uuid.Parse(categoryIDStr)
			if err != nil {
				h.responder.WriteError(w, errs.NewValidationError("invalid categoryId"))
				return
			}
			filter.CategoryID = categoryID
		}

		limit := 0
		if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
			parsed, err := strconv.Atoi(limitStr)
			if err != nil || parsed < 0 {
				h.responder.WriteError(w, errs.NewValidationError("invalid limit"))
				return
			}
			limit = parsed
		}

		posts, err := h.service.ListPosts(filter, limit)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, posts)
	}
}

// getPostsByCategory retrieves all posts of one category, newest first
// @Summary Get posts by category
// @Tags Posts
// @Produce json
// @Param categoryID path string true "Category ID" format(uuid)
// @Success 200 {array} models.Post "List of posts, newest first"
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid categoryID"
// @Router /api/posts/category/{categoryID} [get]
func (h postHandler) getPostsByCategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categoryID, err := uuid.Parse(chi.URLParam(r, "categoryID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewValidationError("invalid categoryID"))
			return
		}

		posts, err := h.service.ListPosts(content.PostFilter{CategoryID: categoryID}, 0)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, posts)
	}
}

// getMyPosts retrieves the posts authored by the caller, newest first
// @Summary Get own posts
// @Tags Posts
// @Produce json
// @Success 200 {array} models.Post "List of posts authored by the caller"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Router /api/my-posts [get]
func (h postHandler) getMyPosts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, err := ctxGetIdentity(r.Context())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		posts, err := h.service.ListPosts(content.PostFilter{AuthorEmail: identity.Email}, 0)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, posts)
	}
}

// getPost retrieves a specific post by ID
// @Summary Get post
// @Tags Posts
// @Produce json
// @Param postID path string true "Post ID" format(uuid)
// @Success 200 {object} models.Post "Post details"
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid postID"
// @Failure 404 {object} ErrorResponse "Not Found - Post not found"
// @Router /api/posts/{postID} [get]
func (h postHandler) getPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		postID, err := uuid.Parse(chi.URLParam(r, "postID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewValidationError("invalid postID"))
			return
		}

		post, err := h.service.GetPost(postID)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, post)
	}
}

// incrementPostView bumps the post's public view counter
// @Summary Count a post view
// @Tags Posts
// @Produce json
// @Param postID path string true "Post ID" format(uuid)
// @Success 200 {object} map[string]any "Success flag and new view count"
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid postID"
// @Failure 404 {object} ErrorResponse "Not Found - Post not found"
// @Router /api/posts/{postID}/view [post]
func (h postHandler) incrementPostView() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		postID, err := uuid.Parse(chi.URLParam(r, "postID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewValidationError("invalid postID"))
			return
		}

		views, err := h.service.IncrementView(postID)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, map[string]any{
			"success": true,
			"views":   views,
		})
	}
}

// createPost creates a new post authored by the caller
// @Summary Create post
// @Tags Posts
// @Accept json
// @Produce json
// @Param post body content.PostInput true "Post data"
// @Success 201 {object} models.Post "Created post"
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid post data"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Router /api/posts [post]
func (h postHandler) createPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, err := ctxGetIdentity(r.Context())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var input content.PostInput
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode post request body")
			h.responder.WriteError(w, errs.NewValidationError("malformed request body"))
			return
		}

		post, err := h.service.CreatePost(input, identity)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteStatusJSON(w, http.StatusCreated, post)
	}
}

// updatePost updates an existing post; only the author may update
// @Summary Update post
// @Tags Posts
// @Accept json
// @Produce json
// @Param postID path string true "Post ID" format(uuid)
// @Param post body content.PostInput true "Updated post data"
// @Success 200 {object} models.Post "Updated post"
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid post data"
// @Failure 403 {object} ErrorResponse "Forbidden - Caller is not the author"
// @Failure 404 {object} ErrorResponse "Not Found - Post not found"
// @Router /api/posts/{postID} [put]
func (h postHandler) updatePost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, err := ctxGetIdentity(r.Context())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		postID, err := uuid.Parse(chi.URLParam(r, "postID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewValidationError("invalid postID"))
			return
		}

		var input content.PostInput
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode post request body")
			h.responder.WriteError(w, errs.NewValidationError("malformed request body"))
			return
		}

		post, err := h.service.UpdatePost(postID, input, identity)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, post)
	}
}

// deletePost deletes a post; only the author may delete. Reports whether the
// post's category was cascade-deleted with it.
// @Summary Delete post
// @Tags Posts
// @Produce json
// @Param postID path string true "Post ID" format(uuid)
// @Success 200 {object} map[string]bool "Whether the category was deleted too"
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid postID"
// @Failure 403 {object} ErrorResponse "Forbidden - Caller is not the author"
// @Failure 404 {object} ErrorResponse "Not Found - Post not found"
// @Router /api/posts/{postID} [delete]
func (h postHandler) deletePost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, err := ctxGetIdentity(r.Context())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		postID, err := uuid.Parse(chi.URLParam(r, "postID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewValidationError("invalid postID"))
			return
		}

		categoryDeleted, err := h.service.DeletePost(postID, identity)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, map[string]bool{
			"categoryDeleted": categoryDeleted,
		})
	}
}
