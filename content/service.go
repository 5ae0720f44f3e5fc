// Package content implements the referential-integrity and authorization
// core: category dedup-or-create, post lifecycle with ownership checks,
// cascading category cleanup, and view counting.
package content

import (
	"time"

	"github.com/google/uuid"

	"github.com/inkfold/blog-backend/auth"
	"github.com/inkfold/blog-backend/errs"
	"github.com/inkfold/blog-backend/models"
	"github.com/inkfold/blog-backend/slug"
)

// PostFilter narrows post listings; zero-valued fields are ignored and set
// fields combine with logical AND.
type PostFilter struct {
	CategoryID  uuid.UUID
	AuthorEmail string
}

// PostPatch is the set of post fields an update may touch. CreatedAt, Views
// and Author are deliberately not part of it.
type PostPatch struct {
	Title      string
	Content    string
	Category   string
	CategoryID uuid.UUID
	Slug       string
	ImageURL   string
	UpdatedAt  time.Time
}

// CategoryStore is the category adapter surface the service depends on.
type CategoryStore interface {
	FindAll() ([]*models.Category, error)
	FindByID(id uuid.UUID) (*models.Category, error)
	FindByName(name string) (*models.Category, error)
	Insert(category *models.Category) error
	DeleteByID(id uuid.UUID) (bool, error)
}

// PostStore is the post adapter surface the service depends on.
type PostStore interface {
	Insert(post *models.Post) error
	FindByID(id uuid.UUID) (*models.Post, error)
	FindMany(filter PostFilter, limit int) ([]*models.Post, error)
	UpdateByID(id uuid.UUID, patch PostPatch) (*models.Post, error)
	DeleteByID(id uuid.UUID) (bool, error)
	CountByCategoryID(categoryID uuid.UUID) (int64, error)
	IncrementViews(id uuid.UUID) (*models.Post, error)
}

// PostInput carries the caller-supplied fields for creating or updating a
// post.
type PostInput struct {
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	Category   string    `json:"category"`
	CategoryID uuid.UUID `json:"categoryId"`
	ImageURL   string    `json:"imageUrl"`
}

// Service orchestrates categories and posts over the store adapters. It owns
// the cross-entity cascade rule; the adapters own storage access only.
type Service struct {
	categories CategoryStore
	posts      PostStore
	now        func() time.Time
}

func NewService(categories CategoryStore, posts PostStore) *Service {
	return &Service{
		categories: categories,
		posts:      posts,
		now:        time.Now,
	}
}

// WithClock replaces the wall-clock time source used for timestamps.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// IsAuthor reports whether the identity owns the post. The single
// authorization predicate for every mutating post operation; there is no
// administrative override.
func (s *Service) IsAuthor(post *models.Post, identity auth.Identity) bool {
	return post != nil && post.Author.Email == identity.Email
}

// ListCategories returns all categories.
func (s *Service) ListCategories() ([]*models.Category, error) {
	categories, err := s.categories.FindAll()
	if err != nil {
		return nil, errs.NewStoreError("find", "categories", err)
	}
	return categories, nil
}

// GetCategory returns a category by id.
func (s *Service) GetCategory(id uuid.UUID) (*models.Category, error) {
	category, err := s.categories.FindByID(id)
	if err != nil {
		return nil, errs.NewStoreError("find", "category", err)
	}
	if category == nil {
		return nil, errs.NewNotFound("category")
	}
	return category, nil
}

// GetOrCreateCategory returns the category with the given name, creating it
// when absent. Lookup is case-insensitive, so repeated calls with names
// differing only by case return the same logical category. The returned bool
// reports whether a new category was created.
//
// The existence check and the insert are not one atomic operation; two
// concurrent calls with the same new name race, and the loser's insert fails
// against the unique name index and is resolved by re-reading.
func (s *Service) GetOrCreateCategory(name string) (*models.Category, bool, error) {
	if name == "" {
		return nil, false, errs.NewMissingRequiredFieldError("name")
	}

	existing, err := s.categories.FindByName(name)
	if err != nil {
		return nil, false, errs.NewStoreError("find", "category", err)
	}
	if existing != nil {
		return existing, false, nil
	}

	category := &models.Category{
		Name:      name,
		Slug:      slug.FromName(name),
		CreatedAt: s.now(),
	}
	err = s.categories.Insert(category)
	if errs.IsDuplicateKey(err) {
		// Lost the check-then-insert race; the winner's record is the
		// category.
		winner, findErr := s.categories.FindByName(name)
		if findErr != nil {
			return nil, false, errs.NewStoreError("find", "category", findErr)
		}
		if winner != nil {
			return winner, false, nil
		}
		return nil, false, errs.NewStoreError("create", "category", err)
	}
	if err != nil {
		return nil, false, errs.NewStoreError("create", "category", err)
	}

	return category, true, nil
}

// CreatePost stores a new post authored by the caller. The caller is
// responsible for passing a CategoryID obtained from GetOrCreateCategory;
// the store layer does not re-check the reference.
func (s *Service) CreatePost(input PostInput, identity auth.Identity) (*models.Post, error) {
	if err := validatePostInput(input); err != nil {
		return nil, err
	}

	now := s.now()
	post := &models.Post{
		Title:      input.Title,
		Content:    input.Content,
		Category:   input.Category,
		CategoryID: input.CategoryID,
		Slug:       slug.FromTitle(input.Title),
		ImageURL:   input.ImageURL,
		Author:     models.Author{Email: identity.Email, Name: identity.Name},
		Views:      0,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.posts.Insert(post); err != nil {
		return nil, errs.NewStoreError("create", "post", err)
	}
	return post, nil
}

// GetPost returns a post by id.
func (s *Service) GetPost(id uuid.UUID) (*models.Post, error) {
	post, err := s.posts.FindByID(id)
	if err != nil {
		return nil, errs.NewStoreError("find", "post", err)
	}
	if post == nil {
		return nil, errs.NewNotFound("post")
	}
	return post, nil
}

// ListPosts returns posts matching the filter, newest first. A limit of zero
// means unbounded.
func (s *Service) ListPosts(filter PostFilter, limit int) ([]*models.Post, error) {
	posts, err := s.posts.FindMany(filter, limit)
	if err != nil {
		return nil, errs.NewStoreError("find", "posts", err)
	}
	return posts, nil
}

// UpdatePost applies the input to the post with the given id. Only the
// author may update; createdAt, views and author are never touched.
func (s *Service) UpdatePost(id uuid.UUID, input PostInput, identity auth.Identity) (*models.Post, error) {
	if err := validatePostInput(input); err != nil {
		return nil, err
	}

	post, err := s.posts.FindByID(id)
	if err != nil {
		return nil, errs.NewStoreError("find", "post", err)
	}
	if post == nil {
		return nil, errs.NewNotFound("post")
	}
	if !s.IsAuthor(post, identity) {
		return nil, errs.NewForbiddenError("only the author may update this post")
	}

	updated, err := s.posts.UpdateByID(id, PostPatch{
		Title:      input.Title,
		Content:    input.Content,
		Category:   input.Category,
		CategoryID: input.CategoryID,
		Slug:       slug.FromTitle(input.Title),
		ImageURL:   input.ImageURL,
		UpdatedAt:  s.now(),
	})
	if err != nil {
		return nil, errs.NewStoreError("update", "post", err)
	}
	if updated == nil {
		return nil, errs.NewNotFound("post")
	}
	return updated, nil
}

// DeletePost removes the post with the given id and, when it was the last
// post of its category, the category as well. Only the author may delete.
// The returned bool reports whether the category was cascade-deleted.
//
// The cascade counts remaining posts and then deletes; a post inserted into
// the category in that window can be left referencing a just-deleted
// category. Accepted eventual-consistency trade-off, not silently masked.
// A failure after the post delete is reported but the delete is not undone.
func (s *Service) DeletePost(id uuid.UUID, identity auth.Identity) (bool, error) {
	post, err := s.posts.FindByID(id)
	if err != nil {
		return false, errs.NewStoreError("find", "post", err)
	}
	if post == nil {
		return false, errs.NewNotFound("post")
	}
	if !s.IsAuthor(post, identity) {
		return false, errs.NewForbiddenError("only the author may delete this post")
	}

	deleted, err := s.posts.DeleteByID(id)
	if err != nil {
		return false, errs.NewStoreError("delete", "post", err)
	}
	if !deleted {
		return false, errs.NewNotFound("post")
	}

	remaining, err := s.posts.CountByCategoryID(post.CategoryID)
	if err != nil {
		return false, errs.NewStoreError("count", "posts", err)
	}
	if remaining > 0 {
		return false, nil
	}

	categoryDeleted, err := s.categories.DeleteByID(post.CategoryID)
	if err != nil {
		return false, errs.NewStoreError("delete", "category", err)
	}
	return categoryDeleted, nil
}

// IncrementView bumps the post's view counter and returns the new count.
// Public, no authentication and no rate limiting.
func (s *Service) IncrementView(id uuid.UUID) (int64, error) {
	post, err := s.posts.IncrementViews(id)
	if err != nil {
		return 0, errs.NewStoreError("increment views of", "post", err)
	}
	if post == nil {
		return 0, errs.NewNotFound("post")
	}
	return post.Views, nil
}

func validatePostInput(input PostInput) error {
	if input.Title == "" {
		return errs.NewMissingRequiredFieldError("title")
	}
	if input.Content == "" {
		return errs.NewMissingRequiredFieldError("content")
	}
	if input.Category == "" {
		return errs.NewMissingRequiredFieldError("category")
	}
	return nil
}
