package database

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/inkfold/blog-backend/content"
	"github.com/inkfold/blog-backend/models"
)

type PostRepo struct {
	db *gorm.DB
}

func NewPostRepo(db *gorm.DB) *PostRepo {
	return &PostRepo{db}
}

// Insert stores a new post, assigning its ID
func (r *PostRepo) Insert(post *models.Post) error {
	if post.ID == uuid.Nil {
		post.ID = uuid.New()
	}
	return r.db.Create(post).Error
}

// FindByID returns a post by its ID, or nil if absent
func (r *PostRepo) FindByID(id uuid.UUID) (*models.Post, error) {
	var post models.Post
	err := r.db.First(&post, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// FindMany returns posts matching the filter, newest first. A limit of zero
// or less means unbounded.
func (r *PostRepo) FindMany(filter content.PostFilter, limit int) ([]*models.Post, error) {
	query := r.db.Order("created_at DESC")
	if filter.CategoryID != uuid.Nil {
		query = query.Where("category_id = ?", filter.CategoryID)
	}
	if filter.AuthorEmail != "" {
		query = query.Where("author_email = ?", filter.AuthorEmail)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}

	var posts []*models.Post
	err := query.Find(&posts).Error
	return posts, err
}

// UpdateByID applies the patch and returns the post afterwards, or nil if
// the id is absent
func (r *PostRepo) UpdateByID(id uuid.UUID, patch content.PostPatch) (*models.Post, error) {
	result := r.db.Model(&models.Post{}).Where("id = ?", id).Updates(map[string]any{
		"title":       patch.Title,
		"content":     patch.Content,
		"category":    patch.Category,
		"category_id": patch.CategoryID,
		"slug":        patch.Slug,
		"image_url":   patch.ImageURL,
		"updated_at":  patch.UpdatedAt,
	})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, nil
	}
	return r.FindByID(id)
}

// DeleteByID removes a post by id, reporting whether a record was removed
func (r *PostRepo) DeleteByID(id uuid.UUID) (bool, error) {
	result := r.db.Delete(&models.Post{}, "id = ?", id)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// CountByCategoryID returns how many posts reference the given category
func (r *PostRepo) CountByCategoryID(categoryID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Model(&models.Post{}).Where("category_id = ?", categoryID).Count(&count).Error
	return count, err
}

// IncrementViews bumps the view counter by one in a single UPDATE so that
// concurrent viewers never lose increments, then returns the updated record.
// Returns nil if no record matched.
func (r *PostRepo) IncrementViews(id uuid.UUID) (*models.Post, error) {
	result := r.db.Model(&models.Post{}).Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + ?", 1))
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, nil
	}
	return r.FindByID(id)
}
