package database

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/inkfold/blog-backend/errs"
	"github.com/inkfold/blog-backend/models"
)

type CategoryRepo struct {
	db *gorm.DB
}

func NewCategoryRepo(db *gorm.DB) *CategoryRepo {
	return &CategoryRepo{db}
}

// FindAll returns all categories sorted by name
func (r *CategoryRepo) FindAll() ([]*models.Category, error) {
	var categories []*models.Category
	err := r.db.Order("name ASC").Find(&categories).Error
	return categories, err
}

// FindByID returns a category by its ID, or nil if absent
func (r *CategoryRepo) FindByID(id uuid.UUID) (*models.Category, error) {
	var category models.Category
	err := r.db.First(&category, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &category, nil
}

// FindByName returns the category whose name matches case-insensitively, or
// nil if absent
func (r *CategoryRepo) FindByName(name string) (*models.Category, error) {
	var category models.Category
	err := r.db.First(&category, "LOWER(name) = LOWER(?)", name).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &category, nil
}

// Insert stores a new category, assigning its ID. A concurrent insert of the
// same name loses against the unique index and surfaces as a duplicate-key
// error the caller resolves by re-reading.
func (r *CategoryRepo) Insert(category *models.Category) error {
	if category.ID == uuid.Nil {
		category.ID = uuid.New()
	}
	err := r.db.Create(category).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return errs.NewDuplicateKeyError("category", err)
	}
	return err
}

// DeleteByID removes a category by id, reporting whether a record was removed
func (r *CategoryRepo) DeleteByID(id uuid.UUID) (bool, error) {
	result := r.db.Delete(&models.Category{}, "id = ?", id)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
