package database

import (
	"gorm.io/gorm"

	"github.com/inkfold/blog-backend/models"
)

type Database struct {
	categoryRepo *CategoryRepo
	postRepo     *PostRepo
}

// New initializes a new Database struct with each repository using a shared GORM database instance
func New(db *gorm.DB) Database {
	return Database{
		categoryRepo: NewCategoryRepo(db),
		postRepo:     NewPostRepo(db),
	}
}

// Accessor methods for each repository

func (d Database) CategoryRepo() *CategoryRepo {
	return d.categoryRepo
}

func (d Database) PostRepo() *PostRepo {
	return d.postRepo
}

// Migrate creates or updates the backing tables for the two collections.
func (d Database) Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&models.Category{}, &models.Post{})
}
