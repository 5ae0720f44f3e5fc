package api

import (
	"github.com/inkfold/blog-backend/content"
)

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(service *content.Service) *routeHandlers {
	return &routeHandlers{
		categoryHandler: newCategoryHandler(service),
		postHandler:     newPostHandler(service),
	}
}
