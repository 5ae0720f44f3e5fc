package api

import (
	"github.com/go-chi/chi/v5"
)

// setupRoutes sets up the public and authenticated route groups
func setupRoutes(r chi.Router, handlers *routeHandlers, authMiddleware authMiddleware) {
	r.Route("/api", func(r chi.Router) {
		// Public routes
		r.Group(func(r chi.Router) {
			r.Use(ColoredHTTPLoggingMiddleware)

			r.Get("/categories", handlers.categoryHandler.getAllCategories())
			r.Get("/categories/{categoryID}", handlers.categoryHandler.getCategory())

			r.Get("/posts", handlers.postHandler.getAllPosts())
			r.Get("/posts/category/{categoryID}", handlers.postHandler.getPostsByCategory())
			r.Get("/posts/{postID}", handlers.postHandler.getPost())
			r.Post("/posts/{postID}/view", handlers.postHandler.incrementPostView())
		})

		// Authenticated routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.authenticate)
			r.Use(ColoredHTTPLoggingMiddleware)

			r.Post("/categories", handlers.categoryHandler.createCategory())

			r.Get("/my-posts", handlers.postHandler.getMyPosts())
			r.Post("/posts", handlers.postHandler.createPost())
			r.Put("/posts/{postID}", handlers.postHandler.updatePost())
			r.Delete("/posts/{postID}", handlers.postHandler.deletePost())
		})
	})
}
