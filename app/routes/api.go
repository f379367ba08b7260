// Package routes declares the API route table.
package routes

import (
	"time"

	"github.com/Kantor012/Product-Catalog/app/controllers"
	"github.com/Kantor012/Product-Catalog/pkg/middleware"
	"github.com/Kantor012/Product-Catalog/pkg/router"
)

// Controllers bundles every controller the API mounts.
type Controllers struct {
	Products      *controllers.ProductController
	Categories    *controllers.CategoryController
	Users         *controllers.UserController
	RecentlyAdded *controllers.RecentlyAddedController
}

// RegisterAPI mounts all /api routes. users resolves JWT subjects for the
// Protect middleware.
func RegisterAPI(r *router.Router, c Controllers, users middleware.UserLoader) {
	protect := middleware.Protect(users)

	api := r.Group("/api")

	// Products. Public reads, admin writes.
	api.Get("/products", "products.index", c.Products.Index)
	api.Get("/products/admin", "products.admin", c.Products.AdminIndex, protect, middleware.Admin)
	api.Get("/products/promotional", "products.promotional", c.Products.Promotional)
	api.Get("/products/recommendations/{id}", "products.recommendations", c.Products.Recommendations)
	api.Get("/products/{id}", "products.show", c.Products.Show)
	api.Post("/products", "products.store", c.Products.Store, protect, middleware.Admin)
	api.Put("/products/{id}", "products.update", c.Products.Update, protect, middleware.Admin)
	api.Patch("/products/{id}", "products.patch", c.Products.Patch, protect, middleware.Admin)
	api.Delete("/products/{id}", "products.destroy", c.Products.Destroy, protect, middleware.Admin)
	api.Post("/products/{id}/image", "products.image", c.Products.UploadImage, protect, middleware.Admin)

	// Embedded reviews.
	api.Post("/products/{id}/reviews", "reviews.store", c.Products.StoreReview, protect)
	api.Delete("/products/{id}/reviews", "reviews.clear", c.Products.ClearReviews, protect, middleware.Admin)
	api.Delete("/products/{id}/reviews/{reviewId}", "reviews.destroy", c.Products.DestroyReview, protect, middleware.Admin)

	// Categories.
	api.Get("/categories", "categories.index", c.Categories.Index)
	api.Get("/categories/{id}", "categories.show", c.Categories.Show)
	api.Post("/categories", "categories.store", c.Categories.Store, protect, middleware.Admin)
	api.Put("/categories/{id}", "categories.update", c.Categories.Update, protect, middleware.Admin)
	api.Delete("/categories/{id}", "categories.destroy", c.Categories.Destroy, protect, middleware.Admin)

	// Users and auth. Login and register are rate limited per IP.
	api.Post("/users/register", "users.register", c.Users.Register, middleware.RateLimit(10, time.Minute))
	api.Post("/users/login", "users.login", c.Users.Login, middleware.RateLimit(10, time.Minute))
	api.Get("/users/verify/{token}", "users.verify", c.Users.Verify)
	api.Put("/users/profile", "users.profile", c.Users.UpdateProfile, protect)
	api.Get("/users", "users.index", c.Users.Index, protect, middleware.Admin)
	api.Post("/users/admin", "users.store", c.Users.Store, protect, middleware.Admin)
	api.Get("/users/{id}", "users.show", c.Users.Show, protect, middleware.Admin)
	api.Put("/users/{id}", "users.update", c.Users.Update, protect, middleware.Admin)
	api.Delete("/users/{id}", "users.destroy", c.Users.Destroy, protect, middleware.Admin)

	// Recently-added feed.
	api.Get("/recently-added", "recently-added.index", c.RecentlyAdded.Index)
}
