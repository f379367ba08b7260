package controllers

import (
	"net/http"

	"github.com/Kantor012/Product-Catalog/app/services"
	"github.com/Kantor012/Product-Catalog/pkg/response"
)

type RecentlyAddedController struct {
	service *services.RecentlyAddedService
}

func NewRecentlyAddedController(service *services.RecentlyAddedService) *RecentlyAddedController {
	return &RecentlyAddedController{service: service}
}

// Index handles GET /api/recently-added.
func (c *RecentlyAddedController) Index(w http.ResponseWriter, r *http.Request) {
	products, err := c.service.Feed(r.Context())
	if err != nil {
		fail(w, r, err, "Product not found")
		return
	}
	response.Success(w, products)
}
