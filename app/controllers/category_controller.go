package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Kantor012/Product-Catalog/app/services"
	"github.com/Kantor012/Product-Catalog/pkg/bind"
	"github.com/Kantor012/Product-Catalog/pkg/response"
)

type CategoryController struct {
	service *services.CategoryService
}

func NewCategoryController(service *services.CategoryService) *CategoryController {
	return &CategoryController{service: service}
}

type categoryInput struct {
	Name string `json:"name" validate:"required,min=2,max=100"`
}

// Index handles GET /api/categories.
func (c *CategoryController) Index(w http.ResponseWriter, r *http.Request) {
	categories, err := c.service.All(r.Context())
	if err != nil {
		fail(w, r, err, "Category not found")
		return
	}
	response.Success(w, categories)
}

// Show handles GET /api/categories/{id}.
func (c *CategoryController) Show(w http.ResponseWriter, r *http.Request) {
	category, err := c.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		fail(w, r, err, "Category not found")
		return
	}
	response.Success(w, category)
}

// Store handles POST /api/categories.
func (c *CategoryController) Store(w http.ResponseWriter, r *http.Request) {
	var in categoryInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.BadRequest(w, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	category, err := c.service.Create(r.Context(), in.Name)
	if err != nil {
		fail(w, r, err, "Category not found")
		return
	}
	response.Created(w, category)
}

// Update handles PUT /api/categories/{id}.
func (c *CategoryController) Update(w http.ResponseWriter, r *http.Request) {
	var in categoryInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.BadRequest(w, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	category, err := c.service.Update(r.Context(), chi.URLParam(r, "id"), in.Name)
	if err != nil {
		fail(w, r, err, "Category not found")
		return
	}
	response.Success(w, category)
}

// Destroy handles DELETE /api/categories/{id}.
func (c *CategoryController) Destroy(w http.ResponseWriter, r *http.Request) {
	if err := c.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		fail(w, r, err, "Category not found")
		return
	}
	response.Message(w, "Category removed")
}
