package controllers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/Kantor012/Product-Catalog/app/repositories"
	"github.com/Kantor012/Product-Catalog/app/services"
	"github.com/Kantor012/Product-Catalog/pkg/bind"
	"github.com/Kantor012/Product-Catalog/pkg/middleware"
	"github.com/Kantor012/Product-Catalog/pkg/response"
	"github.com/Kantor012/Product-Catalog/pkg/storage"
)

const (
	// maxImageBytes caps product image uploads at 8 MB.
	maxImageBytes = 8 << 20
	// maxPatchBytes caps the raw partial-update body at 1 MB.
	maxPatchBytes = 1 << 20
)

type ProductController struct {
	service *services.ProductService
}

func NewProductController(service *services.ProductService) *ProductController {
	return &ProductController{service: service}
}

// Index handles GET /api/products with keyword, category, price range, and
// sort query parameters.
func (c *ProductController) Index(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := repositories.SearchFilter{
		Keyword:  q.Get("keyword"),
		Category: q.Get("category"),
		MinPrice: q.Get("minPrice"),
		MaxPrice: q.Get("maxPrice"),
		Sort:     q.Get("sort"),
	}

	products, err := c.service.Search(r.Context(), filter)
	if err != nil {
		fail(w, r, err, "Product not found")
		return
	}
	response.Success(w, products)
}

// AdminIndex handles GET /api/products/admin.
func (c *ProductController) AdminIndex(w http.ResponseWriter, r *http.Request) {
	products, err := c.service.AllForAdmin(r.Context())
	if err != nil {
		fail(w, r, err, "Product not found")
		return
	}
	response.Success(w, products)
}

// Promotional handles GET /api/products/promotional.
func (c *ProductController) Promotional(w http.ResponseWriter, r *http.Request) {
	products, err := c.service.Promotional(r.Context())
	if err != nil {
		fail(w, r, err, "Product not found")
		return
	}
	response.Success(w, products)
}

// Recommendations handles GET /api/products/recommendations/{id}.
func (c *ProductController) Recommendations(w http.ResponseWriter, r *http.Request) {
	products, err := c.service.Recommendations(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		fail(w, r, err, "Product not found")
		return
	}
	response.Success(w, products)
}

// Show handles GET /api/products/{id}.
func (c *ProductController) Show(w http.ResponseWriter, r *http.Request) {
	product, err := c.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		fail(w, r, err, "Product not found")
		return
	}
	response.Success(w, product)
}

// Store handles POST /api/products.
func (c *ProductController) Store(w http.ResponseWriter, r *http.Request) {
	var in services.ProductInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.BadRequest(w, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	product, err := c.service.Create(r.Context(), in)
	if err != nil {
		fail(w, r, err, "Product not found")
		return
	}
	response.Created(w, product)
}

// Update handles PUT /api/products/{id}, a full replace of mutable fields.
func (c *ProductController) Update(w http.ResponseWriter, r *http.Request) {
	var in services.ProductInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.BadRequest(w, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	product, err := c.service.Replace(r.Context(), chi.URLParam(r, "id"), in)
	if err != nil {
		fail(w, r, err, "Product not found")
		return
	}
	response.Success(w, product)
}

// Patch handles PATCH /api/products/{id}, a raw partial update.
func (c *ProductController) Patch(w http.ResponseWriter, r *http.Request) {
	var fields map[string]interface{}
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxPatchBytes)).Decode(&fields); err != nil {
		response.BadRequest(w, "invalid JSON")
		return
	}

	product, err := c.service.Patch(r.Context(), chi.URLParam(r, "id"), fields)
	if err != nil {
		fail(w, r, err, "Product not found")
		return
	}
	response.Success(w, product)
}

// Destroy handles DELETE /api/products/{id}.
func (c *ProductController) Destroy(w http.ResponseWriter, r *http.Request) {
	if err := c.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		fail(w, r, err, "Product not found")
		return
	}
	response.Message(w, "Product removed")
}

// reviewInput is the body of POST /api/products/{id}/reviews.
type reviewInput struct {
	Rating  float64 `json:"rating" validate:"required,gte=1,lte=5"`
	Comment string  `json:"comment" validate:"required,max=2000"`
}

// StoreReview handles POST /api/products/{id}/reviews.
func (c *ProductController) StoreReview(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromCtx(r.Context())
	if !ok {
		response.Unauthorized(w, "Not authorized, no token")
		return
	}

	var in reviewInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.BadRequest(w, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	if err := c.service.AddReview(r.Context(), chi.URLParam(r, "id"), user, in.Rating, in.Comment); err != nil {
		fail(w, r, err, "Product not found")
		return
	}
	response.CreatedMessage(w, "Review added")
}

// DestroyReview handles DELETE /api/products/{id}/reviews/{reviewId}.
func (c *ProductController) DestroyReview(w http.ResponseWriter, r *http.Request) {
	err := c.service.DeleteReview(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "reviewId"))
	if err != nil {
		fail(w, r, err, "Product not found")
		return
	}
	response.Message(w, "Review removed")
}

// ClearReviews handles DELETE /api/products/{id}/reviews.
func (c *ProductController) ClearReviews(w http.ResponseWriter, r *http.Request) {
	if err := c.service.ClearReviews(r.Context(), chi.URLParam(r, "id")); err != nil {
		fail(w, r, err, "Product not found")
		return
	}
	response.Message(w, "All reviews removed")
}

// UploadImage handles POST /api/products/{id}/image: stores the multipart
// "image" file and points the product's imageUrl at it.
func (c *ProductController) UploadImage(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := r.ParseMultipartForm(maxImageBytes); err != nil {
		response.BadRequest(w, "invalid multipart form")
		return
	}
	file, header, err := r.FormFile("image")
	if err != nil {
		response.BadRequest(w, "The image field is required.")
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".webp", ".gif":
	default:
		response.BadRequest(w, "Unsupported image type.")
		return
	}

	path := fmt.Sprintf("products/%s%s", id, ext)
	if err := storage.PutStream(path, file); err != nil {
		fail(w, r, err, "Product not found")
		return
	}

	url := storage.URL(path)
	if err := c.service.SetImageURL(r.Context(), id, url); err != nil {
		fail(w, r, err, "Product not found")
		return
	}
	response.Success(w, map[string]string{"imageUrl": url})
}
