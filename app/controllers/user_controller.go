package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Kantor012/Product-Catalog/app/services"
	"github.com/Kantor012/Product-Catalog/pkg/bind"
	"github.com/Kantor012/Product-Catalog/pkg/middleware"
	"github.com/Kantor012/Product-Catalog/pkg/response"
)

type UserController struct {
	service *services.UserService
}

func NewUserController(service *services.UserService) *UserController {
	return &UserController{service: service}
}

type registerInput struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// Register handles POST /api/users/register.
func (c *UserController) Register(w http.ResponseWriter, r *http.Request) {
	var in registerInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.BadRequest(w, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	if err := c.service.Register(r.Context(), in.Name, in.Email, in.Password); err != nil {
		fail(w, r, err, "User not found")
		return
	}
	response.CreatedMessage(w, "User registered. Please check your email for verification link.")
}

// Verify handles GET /api/users/verify/{token}.
func (c *UserController) Verify(w http.ResponseWriter, r *http.Request) {
	if err := c.service.Verify(r.Context(), chi.URLParam(r, "token")); err != nil {
		fail(w, r, err, "User not found")
		return
	}
	response.Message(w, "Email verified successfully.")
}

type loginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Login handles POST /api/users/login.
func (c *UserController) Login(w http.ResponseWriter, r *http.Request) {
	var in loginInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.BadRequest(w, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	user, err := c.service.Login(r.Context(), in.Email, in.Password)
	if err != nil {
		fail(w, r, err, "User not found")
		return
	}
	response.Success(w, user)
}

// UpdateProfile handles PUT /api/users/profile for the authenticated user.
func (c *UserController) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromCtx(r.Context())
	if !ok {
		response.Unauthorized(w, "Not authorized, no token")
		return
	}

	var in services.ProfileInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.BadRequest(w, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	fresh, err := c.service.UpdateProfile(r.Context(), user.ID, in)
	if err != nil {
		fail(w, r, err, "User not found")
		return
	}
	response.Success(w, fresh)
}

// Index handles GET /api/users.
func (c *UserController) Index(w http.ResponseWriter, r *http.Request) {
	users, err := c.service.All(r.Context())
	if err != nil {
		fail(w, r, err, "User not found")
		return
	}
	response.Success(w, users)
}

// Show handles GET /api/users/{id}.
func (c *UserController) Show(w http.ResponseWriter, r *http.Request) {
	user, err := c.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		fail(w, r, err, "User not found")
		return
	}
	response.Success(w, user)
}

type adminCreateInput struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	IsAdmin  bool   `json:"isAdmin" validate:"nullable,boolean"`
}

// Store handles POST /api/users/admin: admin-created, pre-verified accounts.
func (c *UserController) Store(w http.ResponseWriter, r *http.Request) {
	var in adminCreateInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.BadRequest(w, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	user, err := c.service.CreateByAdmin(r.Context(), in.Name, in.Email, in.Password, in.IsAdmin)
	if err != nil {
		fail(w, r, err, "User not found")
		return
	}
	response.Created(w, user)
}

type adminUpdateInput struct {
	Name    string `json:"name" validate:"required,min=2,max=100"`
	Email   string `json:"email" validate:"required,email"`
	IsAdmin bool   `json:"isAdmin" validate:"nullable,boolean"`
}

// Update handles PUT /api/users/{id}.
func (c *UserController) Update(w http.ResponseWriter, r *http.Request) {
	var in adminUpdateInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.BadRequest(w, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	user, err := c.service.UpdateByAdmin(r.Context(), chi.URLParam(r, "id"), in.Name, in.Email, in.IsAdmin)
	if err != nil {
		fail(w, r, err, "User not found")
		return
	}
	response.Success(w, user)
}

// Destroy handles DELETE /api/users/{id}.
func (c *UserController) Destroy(w http.ResponseWriter, r *http.Request) {
	if err := c.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		fail(w, r, err, "User not found")
		return
	}
	response.Message(w, "User removed")
}
