// Package controllers translates HTTP requests into service calls and
// service results into the JSON envelope.
package controllers

import (
	"errors"
	"net/http"

	"github.com/Kantor012/Product-Catalog/app/repositories"
	"github.com/Kantor012/Product-Catalog/app/services"
	"github.com/Kantor012/Product-Catalog/pkg/logger"
	"github.com/Kantor012/Product-Catalog/pkg/response"
)

// fail maps a service error onto the response envelope. notFound is the
// message used when the named resource does not exist.
func fail(w http.ResponseWriter, r *http.Request, err error, notFound string) {
	switch {
	case errors.Is(err, repositories.ErrNotFound):
		response.NotFound(w, notFound)

	case errors.Is(err, services.ErrInvalidID),
		errors.Is(err, services.ErrAlreadyReviewed),
		errors.Is(err, services.ErrDuplicateCategory),
		errors.Is(err, services.ErrCategoryInUse),
		errors.Is(err, services.ErrDuplicateEmail),
		errors.Is(err, services.ErrDuplicateAdminEmail),
		errors.Is(err, services.ErrInvalidToken),
		errors.Is(err, services.ErrLastAdminDemote),
		errors.Is(err, services.ErrLastAdminDelete):
		response.BadRequest(w, err.Error())

	case errors.Is(err, services.ErrInvalidCredentials),
		errors.Is(err, services.ErrNotVerified):
		response.Unauthorized(w, err.Error())

	default:
		logger.WithCtx(r.Context()).Error("unhandled error",
			"method", r.Method,
			"path", r.URL.Path,
			"error", err,
		)
		response.Error(w, http.StatusInternalServerError, "Internal Server Error")
	}
}
