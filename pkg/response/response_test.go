package response_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kantor012/Product-Catalog/pkg/response"
)

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestSuccess(t *testing.T) {
	rec := httptest.NewRecorder()
	response.Success(rec, map[string]string{"name": "Widget"})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	body := decode(t, rec)
	assert.Equal(t, float64(200), body["status"])
	assert.Equal(t, "Widget", body["data"].(map[string]interface{})["name"])
}

func TestCreatedMessage(t *testing.T) {
	rec := httptest.NewRecorder()
	response.CreatedMessage(rec, "Review added")

	assert.Equal(t, http.StatusCreated, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "Review added", body["message"])
	assert.NotContains(t, body, "data")
}

func TestErrorHelpers(t *testing.T) {
	tests := []struct {
		name string
		fn   func(http.ResponseWriter)
		code int
	}{
		{"bad request", func(w http.ResponseWriter) { response.BadRequest(w, "nope") }, http.StatusBadRequest},
		{"unauthorized", func(w http.ResponseWriter) { response.Unauthorized(w, "nope") }, http.StatusUnauthorized},
		{"not found", func(w http.ResponseWriter) { response.NotFound(w, "nope") }, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			tt.fn(rec)
			assert.Equal(t, tt.code, rec.Code)
			assert.Equal(t, "nope", decode(t, rec)["message"])
		})
	}
}

func TestValidationError(t *testing.T) {
	rec := httptest.NewRecorder()
	response.ValidationError(rec, map[string]string{"email": "The email field is required."})

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "Validation failed", body["message"])
	errs := body["errors"].(map[string]interface{})
	assert.Equal(t, "The email field is required.", errs["email"])
}
