package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/taskhq/taskhq-api/internal/domain"
	"github.com/taskhq/taskhq-api/internal/service"
	"github.com/taskhq/taskhq-api/internal/service/auth"

	apimiddleware "github.com/taskhq/taskhq-api/internal/api/middleware"
)

// getIdentityFromContext extracts the authenticated identity from the request
// context. The claims are placed there by the authentication middleware.
func getIdentityFromContext(r *http.Request) (*auth.Claims, bool) {
	return apimiddleware.GetIdentity(r)
}

// getPathID extracts a positive integer ID from the URL path parameters.
func getPathID(r *http.Request, paramName string) (int64, error) {
	pathParam := chi.URLParam(r, paramName)
	if pathParam == "" {
		return 0, domain.NewValidationError(paramName, "is required", domain.ErrValidation)
	}

	id, err := strconv.ParseInt(pathParam, 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.NewValidationError(paramName, "has invalid format", domain.ErrInvalidID)
	}

	return id, nil
}

// getPagination reads the page and limit query parameters and applies the
// listing defaults and the maximum page size. A malformed value falls back to
// the default rather than erroring.
func getPagination(r *http.Request) (page, limit int) {
	page = parsePositiveInt(r.URL.Query().Get("page"), service.DefaultPage)
	limit = parsePositiveInt(r.URL.Query().Get("limit"), service.DefaultPageSize)
	return service.NormalizePagination(page, limit)
}

// parsePositiveInt parses s as a positive integer, falling back to def.
func parsePositiveInt(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return def
	}
	return n
}
