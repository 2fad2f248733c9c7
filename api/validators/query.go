package validators

import (
	"net/http"
	"strconv"
	"strings"

	pkgerrors "github.com/marioskal/eshop-backend/pkg/errors"
	"github.com/marioskal/eshop-backend/pkg/pagination"
)

func ParseQueryInt(r *http.Request, key string, defaultVal, min, max int) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return defaultVal, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "query parameter must be numeric").WithDetails(map[string]any{"field": key})
	}
	if value < min || value > max {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "query parameter out of range").WithDetails(map[string]any{"field": key, "min": min, "max": max})
	}
	return value, nil
}

// ParseQueryBool reads an optional boolean query parameter, nil when absent.
func ParseQueryBool(r *http.Request, key string) (*bool, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return nil, nil
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "query parameter must be a boolean").WithDetails(map[string]any{"field": key})
	}
	return &value, nil
}

// QueryString reads an optional string query parameter, nil when blank.
func QueryString(r *http.Request, key string) *string {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return nil
	}
	return &raw
}

// ParsePageRequest reads the standard page/size/sort query parameters.
func ParsePageRequest(r *http.Request) (pagination.Request, error) {
	page, err := ParseQueryInt(r, "page", 0, 0, 1<<30)
	if err != nil {
		return pagination.Request{}, err
	}
	size, err := ParseQueryInt(r, "size", pagination.DefaultSize, 1, pagination.MaxSize)
	if err != nil {
		return pagination.Request{}, err
	}

	req := pagination.Request{Page: page, Size: size}
	if sort := strings.TrimSpace(r.URL.Query().Get("sort")); sort != "" {
		req.SortBy = sort
	}
	if dir := strings.TrimSpace(r.URL.Query().Get("direction")); strings.EqualFold(dir, "desc") {
		req.SortDesc = true
	}
	return req, nil
}
