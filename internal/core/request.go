// AngelaMos | 2026
// request.go

package core

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

// ParseIDParam reads a positive int64 URL parameter; on failure it writes
// the 400 response itself and reports false.
func ParseIDParam(
	w http.ResponseWriter,
	r *http.Request,
	name string,
) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id < 1 {
		BadRequest(w, "invalid "+name)
		return 0, false
	}
	return id, true
}

func ParseIntQuery(r *http.Request, key string, defaultVal int) int {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultVal
	}

	parsed, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}

	return parsed
}

func ParseInt64Query(r *http.Request, key string) int64 {
	val := r.URL.Query().Get(key)
	if val == "" {
		return 0
	}

	parsed, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0
	}

	return parsed
}
