package http

import (
	"net/http"
	"strconv"
	"strings"

	"sportsclub/pkg/config"
	apperrors "sportsclub/pkg/errors"
)

func ExtractLimitOffset(r *http.Request) (int, int64, error) {
	query := r.URL.Query()

	limit := 0
	if s := query.Get("limit"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil {
			return 0, 0, apperrors.InvalidInput("invalid limit parameter: " + s)
		}
		limit = v
	}

	var offset int64
	if s := query.Get("offset"); s != "" {
		v, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return 0, 0, apperrors.InvalidInput("invalid offset parameter: " + s)
		}
		offset = v
	}

	return config.NormalizePaginationLimit(limit), config.NormalizeOffset(offset), nil
}

// IsConfirmed reports whether a destructive request carries an explicit
// confirmation, either as ?confirm=true or an X-Confirm: true header.
func IsConfirmed(r *http.Request) bool {
	if v, err := strconv.ParseBool(r.URL.Query().Get("confirm")); err == nil && v {
		return true
	}
	v, err := strconv.ParseBool(strings.TrimSpace(r.Header.Get("X-Confirm")))
	return err == nil && v
}
