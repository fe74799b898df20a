package twin

import (
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/fivetwenty-io/webmaster-client/internal/constants"
	"github.com/fivetwenty-io/webmaster-client/pkg/webmaster"
	"github.com/go-chi/chi/v5"
)

// validationError is a 400 FIELD_VALIDATION_ERROR waiting to be written.
type validationError struct {
	message string
}

func (e *validationError) Error() string {
	return e.message
}

func (e *validationError) write(w http.ResponseWriter) {
	writeError(w, webmaster.ErrorCodeFieldValidationError, e.message)
}

func urlParam(r *http.Request, name string) string {
	raw := chi.URLParam(r, name)

	value, err := url.PathUnescape(raw)
	if err != nil {
		return raw
	}

	return value
}

func intParam(query url.Values, name string, fallback int) (int, *validationError) {
	raw := query.Get(name)
	if raw == "" {
		return fallback, nil
	}

	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &validationError{message: name + " must be an integer"}
	}

	return value, nil
}

// paginate applies offset and limit, bounded by maxLimit.
func paginate[T any](r *http.Request, items []T, maxLimit int) ([]T, *validationError) {
	query := r.URL.Query()

	offset, verr := intParam(query, "offset", 0)
	if verr != nil {
		return nil, verr
	}

	limit, verr := intParam(query, "limit", constants.DefaultPageSize)
	if verr != nil {
		return nil, verr
	}

	if offset < 0 {
		return nil, &validationError{message: "offset must not be negative"}
	}

	if limit < 1 || limit > maxLimit {
		return nil, &validationError{message: "limit must be between 1 and " + strconv.Itoa(maxLimit)}
	}

	if offset >= len(items) {
		return []T{}, nil
	}

	end := min(offset+limit, len(items))
	page := make([]T, end-offset)
	copy(page, items[offset:end])

	return page, nil
}

// dateRange reads date_from and date_to. Zero values mean unbounded.
func dateRange(r *http.Request) (time.Time, time.Time, *validationError) {
	query := r.URL.Query()

	var from, to time.Time

	if raw := query.Get("date_from"); raw != "" {
		parsed, err := webmaster.ParseTime(raw)
		if err != nil {
			return from, to, &validationError{message: "date_from is not a valid date"}
		}

		from = parsed.Time
	}

	if raw := query.Get("date_to"); raw != "" {
		parsed, err := webmaster.ParseTime(raw)
		if err != nil {
			return from, to, &validationError{message: "date_to is not a valid date"}
		}

		to = parsed.Time
	}

	if !from.IsZero() && !to.IsZero() && from.After(to) {
		return from, to, &validationError{message: "date_from must not be after date_to"}
	}

	return from, to, nil
}

func inRange(t, from, to time.Time) bool {
	if !from.IsZero() && t.Before(dayStart(from)) {
		return false
	}

	if !to.IsZero() && t.After(to) {
		return false
	}

	return true
}

func filterPoints(points []webmaster.HistoryPoint, from, to time.Time) []webmaster.HistoryPoint {
	filtered := make([]webmaster.HistoryPoint, 0, len(points))

	for _, point := range points {
		if inRange(point.Date.Time, from, to) {
			filtered = append(filtered, point)
		}
	}

	return filtered
}

// filterIndicators applies a date range to every series of an indicator map.
func filterIndicators[K comparable](indicators map[K][]webmaster.HistoryPoint, from, to time.Time) map[K][]webmaster.HistoryPoint {
	filtered := make(map[K][]webmaster.HistoryPoint, len(indicators))

	for key, points := range indicators {
		filtered[key] = filterPoints(points, from, to)
	}

	return filtered
}
