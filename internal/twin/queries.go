package twin

import (
	"net/http"
	"slices"
	"time"

	"github.com/fivetwenty-io/webmaster-client/internal/constants"
	"github.com/fivetwenty-io/webmaster-client/pkg/webmaster"
)

const popularQueriesWindow = 7

// queryIndicators returns the requested indicators, or every indicator when
// none were named.
func queryIndicators(r *http.Request) ([]webmaster.QueryIndicator, *validationError) {
	raw := r.URL.Query()["query_indicator"]
	if len(raw) == 0 {
		return []webmaster.QueryIndicator{
			webmaster.QueryIndicatorTotalShows,
			webmaster.QueryIndicatorTotalClicks,
			webmaster.QueryIndicatorAvgShowPosition,
			webmaster.QueryIndicatorAvgClickPosition,
		}, nil
	}

	indicators := make([]webmaster.QueryIndicator, 0, len(raw))

	for _, value := range raw {
		indicator := webmaster.QueryIndicator(value)

		switch indicator {
		case webmaster.QueryIndicatorTotalShows,
			webmaster.QueryIndicatorTotalClicks,
			webmaster.QueryIndicatorAvgShowPosition,
			webmaster.QueryIndicatorAvgClickPosition:
			indicators = append(indicators, indicator)
		default:
			return nil, &validationError{message: "unknown query_indicator: " + value}
		}
	}

	return indicators, nil
}

// listPopularQueries handles GET .../search-queries/popular.
func (t *Twin) listPopularQueries(w http.ResponseWriter, r *http.Request) {
	orderBy := webmaster.QueryIndicator(r.URL.Query().Get("order_by"))
	if orderBy != webmaster.QueryIndicatorTotalShows && orderBy != webmaster.QueryIndicatorTotalClicks {
		writeError(w, webmaster.ErrorCodeFieldValidationError, "order_by must be TOTAL_SHOWS or TOTAL_CLICKS")

		return
	}

	indicators, verr := queryIndicators(r)
	if verr != nil {
		verr.write(w)

		return
	}

	from, to, verr := dateRange(r)
	if verr != nil {
		verr.write(w)

		return
	}

	if to.IsZero() {
		to = t.clock()
	}

	if from.IsZero() {
		from = to.AddDate(0, 0, -(popularQueriesWindow - 1))
	}

	t.readHost(w, r, true, func(record *hostRecord) {
		queries := make([]webmaster.PopularQuery, 0, len(record.queries))

		for _, query := range record.queries {
			selected := make(map[webmaster.QueryIndicator]float64, len(indicators))
			for _, indicator := range indicators {
				selected[indicator] = query.Indicators[indicator]
			}

			queries = append(queries, webmaster.PopularQuery{
				QueryID:    query.QueryID,
				QueryText:  query.QueryText,
				Indicators: selected,
			})
		}

		slices.SortStableFunc(queries, func(a, b webmaster.PopularQuery) int {
			return compareDesc(record.indicator(a.QueryID, orderBy), record.indicator(b.QueryID, orderBy))
		})

		page, verr := paginate(r, queries, constants.MaxPopularQueriesLimit)
		if verr != nil {
			verr.write(w)

			return
		}

		writeJSON(w, http.StatusOK, webmaster.PopularQueriesResponse{
			Queries:  page,
			DateFrom: webmaster.NewDate(from),
			DateTo:   webmaster.NewDate(to),
			Count:    int64(len(queries)),
		})
	})
}

// indicator looks up a stored value regardless of what the caller selected.
func (h *hostRecord) indicator(queryID string, indicator webmaster.QueryIndicator) float64 {
	for _, query := range h.queries {
		if query.QueryID == queryID {
			return query.Indicators[indicator]
		}
	}

	return 0
}

func compareDesc(a, b float64) int {
	switch {
	case a > b:
		return -1
	case a < b:
		return 1
	default:
		return 0
	}
}

// getAllQueriesHistory handles GET .../search-queries/all/history.
func (t *Twin) getAllQueriesHistory(w http.ResponseWriter, r *http.Request) {
	indicators, verr := queryIndicators(r)
	if verr != nil {
		verr.write(w)

		return
	}

	from, to, verr := dateRange(r)
	if verr != nil {
		verr.write(w)

		return
	}

	t.readHost(w, r, true, func(record *hostRecord) {
		history := make(map[webmaster.QueryIndicator][]webmaster.HistoryPoint, len(indicators))

		for _, indicator := range indicators {
			history[indicator] = filterPoints(record.aggregate(indicator), from, to)
		}

		writeJSON(w, http.StatusOK, webmaster.QueryHistoryResponse{Indicators: history})
	})
}

// aggregate folds the per-query series of one indicator into a site total.
// Positions are averaged, counters are summed.
func (h *hostRecord) aggregate(indicator webmaster.QueryIndicator) []webmaster.HistoryPoint {
	totals := make(map[time.Time]float64)

	var dates []time.Time

	for _, query := range h.queries {
		for _, point := range h.queryHistory[query.QueryID][indicator] {
			if _, seen := totals[point.Date.Time]; !seen {
				dates = append(dates, point.Date.Time)
			}

			totals[point.Date.Time] += point.Value
		}
	}

	slices.SortFunc(dates, func(a, b time.Time) int { return a.Compare(b) })

	averaged := indicator == webmaster.QueryIndicatorAvgShowPosition ||
		indicator == webmaster.QueryIndicatorAvgClickPosition

	points := make([]webmaster.HistoryPoint, 0, len(dates))

	for _, date := range dates {
		value := totals[date]
		if averaged && len(h.queries) > 0 {
			value /= float64(len(h.queries))
		}

		points = append(points, webmaster.HistoryPoint{Date: webmaster.NewTime(date), Value: value})
	}

	return points
}

// getQueryHistory handles GET .../search-queries/{queryID}/history.
func (t *Twin) getQueryHistory(w http.ResponseWriter, r *http.Request) {
	queryID := urlParam(r, "queryID")

	indicators, verr := queryIndicators(r)
	if verr != nil {
		verr.write(w)

		return
	}

	from, to, verr := dateRange(r)
	if verr != nil {
		verr.write(w)

		return
	}

	t.readHost(w, r, true, func(record *hostRecord) {
		byIndicator, ok := record.queryHistory[queryID]
		if !ok {
			writeError(w, webmaster.ErrorCodeQueryIDNotFound, "Query "+queryID+" not found")

			return
		}

		history := make(map[webmaster.QueryIndicator][]webmaster.HistoryPoint, len(indicators))
		for _, indicator := range indicators {
			history[indicator] = filterPoints(byIndicator[indicator], from, to)
		}

		var text string

		for _, query := range record.queries {
			if query.QueryID == queryID {
				text = query.QueryText
			}
		}

		writeJSON(w, http.StatusOK, webmaster.SingleQueryHistoryResponse{
			QueryID:    queryID,
			QueryText:  text,
			Indicators: history,
		})
	})
}
