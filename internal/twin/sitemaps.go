package twin

import (
	"encoding/json"
	"net/http"
	"slices"
	"strings"

	"github.com/fivetwenty-io/webmaster-client/internal/constants"
	"github.com/fivetwenty-io/webmaster-client/pkg/webmaster"
)

// listSitemaps handles GET .../sitemaps. Results start at the sitemap named
// by from and are limited by limit.
func (t *Twin) listSitemaps(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	limit, verr := intParam(query, "limit", constants.MaxPageSize)
	if verr != nil {
		verr.write(w)

		return
	}

	if limit < 1 || limit > constants.MaxPageSize {
		writeError(w, webmaster.ErrorCodeFieldValidationError, "limit is out of range")

		return
	}

	parentID := query.Get("parent_id")
	from := query.Get("from")

	t.readHost(w, r, true, func(record *hostRecord) {
		sitemaps := record.sitemaps

		if parentID != "" {
			if !slices.ContainsFunc(record.sitemaps, func(s webmaster.SitemapInfo) bool { return s.SitemapID == parentID }) {
				writeError(w, webmaster.ErrorCodeSitemapNotFound, "Sitemap "+parentID+" not found")

				return
			}

			// Seeded sitemaps are flat.
			sitemaps = nil
		}

		if from != "" {
			start := slices.IndexFunc(sitemaps, func(s webmaster.SitemapInfo) bool { return s.SitemapID == from })
			if start < 0 {
				writeError(w, webmaster.ErrorCodeSitemapNotFound, "Sitemap "+from+" not found")

				return
			}

			sitemaps = sitemaps[start:]
		}

		if len(sitemaps) > limit {
			sitemaps = sitemaps[:limit]
		}

		writeJSON(w, http.StatusOK, webmaster.SitemapsResponse{
			Sitemaps: append([]webmaster.SitemapInfo{}, sitemaps...),
		})
	})
}

// getSitemap handles GET .../sitemaps/{sitemapID}.
func (t *Twin) getSitemap(w http.ResponseWriter, r *http.Request) {
	sitemapID := urlParam(r, "sitemapID")

	t.readHost(w, r, true, func(record *hostRecord) {
		for _, sitemap := range record.sitemaps {
			if sitemap.SitemapID == sitemapID {
				writeJSON(w, http.StatusOK, sitemap)

				return
			}
		}

		writeError(w, webmaster.ErrorCodeSitemapNotFound, "Sitemap "+sitemapID+" not found")
	})
}

// listUserSitemaps handles GET .../user-added-sitemaps.
func (t *Twin) listUserSitemaps(w http.ResponseWriter, r *http.Request) {
	t.readHost(w, r, true, func(record *hostRecord) {
		sitemaps, verr := paginate(r, record.userSitemaps, constants.MaxPageSize)
		if verr != nil {
			verr.write(w)

			return
		}

		writeJSON(w, http.StatusOK, webmaster.UserSitemapsResponse{
			Sitemaps: sitemaps,
			Count:    int64(len(record.userSitemaps)),
		})
	})
}

// addUserSitemap handles POST .../user-added-sitemaps.
func (t *Twin) addUserSitemap(w http.ResponseWriter, r *http.Request) {
	var req webmaster.AddSitemapRequest

	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil || strings.TrimSpace(req.URL) == "" {
		writeError(w, webmaster.ErrorCodeEntityValidationError, "url is required")

		return
	}

	t.writeHost(w, r, true, func(record *hostRecord) {
		if !belongsTo(record.info.HostID, req.URL) {
			writeError(w, webmaster.ErrorCodeInvalidURL, "Sitemap "+req.URL+" does not belong to host")

			return
		}

		for _, sitemap := range record.userSitemaps {
			if sitemap.SitemapURL == req.URL {
				writeError(w, webmaster.ErrorCodeSitemapAlreadyAdded, "Sitemap "+req.URL+" already added")

				return
			}
		}

		sitemap := webmaster.UserSitemap{
			SitemapID:  newID(),
			SitemapURL: req.URL,
			AddedDate:  webmaster.NewTime(t.clock()),
		}
		record.userSitemaps = append(record.userSitemaps, sitemap)

		writeJSON(w, http.StatusCreated, webmaster.AddSitemapResponse{SitemapID: sitemap.SitemapID})
	})
}

// getUserSitemap handles GET .../user-added-sitemaps/{sitemapID}.
func (t *Twin) getUserSitemap(w http.ResponseWriter, r *http.Request) {
	sitemapID := urlParam(r, "sitemapID")

	t.readHost(w, r, true, func(record *hostRecord) {
		for _, sitemap := range record.userSitemaps {
			if sitemap.SitemapID == sitemapID {
				writeJSON(w, http.StatusOK, sitemap)

				return
			}
		}

		writeError(w, webmaster.ErrorCodeSitemapNotFound, "Sitemap "+sitemapID+" not found")
	})
}

// deleteUserSitemap handles DELETE .../user-added-sitemaps/{sitemapID}.
func (t *Twin) deleteUserSitemap(w http.ResponseWriter, r *http.Request) {
	sitemapID := urlParam(r, "sitemapID")

	t.writeHost(w, r, true, func(record *hostRecord) {
		index := slices.IndexFunc(record.userSitemaps, func(s webmaster.UserSitemap) bool { return s.SitemapID == sitemapID })
		if index < 0 {
			writeError(w, webmaster.ErrorCodeSitemapNotFound, "Sitemap "+sitemapID+" not found")

			return
		}

		record.userSitemaps = slices.Delete(record.userSitemaps, index, index+1)

		w.WriteHeader(http.StatusNoContent)
	})
}
