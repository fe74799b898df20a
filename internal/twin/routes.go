package twin

import (
	"net/http"
	"strconv"

	"github.com/fivetwenty-io/webmaster-client/pkg/webmaster"
	"github.com/go-chi/chi/v5"
)

// routes mounts the Webmaster API v4 routes.
func (t *Twin) routes(r chi.Router) {
	r.Get("/user", t.getUser)

	r.Route("/user/{userID}", func(r chi.Router) {
		r.Use(t.checkUser)

		// Hosts
		r.Get("/hosts", t.listHosts)
		r.Post("/hosts", t.addHost)

		r.Route("/hosts/{hostID}", func(r chi.Router) {
			r.Get("/", t.getHost)
			r.Delete("/", t.deleteHost)

			// Verification
			r.Get("/verification", t.getVerification)
			r.Post("/verification", t.verifyHost)

			// Everything below needs a verified host
			r.Get("/owners", t.listOwners)
			r.Get("/summary", t.getSummary)
			r.Get("/sqi-history", t.getSQIHistory)
			r.Get("/diagnostics", t.getDiagnostics)

			// Search queries
			r.Get("/search-queries/popular", t.listPopularQueries)
			r.Get("/search-queries/all/history", t.getAllQueriesHistory)
			r.Get("/search-queries/{queryID}/history", t.getQueryHistory)

			// Sitemaps
			r.Get("/sitemaps", t.listSitemaps)
			r.Get("/sitemaps/{sitemapID}", t.getSitemap)
			r.Get("/user-added-sitemaps", t.listUserSitemaps)
			r.Post("/user-added-sitemaps", t.addUserSitemap)
			r.Get("/user-added-sitemaps/{sitemapID}", t.getUserSitemap)
			r.Delete("/user-added-sitemaps/{sitemapID}", t.deleteUserSitemap)

			// Indexing and search
			r.Get("/indexing/history", t.getIndexingHistory)
			r.Get("/indexing/samples", t.listIndexingSamples)
			r.Get("/search-urls/in-search/history", t.getInSearchHistory)
			r.Get("/search-urls/in-search/samples", t.listInSearchSamples)
			r.Get("/search-urls/events/history", t.getEventsHistory)
			r.Get("/search-urls/events/samples", t.listEventSamples)
			r.Get("/important-urls", t.listImportantURLs)
			r.Get("/important-urls/history", t.getImportantURLHistory)

			// Recrawl
			r.Post("/recrawl/queue", t.queueRecrawl)
			r.Get("/recrawl/queue", t.listRecrawlTasks)
			r.Get("/recrawl/queue/{taskID}", t.getRecrawlTask)
			r.Get("/recrawl/quota", t.getRecrawlQuota)

			// Links
			r.Get("/links/internal/broken/samples", t.listBrokenLinks)
			r.Get("/links/internal/broken/history", t.getBrokenLinksHistory)
			r.Get("/links/external/samples", t.listExternalLinks)
			r.Get("/links/external/history", t.getExternalLinksHistory)
		})
	})
}

func (t *Twin) checkUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, err := strconv.ParseInt(chi.URLParam(r, "userID"), 10, 64)
		if err != nil || userID != t.userID {
			writeError(w, webmaster.ErrorCodeInvalidUserID, "Invalid user id")

			return
		}

		next.ServeHTTP(w, r)
	})
}

// readHost runs fn under the read lock with the host named in the path.
func (t *Twin) readHost(w http.ResponseWriter, r *http.Request, needVerified bool, fn func(*hostRecord)) {
	t.store.mu.RLock()
	defer t.store.mu.RUnlock()

	record, ok := t.lookupHost(w, r, needVerified)
	if ok {
		fn(record)
	}
}

// writeHost runs fn under the write lock with the host named in the path.
func (t *Twin) writeHost(w http.ResponseWriter, r *http.Request, needVerified bool, fn func(*hostRecord)) {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()

	record, ok := t.lookupHost(w, r, needVerified)
	if ok {
		fn(record)
	}
}

func (t *Twin) lookupHost(w http.ResponseWriter, r *http.Request, needVerified bool) (*hostRecord, bool) {
	hostID := urlParam(r, "hostID")

	record, ok := t.store.host(hostID)
	if !ok {
		writeError(w, webmaster.ErrorCodeHostNotFound, "Host "+hostID+" not found")

		return nil, false
	}

	if needVerified && !record.info.Verified {
		writeError(w, webmaster.ErrorCodeHostNotVerified, "Host "+hostID+" is not verified by user")

		return nil, false
	}

	return record, true
}
