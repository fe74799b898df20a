package twin

import (
	"encoding/json"
	"net/http"
	"slices"
	"strings"

	"github.com/fivetwenty-io/webmaster-client/internal/constants"
	"github.com/fivetwenty-io/webmaster-client/pkg/webmaster"
	"github.com/google/uuid"
)

// getUser handles GET /user.
func (t *Twin) getUser(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, webmaster.User{UserID: t.userID})
}

// listHosts handles GET /user/{userID}/hosts.
func (t *Twin) listHosts(w http.ResponseWriter, _ *http.Request) {
	t.store.mu.RLock()
	defer t.store.mu.RUnlock()

	hosts := make([]webmaster.HostInfo, 0, len(t.store.order))
	for _, hostID := range t.store.order {
		hosts = append(hosts, t.store.hosts[hostID].info.HostInfo)
	}

	writeJSON(w, http.StatusOK, webmaster.HostsResponse{Hosts: hosts})
}

// addHost handles POST /user/{userID}/hosts.
func (t *Twin) addHost(w http.ResponseWriter, r *http.Request) {
	var req webmaster.AddHostRequest

	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		writeError(w, webmaster.ErrorCodeEntityValidationError, "invalid JSON body")

		return
	}

	hostID, parsed, ok := hostIDFromURL(strings.TrimSpace(req.HostURL))
	if !ok {
		writeError(w, webmaster.ErrorCodeInvalidURL, "Invalid host url: "+req.HostURL)

		return
	}

	t.store.mu.Lock()
	defer t.store.mu.Unlock()

	if _, exists := t.store.host(hostID); exists {
		writeError(w, webmaster.ErrorCodeHostAlreadyAdded, "Host "+hostID+" already added")

		return
	}

	t.store.addHost(newHostRecord(hostID, parsed, false, t.clock()))

	writeJSON(w, http.StatusCreated, webmaster.AddHostResponse{HostID: hostID})
}

// getHost handles GET /user/{userID}/hosts/{hostID}.
func (t *Twin) getHost(w http.ResponseWriter, r *http.Request) {
	t.readHost(w, r, false, func(record *hostRecord) {
		writeJSON(w, http.StatusOK, record.info)
	})
}

// deleteHost handles DELETE /user/{userID}/hosts/{hostID}.
func (t *Twin) deleteHost(w http.ResponseWriter, r *http.Request) {
	t.writeHost(w, r, false, func(record *hostRecord) {
		t.store.deleteHost(record.info.HostID)
		w.WriteHeader(http.StatusNoContent)
	})
}

// getVerification handles GET .../verification.
func (t *Twin) getVerification(w http.ResponseWriter, r *http.Request) {
	t.readHost(w, r, false, func(record *hostRecord) {
		writeJSON(w, http.StatusOK, record.verification)
	})
}

// verifyHost handles POST .../verification?verification_type=.
func (t *Twin) verifyHost(w http.ResponseWriter, r *http.Request) {
	verificationType := webmaster.ExplicitVerificationType(r.URL.Query().Get("verification_type"))

	t.writeHost(w, r, false, func(record *hostRecord) {
		if !slices.Contains(record.verification.ApplicableVerifiers, verificationType) {
			writeError(w, webmaster.ErrorCodeFieldValidationError, "verification_type is not applicable: "+string(verificationType))

			return
		}

		if record.verification.VerificationState == webmaster.VerificationStateInProgress {
			writeError(w, webmaster.ErrorCodeVerificationAlreadyInProgress, "Verification already in progress")

			return
		}

		if record.verification.VerificationState != webmaster.VerificationStateVerified {
			record.verification.VerificationState = webmaster.VerificationStateInProgress
			record.verification.VerificationType = webmaster.VerificationType(verificationType)
			record.verification.LatestVerificationTime = ptr(webmaster.NewTime(t.clock()))
		}

		writeJSON(w, http.StatusAccepted, record.verification)
	})
}

// CompleteVerification finishes a pending verification successfully.
func (t *Twin) CompleteVerification(hostID string) {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()

	if record, ok := t.store.host(hostID); ok {
		verificationType := record.verification.VerificationType
		markVerified(record, t.clock())

		if verificationType != "" {
			record.verification.VerificationType = verificationType
			record.owners[0].VerificationType = verificationType
		}
	}
}

// listOwners handles GET .../owners.
func (t *Twin) listOwners(w http.ResponseWriter, r *http.Request) {
	t.readHost(w, r, true, func(record *hostRecord) {
		writeJSON(w, http.StatusOK, webmaster.OwnersResponse{Users: record.owners})
	})
}

// getSummary handles GET .../summary.
func (t *Twin) getSummary(w http.ResponseWriter, r *http.Request) {
	t.readHost(w, r, true, func(record *hostRecord) {
		writeJSON(w, http.StatusOK, record.summary)
	})
}

// getSQIHistory handles GET .../sqi-history.
func (t *Twin) getSQIHistory(w http.ResponseWriter, r *http.Request) {
	from, to, verr := dateRange(r)
	if verr != nil {
		verr.write(w)

		return
	}

	t.readHost(w, r, true, func(record *hostRecord) {
		writeJSON(w, http.StatusOK, webmaster.SQIHistoryResponse{Points: filterPoints(record.sqiHistory, from, to)})
	})
}

// getDiagnostics handles GET .../diagnostics.
func (t *Twin) getDiagnostics(w http.ResponseWriter, r *http.Request) {
	t.readHost(w, r, true, func(record *hostRecord) {
		writeJSON(w, http.StatusOK, webmaster.DiagnosticsResponse{Problems: record.problems})
	})
}

// getIndexingHistory handles GET .../indexing/history.
func (t *Twin) getIndexingHistory(w http.ResponseWriter, r *http.Request) {
	from, to, verr := dateRange(r)
	if verr != nil {
		verr.write(w)

		return
	}

	t.readHost(w, r, true, func(record *hostRecord) {
		writeJSON(w, http.StatusOK, webmaster.IndexingHistoryResponse{
			Indicators: filterIndicators(record.indexingHistory, from, to),
		})
	})
}

// listIndexingSamples handles GET .../indexing/samples.
func (t *Twin) listIndexingSamples(w http.ResponseWriter, r *http.Request) {
	t.readHost(w, r, true, func(record *hostRecord) {
		samples, verr := paginate(r, record.indexingSamples, constants.MaxPageSize)
		if verr != nil {
			verr.write(w)

			return
		}

		writeJSON(w, http.StatusOK, webmaster.IndexingSamplesResponse{
			Count:   int64(len(record.indexingSamples)),
			Samples: samples,
		})
	})
}

// getInSearchHistory handles GET .../search-urls/in-search/history.
func (t *Twin) getInSearchHistory(w http.ResponseWriter, r *http.Request) {
	from, to, verr := dateRange(r)
	if verr != nil {
		verr.write(w)

		return
	}

	t.readHost(w, r, true, func(record *hostRecord) {
		writeJSON(w, http.StatusOK, webmaster.InSearchHistoryResponse{History: filterPoints(record.inSearchHistory, from, to)})
	})
}

// listInSearchSamples handles GET .../search-urls/in-search/samples.
func (t *Twin) listInSearchSamples(w http.ResponseWriter, r *http.Request) {
	t.readHost(w, r, true, func(record *hostRecord) {
		samples, verr := paginate(r, record.inSearchSamples, constants.MaxPageSize)
		if verr != nil {
			verr.write(w)

			return
		}

		writeJSON(w, http.StatusOK, webmaster.InSearchSamplesResponse{
			Count:   int64(len(record.inSearchSamples)),
			Samples: samples,
		})
	})
}

// getEventsHistory handles GET .../search-urls/events/history.
func (t *Twin) getEventsHistory(w http.ResponseWriter, r *http.Request) {
	from, to, verr := dateRange(r)
	if verr != nil {
		verr.write(w)

		return
	}

	t.readHost(w, r, true, func(record *hostRecord) {
		writeJSON(w, http.StatusOK, webmaster.SearchEventsHistoryResponse{
			Indicators: filterIndicators(record.eventsHistory, from, to),
		})
	})
}

// listEventSamples handles GET .../search-urls/events/samples.
func (t *Twin) listEventSamples(w http.ResponseWriter, r *http.Request) {
	t.readHost(w, r, true, func(record *hostRecord) {
		samples, verr := paginate(r, record.eventSamples, constants.MaxPageSize)
		if verr != nil {
			verr.write(w)

			return
		}

		writeJSON(w, http.StatusOK, webmaster.SearchEventSamplesResponse{
			Count:   int64(len(record.eventSamples)),
			Samples: samples,
		})
	})
}

// listImportantURLs handles GET .../important-urls.
func (t *Twin) listImportantURLs(w http.ResponseWriter, r *http.Request) {
	t.readHost(w, r, true, func(record *hostRecord) {
		writeJSON(w, http.StatusOK, webmaster.ImportantURLsResponse{URLs: record.importantURLs})
	})
}

// getImportantURLHistory handles GET .../important-urls/history?url=.
func (t *Twin) getImportantURLHistory(w http.ResponseWriter, r *http.Request) {
	pageURL := r.URL.Query().Get("url")
	if pageURL == "" {
		writeError(w, webmaster.ErrorCodeFieldValidationError, "url is required")

		return
	}

	t.readHost(w, r, true, func(record *hostRecord) {
		for _, important := range record.importantURLs {
			if important.URL == pageURL {
				writeJSON(w, http.StatusOK, webmaster.ImportantURLHistoryResponse{
					History: []webmaster.ImportantURL{important},
				})

				return
			}
		}

		writeError(w, webmaster.ErrorCodeResourceNotFound, "URL is not monitored: "+pageURL)
	})
}

// listBrokenLinks handles GET .../links/internal/broken/samples.
func (t *Twin) listBrokenLinks(w http.ResponseWriter, r *http.Request) {
	for _, indicator := range r.URL.Query()["indicator"] {
		switch webmaster.BrokenLinkIndicator(indicator) {
		case webmaster.BrokenLinkIndicatorSiteError,
			webmaster.BrokenLinkIndicatorDisallowedByUser,
			webmaster.BrokenLinkIndicatorUnsupportedByRobot:
		default:
			writeError(w, webmaster.ErrorCodeFieldValidationError, "unknown indicator: "+indicator)

			return
		}
	}

	t.readHost(w, r, true, func(record *hostRecord) {
		links, verr := paginate(r, record.brokenLinks, constants.MaxPageSize)
		if verr != nil {
			verr.write(w)

			return
		}

		writeJSON(w, http.StatusOK, webmaster.BrokenLinksResponse{
			Count: int64(len(record.brokenLinks)),
			Links: links,
		})
	})
}

// getBrokenLinksHistory handles GET .../links/internal/broken/history.
func (t *Twin) getBrokenLinksHistory(w http.ResponseWriter, r *http.Request) {
	from, to, verr := dateRange(r)
	if verr != nil {
		verr.write(w)

		return
	}

	t.readHost(w, r, true, func(record *hostRecord) {
		writeJSON(w, http.StatusOK, webmaster.BrokenLinksHistoryResponse{
			Indicators: filterIndicators(record.brokenHistory, from, to),
		})
	})
}

// listExternalLinks handles GET .../links/external/samples.
func (t *Twin) listExternalLinks(w http.ResponseWriter, r *http.Request) {
	t.readHost(w, r, true, func(record *hostRecord) {
		links, verr := paginate(r, record.externalLinks, constants.MaxPageSize)
		if verr != nil {
			verr.write(w)

			return
		}

		writeJSON(w, http.StatusOK, webmaster.ExternalLinksResponse{
			Count: int64(len(record.externalLinks)),
			Links: links,
		})
	})
}

// getExternalLinksHistory handles GET .../links/external/history?indicator=.
func (t *Twin) getExternalLinksHistory(w http.ResponseWriter, r *http.Request) {
	indicator := webmaster.ExternalLinkIndicator(r.URL.Query().Get("indicator"))
	if indicator != webmaster.ExternalLinkIndicatorLinksTotalCount {
		writeError(w, webmaster.ErrorCodeFieldValidationError, "indicator must be LINKS_TOTAL_COUNT")

		return
	}

	t.readHost(w, r, true, func(record *hostRecord) {
		writeJSON(w, http.StatusOK, webmaster.ExternalLinksHistoryResponse{
			Indicators: map[webmaster.ExternalLinkIndicator][]webmaster.HistoryPoint{
				indicator: record.externalHistory[indicator],
			},
		})
	})
}

// newID mints identifiers for sitemaps and recrawl tasks.
func newID() string {
	return uuid.NewString()
}
