package twin

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/fivetwenty-io/webmaster-client/pkg/webmaster"
	"github.com/google/uuid"
	"golang.org/x/net/idna"
)

const historyDays = 7

func ptr[T any](v T) *T {
	return &v
}

// series returns one point per day ending at now, growing by step from start.
func series(now time.Time, start, step float64) []webmaster.HistoryPoint {
	points := make([]webmaster.HistoryPoint, 0, historyDays)
	first := dayStart(now).AddDate(0, 0, -(historyDays - 1))

	for i := range historyDays {
		points = append(points, webmaster.HistoryPoint{
			Date:  webmaster.NewTime(first.AddDate(0, 0, i)),
			Value: start + step*float64(i),
		})
	}

	return points
}

// newHostRecord seeds a site with a small, consistent data set.
func newHostRecord(hostID string, site *url.URL, verified bool, now time.Time) *hostRecord {
	root := site.Scheme + "://" + site.Host
	hostName := strings.ToLower(site.Hostname())

	unicodeRoot := root
	if display, err := idna.Lookup.ToUnicode(hostName); err == nil && display != hostName {
		hostName = display
		unicodeRoot = site.Scheme + "://" + strings.Replace(site.Host, site.Hostname(), display, 1)
	}

	record := &hostRecord{
		info: webmaster.FullHostInfo{
			HostInfo: webmaster.HostInfo{
				HostID:         hostID,
				ASCIIHostURL:   root + "/",
				UnicodeHostURL: unicodeRoot + "/",
				Verified:       verified,
			},
			HostDataStatus:  ptr(webmaster.HostDataStatusNotLoaded),
			HostDisplayName: hostName,
		},
		verification: webmaster.HostVerification{
			VerificationUIN:   strings.ReplaceAll(uuid.NewString(), "-", "")[:16],
			VerificationState: webmaster.VerificationStateNone,
			ApplicableVerifiers: []webmaster.ExplicitVerificationType{
				webmaster.ExplicitVerificationTypeDNS,
				webmaster.ExplicitVerificationTypeMetaTag,
				webmaster.ExplicitVerificationTypeHTMLFile,
			},
		},
		recrawlQuota: webmaster.RecrawlQuota{DailyQuota: 20, QuotaRemainder: 20},
	}

	if verified {
		markVerified(record, now)
	}

	seedStatistics(record, now)
	seedCrawling(record, root, now)
	seedLinks(record, root, now)

	return record
}

func markVerified(record *hostRecord, now time.Time) {
	record.info.Verified = true
	record.info.HostDataStatus = ptr(webmaster.HostDataStatusOK)
	record.verification.VerificationState = webmaster.VerificationStateVerified
	record.verification.VerificationType = webmaster.VerificationTypeDNS
	record.verification.LatestVerificationTime = ptr(webmaster.NewTime(now))
	record.verification.FailInfo = nil
	record.owners = []webmaster.Owner{{
		UserLogin:        "webmaster",
		VerificationUIN:  record.verification.VerificationUIN,
		VerificationType: webmaster.VerificationTypeDNS,
		VerificationDate: ptr(webmaster.NewTime(now)),
	}}
}

func seedStatistics(record *hostRecord, now time.Time) {
	record.summary = webmaster.HostSummary{
		SQI:                  120,
		ExcludedPagesCount:   14,
		SearchablePagesCount: 342,
		SiteProblems: map[webmaster.SiteProblemSeverity]int64{
			webmaster.SiteProblemSeverityCritical:        1,
			webmaster.SiteProblemSeverityRecommendation:  2,
			webmaster.SiteProblemSeverityPossibleProblem: 0,
			webmaster.SiteProblemSeverityFatal:           0,
		},
	}
	record.sqiHistory = series(now, 100, 5)

	texts := []string{"buy widgets", "widget repair", "blue widgets", "widgets near me"}
	record.queries = make([]webmaster.PopularQuery, 0, len(texts))
	record.queryHistory = make(map[string]map[webmaster.QueryIndicator][]webmaster.HistoryPoint, len(texts))

	for i, text := range texts {
		queryID := fmt.Sprintf("%032x", i+1)
		shows := float64(1000 - 200*i)
		clicks := float64(90 - 25*i)

		record.queries = append(record.queries, webmaster.PopularQuery{
			QueryID:   queryID,
			QueryText: text,
			Indicators: map[webmaster.QueryIndicator]float64{
				webmaster.QueryIndicatorTotalShows:       shows,
				webmaster.QueryIndicatorTotalClicks:      clicks,
				webmaster.QueryIndicatorAvgShowPosition:  3.5 + float64(i),
				webmaster.QueryIndicatorAvgClickPosition: 2.1 + float64(i),
			},
		})
		record.queryHistory[queryID] = map[webmaster.QueryIndicator][]webmaster.HistoryPoint{
			webmaster.QueryIndicatorTotalShows:       series(now, shows/historyDays, 1),
			webmaster.QueryIndicatorTotalClicks:      series(now, clicks/historyDays, 0),
			webmaster.QueryIndicatorAvgShowPosition:  series(now, 3.5, 0),
			webmaster.QueryIndicatorAvgClickPosition: series(now, 2.1, 0),
		}
	}

	record.problems = map[string]webmaster.SiteProblem{
		"NO_SITEMAPS": {
			Severity:        webmaster.SiteProblemSeverityCritical,
			State:           webmaster.SiteProblemStatePresent,
			LastStateUpdate: ptr(webmaster.NewTime(now.Add(-48 * time.Hour))),
		},
		"NO_REGIONS": {
			Severity: webmaster.SiteProblemSeverityRecommendation,
			State:    webmaster.SiteProblemStatePresent,
		},
		"DNS_ERROR": {
			Severity: webmaster.SiteProblemSeverityFatal,
			State:    webmaster.SiteProblemStateAbsent,
		},
	}
}

func seedCrawling(record *hostRecord, root string, now time.Time) {
	record.sitemaps = []webmaster.SitemapInfo{
		{
			SitemapID:      "c7-fe:80-c0",
			SitemapURL:     root + "/sitemap.xml",
			LastAccessDate: ptr(webmaster.NewTime(now.Add(-24 * time.Hour))),
			ErrorsCount:    0,
			URLsCount:      342,
			ChildrenCount:  ptr(int64(0)),
			Sources:        []webmaster.SitemapSource{webmaster.SitemapSourceRobotsTxt},
			SitemapType:    webmaster.SitemapTypeSitemap,
		},
	}

	record.indexingHistory = map[webmaster.IndexingStatus][]webmaster.HistoryPoint{
		webmaster.IndexingStatusHTTP2xx: series(now, 300, 6),
		webmaster.IndexingStatusHTTP3xx: series(now, 12, 0),
		webmaster.IndexingStatusHTTP4xx: series(now, 4, 1),
		webmaster.IndexingStatusHTTP5xx: series(now, 0, 0),
		webmaster.IndexingStatusOther:   series(now, 1, 0),
	}

	pages := []string{"/", "/catalog/", "/catalog/blue-widget", "/about", "/old-page"}
	for i, page := range pages {
		code := 200
		status := webmaster.IndexingStatusHTTP2xx

		if page == "/old-page" {
			code = 404
			status = webmaster.IndexingStatusHTTP4xx
		}

		record.indexingSamples = append(record.indexingSamples, webmaster.IndexingSample{
			URL:        root + page,
			HTTPCode:   code,
			Status:     status,
			AccessDate: webmaster.NewTime(now.Add(-time.Duration(i+1) * time.Hour)),
		})

		if code != 200 {
			continue
		}

		record.inSearchSamples = append(record.inSearchSamples, webmaster.InSearchSample{
			URL:        root + page,
			LastAccess: webmaster.NewTime(now.Add(-time.Duration(i+1) * time.Hour)),
			Title:      "Widgets " + strings.Trim(page, "/"),
		})
	}

	record.inSearchHistory = series(now, 330, 2)
	record.eventsHistory = map[webmaster.SearchEvent][]webmaster.HistoryPoint{
		webmaster.SearchEventAppearedInSearch:  series(now, 3, 0),
		webmaster.SearchEventRemovedFromSearch: series(now, 1, 0),
	}
	record.eventSamples = []webmaster.SearchEventSample{
		{
			URL:        root + "/catalog/blue-widget",
			Title:      "Blue widget",
			EventDate:  webmaster.NewTime(dayStart(now)),
			LastAccess: webmaster.NewTime(now.Add(-2 * time.Hour)),
			Event:      webmaster.SearchEventAppearedInSearch,
		},
		{
			URL:               root + "/old-page",
			Title:             "Old page",
			EventDate:         webmaster.NewTime(dayStart(now).AddDate(0, 0, -1)),
			LastAccess:        webmaster.NewTime(now.Add(-5 * time.Hour)),
			Event:             webmaster.SearchEventRemovedFromSearch,
			ExcludedURLStatus: ptr(webmaster.ExcludedURLStatusHTTPError),
			BadHTTPStatus:     ptr(404),
		},
	}

	record.importantURLs = []webmaster.ImportantURL{
		{
			URL:              root + "/",
			UpdateDate:       ptr(webmaster.NewTime(now.Add(-time.Hour))),
			ChangeIndicators: []webmaster.ImportantURLChangeIndicator{webmaster.ImportantURLChangeTitle},
			IndexingStatus: &webmaster.ImportantURLIndexingStatus{
				Status:     webmaster.IndexingStatusHTTP2xx,
				HTTPCode:   ptr(200),
				AccessDate: ptr(webmaster.NewTime(now.Add(-time.Hour))),
			},
			SearchStatus: &webmaster.ImportantURLSearchStatus{
				Title:      "Widgets",
				LastAccess: ptr(webmaster.NewTime(now.Add(-time.Hour))),
				Searchable: true,
			},
		},
	}
}

func seedLinks(record *hostRecord, root string, now time.Time) {
	today := webmaster.NewDate(now)
	yesterday := webmaster.NewDate(now.AddDate(0, 0, -1))

	record.brokenLinks = []webmaster.BrokenLink{
		{
			SourceURL:            root + "/catalog/",
			DestinationURL:       root + "/old-page",
			DiscoveryDate:        yesterday,
			SourceLastAccessDate: today,
		},
	}
	record.brokenHistory = map[webmaster.BrokenLinkIndicator][]webmaster.HistoryPoint{
		webmaster.BrokenLinkIndicatorSiteError:          series(now, 1, 0),
		webmaster.BrokenLinkIndicatorDisallowedByUser:   series(now, 0, 0),
		webmaster.BrokenLinkIndicatorUnsupportedByRobot: series(now, 0, 0),
	}
	record.externalLinks = []webmaster.ExternalLink{
		{
			SourceURL:            "https://blog.example.org/widgets-review",
			DestinationURL:       root + "/catalog/blue-widget",
			DiscoveryDate:        yesterday,
			SourceLastAccessDate: today,
		},
		{
			SourceURL:            "https://forum.example.net/t/123",
			DestinationURL:       root + "/",
			DiscoveryDate:        yesterday,
			SourceLastAccessDate: yesterday,
		},
	}
	record.externalHistory = map[webmaster.ExternalLinkIndicator][]webmaster.HistoryPoint{
		webmaster.ExternalLinkIndicatorLinksTotalCount: series(now, 40, 1),
	}
}
