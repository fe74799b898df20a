package twin

import (
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/fivetwenty-io/webmaster-client/pkg/webmaster"
	"golang.org/x/net/idna"
)

// hostRecord is everything the twin knows about one site.
type hostRecord struct {
	info            webmaster.FullHostInfo
	verification    webmaster.HostVerification
	owners          []webmaster.Owner
	summary         webmaster.HostSummary
	sqiHistory      []webmaster.HistoryPoint
	queries         []webmaster.PopularQuery
	queryHistory    map[string]map[webmaster.QueryIndicator][]webmaster.HistoryPoint
	sitemaps        []webmaster.SitemapInfo
	userSitemaps    []webmaster.UserSitemap
	indexingHistory map[webmaster.IndexingStatus][]webmaster.HistoryPoint
	indexingSamples []webmaster.IndexingSample
	inSearchHistory []webmaster.HistoryPoint
	inSearchSamples []webmaster.InSearchSample
	eventsHistory   map[webmaster.SearchEvent][]webmaster.HistoryPoint
	eventSamples    []webmaster.SearchEventSample
	importantURLs   []webmaster.ImportantURL
	recrawlTasks    []webmaster.RecrawlTask
	recrawlQuota    webmaster.RecrawlQuota
	brokenLinks     []webmaster.BrokenLink
	brokenHistory   map[webmaster.BrokenLinkIndicator][]webmaster.HistoryPoint
	externalLinks   []webmaster.ExternalLink
	externalHistory map[webmaster.ExternalLinkIndicator][]webmaster.HistoryPoint
	problems        map[string]webmaster.SiteProblem
}

// RecordedRequest is a request seen by the twin.
type RecordedRequest struct {
	Method        string
	Path          string
	Query         url.Values
	Authorization string
	Body          string
}

// store holds all twin state in memory.
type store struct {
	mu       sync.RWMutex
	hosts    map[string]*hostRecord
	order    []string
	requests []RecordedRequest
	faults   map[string]*Fault
}

func newStore() *store {
	return &store{
		hosts:  make(map[string]*hostRecord),
		faults: make(map[string]*Fault),
	}
}

func (s *store) record(req RecordedRequest) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.requests = append(s.requests, req)
}

// takeFault returns the fault registered for path, consuming one use.
func (s *store) takeFault(path string) *Fault {
	s.mu.Lock()
	defer s.mu.Unlock()

	fault, ok := s.faults[path]
	if !ok {
		return nil
	}

	current := *fault

	if fault.Times > 0 {
		fault.Times--
		if fault.Times == 0 {
			delete(s.faults, path)
		}
	}

	return &current
}

func (s *store) host(hostID string) (*hostRecord, bool) {
	record, ok := s.hosts[hostID]

	return record, ok
}

func (s *store) addHost(record *hostRecord) {
	s.hosts[record.info.HostID] = record
	s.order = append(s.order, record.info.HostID)
}

func (s *store) deleteHost(hostID string) {
	delete(s.hosts, hostID)

	for i, id := range s.order {
		if id == hostID {
			s.order = append(s.order[:i], s.order[i+1:]...)

			break
		}
	}
}

// hostIDFromURL builds the scheme:host:port identifier the API uses.
func hostIDFromURL(raw string) (string, *url.URL, bool) {
	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	parsed, err := url.Parse(raw)
	if err != nil || parsed.Hostname() == "" {
		return "", nil, false
	}

	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", nil, false
	}

	explicitPort := parsed.Port()

	port := explicitPort
	if port == "" {
		port = "80"
		if parsed.Scheme == "https" {
			port = "443"
		}
	}

	host, err := idna.Lookup.ToASCII(strings.ToLower(parsed.Hostname()))
	if err != nil {
		return "", nil, false
	}

	parsed.Host = host
	if explicitPort != "" {
		parsed.Host = host + ":" + explicitPort
	}

	return parsed.Scheme + ":" + host + ":" + port, parsed, true
}

// belongsTo reports whether pageURL is on the site identified by hostID.
func belongsTo(hostID, pageURL string) bool {
	if !strings.Contains(pageURL, "://") {
		return false
	}

	pageHostID, _, ok := hostIDFromURL(pageURL)

	return ok && pageHostID == hostID
}

func dayStart(t time.Time) time.Time {
	year, month, day := t.UTC().Date()

	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
