package client

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/fivetwenty-io/webmaster-client/internal/http"
	"github.com/fivetwenty-io/webmaster-client/pkg/webmaster"
)

// hostScope holds what every host-scoped resource client needs.
type hostScope struct {
	httpClient *http.Client
	userID     int64
}

func newHostScope(httpClient *http.Client, userID int64) hostScope {
	return hostScope{
		httpClient: httpClient,
		userID:     userID,
	}
}

// userPath returns /user/{user_id} followed by the escaped segments.
func (s hostScope) userPath(segments ...string) (string, error) {
	if s.userID == 0 {
		return "", fmt.Errorf("%w: %w", webmaster.ErrInvalidArgument, webmaster.ErrUserIDRequired)
	}

	var builder strings.Builder

	builder.WriteString("/user/")
	builder.WriteString(strconv.FormatInt(s.userID, 10))

	for _, segment := range segments {
		builder.WriteByte('/')
		builder.WriteString(segment)
	}

	return builder.String(), nil
}

// hostPath returns /user/{user_id}/hosts/{host_id} followed by segments.
// Segments are written as given; callers escape ids with url.PathEscape.
func (s hostScope) hostPath(hostID string, segments ...string) (string, error) {
	if strings.TrimSpace(hostID) == "" {
		return "", fmt.Errorf("%w: %w", webmaster.ErrInvalidArgument, webmaster.ErrHostIDRequired)
	}

	return s.userPath(append([]string{"hosts", url.PathEscape(hostID)}, segments...)...)
}

// requireID rejects blank identifiers before a request is made.
func requireID(name, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%w: %s is required", webmaster.ErrInvalidArgument, name)
	}

	return nil
}

// decode unmarshals a successful response body into T.
func decode[T any](resp *http.Response, target string) (*T, error) {
	var result T

	err := json.Unmarshal(resp.Body, &result)
	if err != nil {
		return nil, &webmaster.DecodeError{Target: target, Body: resp.Body, Err: err}
	}

	return &result, nil
}
