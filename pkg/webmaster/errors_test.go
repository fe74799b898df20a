package webmaster_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/fivetwenty-io/webmaster-client/pkg/webmaster"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAPIError(t *testing.T) {
	t.Parallel()

	t.Run("structured body", func(t *testing.T) {
		t.Parallel()

		apiErr := webmaster.ParseAPIError(http.StatusNotFound, loadFixture(t, "error_not_found.json"))
		require.NotNil(t, apiErr.Response)
		assert.Equal(t, webmaster.ErrorCodeHostNotFound, apiErr.Code())
		assert.Equal(t, "API error (HOST_NOT_FOUND): Host https:unknown.example:443 not found (status: 404)", apiErr.Error())
	})

	t.Run("acceptable types", func(t *testing.T) {
		t.Parallel()

		apiErr := webmaster.ParseAPIError(http.StatusNotAcceptable, loadFixture(t, "error_unsupported_type.json"))
		require.NotNil(t, apiErr.Response)
		assert.Equal(t, []string{"application/json", "application/xml"}, apiErr.Response.AcceptableTypes)
	})

	t.Run("valid until", func(t *testing.T) {
		t.Parallel()

		apiErr := webmaster.ParseAPIError(http.StatusGone, loadFixture(t, "error_upload_expired.json"))
		require.NotNil(t, apiErr.Response)
		assert.Equal(t, "2016-01-01T00:00:00,000+0300", apiErr.Response.ValidUntil)
	})

	t.Run("unknown code is kept verbatim", func(t *testing.T) {
		t.Parallel()

		apiErr := webmaster.ParseAPIError(http.StatusBadRequest, []byte(`{"error_code":"BRAND_NEW_CODE","error_message":"new"}`))
		assert.Equal(t, webmaster.ErrorCode("BRAND_NEW_CODE"), apiErr.Code())
		assert.False(t, apiErr.Code().IsKnown())
	})

	t.Run("unstructured body", func(t *testing.T) {
		t.Parallel()

		apiErr := webmaster.ParseAPIError(http.StatusBadGateway, []byte("<html>bad gateway</html>\n"))
		assert.Nil(t, apiErr.Response)
		assert.Empty(t, apiErr.Code())
		assert.Equal(t, "API error: status: 502 Bad Gateway, error: <html>bad gateway</html>", apiErr.Error())
	})

	t.Run("json without error code", func(t *testing.T) {
		t.Parallel()

		apiErr := webmaster.ParseAPIError(http.StatusInternalServerError, []byte(`{"message":"oops"}`))
		assert.Nil(t, apiErr.Response)
	})
}

func TestErrorCode_DocumentedStatus(t *testing.T) {
	t.Parallel()

	tests := []struct {
		code   webmaster.ErrorCode
		status int
	}{
		{webmaster.ErrorCodeEmptyDates, http.StatusBadRequest},
		{webmaster.ErrorCodeWrongRegion, http.StatusBadRequest},
		{webmaster.ErrorCodeInvalidOAuthToken, http.StatusForbidden},
		{webmaster.ErrorCodeLimitsExceeded, http.StatusForbidden},
		{webmaster.ErrorCodeHostNotFound, http.StatusNotFound},
		{webmaster.ErrorCodeNotExist, http.StatusNotFound},
		{webmaster.ErrorCodeMethodNotAllowed, http.StatusMethodNotAllowed},
		{webmaster.ErrorCodeContentTypeUnsupported, http.StatusNotAcceptable},
		{webmaster.ErrorCodeHostAlreadyAdded, http.StatusConflict},
		{webmaster.ErrorCodeUploadAddressExpired, http.StatusGone},
		{webmaster.ErrorCodePayloadTooLarge, http.StatusRequestEntityTooLarge},
		{webmaster.ErrorCodeContentEncodingUnsupported, http.StatusUnsupportedMediaType},
		{webmaster.ErrorCodeNoVerificationRecord, http.StatusUnprocessableEntity},
		{webmaster.ErrorCodeQuotaExceeded, http.StatusTooManyRequests},
		{webmaster.ErrorCode("SOMETHING_ELSE"), 0},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.status, tt.code.DocumentedStatus())
			assert.Equal(t, tt.status != 0, tt.code.IsKnown())
		})
	}
}

func TestKindOf(t *testing.T) {
	t.Parallel()

	apiErr := webmaster.ParseAPIError(http.StatusNotFound, []byte(`{"error_code":"HOST_NOT_FOUND","error_message":"x"}`))

	tests := []struct {
		name string
		err  error
		kind webmaster.ErrorKind
	}{
		{"none", nil, webmaster.KindNone},
		{"status", fmt.Errorf("getting host: %w", apiErr), webmaster.KindStatus},
		{"decode", fmt.Errorf("getting host: %w", &webmaster.DecodeError{Target: "host", Err: errors.New("bad json")}), webmaster.KindDecode},
		{"encode", &webmaster.EncodeError{Err: errors.New("bad value")}, webmaster.KindEncode},
		{"transport", &webmaster.TransportError{Method: "GET", URL: "http://x", Err: context.DeadlineExceeded}, webmaster.KindTransport},
		{"authentication", fmt.Errorf("creating client: %w", webmaster.ErrAuthentication), webmaster.KindAuthentication},
		{"unknown", errors.New("boom"), webmaster.KindUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.kind, webmaster.KindOf(tt.err))
			assert.Equal(t, tt.name, webmaster.KindOf(tt.err).String())
		})
	}
}

func TestTransportError_Unwrap(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("listing hosts: %w", &webmaster.TransportError{Method: "GET", URL: "http://x/user", Err: context.Canceled})

	require.ErrorIs(t, err, context.Canceled)
	assert.Contains(t, err.Error(), "HTTP request failed: GET http://x/user")
}

func TestStatusHelpers(t *testing.T) {
	t.Parallel()

	wrap := func(status int, body string) error {
		return fmt.Errorf("calling API: %w", webmaster.ParseAPIError(status, []byte(body)))
	}

	notFound := wrap(http.StatusNotFound, `{"error_code":"HOST_NOT_FOUND","error_message":"x"}`)
	badToken := wrap(http.StatusForbidden, `{"error_code":"INVALID_OAUTH_TOKEN","error_message":"x"}`)
	unauthorized := wrap(http.StatusUnauthorized, "")
	conflict := wrap(http.StatusConflict, `{"error_code":"HOST_ALREADY_ADDED","error_message":"x"}`)
	quota := wrap(http.StatusTooManyRequests, `{"error_code":"QUOTA_EXCEEDED","error_message":"x"}`)
	limits := wrap(http.StatusForbidden, `{"error_code":"LIMITS_EXCEEDED","error_message":"x"}`)

	assert.True(t, webmaster.IsNotFound(notFound))
	assert.False(t, webmaster.IsNotFound(conflict))
	assert.True(t, webmaster.IsUnauthorized(badToken))
	assert.True(t, webmaster.IsUnauthorized(unauthorized))
	assert.True(t, webmaster.IsUnauthorized(webmaster.ErrAuthentication))
	assert.True(t, webmaster.IsForbidden(badToken))
	assert.True(t, webmaster.IsConflict(conflict))
	assert.True(t, webmaster.IsQuotaExceeded(quota))
	assert.True(t, webmaster.IsQuotaExceeded(limits))
	assert.False(t, webmaster.IsQuotaExceeded(notFound))
	assert.True(t, webmaster.HasErrorCode(conflict, webmaster.ErrorCodeHostAlreadyAdded))
	assert.False(t, webmaster.HasErrorCode(errors.New("plain"), webmaster.ErrorCodeHostAlreadyAdded))
}
