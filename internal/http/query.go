package http

import (
	"net/url"

	"github.com/fivetwenty-io/webmaster-client/pkg/webmaster"
	"github.com/google/go-querystring/query"
)

// EncodeQuery converts a request struct with `url` tags into query values.
// A nil pointer yields empty values.
func EncodeQuery(params interface{}) (url.Values, error) {
	values, err := query.Values(params)
	if err != nil {
		return nil, &webmaster.EncodeError{Err: err}
	}

	return values, nil
}
