// Package httpjson issues GET requests against city backends and decodes
// their JSON bodies, turning every failure into a tagged *apperr.Error.
package httpjson

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/tonneli/tonneli/internal/apperr"
)

// maxErrorBody bounds how much of a failed response is drained.
const maxErrorBody = 4 << 10

// JoinURL appends path to base, tolerating a trailing slash on base.
func JoinURL(base, path string) string {
	return strings.TrimRight(strings.TrimSpace(base), "/") + "/" + strings.TrimLeft(path, "/")
}

// Get requests rawURL with query appended and decodes the JSON body into dst.
//
// Transport failures and non-2xx statuses become apperr.KindNetwork; an
// undecodable body becomes apperr.KindParse. op names the caller in errors.
func Get(ctx context.Context, client *http.Client, op, rawURL string, query url.Values, dst any) error {
	if client == nil {
		client = http.DefaultClient
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return apperr.Wrap(apperr.KindInternal, op, err)
	}
	if len(query) > 0 {
		q := u.Query()
		for k, vs := range query {
			for _, v := range vs {
				q.Add(k, v)
			}
		}
		u.RawQuery = q.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return apperr.Wrap(apperr.KindInternal, op, err)
	}
	req.Header.Set("Accept", "application/json")

	logf("", "GET %s", u.Redacted())

	resp, err := client.Do(req)
	if err != nil {
		return apperr.Wrap(apperr.KindNetwork, op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxErrorBody))
		logf("", "GET %s -> %d", u.Redacted(), resp.StatusCode)
		return apperr.Status(op, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return apperr.Wrap(apperr.KindParse, op, err)
	}
	return nil
}
