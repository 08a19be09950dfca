// Package clients talks to the external prayer time, reverse geocoding and
// IP geolocation providers.
package clients

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"prayerd/internal/providers"
	"strings"
	"time"

	json "github.com/goccy/go-json"
)

const maxResponseSize = 1 << 20 // 1 MB

var (
	ErrBadStatus       = errors.New("unexpected provider status")
	ErrMalformed       = errors.New("malformed provider response")
	ErrInvalidLocation = errors.New("invalid location")
)

func NewHTTPClient() *http.Client {
	return &http.Client{
		Transport: &http.Transport{
			Proxy:               http.ProxyFromEnvironment,
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 20,
			IdleConnTimeout:     90 * time.Second,
			TLSHandshakeTimeout: 5 * time.Second,
			DialContext: (&net.Dialer{
				Timeout:   5 * time.Second,
				KeepAlive: 30 * time.Second,
			}).DialContext,
		},
	}
}

// endpoint is one remote JSON API with its own timeout.
type endpoint struct {
	name    string
	baseURL string
	timeout time.Duration
	client  *http.Client
	logger  providers.Logger
	metrics providers.MetricsProviderInterface
}

func (e *endpoint) getJSON(ctx context.Context, path string, query url.Values, out any) (err error) {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	target := strings.TrimRight(e.baseURL, "/") + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return fmt.Errorf("%s: build request: %w", e.name, err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	outcome := "ok"
	defer func() {
		e.metrics.ObserveProviderCall(e.name, outcome, time.Since(start))
		if err != nil {
			e.logger.Warnf(providers.TypeProvider, "%s %s failed after %s: %s", e.name, path, time.Since(start), err)
		} else {
			e.logger.Debugf(providers.TypeProvider, "%s %s ok in %s", e.name, path, time.Since(start))
		}
	}()

	resp, err := e.client.Do(req)
	if err != nil {
		outcome = "error"
		return fmt.Errorf("%s: %w", e.name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		outcome = "status"
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("%w: %s returned %d", ErrBadStatus, e.name, resp.StatusCode)
	}

	if err = json.NewDecoder(io.LimitReader(resp.Body, maxResponseSize)).Decode(out); err != nil {
		outcome = "malformed"
		return fmt.Errorf("%w: %s: %v", ErrMalformed, e.name, err)
	}
	return nil
}
