package backend

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"catalog-web/pkg/utils"
)

// Doer is the slice of *http.Client the resource clients depend on.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// InitClient builds the pooled HTTP client used for every backend call.
func InitClient(config utils.APIConfig) (*http.Client, error) {
	if _, err := ParseBaseURL(config.BaseURL); err != nil {
		return nil, err
	}

	maxIdle := config.MaxIdleConns
	if maxIdle <= 0 {
		maxIdle = 10
	}

	// Pool configuration
	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   5 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:          maxIdle,
		MaxIdleConnsPerHost:   maxIdle,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   5 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}

	return &http.Client{
		Transport: transport,
		Timeout:   config.Timeout,
	}, nil
}

// ParseBaseURL validates the configured API root and strips the trailing slash.
func ParseBaseURL(raw string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return "", fmt.Errorf("parse api base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("api base url %q: scheme must be http or https", raw)
	}
	if u.Host == "" {
		return "", fmt.Errorf("api base url %q: missing host", raw)
	}
	return strings.TrimRight(u.String(), "/"), nil
}

// Ping checks that the backend answers at all. Any HTTP status counts as
// reachable; only transport failures are reported.
func Ping(ctx context.Context, client Doer, baseURL string) error {
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(pingCtx, http.MethodHead, baseURL, nil)
	if err != nil {
		return fmt.Errorf("build ping request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("ping backend failed: %w", err)
	}
	resp.Body.Close()

	return nil
}
