// Package probe fires concurrent requests at a canned server and records the
// order in which they complete.
package probe

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

// DefaultPaths is issued when no paths are given. Sent together, variant a
// answers them in the order /2, /4, /1, /3.
var DefaultPaths = []string{"/3", "/2", "/1", "/4"}

// Options configures a probe run.
type Options struct {
	BaseURL string
	Paths   []string
	Timeout time.Duration
	Client  *http.Client

	// FailFast cancels outstanding requests after the first failure.
	FailFast bool
}

// Result is the outcome of one probe request.
type Result struct {
	Rank          int           `json:"rank" yaml:"rank"`
	Path          string        `json:"path" yaml:"path"`
	Status        int           `json:"status" yaml:"status"`
	Body          string        `json:"body" yaml:"body"`
	ContentLength int64         `json:"content_length" yaml:"content_length"`
	Latency       time.Duration `json:"latency" yaml:"latency"`
	Error         string        `json:"error,omitempty" yaml:"error,omitempty"`
}

// Report holds all results in completion order.
type Report struct {
	BaseURL string        `json:"base_url" yaml:"base_url"`
	Results []Result      `json:"results" yaml:"results"`
	Total   time.Duration `json:"total" yaml:"total"`
}

// Ordered returns the paths in the order their responses completed.
func (r *Report) Ordered() []string {
	out := make([]string, len(r.Results))
	for i, res := range r.Results {
		out[i] = res.Path
	}
	return out
}

// Failed reports whether any request failed.
func (r *Report) Failed() bool {
	for _, res := range r.Results {
		if res.Error != "" {
			return true
		}
	}
	return false
}

// ErrRequestFailed wraps the first request failure returned by Run.
var ErrRequestFailed = errors.New("request failed")

// Run issues one request per path, all released at the same instant, and
// waits for every one of them. Invalid options return a nil report. A failed
// request returns the report together with an error wrapping
// ErrRequestFailed. With FailFast the first failure cancels the requests
// still in flight.
func Run(ctx context.Context, opts Options) (*Report, error) {
	base, err := url.Parse(opts.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base url: %w", err)
	}
	if base.Scheme != "http" || base.Host == "" {
		return nil, fmt.Errorf("invalid base url %q: want http://host:port", opts.BaseURL)
	}

	paths := opts.Paths
	if len(paths) == 0 {
		paths = DefaultPaths
	}
	for _, p := range paths {
		if !strings.HasPrefix(p, "/") {
			return nil, fmt.Errorf("invalid path %q: must start with /", p)
		}
	}

	client := opts.Client
	if client == nil {
		client = &http.Client{}
	}
	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	g, groupCtx := errgroup.WithContext(ctx)
	reqCtx := ctx
	if opts.FailFast {
		reqCtx = groupCtx
	}

	origin := strings.TrimSuffix(opts.BaseURL, "/")
	report := &Report{BaseURL: origin}

	var (
		mu      sync.Mutex
		release = make(chan struct{})
	)

	start := time.Now()
	for _, p := range paths {
		path := p
		g.Go(func() error {
			<-release
			res := fetch(reqCtx, client, origin, path)

			mu.Lock()
			res.Rank = len(report.Results) + 1
			report.Results = append(report.Results, res)
			mu.Unlock()

			if res.Error != "" {
				return fmt.Errorf("%w: %s: %s", ErrRequestFailed, path, res.Error)
			}
			return nil
		})
	}
	close(release)
	err = g.Wait()
	report.Total = time.Since(start)

	return report, err
}

// fetch performs a single GET and never returns an error; failures are
// recorded on the result.
func fetch(ctx context.Context, client *http.Client, origin, path string) Result {
	res := Result{Path: path}
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, origin+path, nil)
	if err != nil {
		res.Error = err.Error()
		res.Latency = time.Since(start)
		return res
	}

	resp, err := client.Do(req)
	if err != nil {
		res.Error = err.Error()
		res.Latency = time.Since(start)
		return res
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil && !errors.Is(err, io.EOF) {
		res.Error = err.Error()
	}

	res.Status = resp.StatusCode
	res.Body = string(body)
	res.ContentLength = resp.ContentLength
	res.Latency = time.Since(start)
	return res
}
