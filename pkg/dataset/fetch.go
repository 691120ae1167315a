package dataset

import (
	"context"
	stderrors "errors"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/treemap/pkg/buildinfo"
	"github.com/matzehuels/treemap/pkg/errors"
	"github.com/matzehuels/treemap/pkg/observability"
)

// DefaultURL is the published video game sales dataset.
const DefaultURL = "https://cdn.freecodecamp.org/testable-projects-fcc/data/tree_map/video-game-sales-data.json"

const httpTimeout = 30 * time.Second

// Result is the outcome of a single fetch: a loaded root or the reason it failed.
type Result struct {
	Root      *Node
	Err       error
	URL       string
	Status    int
	Bytes     int64
	Duration  time.Duration
	FetchedAt time.Time
}

// OK reports whether the fetch produced a usable dataset.
func (r Result) OK() bool { return r.Err == nil && r.Root != nil }

// Fetcher issues the dataset request.
type Fetcher struct {
	url    string
	http   *http.Client
	logger *log.Logger
}

// FetcherOption configures a [Fetcher].
type FetcherOption func(*Fetcher)

// WithHTTPClient replaces the default client (30s timeout).
func WithHTTPClient(c *http.Client) FetcherOption {
	return func(f *Fetcher) {
		if c != nil {
			f.http = c
		}
	}
}

// WithLogger sets the logger used for request diagnostics.
func WithLogger(l *log.Logger) FetcherOption {
	return func(f *Fetcher) {
		if l != nil {
			f.logger = l
		}
	}
}

// NewFetcher creates a fetcher for [DefaultURL].
func NewFetcher(opts ...FetcherOption) *Fetcher {
	f := &Fetcher{
		url:    DefaultURL,
		http:   &http.Client{Timeout: httpTimeout},
		logger: log.NewWithOptions(io.Discard, log.Options{}),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// URL returns the dataset location.
func (f *Fetcher) URL() string { return f.url }

// Fetch performs the GET and decodes the response. It never retries.
func (f *Fetcher) Fetch(ctx context.Context) Result {
	start := time.Now()
	res := Result{URL: f.url, FetchedAt: start}
	observability.Fetch().OnFetchStart(ctx, f.url)

	f.do(ctx, &res)

	res.Duration = time.Since(start)
	observability.Fetch().OnFetchComplete(ctx, f.url, res.Status, res.Duration, res.Err)
	if res.Err != nil {
		f.logger.Warn("dataset fetch failed", "url", f.url, "status", res.Status, "err", res.Err)
	} else {
		f.logger.Debug("dataset fetched", "url", f.url, "bytes", res.Bytes, "duration", res.Duration)
	}
	return res
}

// FetchAsync starts Fetch in its own goroutine and delivers the result to publish.
// The caller does not wait; publish runs on the fetch goroutine.
func (f *Fetcher) FetchAsync(ctx context.Context, publish func(Result)) {
	go func() {
		publish(f.Fetch(ctx))
	}()
}

func (f *Fetcher) do(ctx context.Context, res *Result) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.url, nil)
	if err != nil {
		res.Err = errors.Wrap(errors.ErrCodeInternal, err, "build request")
		return
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", buildinfo.UserAgent())

	resp, err := f.http.Do(req)
	if err != nil {
		res.Err = classifyTransportError(ctx, err)
		return
	}
	defer resp.Body.Close()

	res.Status = resp.StatusCode
	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		res.Err = errors.Wrap(errors.ErrCodeHTTPStatus,
			&errors.StatusError{StatusCode: resp.StatusCode, URL: f.url},
			"dataset host returned %d", resp.StatusCode)
		return
	}

	body := &countingReader{r: resp.Body}
	root, err := Decode(body)
	res.Bytes = body.n
	if err != nil {
		res.Err = err
		return
	}
	res.Root = root
}

func classifyTransportError(ctx context.Context, err error) error {
	if stderrors.Is(err, context.DeadlineExceeded) || stderrors.Is(ctx.Err(), context.DeadlineExceeded) {
		return errors.Wrap(errors.ErrCodeTimeout, err, "dataset request timed out")
	}
	if stderrors.Is(err, context.Canceled) {
		return err
	}
	return errors.Wrap(errors.ErrCodeNetwork, err, "dataset request failed")
}

type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}
