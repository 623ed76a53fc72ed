package webfile

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

var ErrRequest = fmt.Errorf("request failed")

// Sanctions publications are large (the SDN Advanced XML runs to hundreds of
// megabytes), so the client carries a generous timeout of its own on top of
// any request context.
const fetchTimeout = 60 * time.Second

// Fetcher downloads one file over HTTP and returns its exact bytes. Integrity
// hashing happens in the caller so the digest always covers what was actually
// received.
type Fetcher struct {
	url string
	cl  http.Client
}

func NewFetcher(url string) *Fetcher {
	return &Fetcher{url: url, cl: http.Client{Timeout: fetchTimeout}}
}

func (f *Fetcher) URL() string {
	return f.url
}

func (f *Fetcher) Fetch(ctx context.Context) ([]byte, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, f.url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := f.cl.Do(httpReq)
	if err != nil {
		return nil, err
	}
	bts, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("err: %w status code %d", ErrRequest, resp.StatusCode)
	}
	return bts, nil
}
