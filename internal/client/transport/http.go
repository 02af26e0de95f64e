package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/memomap/internal/common"
	"github.com/dmitrijs2005/memomap/internal/logging"
	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

var maxResponseBody = 8 << 20

// Options configures a Caller.
type Options struct {
	BaseURL string
	// Timeout bounds a whole request; zero means 30s.
	Timeout time.Duration
	// RequestsPerSecond paces outgoing requests; zero disables pacing.
	RequestsPerSecond float64
	UserAgent         string
	Logger            logging.Logger
	// HTTPClient overrides the client built from Timeout.
	HTTPClient *http.Client
}

// Caller creates Calls against one API base URL.
type Caller struct {
	baseURL   *url.URL
	client    *http.Client
	limiter   *rate.Limiter
	userAgent string
	logger    logging.Logger
}

// NewCaller validates the base URL and builds a Caller.
func NewCaller(opts Options) (*Caller, error) {
	base, err := url.Parse(strings.TrimRight(opts.BaseURL, "/") + "/")
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("base url %q: scheme must be http or https", opts.BaseURL)
	}

	client := opts.HTTPClient
	if client == nil {
		timeout := opts.Timeout
		if timeout == 0 {
			timeout = 30 * time.Second
		}
		client = &http.Client{Timeout: timeout}
	}

	var limiter *rate.Limiter
	if opts.RequestsPerSecond > 0 {
		burst := int(opts.RequestsPerSecond)
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), burst)
	}

	logger := opts.Logger
	if logger == nil {
		logger = logging.Nop()
	}

	userAgent := opts.UserAgent
	if userAgent == "" {
		userAgent = "memomap-cli"
	}

	return &Caller{
		baseURL:   base,
		client:    client,
		limiter:   limiter,
		userAgent: userAgent,
		logger:    logger.With("component", "transport"),
	}, nil
}

// NewCall prepares, but does not start, a request. body, when non-nil, is
// encoded as JSON now so encoding errors surface before anything is sent.
// An empty token sends no X-API-TOKEN header.
func (c *Caller) NewCall(method, path, token string, body any) (Call, error) {
	ref, err := url.Parse(strings.TrimLeft(path, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse path %q: %w", path, err)
	}

	var payload []byte
	if body != nil {
		payload, err = json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
	}

	return &httpCall{
		caller:  c,
		method:  method,
		url:     c.baseURL.ResolveReference(ref).String(),
		path:    "/" + strings.TrimLeft(path, "/"),
		token:   token,
		payload: payload,
	}, nil
}

type httpCall struct {
	caller  *Caller
	method  string
	url     string
	path    string
	token   string
	payload []byte

	mu       sync.Mutex
	executed bool
	canceled bool
	cancel   context.CancelFunc
}

func (h *httpCall) Enqueue(cb Callback) {
	h.mu.Lock()
	if h.executed {
		h.mu.Unlock()
		go cb.OnFailure(h, ErrAlreadyExecuted)
		return
	}
	h.executed = true
	ctx, cancel := context.WithCancel(context.Background())
	h.cancel = cancel
	if h.canceled {
		cancel()
	}
	h.mu.Unlock()

	go h.execute(ctx, cb)
}

func (h *httpCall) Cancel() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.canceled = true
	if h.cancel != nil {
		h.cancel()
	}
}

func (h *httpCall) IsExecuted() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.executed
}

func (h *httpCall) IsCanceled() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.canceled
}

func (h *httpCall) execute(ctx context.Context, cb Callback) {
	c := h.caller
	defer h.release()

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			cb.OnFailure(h, err)
			return
		}
	}

	var body io.Reader
	if h.payload != nil {
		body = bytes.NewReader(h.payload)
	}

	req, err := http.NewRequestWithContext(ctx, h.method, h.url, body)
	if err != nil {
		cb.OnFailure(h, err)
		return
	}

	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set(common.RequestIDHeaderName, requestID)
	if h.payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if h.token != "" {
		req.Header.Set(common.TokenHeaderName, h.token)
	}

	started := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Debug(ctx, "request failed", "method", h.method, "path", h.path, "request_id", requestID, "error", err)
		cb.OnFailure(h, err)
		return
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, int64(maxResponseBody)+1))
	if err != nil {
		cb.OnFailure(h, fmt.Errorf("read response body: %w", err))
		return
	}
	truncated := len(data) > maxResponseBody
	if truncated {
		data = data[:maxResponseBody]
	}

	c.logger.Debug(ctx, "request done",
		"method", h.method, "path", h.path, "request_id", requestID,
		"status", resp.StatusCode, "elapsed", time.Since(started), "truncated", truncated)

	cb.OnResponse(h, &Response{StatusCode: resp.StatusCode, Header: resp.Header, Body: data, Truncated: truncated})
}

// release frees the per-call context once the call has finished.
func (h *httpCall) release() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.cancel != nil {
		h.cancel()
	}
}
