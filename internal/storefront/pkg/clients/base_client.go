package clients

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/time/rate"
	"storefront_api/pkg/logger"
	"storefront_api/pkg/middleware"
)

const (
	DefaultTimeout = 30 * time.Second
	// MaxErrorBody bounds how much of a failed response is kept in FetchError.
	MaxErrorBody = 512
)

// FetchError is returned for any non-2xx upstream response.
type FetchError struct {
	Op         string
	URL        string
	Status     int
	StatusText string
	Body       string
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("%s: GET %s: %d %s", e.Op, e.URL, e.Status, e.StatusText)
}

func (e *FetchError) StatusCode() int {
	return e.Status
}

// IsNotFound reports whether err is an upstream 404.
func IsNotFound(err error) bool {
	var fe *FetchError
	return errors.As(err, &fe) && fe.Status == http.StatusNotFound
}

type BaseClient struct {
	ApiURL      string
	log         logger.Logger
	client      *http.Client
	limiter     *rate.Limiter
	middlewares []middleware.Middleware
	do          middleware.RequestFunc
}

type Option func(*BaseClient)

func WithHTTPClient(client *http.Client) Option {
	return func(c *BaseClient) { c.client = client }
}

// WithRateLimit caps outgoing requests; rps <= 0 disables the limiter.
func WithRateLimit(rps float64, burst int) Option {
	return func(c *BaseClient) {
		if rps <= 0 {
			c.limiter = nil
			return
		}
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

func WithLogger(log logger.Logger) Option {
	return func(c *BaseClient) { c.log = logger.OrDiscard(log) }
}

// WithMiddleware adds request middlewares inside the built-in metrics and rate limiting.
func WithMiddleware(mws ...middleware.Middleware) Option {
	return func(c *BaseClient) { c.middlewares = append(c.middlewares, mws...) }
}

func NewBaseClient(apiURL string, writer io.Writer, logPrefix string, opts ...Option) *BaseClient {
	c := &BaseClient{
		ApiURL: strings.TrimRight(apiURL, "/"),
		log:    logger.NewLogger(writer, logPrefix),
		client: &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	chain := append([]middleware.Middleware{middleware.UpstreamMetrics(), middleware.RateLimit(c.limiter)}, c.middlewares...)
	c.do = middleware.Chain(c.doRequest, chain...)
	return c
}

// Get issues a GET to endpoint and decodes the JSON body into response.
// Pass a *json.RawMessage to keep the body undecoded.
func (c *BaseClient) Get(ctx context.Context, operation, endpoint string, query url.Values, response interface{}) error {
	return c.do(ctx, operation, endpoint, query, response)
}

// GetWithFallback never fails: on error it logs and stores fallback in response.
func (c *BaseClient) GetWithFallback(ctx context.Context, operation, endpoint string, query url.Values, response, fallback interface{}) {
	err := c.Get(ctx, operation, endpoint, query, response)
	if err == nil {
		return
	}
	c.log.Warn("%s: %v, using fallback", operation, err)
	data, mErr := json.Marshal(fallback)
	if mErr != nil {
		c.log.Error("%s: encoding fallback: %v", operation, mErr)
		return
	}
	if uErr := json.Unmarshal(data, response); uErr != nil {
		c.log.Error("%s: applying fallback: %v", operation, uErr)
	}
}

func (c *BaseClient) doRequest(ctx context.Context, operation, endpoint string, query url.Values, response interface{}) error {
	target := c.ApiURL + endpoint
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	c.log.Log("%s: GET %s", operation, target)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return fmt.Errorf("%s: failed to create request: %w", operation, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		select {
		case <-ctx.Done():
			return fmt.Errorf("%s: request was cancelled: %w", operation, ctx.Err())
		default:
			return fmt.Errorf("%s: failed to execute request: %w", operation, err)
		}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, MaxErrorBody))
		return &FetchError{
			Op:         operation,
			URL:        target,
			Status:     resp.StatusCode,
			StatusText: http.StatusText(resp.StatusCode),
			Body:       string(body),
		}
	}

	reader := io.Reader(resp.Body)
	if enc := legacyCharset(resp.Header.Get("Content-Type")); enc != nil {
		reader = enc.NewDecoder().Reader(resp.Body)
	}
	body, err := io.ReadAll(reader)
	if err != nil {
		return fmt.Errorf("%s: failed to read response body: %w", operation, err)
	}
	if response == nil {
		return nil
	}
	if err := json.Unmarshal(body, response); err != nil {
		return fmt.Errorf("%s: failed to unmarshal response: %w", operation, err)
	}
	return nil
}

// Some older shop endpoints still answer in a single-byte code page.
var legacyCharsets = map[string]encoding.Encoding{
	"windows-1258": charmap.Windows1258,
	"cp1258":       charmap.Windows1258,
	"windows-1252": charmap.Windows1252,
	"iso-8859-1":   charmap.ISO8859_1,
}

// legacyCharset returns the decoder for a non UTF-8 charset, or nil.
func legacyCharset(contentType string) encoding.Encoding {
	_, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		return nil
	}
	return legacyCharsets[strings.ToLower(params["charset"])]
}
