// Package http implements the request pipeline shared by every resource
// client: URL building, JSON and multipart encoding, error normalization and
// failure notification.
package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	retryablehttp "github.com/hashicorp/go-retryablehttp"

	"github.com/netdepviet/blogadmin/internal/constants"
	"github.com/netdepviet/blogadmin/pkg/blogapi"
)

// Request represents an API request. Path is a URI template; placeholders
// are expanded from PathParams before the URL is built, and a missing value
// fails the request without touching the network.
type Request struct {
	Method     string
	Path       string
	PathParams map[string]string
	Query      url.Values
	Body       interface{}
	Headers    map[string]string
}

// Response represents an API response with its raw body.
type Response struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
}

// Client is the HTTP pipeline. Requests are not retried unless a caller
// opts in via WithRetryConfig: the API's mutations are not idempotent.
type Client struct {
	baseURL      string
	httpClient   *retryablehttp.Client
	userAgent    string
	debug        bool
	logger       blogapi.Logger
	notifier     blogapi.Notifier
	interceptors *blogapi.InterceptorChain
}

// Option configures the pipeline.
type Option func(*Client)

// WithLogger sets the structured logger.
func WithLogger(logger blogapi.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithDebug enables request/response logging.
func WithDebug(debug bool) Option {
	return func(c *Client) {
		c.debug = debug
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		c.userAgent = userAgent
	}
}

// WithRetryConfig opts in to automatic retries of failed requests.
func WithRetryConfig(maxRetries int, waitMin, waitMax time.Duration) Option {
	return func(c *Client) {
		c.httpClient.RetryMax = maxRetries
		c.httpClient.RetryWaitMin = waitMin
		c.httpClient.RetryWaitMax = waitMax
	}
}

// WithTimeout overrides the per-request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.HTTPClient.Timeout = timeout
	}
}

// WithNotifier sets the notifier receiving failure notifications.
func WithNotifier(notifier blogapi.Notifier) Option {
	return func(c *Client) {
		if notifier != nil {
			c.notifier = notifier
		}
	}
}

// WithInterceptors sets the interceptor chain run around every request.
func WithInterceptors(chain *blogapi.InterceptorChain) Option {
	return func(c *Client) {
		if chain != nil {
			c.interceptors = chain
		}
	}
}

// NewClient creates a pipeline rooted at baseURL.
func NewClient(baseURL string, opts ...Option) *Client {
	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = 0
	retryClient.RetryWaitMin = constants.DefaultRetryWaitMin
	retryClient.RetryWaitMax = constants.DefaultRetryWaitMax
	retryClient.Logger = nil
	retryClient.HTTPClient.Timeout = constants.DefaultHTTPTimeout

	client := &Client{
		baseURL:      strings.TrimSuffix(baseURL, "/"),
		httpClient:   retryClient,
		userAgent:    "blogadmin-client/1.0",
		notifier:     blogapi.NopNotifier{},
		interceptors: blogapi.NewInterceptorChain(),
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

// Do executes a JSON request against the API.
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	path, err := c.expandPath(req)
	if err != nil {
		return nil, err
	}

	var body []byte

	if req.Body != nil {
		body, err = json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("marshaling request body: %w", err)
		}
	}

	httpReq, err := retryablehttp.NewRequestWithContext(ctx, req.Method, c.buildURL(path, req.Query), body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	c.setHeaders(httpReq.Header, req.Headers, req.Body != nil)

	info := &blogapi.RequestInfo{Method: req.Method, Path: path, Headers: httpReq.Header}

	err = c.interceptors.ExecuteRequestInterceptors(ctx, info)
	if err != nil {
		return nil, err
	}

	if c.debug && c.logger != nil {
		c.logger.Debug("API Request", map[string]interface{}{
			"method": req.Method,
			"url":    httpReq.URL.String(),
		})
	}

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, c.transportFailure(ctx, info, err)
	}

	return c.readResponse(ctx, info, httpResp)
}

// Upload sends files as a multipart request through the underlying HTTP
// client. Uploads are never retried. Progress is reported as a 0-100
// percentage; the total is always known because the multipart body is built
// up front.
func (c *Client) Upload(ctx context.Context, req *Request, files []blogapi.UploadFile, progress blogapi.ProgressFunc) (*Response, error) {
	if len(files) == 0 {
		return nil, blogapi.ErrNoFilesProvided
	}

	path, err := c.expandPath(req)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer

	writer := multipart.NewWriter(&buf)

	for _, file := range files {
		part, err := writer.CreateFormFile(constants.UploadFieldName, file.Name)
		if err != nil {
			return nil, fmt.Errorf("creating form file %s: %w", file.Name, err)
		}

		_, err = part.Write(file.Content)
		if err != nil {
			return nil, fmt.Errorf("writing form file %s: %w", file.Name, err)
		}
	}

	err = writer.Close()
	if err != nil {
		return nil, fmt.Errorf("finalizing multipart body: %w", err)
	}

	reader := &progressReader{
		reader:   &buf,
		total:    int64(buf.Len()),
		progress: progress,
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, c.buildURL(path, req.Query), reader)
	if err != nil {
		return nil, fmt.Errorf("creating upload request: %w", err)
	}

	httpReq.ContentLength = reader.total

	c.setHeaders(httpReq.Header, req.Headers, false)
	httpReq.Header.Set("Content-Type", writer.FormDataContentType())

	info := &blogapi.RequestInfo{Method: req.Method, Path: path, Headers: httpReq.Header}

	err = c.interceptors.ExecuteRequestInterceptors(ctx, info)
	if err != nil {
		return nil, err
	}

	httpResp, err := c.httpClient.HTTPClient.Do(httpReq)
	if err != nil {
		return nil, c.transportFailure(ctx, info, err)
	}

	return c.readResponse(ctx, info, httpResp)
}

// Get executes a GET request.
func (c *Client) Get(ctx context.Context, path string, params map[string]string, query url.Values) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodGet, Path: path, PathParams: params, Query: query})
}

// Post executes a POST request with a JSON body.
func (c *Client) Post(ctx context.Context, path string, params map[string]string, body interface{}) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodPost, Path: path, PathParams: params, Body: body})
}

// Put executes a PUT request with a JSON body.
func (c *Client) Put(ctx context.Context, path string, params map[string]string, body interface{}) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodPut, Path: path, PathParams: params, Body: body})
}

// Patch executes a PATCH request with a JSON body.
func (c *Client) Patch(ctx context.Context, path string, params map[string]string, body interface{}) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodPatch, Path: path, PathParams: params, Body: body})
}

// Delete executes a DELETE request.
func (c *Client) Delete(ctx context.Context, path string, params map[string]string) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodDelete, Path: path, PathParams: params})
}

func (c *Client) expandPath(req *Request) (string, error) {
	endpoint := blogapi.Endpoint{Method: req.Method, URI: strings.TrimPrefix(req.Path, "/")}

	return endpoint.Expand(req.PathParams)
}

func (c *Client) buildURL(path string, query url.Values) string {
	fullURL := c.baseURL + "/" + path

	if len(query) > 0 {
		fullURL += "?" + query.Encode()
	}

	return fullURL
}

func (c *Client) setHeaders(header http.Header, extra map[string]string, hasBody bool) {
	header.Set("Accept", "application/json")
	header.Set("User-Agent", c.userAgent)

	if hasBody {
		header.Set("Content-Type", "application/json")
	}

	for key, value := range extra {
		header.Set(key, value)
	}
}

// readResponse drains the body, runs response interceptors and normalizes
// failures. Every failed exchange notifies the notifier exactly once before
// the error propagates.
func (c *Client) readResponse(ctx context.Context, info *blogapi.RequestInfo, httpResp *http.Response) (*Response, error) {
	defer func() { _ = httpResp.Body.Close() }()

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	respInfo := &blogapi.ResponseInfo{StatusCode: httpResp.StatusCode, Headers: httpResp.Header}

	if httpResp.StatusCode >= http.StatusBadRequest {
		apiErr := blogapi.ParseErrorBody(httpResp.StatusCode, body)
		respInfo.Error = apiErr

		_ = c.interceptors.ExecuteResponseInterceptors(ctx, info, respInfo)

		if c.debug && c.logger != nil {
			c.logger.Error("API Response Error", map[string]interface{}{
				"method":      info.Method,
				"path":        info.Path,
				"status_code": httpResp.StatusCode,
			})
		}

		c.notifyError(apiErr)

		return nil, apiErr
	}

	_ = c.interceptors.ExecuteResponseInterceptors(ctx, info, respInfo)

	if c.debug && c.logger != nil {
		c.logger.Debug("API Response", map[string]interface{}{
			"method":      info.Method,
			"path":        info.Path,
			"status_code": httpResp.StatusCode,
		})
	}

	return &Response{
		StatusCode: httpResp.StatusCode,
		Headers:    httpResp.Header,
		Body:       body,
	}, nil
}

// transportFailure normalizes a failure that produced no response at all
// (refused connection, timeout, DNS). Like body failures it becomes a generic
// APIError and notifies exactly once before propagating.
func (c *Client) transportFailure(ctx context.Context, info *blogapi.RequestInfo, cause error) error {
	apiErr := &blogapi.APIError{Message: blogapi.GenericErrorMessage, Status: constants.HTTPStatusBadRequest}

	_ = c.interceptors.ExecuteResponseInterceptors(ctx, info, &blogapi.ResponseInfo{Error: apiErr})

	if c.debug && c.logger != nil {
		c.logger.Error("API Request Failed", map[string]interface{}{
			"method": info.Method,
			"path":   info.Path,
			"error":  cause.Error(),
		})
	}

	c.notifyError(apiErr)

	return apiErr
}

// notifyError surfaces the human-readable message of a normalized failure.
func (c *Client) notifyError(err error) {
	apiErr := &blogapi.APIError{}
	if errors.As(err, &apiErr) {
		c.notifier.Error(apiErr.Message)

		return
	}

	c.notifier.Error(err.Error())
}

// progressReader reports read progress as a 0-100 percentage.
type progressReader struct {
	reader   io.Reader
	total    int64
	read     int64
	progress blogapi.ProgressFunc
	last     int
}

func (r *progressReader) Read(p []byte) (int, error) {
	n, err := r.reader.Read(p)
	r.read += int64(n)

	if r.progress != nil && r.total > 0 {
		percent := int(r.read * constants.PercentageMultiplier / r.total)
		if percent > constants.PercentageMultiplier {
			percent = constants.PercentageMultiplier
		}

		if percent != r.last {
			r.last = percent
			r.progress(percent)
		}
	}

	return n, err
}
