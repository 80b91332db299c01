// httpclient/request.go
package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	goerrors "errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/classowl/go-openclass/cookiejar"
	apierrors "github.com/classowl/go-openclass/errors"
	"github.com/classowl/go-openclass/headers"
	"github.com/classowl/go-openclass/response"
	"github.com/classowl/go-openclass/status"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrUnsupportedMethod is wrapped by a RequestError for verbs other than GET, POST, PUT and DELETE.
var ErrUnsupportedMethod = goerrors.New("unsupported HTTP method")

// Request describes one API call. Query and Headers are copied before the token and API key
// are merged in, so the caller's values are never modified.
type Request struct {
	Method  string
	URL     string      // Absolute URL; may already carry query parameters.
	Query   url.Values  // Extra query parameters.
	Headers http.Header // Extra headers. X-Authorization is always set from the live session.
	Body    any         // JSON-encoded for POST and PUT; a nil Body is sent as {}. Ignored for GET and DELETE.
}

// Send executes req and returns the decoded JSON value: a map[string]any for objects, a []any
// for arrays. An empty response body yields an empty map.
func (c *Client) Send(ctx context.Context, req Request) (any, error) {
	var out any
	if err := c.DoRequest(ctx, req, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = map[string]any{}
	}
	return out, nil
}

// DoRequest executes req and decodes a 2xx JSON body into out.
//
// A 401 response triggers one token refresh through the auth handler and one retry with the new
// token. A second 401 returns an *errors.AuthError without refreshing again. A failed refresh
// returns the refresh's *errors.AuthError. Every other failure is an *errors.RequestError:
// transport errors, non-2xx statuses (wrapping a *response.APIError) and undecodable bodies.
func (c *Client) DoRequest(ctx context.Context, req Request, out any) error {
	log := c.Logger
	req.Method = strings.ToUpper(req.Method)

	if !IsSupportedHTTPMethod(req.Method) {
		log.Warn("HTTP method not supported", zap.String("method", req.Method))
		return &apierrors.RequestError{Method: req.Method, URL: req.URL, Err: ErrUnsupportedMethod}
	}

	body, err := encodeBody(req)
	if err != nil {
		return &apierrors.RequestError{Method: req.Method, URL: req.URL, Err: fmt.Errorf("encoding request body: %w", err)}
	}

	rejected := c.Auth.Tokens().AuthToken
	resp, respBody, err := c.send(ctx, req, body, rejected)
	if err != nil {
		return err
	}

	if status.IsUnauthorized(resp.StatusCode) {
		log.LogAuthTokenError("auth_token_rejected", req.Method, req.URL, resp.StatusCode, goerrors.New(status.TranslateStatusCode(resp)))

		tokens, err := c.Auth.RefreshIfStale(ctx, rejected)
		if err != nil {
			return err
		}

		resp, respBody, err = c.send(ctx, req, body, tokens.AuthToken)
		if err != nil {
			return err
		}

		if status.IsUnauthorized(resp.StatusCode) {
			apiErr := response.HandleAPIErrorResponse(resp, respBody, log)
			log.LogError("auth_token_rejected_after_refresh", req.Method, req.URL, resp.StatusCode, resp.Status, apiErr, string(respBody))
			return &apierrors.AuthError{
				Op:         apierrors.OpRequest,
				StatusCode: resp.StatusCode,
				Body:       string(respBody),
				Err:        apiErr,
			}
		}
	}

	return c.handleResponse(req, resp, respBody, out)
}

// send performs a single HTTP exchange with authToken. The response body is fully read and closed.
func (c *Client) send(ctx context.Context, req Request, body []byte, authToken string) (*http.Response, []byte, error) {
	log := c.Logger
	requestID := uuid.NewString()

	target, query, err := c.buildURL(req)
	if err != nil {
		return nil, nil, &apierrors.RequestError{Method: req.Method, URL: req.URL, Err: err}
	}

	var bodyReader io.Reader
	if body != nil {
		bodyReader = bytes.NewReader(body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, target.String(), bodyReader)
	if err != nil {
		return nil, nil, &apierrors.RequestError{Method: req.Method, URL: req.URL, Err: err}
	}

	headers.SetAccept(httpReq, "application/json")
	headers.SetUserAgent(httpReq)
	if body != nil {
		headers.SetContentType(httpReq, "application/json")
	}
	headers.SetCustomHeaders(httpReq, req.Headers)
	headers.SetXAuthorization(httpReq, authToken)

	logURL := c.loggableURL(target, query)
	log.LogRequestStart("http_request", requestID, req.Method, logURL, headers.RedactHeaders(httpReq.Header, c.config.HideSensitiveData))
	if body != nil {
		log.Debug("Request body", zap.String("request_id", requestID), zap.ByteString("body", body))
	}

	start := time.Now()
	resp, err := c.http.Do(httpReq)
	duration := time.Since(start)
	if err != nil {
		c.Metrics.ObserveRequest(req.Method, "error", duration)
		log.LogError("http_request_error", req.Method, logURL, 0, "", err, "")
		return nil, nil, &apierrors.RequestError{Method: req.Method, URL: req.URL, Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	c.Metrics.ObserveRequest(req.Method, strconv.Itoa(resp.StatusCode), duration)
	if err != nil {
		return nil, nil, &apierrors.RequestError{Method: req.Method, URL: req.URL, StatusCode: resp.StatusCode, Err: fmt.Errorf("reading response body: %w", err)}
	}

	log.LogResponse("http_response", requestID, req.Method, logURL, resp.StatusCode, string(respBody), duration)
	headers.CheckDeprecationHeader(resp, log)
	if cookies := resp.Cookies(); len(cookies) > 0 {
		log.Debug("Response set cookies", zap.String("request_id", requestID), zap.Strings("cookies", cookiejar.DescribeCookies(cookies, c.config.HideSensitiveData)))
	}

	return resp, respBody, nil
}

// handleResponse decodes a 2xx body into out or converts any other status into a RequestError.
func (c *Client) handleResponse(req Request, resp *http.Response, body []byte, out any) error {
	if status.IsSuccess(resp.StatusCode) {
		if err := response.HandleAPISuccessResponse(resp, body, out, c.Logger); err != nil {
			return &apierrors.RequestError{
				Method:     req.Method,
				URL:        req.URL,
				StatusCode: resp.StatusCode,
				Body:       string(body),
				Err:        fmt.Errorf("decoding response: %w", err),
			}
		}
		return nil
	}

	if status.IsRedirectStatusCode(resp.StatusCode) {
		c.Logger.Warn("Redirect not followed",
			zap.Int("status_code", resp.StatusCode),
			zap.String("location", resp.Header.Get("Location")),
			zap.Bool("permanent", status.IsPermanentRedirect(resp.StatusCode)))
	}

	apiErr := response.HandleAPIErrorResponse(resp, body, c.Logger)
	c.Logger.LogError("request_error", req.Method, req.URL, resp.StatusCode, status.TranslateStatusCode(resp), apiErr, string(body))
	return &apierrors.RequestError{
		Method:     req.Method,
		URL:        req.URL,
		StatusCode: resp.StatusCode,
		Body:       string(body),
		Err:        apiErr,
	}
}

// buildURL merges the URL's own query, a copy of req.Query and the API key.
func (c *Client) buildURL(req Request) (*url.URL, url.Values, error) {
	target, err := url.Parse(req.URL)
	if err != nil {
		return nil, nil, fmt.Errorf("parsing request url: %w", err)
	}

	query := target.Query()
	for key, values := range req.Query {
		for _, v := range values {
			query.Add(key, v)
		}
	}
	query.Set(headers.APIKeyParam, c.config.APIKey)
	target.RawQuery = query.Encode()

	return target, query, nil
}

func (c *Client) loggableURL(target *url.URL, query url.Values) string {
	u := *target
	u.RawQuery = headers.RedactQuery(query, c.config.HideSensitiveData).Encode()
	return u.String()
}

// encodeBody returns the JSON body for POST and PUT, or nil for verbs without a body.
func encodeBody(req Request) ([]byte, error) {
	if !methodHasBody(req.Method) {
		return nil, nil
	}
	if req.Body == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(req.Body)
}
