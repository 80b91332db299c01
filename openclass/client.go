// Package openclass exposes the OpenClass course, person and course role resources on top of
// the authenticated request dispatcher.
package openclass

import (
	"context"
	"net/url"
	"strings"

	"github.com/classowl/go-openclass/httpclient"
)

// Client issues resource calls through an authenticated httpclient.Client.
type Client struct {
	HTTP *httpclient.Client
}

// NewClient builds the dispatcher from config and establishes a session.
func NewClient(ctx context.Context, config httpclient.ClientConfig, opts ...httpclient.ClientOption) (*Client, error) {
	c, err := httpclient.BuildClient(ctx, config, opts...)
	if err != nil {
		return nil, err
	}
	return &Client{HTTP: c}, nil
}

// NewClientFromHTTP wraps an existing dispatcher.
func NewClientFromHTTP(c *httpclient.Client) *Client {
	return &Client{HTTP: c}
}

// endpoint joins the base URL with escaped path segments.
func (c *Client) endpoint(segments ...string) string {
	var sb strings.Builder
	sb.WriteString(c.HTTP.BaseURL())
	for _, s := range segments {
		sb.WriteByte('/')
		sb.WriteString(url.PathEscape(s))
	}
	return sb.String()
}
