package http

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/storacha/go-cryptoutil/core/digest"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
)

// Client sends HTTP requests. *http.Client satisfies it.
type Client interface {
	Do(req *http.Request) (*http.Response, error)
}

// RequestOption is a step configuring an outbound request before it is sent.
type RequestOption func(req *http.Request) error

// WithMethod configures the HTTP method. The default is GET.
func WithMethod(method string) RequestOption {
	return func(req *http.Request) error {
		req.Method = method
		return nil
	}
}

// WithHeader sets a request header, replacing any existing values.
func WithHeader(key, value string) RequestOption {
	return func(req *http.Request) error {
		req.Header.Set(key, value)
		return nil
	}
}

// WithBody configures the request body. The content length is set when it can
// be determined from body, as with http.NewRequest.
func WithBody(body io.Reader) RequestOption {
	return func(req *http.Request) error {
		tmp, err := http.NewRequestWithContext(req.Context(), req.Method, req.URL.String(), body)
		if err != nil {
			return err
		}
		req.Body = tmp.Body
		req.GetBody = tmp.GetBody
		req.ContentLength = tmp.ContentLength
		return nil
	}
}

// content digest algorithm keys from the RFC 9530 registry
var contentDigestKeys = map[string]string{
	"SHA-256": "sha-256",
	"SHA-512": "sha-512",
}

// WithContentDigest sets the Content-Digest header (RFC 9530) to the digest of
// the request body computed with the named algorithm. It must come after
// WithBody. The body is read in full and replaced so it can still be sent.
func WithContentDigest(algorithm string) RequestOption {
	return func(req *http.Request) error {
		d, err := digest.New(algorithm)
		if err != nil {
			return err
		}
		key, ok := contentDigestKeys[d.Algorithm()]
		if !ok {
			return fmt.Errorf("no content digest key for algorithm %s", d.Algorithm())
		}
		var body []byte
		if req.Body != nil && req.Body != http.NoBody {
			body, err = io.ReadAll(req.Body)
			if err != nil {
				return fmt.Errorf("reading request body: %w", err)
			}
			if err := req.Body.Close(); err != nil {
				return fmt.Errorf("closing request body: %w", err)
			}
			if err := WithBody(bytes.NewReader(body))(req); err != nil {
				return err
			}
		}
		sum, err := digest.SumBytes(d, body)
		if err != nil {
			return err
		}
		req.Header.Set("Content-Digest", fmt.Sprintf("%s=:%s:", key, base64.StdEncoding.EncodeToString(sum)))
		return nil
	}
}

// Call is a request that has been sent and the response it received.
type Call struct {
	Request  *http.Request
	Response *http.Response
}

// Close closes the response body.
func (c *Call) Close() error {
	return c.Response.Body.Close()
}

// NewCall sends a request for target through client. The request starts as a
// GET of a copy of target; each option is then applied in order. The trace
// context in ctx is propagated in the request headers. A nil client uses
// http.DefaultClient.
//
// Any response, whatever its status code, is returned as a Call. The caller
// must Close it.
func NewCall(ctx context.Context, client Client, target *url.URL, options ...RequestOption) (*Call, error) {
	if client == nil {
		client = http.DefaultClient
	}
	if target == nil {
		return nil, fmt.Errorf("creating HTTP request: missing target URL")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating HTTP request: %w", err)
	}
	for _, opt := range options {
		if err := opt(req); err != nil {
			return nil, fmt.Errorf("configuring HTTP request: %w", err)
		}
	}
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	res, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("doing HTTP request: %w", err)
	}
	return &Call{Request: req, Response: res}, nil
}
