package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

// TokenSource hands out the bearer token for a single request.
// The client asks for a token on every call and never caches it.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// TokenFunc adapts a plain function to TokenSource.
type TokenFunc func(ctx context.Context) (string, error)

func (f TokenFunc) Token(ctx context.Context) (string, error) {
	return f(ctx)
}

// StaticToken is a fixed token, handy for dev sessions and tests.
type StaticToken string

func (s StaticToken) Token(context.Context) (string, error) {
	return string(s), nil
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// Client is the profile/prompt service client. Every operation is a thin
// specialization of Do.
type Client struct {
	baseURL string
	tokens  TokenSource
	http    *http.Client
	logger  *zap.Logger
}

func New(baseURL string, tokens TokenSource, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		tokens:  tokens,
		http:    &http.Client{Timeout: 60 * time.Second},
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Response is a successful (2xx) reply. JSON bodies are flagged so callers can
// decode them; anything else is exposed as raw text.
type Response struct {
	StatusCode  int
	ContentType string
	Body        []byte
}

func (r *Response) IsJSON() bool {
	mediaType, _, err := mime.ParseMediaType(r.ContentType)
	if err != nil {
		return false
	}
	return mediaType == "application/json" || strings.HasSuffix(mediaType, "+json")
}

func (r *Response) Text() string {
	return string(r.Body)
}

// Decode unmarshals a JSON body into out.
func (r *Response) Decode(out any) error {
	if !r.IsJSON() {
		return &Error{Kind: KindDecode, StatusCode: r.StatusCode, Message: "response is not JSON"}
	}
	if err := json.Unmarshal(r.Body, out); err != nil {
		return &Error{Kind: KindDecode, StatusCode: r.StatusCode, Message: "invalid JSON response", Err: err}
	}
	return nil
}

// Do is the authenticated-request primitive: it fetches a fresh token,
// attaches JSON and bearer headers, performs a single attempt, and turns any
// non-2xx status into an *Error carrying the status code.
func (c *Client) Do(ctx context.Context, method, path string, body any) (*Response, error) {
	token, err := c.tokens.Token(ctx)
	if err != nil {
		return nil, &Error{Kind: KindAuth, Message: "could not obtain session token", Err: err}
	}

	header := http.Header{}
	header.Set("Authorization", "Bearer "+token)

	resp, err := send(ctx, c.http, c.baseURL+path, method, header, body)
	if err != nil {
		c.logger.Error("request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err),
		)
		return nil, err
	}
	c.logger.Debug("request completed",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
	)
	return resp, nil
}

// send performs one HTTP round trip. It is shared by the authenticated client
// and the identity provider, which talks to public endpoints.
func send(ctx context.Context, hc *http.Client, url, method string, header http.Header, body any) (*Response, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, &Error{Kind: KindEncode, Message: "could not encode request body", Err: err}
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, &Error{Kind: KindNetwork, Message: "could not build request", Err: err}
	}
	for key, values := range header {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	res, err := hc.Do(req)
	if err != nil {
		return nil, &Error{Kind: KindNetwork, Message: err.Error(), Err: err}
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, &Error{Kind: KindNetwork, StatusCode: res.StatusCode, Message: "could not read response", Err: err}
	}

	out := &Response{
		StatusCode:  res.StatusCode,
		ContentType: res.Header.Get("Content-Type"),
		Body:        raw,
	}
	if res.StatusCode < 200 || res.StatusCode > 299 {
		return nil, httpError(out)
	}
	return out, nil
}

func httpError(r *Response) *Error {
	kind := KindHTTP
	if r.StatusCode == http.StatusUnauthorized {
		kind = KindUnauthorized
	}
	e := &Error{Kind: kind, StatusCode: r.StatusCode}
	if r.IsJSON() {
		var env ErrorEnvelope
		if json.Unmarshal(r.Body, &env) == nil {
			e.Message = env.Message
		}
	}
	if e.Message == "" {
		e.Message = http.StatusText(r.StatusCode)
	}
	return e
}

// call runs Do and unwraps the {message, userId, data} envelope into T.
func call[T any](ctx context.Context, c *Client, method, path string, body any) (*Envelope[T], error) {
	resp, err := c.Do(ctx, method, path, body)
	if err != nil {
		return nil, err
	}
	var env Envelope[T]
	if err := resp.Decode(&env); err != nil {
		return nil, err
	}
	return &env, nil
}

func (c *Client) String() string {
	return fmt.Sprintf("apiclient(%s)", c.baseURL)
}
