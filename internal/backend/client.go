package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"accumulator/internal/apperrors"
)

const maxBodyBytes = 8 << 20

// Session carries the signed-in user's backend cookie. UserID scopes gateway
// side caches and is never sent upstream.
type Session struct {
	UserID int64
	Cookie string
}

// Observer receives the latency and outcome of every backend call.
type Observer interface {
	ObserveBackendCall(operation, outcome string, d time.Duration)
}

// Client calls the attendance backend REST API.
type Client struct {
	BaseURL  string
	HTTP     *http.Client
	observer Observer
	validate *validator.Validate
}

// New creates a client with the given request timeout. observer may be nil.
func New(baseURL string, timeout time.Duration, observer Observer) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		BaseURL:  strings.TrimRight(baseURL, "/"),
		HTTP:     &http.Client{Timeout: timeout},
		observer: observer,
		validate: validator.New(),
	}
}

type call struct {
	op      string
	method  string
	path    string
	session *Session
	body    any
	out     any
	// convert runs after out is decoded, while the call is still observed.
	convert func() error
}

type envelope struct {
	Data json.RawMessage `json:"data"`
}

type errorBody struct {
	Message string `json:"message"`
	Err     string `json:"err"`
}

// do performs one API call. It returns the cookies set by the response so auth
// calls can build a session from them.
func (c *Client) do(ctx context.Context, cl call) (cookies []*http.Cookie, err error) {
	start := time.Now()
	defer func() {
		if c.observer == nil {
			return
		}
		outcome := "ok"
		if err != nil {
			outcome = strings.ToLower(apperrors.FromError(err).Code)
		}
		c.observer.ObserveBackendCall(cl.op, outcome, time.Since(start))
	}()

	var reqBody io.Reader
	if cl.body != nil {
		b, err := json.Marshal(cl.body)
		if err != nil {
			return nil, err
		}
		reqBody = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, cl.method, c.BaseURL+"/api"+cl.path, reqBody)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if cl.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if cl.session != nil && cl.session.Cookie != "" {
		req.Header.Set("Cookie", cl.session.Cookie)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrRequestFailed.Code, http.StatusBadGateway, "backend unreachable")
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrRequestFailed.Code, http.StatusBadGateway, "read backend response")
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, apperrors.RequestFailed(resp.StatusCode, errorMessage(raw))
	}

	if cl.out != nil {
		if err := c.decode(cl.op, raw, cl.out); err != nil {
			return nil, err
		}
	}
	if cl.convert != nil {
		if err := cl.convert(); err != nil {
			return nil, err
		}
	}
	return resp.Cookies(), nil
}

func (c *Client) decode(op string, raw []byte, out any) error {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return invalidPayload(op, err)
	}
	if len(env.Data) == 0 {
		return invalidPayload(op, errors.New("missing data"))
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return invalidPayload(op, err)
	}
	return nil
}

// check validates one decoded wire value against its struct tags.
func (c *Client) check(op string, v any) error {
	if err := c.validate.Struct(v); err != nil {
		return invalidPayload(op, err)
	}
	return nil
}

func invalidPayload(op string, err error) error {
	return apperrors.Wrap(err, apperrors.ErrInvalidPayload.Code, apperrors.ErrInvalidPayload.Status,
		fmt.Sprintf("backend returned a malformed %s payload", op))
}

// errorMessage extracts the user-facing message from an error body. Bodies
// that are not JSON are used verbatim.
func errorMessage(raw []byte) string {
	var body errorBody
	if err := json.Unmarshal(raw, &body); err == nil {
		if body.Message != "" {
			return body.Message
		}
		return body.Err
	}
	return strings.TrimSpace(string(raw))
}

// pathID checks that a route parameter is a plain decimal id before it is put
// into a backend path. The original string is kept as is.
func pathID(name, raw string) (string, error) {
	if raw == "" || len(raw) > 19 {
		return "", apperrors.Clone(apperrors.ErrValidation, "invalid "+name)
	}
	for _, r := range raw {
		if r < '0' || r > '9' {
			return "", apperrors.Clone(apperrors.ErrValidation, "invalid "+name)
		}
	}
	return raw, nil
}

// cookieHeader joins response cookies into a Cookie request header value.
func cookieHeader(cookies []*http.Cookie) string {
	parts := make([]string, 0, len(cookies))
	for _, ck := range cookies {
		if ck.Value == "" || ck.MaxAge < 0 {
			continue
		}
		parts = append(parts, ck.Name+"="+ck.Value)
	}
	return strings.Join(parts, "; ")
}

// Health reports whether the backend answers HTTP at all.
func (c *Client) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/", nil)
	if err != nil {
		return err
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("backend unavailable: %w", err)
	}
	resp.Body.Close()
	return nil
}
