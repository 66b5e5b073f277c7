// Package gateway is the typed HTTP client for the CampShare backend:
// one method per remote operation, bearer injection, and centralized
// error mapping. All business logic lives on the other side of it.
package gateway

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

	"github.com/gofrs/uuid/v5"
	"go.uber.org/zap"

	"github.com/campshare/campshare-cli/internal/errs"
)

// TokenSource yields the current bearer token, or "" when logged out.
// It is read at request time so a teardown mid-flight is respected by
// the next call.
type TokenSource func() string

// Gateway issues requests against one backend base path.
type Gateway struct {
	baseURL string
	http    *http.Client
	token   TokenSource
	log     *zap.Logger

	mu           sync.Mutex
	unauthorized []func()
}

// Option configures a Gateway.
type Option func(*Gateway)

// WithHTTPClient overrides the underlying client (timeouts, transports).
func WithHTTPClient(c *http.Client) Option {
	return func(g *Gateway) { g.http = c }
}

// WithTokenSource sets where bearer tokens come from.
func WithTokenSource(ts TokenSource) Option {
	return func(g *Gateway) { g.token = ts }
}

// WithLogger sets the structured logger.
func WithLogger(log *zap.Logger) Option {
	return func(g *Gateway) { g.log = log }
}

// New builds a Gateway for baseURL (no trailing slash needed).
func New(baseURL string, opts ...Option) *Gateway {
	g := &Gateway{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
		token:   func() string { return "" },
		log:     zap.NewNop(),
	}
	for _, o := range opts {
		o(g)
	}
	return g
}

// OnUnauthorized registers fn to run whenever any authenticated call
// comes back 401. The session store registers itself here; that is how
// a rejected token anywhere tears the session down process-wide.
func (g *Gateway) OnUnauthorized(fn func()) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.unauthorized = append(g.unauthorized, fn)
}

func (g *Gateway) notifyUnauthorized() {
	g.mu.Lock()
	fns := make([]func(), len(g.unauthorized))
	copy(fns, g.unauthorized)
	g.mu.Unlock()
	for _, fn := range fns {
		fn()
	}
}

// detailBody is FastAPI's error envelope.
type detailBody struct {
	Detail string `json:"detail"`
}

// do issues one JSON request and decodes the reply into out (skipped when
// out is nil). Bearer auth is attached when the token source has one.
func (g *Gateway) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		rd = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, g.urlFor(path, query), rd)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return g.send(req, path, out, true)
}

func (g *Gateway) urlFor(path string, query url.Values) string {
	u := g.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

// send executes req, maps errors, and decodes 2xx bodies into out.
func (g *Gateway) send(req *http.Request, path string, out any, authed bool) error {
	reqID, _ := uuid.NewV4()
	if authed {
		if tok := g.token(); tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}

	start := time.Now()
	resp, err := g.http.Do(req)
	if err != nil {
		g.log.Warn("request failed",
			zap.String("req_id", reqID.String()),
			zap.String("method", req.Method),
			zap.String("path", path),
			zap.Error(err),
		)
		return &errs.RemoteError{Status: 0, Cause: err}
	}
	defer resp.Body.Close()

	g.log.Info("request",
		zap.String("req_id", reqID.String()),
		zap.String("method", req.Method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("dur", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var db detailBody
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
		_ = json.Unmarshal(raw, &db)
		if resp.StatusCode == http.StatusUnauthorized && authed {
			g.notifyUnauthorized()
		}
		return &errs.RemoteError{Status: resp.StatusCode, Detail: db.Detail}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}
