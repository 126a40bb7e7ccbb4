package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/kaffecito/kaffecito/internal/session"
	"github.com/kaffecito/kaffecito/pkg/config"
	pkgerrors "github.com/kaffecito/kaffecito/pkg/errors"
	"github.com/kaffecito/kaffecito/pkg/logger"
	"github.com/kaffecito/kaffecito/pkg/types"
)

// UnauthorizedHook is invoked after the session has been invalidated on a
// 401, letting the caller route the user back to login.
type UnauthorizedHook func()

// Client is the single construction point for backend access: one base URL,
// one bearer-token source, one 401 funnel. No retries, no backoff.
type Client struct {
	base           string
	http           *http.Client
	sess           session.Store
	logg           *logger.Logger
	onUnauthorized UnauthorizedHook
}

func New(cfg config.APIConfig, sess session.Store, logg *logger.Logger) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("API base URL required")
	}
	if sess == nil {
		return nil, fmt.Errorf("session store required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}

	return &Client{
		base: strings.TrimRight(cfg.BaseURL, "/"),
		http: &http.Client{
			// Timeout stays zero unless configured; the transport
			// default applies.
			Timeout:   cfg.Timeout,
			Transport: newBearerTransport(http.DefaultTransport, sess),
		},
		sess: sess,
		logg: logg,
	}, nil
}

// OnUnauthorized registers the login handoff callback.
func (c *Client) OnUnauthorized(hook UnauthorizedHook) {
	c.onUnauthorized = hook
}

func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, body, out)
}

func (c *Client) Patch(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPatch, path, body, out)
}

func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, body, out)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encoding request body")
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, reader)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "building request")
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.logg.Error(ctx, "request failed", err)
		return pkgerrors.Wrap(pkgerrors.CodeNetwork, err, pkgerrors.MetadataFor(pkgerrors.CodeNetwork).PublicMessage)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if out == nil {
			_, _ = io.Copy(io.Discard, resp.Body)
			return nil
		}
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "decoding response body")
		}
		return nil
	}

	return c.failure(ctx, resp)
}

// failure maps a non-2xx response to the client error taxonomy. A 401 tears
// the session down through its single invalidation entry point before the
// error propagates; the request itself is never retried.
func (c *Client) failure(ctx context.Context, resp *http.Response) error {
	var envelope types.ErrorEnvelope
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	_ = json.Unmarshal(raw, &envelope)

	if resp.StatusCode == http.StatusUnauthorized {
		if err := c.sess.Invalidate(); err != nil {
			c.logg.Error(ctx, "failed to clear session", err)
		}
		if c.onUnauthorized != nil {
			c.onUnauthorized()
		}
	}

	err := pkgerrors.FromStatus(resp.StatusCode, envelope.Message.String())
	c.logg.Warn(c.logg.WithField(ctx, "status", resp.StatusCode), err.Message())
	return err
}
