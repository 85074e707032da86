// Package api is the typed HTTP client for the marketplace backend. The
// backend owns the contract; this package consumes it as-is and converts
// transport and status failures into errors the stores turn into state.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"careerhub/client/internal/config"
)

const maxBodyBytes = 10 * 1024 * 1024 // 10 MiB

// TokenSource supplies the current bearer credential, or "" when
// unauthenticated. The session layer provides it; the client never caches
// the token itself.
type TokenSource func() string

type Client struct {
	baseURL string
	http    *http.Client
	upload  *http.Client
	token   TokenSource
	log     zerolog.Logger
}

func NewClient(cfg config.APIConfig, token TokenSource, log zerolog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    &http.Client{Timeout: cfg.RequestTimeout},
		upload:  &http.Client{Timeout: cfg.UploadTimeout},
		token:   token,
		log:     log,
	}
}

// Error is a non-2xx backend reply, decoded from its error body when one
// was present.
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("backend: HTTP %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("backend: HTTP %d", e.StatusCode)
}

type errorBody struct {
	ErrorMsg string `json:"error"`
	Message  string `json:"message"`
}

// envelope is the {"data": ...} wrapper the marketplace collection
// endpoints use. Auth endpoints reply with bare JSON instead.
type envelope struct {
	Data json.RawMessage `json:"data"`
}

func (c *Client) doJSON(ctx context.Context, method, path string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.send(c.http, req, out)
}

// doMultipart sends a multipart/form-data request built by fill. File parts
// are streamed from the supplied readers; the longer upload timeout applies.
func (c *Client) doMultipart(ctx context.Context, method, path string, fill func(w *multipart.Writer) error, out any) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	if err := fill(w); err != nil {
		return fmt.Errorf("build multipart body: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("close multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, &buf)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	return c.send(c.upload, req, out)
}

func (c *Client) send(hc *http.Client, req *http.Request, out any) error {
	if tok := c.token(); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}
	req.Header.Set("X-Request-Id", uuid.NewString())

	resp, err := hc.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var eb errorBody
		_ = json.Unmarshal(raw, &eb)
		msg := eb.ErrorMsg
		if msg == "" {
			msg = eb.Message
		}
		c.log.Debug().
			Str("method", req.Method).
			Str("path", req.URL.Path).
			Int("status", resp.StatusCode).
			Msg("backend error reply")
		return &Error{StatusCode: resp.StatusCode, Message: msg}
	}

	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// getData fetches an envelope-wrapped payload and decodes its data field.
func (c *Client) getData(ctx context.Context, path string, out any) error {
	var env envelope
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &env); err != nil {
		return err
	}
	if len(env.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("decode data field: %w", err)
	}
	return nil
}

// postData posts a JSON body and decodes the envelope data of the reply.
func (c *Client) postData(ctx context.Context, path string, body, out any) error {
	var env envelope
	if err := c.doJSON(ctx, http.MethodPost, path, body, &env); err != nil {
		return err
	}
	if out == nil || len(env.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("decode data field: %w", err)
	}
	return nil
}
