package service

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"delta_bot/internal/modules/config"

	"github.com/bytedance/sonic"
	"github.com/opentracing/opentracing-go"
	"github.com/opentracing/opentracing-go/ext"
	"github.com/pkg/errors"
)

// Client is the authenticated Delta Exchange REST transport.
type Client struct {
	http      *http.Client
	baseURL   string
	apiKey    string
	apiSecret string
	tracer    opentracing.Tracer
	now       func() time.Time
}

func NewClient(cfg *config.Config, tracer opentracing.Tracer) *Client {
	if tracer == nil {
		tracer = opentracing.NoopTracer{}
	}
	timeout := cfg.Delta.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		http:      &http.Client{Timeout: timeout},
		baseURL:   strings.TrimRight(cfg.Delta.BaseURL, "/"),
		apiKey:    cfg.Delta.APIKey,
		apiSecret: cfg.Delta.APISecret,
		tracer:    tracer,
		now:       time.Now,
	}
}

// sign returns hex(HMAC-SHA256(secret, requestTime + method + path)).
func (c *Client) sign(requestTime, method, path string) string {
	h := hmac.New(sha256.New, []byte(c.apiSecret))
	h.Write([]byte(requestTime + method + path))
	return hex.EncodeToString(h.Sum(nil))
}

// do performs one signed round trip and decodes the "result" field into out.
func (c *Client) do(
	ctx context.Context,
	op string,
	method string,
	path string,
	query url.Values,
	body any,
	out any,
) error {
	span, ctx := opentracing.StartSpanFromContextWithTracer(ctx, c.tracer, "delta."+op)
	defer span.Finish()
	ext.HTTPMethod.Set(span, method)
	ext.HTTPUrl.Set(span, path)

	var payload io.Reader
	if body != nil {
		raw, err := sonic.Marshal(body)
		if err != nil {
			return errors.Wrapf(err, "%s marshal", op)
		}
		payload = bytes.NewReader(raw)
	}

	fullURL := c.baseURL + path
	if len(query) > 0 {
		fullURL += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, fullURL, payload)
	if err != nil {
		return errors.Wrapf(err, "%s new request", op)
	}

	requestTime := strconv.FormatInt(c.now().UnixMilli(), 10)
	req.Header.Set("api-key", c.apiKey)
	req.Header.Set("request-time", requestTime)
	req.Header.Set("signature", c.sign(requestTime, method, path))
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		ext.Error.Set(span, true)
		return errors.Wrapf(err, "%s do", op)
	}
	defer resp.Body.Close()

	data, _ := io.ReadAll(resp.Body)
	ext.HTTPStatusCode.Set(span, uint16(resp.StatusCode))
	if resp.StatusCode != http.StatusOK {
		ext.Error.Set(span, true)
		return errors.Errorf("%s: HTTP %d: %s", op, resp.StatusCode, string(data))
	}

	var env struct {
		Success *bool           `json:"success"`
		Result  json.RawMessage `json:"result"`
		Error   *apiError       `json:"error"`
	}
	if err := sonic.Unmarshal(data, &env); err != nil {
		return errors.Wrapf(err, "%s decode: body=%s", op, string(data))
	}
	if env.Success != nil && !*env.Success {
		ext.Error.Set(span, true)
		return errors.Errorf("%s rejected: %s", op, env.Error)
	}
	if out == nil || len(env.Result) == 0 {
		return nil
	}
	if err := sonic.Unmarshal(env.Result, out); err != nil {
		return errors.Wrapf(err, "%s decode result: body=%s", op, string(data))
	}
	return nil
}
