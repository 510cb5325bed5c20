// Package api はブログバックエンドのREST APIクライアントを提供する。
//
// すべての操作は単発の非同期ユニットであり、成功値かエラーのどちらか一方だけを
// 正確に1回返す。すべての失敗はNormalizer経由で1回記録されてから呼び出し元へ届く。
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/hitoshi/blogman/internal/apperr"
	"github.com/hitoshi/blogman/internal/model"
)

// maxErrorBodySize はエラーレスポンスボディの最大読み取りサイズ。
const maxErrorBodySize = 64 * 1024

// TokenSource はリクエストに付与するアクセストークンの供給元。
// 空文字列を返した場合はAuthorizationヘッダーを付与しない。
type TokenSource interface {
	AccessToken() (string, error)
}

// MetricsRecorder はリクエスト結果のメトリクス記録インターフェース。
// metrics.Recorderの部分集合として定義する。
type MetricsRecorder interface {
	RecordRequest(op string, statusCode int)
	RecordFailure(op string, kind string)
	RecordLatency(op string, duration time.Duration)
}

// Client はブログAPIのベースクライアント。
// 送信レート制限、リクエストID付与、メトリクス記録、失敗の正規化を一手に担う。
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	normalizer *apperr.Normalizer
	metrics    MetricsRecorder
	tokens     TokenSource
	logger     *slog.Logger
}

// ClientOptions はClient生成時の設定を保持する。
type ClientOptions struct {
	BaseURL    string
	HTTPClient *http.Client
	Limiter    *rate.Limiter
	Normalizer *apperr.Normalizer
	Metrics    MetricsRecorder
	Tokens     TokenSource
	Logger     *slog.Logger
}

// NewClient はClientの新しいインスタンスを生成する。
// HTTPClientが未指定の場合はhttp.DefaultClientを使用する。
// Limiterが未指定の場合はレート制限を行わない。
func NewClient(opts ClientOptions) *Client {
	if opts.HTTPClient == nil {
		opts.HTTPClient = http.DefaultClient
	}
	if opts.Limiter == nil {
		opts.Limiter = rate.NewLimiter(rate.Inf, 0)
	}
	if opts.Metrics == nil {
		opts.Metrics = nopMetrics{}
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Client{
		baseURL:    opts.BaseURL,
		httpClient: opts.HTTPClient,
		limiter:    opts.Limiter,
		normalizer: opts.Normalizer,
		metrics:    opts.Metrics,
		tokens:     opts.Tokens,
		logger:     opts.Logger,
	}
}

// nopMetrics はメトリクス未設定時のフォールバック。
type nopMetrics struct{}

func (nopMetrics) RecordRequest(op string, statusCode int)         {}
func (nopMetrics) RecordFailure(op string, kind string)            {}
func (nopMetrics) RecordLatency(op string, duration time.Duration) {}

// do はHTTPリクエストを1回実行し、レスポンスをoutへデコードする。
// outがnilの場合はレスポンスボディを読み捨てる。
// すべての失敗はNormalizer経由で正規化・記録されてから返る。
func (c *Client) do(ctx context.Context, op, method, path string, body any, out any) error {
	// 送信レート制限
	if err := c.limiter.Wait(ctx); err != nil {
		return c.fail(op, model.NewTransportError(op, err))
	}

	var reqBody io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return c.fail(op, model.NewTransportError(op, fmt.Errorf("failed to encode request body: %w", err)))
		}
		reqBody = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return c.fail(op, model.NewTransportError(op, err))
	}

	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.tokens != nil {
		token, err := c.tokens.AccessToken()
		if err != nil {
			c.logger.Warn("failed to read access token, sending unauthenticated request",
				slog.String("op", op),
				slog.String("error", err.Error()),
			)
		} else if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	c.metrics.RecordLatency(op, time.Since(start))
	if err != nil {
		c.metrics.RecordFailure(op, string(model.KindTransport))
		return c.fail(op, model.NewTransportError(op, err))
	}
	defer resp.Body.Close()

	c.metrics.RecordRequest(op, resp.StatusCode)

	if resp.StatusCode >= 400 {
		c.metrics.RecordFailure(op, string(model.KindServer))
		bodyBytes, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))
		return c.fail(op, model.NewServerError(op, resp.StatusCode, string(bodyBytes)))
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		c.metrics.RecordFailure(op, string(model.KindTransport))
		return c.fail(op, model.NewTransportError(op, fmt.Errorf("failed to decode response body: %w", err)))
	}

	return nil
}

// fail は失敗をNormalizerへ委譲する。Normalizer未設定の場合はそのまま返す。
func (c *Client) fail(op string, err error) error {
	if c.normalizer == nil {
		return err
	}
	return c.normalizer.Normalize(op, err)
}
