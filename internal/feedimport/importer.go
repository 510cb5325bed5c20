package feedimport

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/hitoshi/blogman/internal/model"
	"github.com/hitoshi/blogman/internal/sanitize"
	"github.com/hitoshi/blogman/internal/session"
)

// PostCreator は記事作成のインターフェース。
// api.PostServiceの部分集合として定義する。
type PostCreator interface {
	Create(ctx context.Context, post model.Post) (*model.Post, error)
}

// Result はインポート実行の結果を表す。
type Result struct {
	FeedTitle string
	Imported  int
	Skipped   int
}

// Importer は外部フィードの記事を自分のブログへ取り込む。
// フロー: URL検出 → SSRF防止付きフェッチ → gofeedパース → サニタイズ → 記事作成。
type Importer struct {
	detector  *Detector
	guard     SourceGuard
	creator   PostCreator
	store     session.Store
	sanitizer sanitize.Sanitizer
	logger    *slog.Logger
	timeout   time.Duration
	fetchMax  int64
	maxPosts  int
}

// ImporterOptions はImporter生成時の設定を保持する。
type ImporterOptions struct {
	Detector  *Detector
	Guard     SourceGuard
	Creator   PostCreator
	Store     session.Store
	Sanitizer sanitize.Sanitizer
	Logger    *slog.Logger
	Timeout   time.Duration
	FetchMax  int64
	MaxPosts  int
}

// NewImporter はImporterの新しいインスタンスを生成する。
func NewImporter(opts ImporterOptions) *Importer {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	if opts.FetchMax <= 0 {
		opts.FetchMax = 5 * 1024 * 1024
	}
	if opts.MaxPosts <= 0 {
		opts.MaxPosts = 20
	}
	return &Importer{
		detector:  opts.Detector,
		guard:     opts.Guard,
		creator:   opts.Creator,
		store:     opts.Store,
		sanitizer: opts.Sanitizer,
		logger:    opts.Logger,
		timeout:   opts.Timeout,
		fetchMax:  opts.FetchMax,
		maxPosts:  opts.MaxPosts,
	}
}

// Import は指定URLのフィードから記事を取り込む。
// フィードの並び順（通常は新しい順）の先頭からmaxPosts件を上限とする。
// 個々の記事の作成失敗はスキップとして数え、インポート全体は継続する。
func (im *Importer) Import(ctx context.Context, inputURL string) (*Result, error) {
	userID, err := im.store.Get(session.KeyUserID)
	if err != nil {
		return nil, fmt.Errorf("failed to read session: %w", err)
	}
	if userID == "" {
		return nil, fmt.Errorf("not logged in: run login first")
	}

	feedURL, err := im.detector.DetectFeedURL(ctx, inputURL)
	if err != nil {
		return nil, err
	}

	parsed, err := im.fetchAndParse(ctx, feedURL)
	if err != nil {
		return nil, err
	}

	result := &Result{FeedTitle: parsed.Title}
	for _, item := range parsed.Items {
		if result.Imported >= im.maxPosts {
			break
		}

		post := im.toPost(item, userID)
		if _, err := im.creator.Create(ctx, post); err != nil {
			// 失敗の詳細はNormalizerが記録済み。ここでは件数だけ数える。
			result.Skipped++
			continue
		}
		result.Imported++
	}

	im.logger.Info("feed import finished",
		slog.String("feed_url", feedURL),
		slog.String("feed_title", parsed.Title),
		slog.Int("imported", result.Imported),
		slog.Int("skipped", result.Skipped),
	)

	return result, nil
}

// fetchAndParse はフィードを取得してgofeedでパースする。
func (im *Importer) fetchAndParse(ctx context.Context, feedURL string) (*gofeed.Feed, error) {
	client := im.guard.NewSafeClient(im.timeout)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, feedURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("User-Agent", "Blogman/1.0 Feed Importer")
	req.Header.Set("Accept", "application/rss+xml, application/atom+xml, application/xml, text/xml, */*")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("feed returned status %d", resp.StatusCode)
	}

	parsed, err := gofeed.NewParser().Parse(io.LimitReader(resp.Body, im.fetchMax))
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed: %w", err)
	}

	return parsed, nil
}

// toPost はフィード記事を作成用のPostに変換する。
func (im *Importer) toPost(item *gofeed.Item, userID string) model.Post {
	description := item.Content
	if description == "" {
		description = item.Description
	}
	if im.sanitizer != nil {
		description = im.sanitizer.Sanitize(description)
	}

	publishedAt := time.Now()
	if item.PublishedParsed != nil {
		publishedAt = *item.PublishedParsed
	}

	return model.Post{
		Title:           item.Title,
		Description:     description,
		PublicationDate: publishedAt,
		UserID:          userID,
	}
}
