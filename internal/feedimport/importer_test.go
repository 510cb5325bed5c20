package feedimport

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/hitoshi/blogman/internal/model"
	"github.com/hitoshi/blogman/internal/session"
)

func newTestLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewJSONHandler(buf, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
}

// capturingCreator は作成された記事を記録するPostCreator。
type capturingCreator struct {
	created []model.Post
	failOn  string // このタイトルの作成だけ失敗させる
}

func (c *capturingCreator) Create(ctx context.Context, post model.Post) (*model.Post, error) {
	if c.failOn != "" && post.Title == c.failOn {
		return nil, errors.New("create failed")
	}
	created := post
	created.PostID = "id-" + post.Title
	c.created = append(c.created, created)
	return &created, nil
}

const importFeed = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>Import Source</title>
    <item>
      <title>Entry 1</title>
      <description>&lt;p&gt;first&lt;/p&gt;&lt;script&gt;x&lt;/script&gt;</description>
      <pubDate>Mon, 20 Jan 2025 10:00:00 GMT</pubDate>
    </item>
    <item>
      <title>Entry 2</title>
      <description>second</description>
      <pubDate>Wed, 15 Jan 2025 10:00:00 GMT</pubDate>
    </item>
    <item>
      <title>Entry 3</title>
      <description>third</description>
    </item>
  </channel>
</rss>`

func newFeedServer(t *testing.T) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		w.Write([]byte(importFeed))
	}))
	t.Cleanup(server.Close)
	return server
}

func newTestImporter(t *testing.T, creator PostCreator, store session.Store, maxPosts int) *Importer {
	t.Helper()
	var buf bytes.Buffer
	guard := permissiveGuard{}
	return NewImporter(ImporterOptions{
		Detector: NewDetector(guard),
		Guard:    guard,
		Creator:  creator,
		Store:    store,
		Logger:   newTestLogger(&buf),
		MaxPosts: maxPosts,
	})
}

// TestImport_CreatesPostsForLoggedInUser はログイン中のユーザー所有で
// フィードの記事が作成されることを検証する。
func TestImport_CreatesPostsForLoggedInUser(t *testing.T) {
	server := newFeedServer(t)

	store := session.NewMemoryStore()
	store.Set(session.KeyUserID, "123")

	creator := &capturingCreator{}
	im := newTestImporter(t, creator, store, 20)

	result, err := im.Import(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Import がエラーを返した: %v", err)
	}

	if result.FeedTitle != "Import Source" {
		t.Errorf("FeedTitle = %q, want Import Source", result.FeedTitle)
	}
	if result.Imported != 3 {
		t.Errorf("Imported = %d, want 3", result.Imported)
	}
	if len(creator.created) != 3 {
		t.Fatalf("作成件数 = %d, want 3", len(creator.created))
	}
	for _, p := range creator.created {
		if p.UserID != "123" {
			t.Errorf("UserID = %q, want 123", p.UserID)
		}
	}
	if creator.created[0].Title != "Entry 1" {
		t.Errorf("先頭の記事 = %q, want Entry 1", creator.created[0].Title)
	}
}

// TestImport_RespectsMaxPosts は上限件数で取り込みが打ち切られることを検証する。
func TestImport_RespectsMaxPosts(t *testing.T) {
	server := newFeedServer(t)

	store := session.NewMemoryStore()
	store.Set(session.KeyUserID, "123")

	creator := &capturingCreator{}
	im := newTestImporter(t, creator, store, 2)

	result, err := im.Import(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Import がエラーを返した: %v", err)
	}
	if result.Imported != 2 {
		t.Errorf("Imported = %d, want 2", result.Imported)
	}
}

// TestImport_SkipsFailedCreates は個別記事の作成失敗がスキップとして
// 数えられ、全体は継続することを検証する。
func TestImport_SkipsFailedCreates(t *testing.T) {
	server := newFeedServer(t)

	store := session.NewMemoryStore()
	store.Set(session.KeyUserID, "123")

	creator := &capturingCreator{failOn: "Entry 2"}
	im := newTestImporter(t, creator, store, 20)

	result, err := im.Import(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Import がエラーを返した: %v", err)
	}
	if result.Imported != 2 {
		t.Errorf("Imported = %d, want 2", result.Imported)
	}
	if result.Skipped != 1 {
		t.Errorf("Skipped = %d, want 1", result.Skipped)
	}
}

// TestImport_RequiresLogin は未ログイン時にエラーになることを検証する。
func TestImport_RequiresLogin(t *testing.T) {
	server := newFeedServer(t)

	creator := &capturingCreator{}
	im := newTestImporter(t, creator, session.NewMemoryStore(), 20)

	if _, err := im.Import(context.Background(), server.URL); err == nil {
		t.Fatal("エラーが返らなかった")
	}
	if len(creator.created) != 0 {
		t.Errorf("未ログインで記事が作成された: %d件", len(creator.created))
	}
}
