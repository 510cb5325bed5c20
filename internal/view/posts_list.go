package view

import (
	"context"

	"github.com/hitoshi/blogman/internal/apperr"
	"github.com/hitoshi/blogman/internal/model"
	"github.com/hitoshi/blogman/internal/sanitize"
	"github.com/hitoshi/blogman/internal/session"
)

// PostLister は記事一覧ビューが必要とする操作。
// api.PostServiceの部分集合として定義する。
type PostLister interface {
	ListByUser(ctx context.Context, userID string) ([]model.Post, error)
	Delete(ctx context.Context, postID string) (*model.DeleteOutcome, error)
}

// PostsList は自分の記事一覧のビューコンポーネント。
type PostsList struct {
	service   PostLister
	store     session.Store
	nav       Navigator
	reporter  apperr.Reporter
	sanitizer sanitize.Sanitizer

	// posts はサーバーの並び順のままの一覧。Load失敗時は直前の値を維持する。
	posts []model.Post
}

// NewPostsList はPostsListを生成する。
func NewPostsList(
	service PostLister,
	store session.Store,
	nav Navigator,
	reporter apperr.Reporter,
	sanitizer sanitize.Sanitizer,
) *PostsList {
	return &PostsList{
		service:   service,
		store:     store,
		nav:       nav,
		reporter:  reporter,
		sanitizer: sanitizer,
	}
}

// Load はセッションストアのuser_idで自分の記事一覧を取得する。
// 成功時はサーバーの並び順を保持したまま一覧を差し替え、説明文をサニタイズする。
// 失敗時はコンポーネント自身のフックで1回報告し、一覧は変更しない
// （Normalizerの記録とは別の、ビュー層の独立した記録）。
func (v *PostsList) Load(ctx context.Context) {
	userID, err := v.store.Get(session.KeyUserID)
	if err != nil {
		v.reporter.ReportError("view", "posts_list.load", err)
		return
	}

	posts, err := v.service.ListByUser(ctx, userID)
	if err != nil {
		v.reporter.ReportError("view", "posts_list.load", err)
		return
	}

	if v.sanitizer != nil {
		for i := range posts {
			posts[i].Description = v.sanitizer.Sanitize(posts[i].Description)
		}
	}
	v.posts = posts
}

// Posts は現在保持している一覧を返す。
func (v *PostsList) Posts() []model.Post {
	return v.posts
}

// CreatePost は記事作成画面へ遷移する。この層ではデータ変更を行わない。
func (v *PostsList) CreatePost() {
	v.nav.NavigateByURL("/user/post/")
}

// UpdatePost は記事編集画面へ遷移する。この層ではデータ変更を行わない。
func (v *PostsList) UpdatePost(postID string) {
	v.nav.NavigateByURL("/user/post/" + postID)
}

// DeletePost は記事を削除し、1件以上削除された場合は一覧を再取得する。
// Affected 0（該当なし）はエラーではないため報告しない。
func (v *PostsList) DeletePost(ctx context.Context, postID string) {
	outcome, err := v.service.Delete(ctx, postID)
	if err != nil {
		v.reporter.ReportError("view", "posts_list.delete", err)
		return
	}
	if outcome.Affected >= 1 {
		v.Load(ctx)
	}
}
