package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/hitoshi/blogman/internal/model"
)

// PostService は記事リソースのCRUD操作を提供する。
// すべての操作は成功値かエラーのどちらか一方だけを1回返す。
type PostService struct {
	client *Client
}

// NewPostService はPostServiceの新しいインスタンスを生成する。
func NewPostService(client *Client) *PostService {
	return &PostService{client: client}
}

// List は全ユーザーの記事一覧を取得する。
func (s *PostService) List(ctx context.Context) ([]model.Post, error) {
	var posts []model.Post
	if err := s.client.do(ctx, "posts.list", http.MethodGet, "/posts", nil, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// ListByUser は指定ユーザーが所有する記事一覧を取得する。
// 返却順はサーバーの並び順をそのまま保持する。
func (s *PostService) ListByUser(ctx context.Context, userID string) ([]model.Post, error) {
	var posts []model.Post
	path := "/users/posts/" + url.PathEscape(userID)
	if err := s.client.do(ctx, "posts.list_by_user", http.MethodGet, path, nil, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// Get は指定IDの記事を取得する。存在しない場合はNotFound系エラーを返す。
func (s *PostService) Get(ctx context.Context, postID string) (*model.Post, error) {
	var post model.Post
	path := "/posts/" + url.PathEscape(postID)
	if err := s.client.do(ctx, "posts.get", http.MethodGet, path, nil, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

// Create は記事を作成する。IDはサーバーが採番し、作成済みの記事を返す。
func (s *PostService) Create(ctx context.Context, post model.Post) (*model.Post, error) {
	var created model.Post
	if err := s.client.do(ctx, "posts.create", http.MethodPost, "/posts", post, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// Update は指定IDの記事を更新する。存在しない場合はNotFound系エラーを返す。
func (s *PostService) Update(ctx context.Context, postID string, post model.Post) (*model.Post, error) {
	var updated model.Post
	path := "/posts/" + url.PathEscape(postID)
	if err := s.client.do(ctx, "posts.update", http.MethodPut, path, post, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// Like は指定IDの記事のlikeカウンターをサーバー側でインクリメントする。
func (s *PostService) Like(ctx context.Context, postID string) (*model.UpdateOutcome, error) {
	var outcome model.UpdateOutcome
	path := "/posts/like/" + url.PathEscape(postID)
	if err := s.client.do(ctx, "posts.like", http.MethodPut, path, nil, &outcome); err != nil {
		return nil, err
	}
	return &outcome, nil
}

// Dislike は指定IDの記事のdislikeカウンターをサーバー側でインクリメントする。
func (s *PostService) Dislike(ctx context.Context, postID string) (*model.UpdateOutcome, error) {
	var outcome model.UpdateOutcome
	path := "/posts/dislike/" + url.PathEscape(postID)
	if err := s.client.do(ctx, "posts.dislike", http.MethodPut, path, nil, &outcome); err != nil {
		return nil, err
	}
	return &outcome, nil
}

// Delete は指定IDの記事を削除する。
// Affected 0は「該当なし」を意味する正常な結果であり、エラーにはならない。
func (s *PostService) Delete(ctx context.Context, postID string) (*model.DeleteOutcome, error) {
	var outcome model.DeleteOutcome
	path := "/posts/" + url.PathEscape(postID)
	if err := s.client.do(ctx, "posts.delete", http.MethodDelete, path, nil, &outcome); err != nil {
		return nil, err
	}
	return &outcome, nil
}
