package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/hitoshi/blogman/internal/model"
)

// CategoryService はカテゴリリソースのCRUD操作を提供する。
// PostServiceと同一の失敗ポリシー（Normalizer経由で1回記録して再送出）に従う。
type CategoryService struct {
	client *Client
}

// NewCategoryService はCategoryServiceの新しいインスタンスを生成する。
func NewCategoryService(client *Client) *CategoryService {
	return &CategoryService{client: client}
}

// ListByUser は指定ユーザーが所有するカテゴリ一覧を取得する。
func (s *CategoryService) ListByUser(ctx context.Context, userID string) ([]model.Category, error) {
	var categories []model.Category
	path := "/users/categories/" + url.PathEscape(userID)
	if err := s.client.do(ctx, "categories.list_by_user", http.MethodGet, path, nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// Get は指定IDのカテゴリを取得する。存在しない場合はNotFound系エラーを返す。
func (s *CategoryService) Get(ctx context.Context, categoryID string) (*model.Category, error) {
	var category model.Category
	path := "/categories/" + url.PathEscape(categoryID)
	if err := s.client.do(ctx, "categories.get", http.MethodGet, path, nil, &category); err != nil {
		return nil, err
	}
	return &category, nil
}

// Create はカテゴリを作成する。IDはサーバーが採番し、作成済みのカテゴリを返す。
func (s *CategoryService) Create(ctx context.Context, category model.Category) (*model.Category, error) {
	var created model.Category
	if err := s.client.do(ctx, "categories.create", http.MethodPost, "/categories", category, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// Update は指定IDのカテゴリを更新する。存在しない場合はNotFound系エラーを返す。
func (s *CategoryService) Update(ctx context.Context, categoryID string, category model.Category) (*model.Category, error) {
	var updated model.Category
	path := "/categories/" + url.PathEscape(categoryID)
	if err := s.client.do(ctx, "categories.update", http.MethodPut, path, category, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete は指定IDのカテゴリを削除する。
// Affected 0は「該当なし」を意味する正常な結果であり、エラーにはならない。
func (s *CategoryService) Delete(ctx context.Context, categoryID string) (*model.DeleteOutcome, error) {
	var outcome model.DeleteOutcome
	path := "/categories/" + url.PathEscape(categoryID)
	if err := s.client.do(ctx, "categories.delete", http.MethodDelete, path, nil, &outcome); err != nil {
		return nil, err
	}
	return &outcome, nil
}
