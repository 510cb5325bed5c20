package view

import (
	"context"

	"github.com/hitoshi/blogman/internal/apperr"
	"github.com/hitoshi/blogman/internal/model"
	"github.com/hitoshi/blogman/internal/sanitize"
	"github.com/hitoshi/blogman/internal/session"
)

// CategoryLister はカテゴリ一覧ビューが必要とする操作。
// api.CategoryServiceの部分集合として定義する。
type CategoryLister interface {
	ListByUser(ctx context.Context, userID string) ([]model.Category, error)
	Delete(ctx context.Context, categoryID string) (*model.DeleteOutcome, error)
}

// CategoriesList は自分のカテゴリ一覧のビューコンポーネント。
// PostsListと同じ取得・失敗報告ポリシーに従う。
type CategoriesList struct {
	service   CategoryLister
	store     session.Store
	nav       Navigator
	reporter  apperr.Reporter
	sanitizer sanitize.Sanitizer

	categories []model.Category
}

// NewCategoriesList はCategoriesListを生成する。
func NewCategoriesList(
	service CategoryLister,
	store session.Store,
	nav Navigator,
	reporter apperr.Reporter,
	sanitizer sanitize.Sanitizer,
) *CategoriesList {
	return &CategoriesList{
		service:   service,
		store:     store,
		nav:       nav,
		reporter:  reporter,
		sanitizer: sanitizer,
	}
}

// Load はセッションストアのuser_idで自分のカテゴリ一覧を取得する。
// 失敗時はビュー層のフックで1回報告し、一覧は変更しない。
func (v *CategoriesList) Load(ctx context.Context) {
	userID, err := v.store.Get(session.KeyUserID)
	if err != nil {
		v.reporter.ReportError("view", "categories_list.load", err)
		return
	}

	categories, err := v.service.ListByUser(ctx, userID)
	if err != nil {
		v.reporter.ReportError("view", "categories_list.load", err)
		return
	}

	if v.sanitizer != nil {
		for i := range categories {
			categories[i].Description = v.sanitizer.Sanitize(categories[i].Description)
		}
	}
	v.categories = categories
}

// Categories は現在保持している一覧を返す。
func (v *CategoriesList) Categories() []model.Category {
	return v.categories
}

// CreateCategory はカテゴリ作成画面へ遷移する。この層ではデータ変更を行わない。
func (v *CategoriesList) CreateCategory() {
	v.nav.NavigateByURL("/user/category/")
}

// UpdateCategory はカテゴリ編集画面へ遷移する。この層ではデータ変更を行わない。
func (v *CategoriesList) UpdateCategory(categoryID string) {
	v.nav.NavigateByURL("/user/category/" + categoryID)
}

// DeleteCategory はカテゴリを削除し、1件以上削除された場合は一覧を再取得する。
func (v *CategoriesList) DeleteCategory(ctx context.Context, categoryID string) {
	outcome, err := v.service.Delete(ctx, categoryID)
	if err != nil {
		v.reporter.ReportError("view", "categories_list.delete", err)
		return
	}
	if outcome.Affected >= 1 {
		v.Load(ctx)
	}
}
