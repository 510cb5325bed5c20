// Package view はヘッダー・一覧のビューコンポーネントを提供する。
//
// ビューはリソースアクセス層・セッションストア・ヘッダー状態ブロードキャスターを
// 消費して状態を保持するコンポーネントであり、描画そのものは担わない。
package view

import "github.com/hitoshi/blogman/internal/apperr"

// Route はナビゲーション先の閉じた列挙。
// 任意文字列のルートトークンをそのまま渡す方式を置き換え、
// 未知のトークンには明示的なフォールバックを与える。
type Route string

const (
	// RouteHome はトップページ。
	RouteHome Route = "home"
	// RouteLogin はログインページ。
	RouteLogin Route = "login"
	// RouteRegister はユーザー登録ページ。
	RouteRegister Route = "register"
	// RoutePosts は全記事の閲覧ページ。
	RoutePosts Route = "posts"
	// RouteCategories はカテゴリ管理ページ。
	RouteCategories Route = "categories"
	// RouteProfile はプロフィールページ。
	RouteProfile Route = "profile"
	// RouteDashboard はダッシュボードページ。
	RouteDashboard Route = "dashboard"
)

// knownRoutes は有効なルートトークンの集合。
var knownRoutes = map[string]Route{
	string(RouteHome):       RouteHome,
	string(RouteLogin):      RouteLogin,
	string(RouteRegister):   RouteRegister,
	string(RoutePosts):      RoutePosts,
	string(RouteCategories): RouteCategories,
	string(RouteProfile):    RouteProfile,
	string(RouteDashboard):  RouteDashboard,
}

// ParseRoute はルートトークンをRouteに解決する。
// 未知のトークン（空文字列を含む）の場合はRouteHomeとfalseを返す。
func ParseRoute(token string) (Route, bool) {
	if r, ok := knownRoutes[token]; ok {
		return r, true
	}
	return RouteHome, false
}

// Navigator はルート遷移のコラボレーター。
type Navigator interface {
	// NavigateByURL は指定ルートへ遷移する。
	NavigateByURL(route string)
}

// navigateToken はトークンを解決して遷移する共通処理。
// 未知のトークンはreporter経由で報告し、ホームへフォールバックする。
func navigateToken(nav Navigator, reporter apperr.Reporter, layer, token string) {
	route, ok := ParseRoute(token)
	if !ok && reporter != nil {
		reporter.ReportError(layer, "navigation", &UnknownRouteError{Token: token})
	}
	nav.NavigateByURL(string(route))
}

// UnknownRouteError は未知のルートトークンを表す。
type UnknownRouteError struct {
	Token string
}

// Error はerrorインターフェースを実装する。
func (e *UnknownRouteError) Error() string {
	return "unknown route token: " + e.Token
}
