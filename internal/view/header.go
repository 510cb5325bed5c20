package view

import (
	"log/slog"

	"github.com/hitoshi/blogman/internal/apperr"
	"github.com/hitoshi/blogman/internal/headerstate"
	"github.com/hitoshi/blogman/internal/model"
	"github.com/hitoshi/blogman/internal/session"
)

// Header はナビゲーションヘッダーのビューコンポーネント。
// 構築時にブロードキャスターを購読し、以降の状態変更に追従する。
type Header struct {
	store       session.Store
	broadcaster *headerstate.Broadcaster
	nav         Navigator
	reporter    apperr.Reporter
	logger      *slog.Logger

	// state は最後に受け取った表示状態。
	// nil通知（no-op契約）では直前の値を維持する。
	state model.NavState
}

// NewHeader はHeaderを生成し、ブロードキャスターを購読する。
// 初期表示はブロードキャスターが現在保持している状態を反映する。
func NewHeader(
	store session.Store,
	broadcaster *headerstate.Broadcaster,
	nav Navigator,
	reporter apperr.Reporter,
	logger *slog.Logger,
) *Header {
	if logger == nil {
		logger = slog.Default()
	}
	h := &Header{
		store:       store,
		broadcaster: broadcaster,
		nav:         nav,
		reporter:    reporter,
		logger:      logger,
	}
	broadcaster.Subscribe(func(next *model.NavState) {
		if next == nil {
			return
		}
		h.state = *next
	})
	return h
}

// State は現在描画対象となっている表示状態を返す。
func (h *Header) State() model.NavState {
	return h.state
}

// MenuItems は現在の表示状態で描画すべきナビゲーション項目を返す。
// home/dashboardは常に表示し、認証状態に応じた項目を加える。
func (h *Header) MenuItems() []string {
	items := []string{"home", "dashboard"}
	if h.state.ShowNoAuthSection {
		items = append(items, "login", "register", "posts")
	}
	if h.state.ShowAuthSection {
		items = append(items, "profile", "admin posts", "admin categories", "logout")
	}
	return items
}

// Logout はログアウト処理を実行する。
// 順序は固定: ストアからuser_id/access_tokenを削除 → 未認証状態をブロードキャスト → ホームへ遷移。
// 3ステップは毎回すべて実行され、部分失敗パスを持たない
// （ストア操作の失敗はログに残して処理を続行する）。
func (h *Header) Logout() {
	if err := h.store.Remove(session.KeyUserID); err != nil {
		h.logger.Error("failed to remove user_id from session store",
			slog.String("error", err.Error()),
		)
	}
	if err := h.store.Remove(session.KeyAccessToken); err != nil {
		h.logger.Error("failed to remove access_token from session store",
			slog.String("error", err.Error()),
		)
	}

	state := model.Anonymous()
	h.broadcaster.Push(&state)

	h.nav.NavigateByURL(string(RouteHome))
}

// NavigationTo はルートトークンを解決して遷移する。
// 未知のトークンは報告のうえホームへフォールバックする。
func (h *Header) NavigationTo(token string) {
	navigateToken(h.nav, h.reporter, "view", token)
}
