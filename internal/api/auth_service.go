package api

import (
	"context"
	"net/http"

	"github.com/hitoshi/blogman/internal/headerstate"
	"github.com/hitoshi/blogman/internal/model"
	"github.com/hitoshi/blogman/internal/session"
)

// LoginRequest はログインAPIへのリクエストボディ。
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse はログインAPIのレスポンスボディ。
// トークンの検証はサーバー側の責務であり、クライアントは不透明な文字列として保存するだけ。
type LoginResponse struct {
	UserID      string `json:"user_id"`
	AccessToken string `json:"access_token"`
}

// AuthService はログインフローを提供する。
// 認証成功時にセッションストアへuser_id/access_tokenを書き込み、
// ヘッダー表示状態を認証済みに切り替える。
type AuthService struct {
	client      *Client
	store       session.Store
	broadcaster *headerstate.Broadcaster
}

// NewAuthService はAuthServiceの新しいインスタンスを生成する。
func NewAuthService(client *Client, store session.Store, broadcaster *headerstate.Broadcaster) *AuthService {
	return &AuthService{
		client:      client,
		store:       store,
		broadcaster: broadcaster,
	}
}

// Login は認証エンドポイントを呼び出し、セッションを確立する。
// 順序: API呼び出し → ストア書き込み → 認証済み状態のブロードキャスト。
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResponse, error) {
	var resp LoginResponse
	req := LoginRequest{Email: email, Password: password}
	if err := s.client.do(ctx, "auth.login", http.MethodPost, "/auth", req, &resp); err != nil {
		return nil, err
	}

	if err := s.store.Set(session.KeyUserID, resp.UserID); err != nil {
		return nil, err
	}
	if err := s.store.Set(session.KeyAccessToken, resp.AccessToken); err != nil {
		return nil, err
	}

	state := model.Authenticated()
	s.broadcaster.Push(&state)

	return &resp, nil
}
