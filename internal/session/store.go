// Package session はセッション情報の永続化キーバリューストアを提供する。
//
// 認証済みユーザーのIDとアクセストークンをプロセス再起動をまたいで保持する。
// 値はスキーマを持たない不透明な文字列として扱う。
package session

import "sync"

// ストアに書き込まれるキー。
const (
	// KeyUserID は認証済みユーザーのID。
	KeyUserID = "user_id"
	// KeyAccessToken はAPIアクセストークン。
	KeyAccessToken = "access_token"
)

// Store はキーバリューストアのインターフェース。
type Store interface {
	// Get は指定キーの値を取得する。キーが存在しない場合は空文字列を返す（エラーにしない）。
	Get(key string) (string, error)
	// Set は指定キーに値を書き込む。既存の値は上書きする。
	Set(key, value string) error
	// Remove は指定キーを削除する。キーが存在しない場合も成功として扱う。
	Remove(key string) error
}

// MemoryStore はマップベースのStore実装。テストや永続化不要の実行で使う。
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]string
}

// NewMemoryStore はMemoryStoreの新しいインスタンスを生成する。
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]string)}
}

// Get は指定キーの値を取得する。存在しない場合は空文字列を返す。
func (s *MemoryStore) Get(key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.entries[key], nil
}

// Set は指定キーに値を書き込む。
func (s *MemoryStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = value
	return nil
}

// Remove は指定キーを削除する。
func (s *MemoryStore) Remove(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key)
	return nil
}
