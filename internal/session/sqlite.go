package session

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

// SQLiteStore はSQLiteファイルに永続化するStore実装。
// ブラウザのlocalStorageに相当し、プロセス再起動後も値を保持する。
type SQLiteStore struct {
	db *sql.DB
}

// Open はセッションストア用のSQLiteデータベースを開き、スキーマを適用する。
// 保存先ディレクトリが存在しない場合は作成する。
func Open(dbPath string) (*SQLiteStore, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("failed to create session store directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open session store: %w", err)
	}

	if err := RunMigrations(db); err != nil {
		db.Close()
		return nil, err
	}

	return &SQLiteStore{db: db}, nil
}

// Close はデータベース接続を閉じる。
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Get は指定キーの値を取得する。キーが存在しない場合は空文字列を返す。
func (s *SQLiteStore) Get(key string) (string, error) {
	var value string
	err := s.db.QueryRow(
		`SELECT value FROM session_entries WHERE key = ?`, key,
	).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read session entry %q: %w", key, err)
	}
	return value, nil
}

// Set は指定キーに値を書き込む。既存の値は上書きする。
func (s *SQLiteStore) Set(key, value string) error {
	_, err := s.db.Exec(
		`INSERT INTO session_entries (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("failed to write session entry %q: %w", key, err)
	}
	return nil
}

// Remove は指定キーを削除する。キーが存在しない場合も成功として扱う。
func (s *SQLiteStore) Remove(key string) error {
	_, err := s.db.Exec(`DELETE FROM session_entries WHERE key = ?`, key)
	if err != nil {
		return fmt.Errorf("failed to remove session entry %q: %w", key, err)
	}
	return nil
}
