// Package model はドメインモデルを定義する。
package model

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorKind はAPI呼び出し失敗の分類を表す。
type ErrorKind string

const (
	// KindTransport はHTTPステータスに到達しないネットワークレベルの失敗。
	KindTransport ErrorKind = "transport"
	// KindServer は4xx/5xxステータスを伴うサーバー側の失敗。
	KindServer ErrorKind = "server"
)

// APIError はAPI呼び出し失敗の統一フォーマットを表す。
// ステータスコードとレスポンスボディを保持し、呼び出し元がステータスで分岐できるようにする。
type APIError struct {
	Kind       ErrorKind
	Op         string // 失敗した操作（例: "posts.list_by_user"）
	StatusCode int    // KindServerの場合のHTTPステータス。KindTransportでは0。
	Body       string // KindServerの場合のレスポンスボディ
	Err        error  // KindTransportの場合の元エラー
}

// Error はerrorインターフェースを実装する。
func (e *APIError) Error() string {
	if e.Kind == KindServer {
		return fmt.Sprintf("%s: server error (status %d): %s", e.Op, e.StatusCode, e.Body)
	}
	return fmt.Sprintf("%s: transport error: %v", e.Op, e.Err)
}

// Unwrap はラップされた元エラーを返す。
func (e *APIError) Unwrap() error {
	return e.Err
}

// NotFound はNotFound系（404）の失敗かどうかを返す。
func (e *APIError) NotFound() bool {
	return e.Kind == KindServer && e.StatusCode == http.StatusNotFound
}

// NewTransportError はネットワークレベルの失敗を生成する。
func NewTransportError(op string, err error) *APIError {
	return &APIError{Kind: KindTransport, Op: op, Err: err}
}

// NewServerError はHTTPステータスを伴う失敗を生成する。
func NewServerError(op string, statusCode int, body string) *APIError {
	return &APIError{Kind: KindServer, Op: op, StatusCode: statusCode, Body: body}
}

// AsAPIError はエラーチェーンからAPIErrorを取り出す。見つからない場合はnilを返す。
func AsAPIError(err error) *APIError {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}
	return nil
}
