// Package model はドメインモデルを定義する。
package model

// Category は記事の分類カテゴリを表す。1ユーザーに所有される。
type Category struct {
	CategoryID  string `json:"categoryId,omitempty"`
	Title       string `json:"title"`
	Description string `json:"description"`
	CSSColor    string `json:"css_color"`
	UserID      string `json:"userId"`
}
