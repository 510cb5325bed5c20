// Package model はドメインモデルを定義する。
package model

import "time"

// Post はブログ記事を表す。
// JSONフィールド名はバックエンドAPIのワイヤーフォーマットに合わせている。
type Post struct {
	PostID          string     `json:"postId,omitempty"`
	Title           string     `json:"title"`
	Description     string     `json:"description"`
	NumLikes        int        `json:"num_likes"`
	NumDislikes     int        `json:"num_dislikes"`
	PublicationDate time.Time  `json:"publication_date"`
	Categories      []Category `json:"categories"`
	UserID          string     `json:"userId"`
	UserAlias       string     `json:"userAlias"`
}

// UpdateOutcome はlike/dislike等の更新系操作の結果を表す。
// Affectedは更新された行数（0または1）。
type UpdateOutcome struct {
	Affected int `json:"affected"`
}

// DeleteOutcome は削除操作の結果を表す。
// Affected 0は「該当リソースなし」を意味する正常な結果であり、エラーではない。
type DeleteOutcome struct {
	Affected int `json:"affected"`
}
