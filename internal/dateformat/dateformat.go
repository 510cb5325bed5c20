// Package dateformat は記事の公開日表示フォーマットを提供する。
package dateformat

import "time"

// フォーマットセレクター。テンプレート側から整数で指定される。
const (
	// FormatCompact はddMMyyyy形式。
	FormatCompact = 1
	// FormatSpaced はdd / MM / yyyy形式。
	FormatSpaced = 2
	// FormatSlashed はdd/MM/yyyy形式。
	FormatSlashed = 3
	// FormatISO はyyyy-MM-dd形式。
	FormatISO = 4
)

// Format は日付を指定セレクターの形式に整形する。日・月はゼロ埋めする。
// 定義外のセレクターには空文字列を返す。
func Format(t time.Time, selector int) string {
	switch selector {
	case FormatCompact:
		return t.Format("02012006")
	case FormatSpaced:
		return t.Format("02 / 01 / 2006")
	case FormatSlashed:
		return t.Format("02/01/2006")
	case FormatISO:
		return t.Format("2006-01-02")
	default:
		return ""
	}
}
