// Package apperr はAPI呼び出し失敗の正規化と構造化エラー報告を提供する。
//
// Reporter はAPI層とビュー層の両方が使う単一のエラー報告インターフェース。
// 層ごとに別々のログ形式が生まれることを防ぎ、同じ構造の記録を残す。
package apperr

import (
	"log/slog"

	"github.com/hitoshi/blogman/internal/model"
)

// Reporter は構造化エラー報告のインターフェース。
type Reporter interface {
	// ReportError は失敗を1件報告する。layerは報告元の層（"api", "view"等）。
	ReportError(layer, op string, err error)
}

// SlogReporter はslogでエラーを記録するReporter実装。
type SlogReporter struct {
	logger *slog.Logger
}

// NewSlogReporter はSlogReporterの新しいインスタンスを生成する。
// loggerがnilの場合はデフォルトロガーを使用する。
func NewSlogReporter(logger *slog.Logger) *SlogReporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &SlogReporter{logger: logger}
}

// ReportError は失敗をlayer/op/kind/status付きで記録する。
func (r *SlogReporter) ReportError(layer, op string, err error) {
	attrs := []any{
		slog.String("layer", layer),
		slog.String("op", op),
		slog.String("error", err.Error()),
	}
	if apiErr := model.AsAPIError(err); apiErr != nil {
		attrs = append(attrs, slog.String("kind", string(apiErr.Kind)))
		if apiErr.Kind == model.KindServer {
			attrs = append(attrs, slog.Int("status", apiErr.StatusCode))
		}
	}
	r.logger.Error("operation failed", attrs...)
}
