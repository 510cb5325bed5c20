package apperr

import (
	"github.com/hitoshi/blogman/internal/model"
)

// Normalizer はリソースアクセス層の失敗を一元処理する。
// 失敗をReporter経由で1回だけ記録し、意味内容（ステータス、ボディ）を変えずに
// そのまま呼び出し元へ再送出する。リトライはしない。失敗を握り潰すこともない。
type Normalizer struct {
	reporter Reporter
}

// NewNormalizer はNormalizerの新しいインスタンスを生成する。
func NewNormalizer(reporter Reporter) *Normalizer {
	return &Normalizer{reporter: reporter}
}

// Normalize は失敗をAPIErrorに正規化して記録し、呼び出し元へ返す。
// errがnilの場合はnilを返す。すでにAPIErrorの場合は再ラップしない。
func (n *Normalizer) Normalize(op string, err error) error {
	if err == nil {
		return nil
	}
	apiErr := model.AsAPIError(err)
	if apiErr == nil {
		apiErr = model.NewTransportError(op, err)
	}
	n.reporter.ReportError("api", op, apiErr)
	return apiErr
}
