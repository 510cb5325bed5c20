package sanitize

import (
	"strings"
	"testing"
)

// TestSanitize_RemovesScriptTags はscriptタグが除去されることを検証する。
func TestSanitize_RemovesScriptTags(t *testing.T) {
	s := NewDescriptionSanitizer()

	got := s.Sanitize(`<p>hello</p><script>alert("xss")</script>`)
	if strings.Contains(got, "script") {
		t.Errorf("scriptタグが残っている: %q", got)
	}
	if !strings.Contains(got, "<p>hello</p>") {
		t.Errorf("許可タグが失われた: %q", got)
	}
}

// TestSanitize_RemovesEventAttributes はon*イベント属性が除去されることを検証する。
func TestSanitize_RemovesEventAttributes(t *testing.T) {
	s := NewDescriptionSanitizer()

	got := s.Sanitize(`<p onclick="evil()">text</p>`)
	if strings.Contains(got, "onclick") {
		t.Errorf("onclick属性が残っている: %q", got)
	}
}

// TestSanitize_AllowsHTTPSImagesOnly はimgのsrcがhttpsスキームのみ
// 許可されることを検証する。
func TestSanitize_AllowsHTTPSImagesOnly(t *testing.T) {
	s := NewDescriptionSanitizer()

	got := s.Sanitize(`<img src="https://example.com/a.png" alt="ok">`)
	if !strings.Contains(got, `src="https://example.com/a.png"`) {
		t.Errorf("httpsのimgが除去された: %q", got)
	}

	got = s.Sanitize(`<img src="javascript:alert(1)">`)
	if strings.Contains(got, "javascript") {
		t.Errorf("javascriptスキームのsrcが残っている: %q", got)
	}
}

// TestSanitize_EmptyInput は空文字列の入力に空文字列を返すことを検証する。
func TestSanitize_EmptyInput(t *testing.T) {
	s := NewDescriptionSanitizer()

	if got := s.Sanitize(""); got != "" {
		t.Errorf("Sanitize(\"\") = %q, want 空文字列", got)
	}
}

// TestSanitize_Idempotent は同一入力に常に同一出力を返すことを検証する。
func TestSanitize_Idempotent(t *testing.T) {
	s := NewDescriptionSanitizer()

	input := `<p>text <strong>bold</strong></p><ul><li>item</li></ul>`
	first := s.Sanitize(input)
	second := s.Sanitize(first)
	if first != second {
		t.Errorf("冪等でない: first=%q second=%q", first, second)
	}
}
