package dateformat

import (
	"testing"
	"time"
)

// TestFormat_Selectors は各セレクターの出力形式を検証する。
func TestFormat_Selectors(t *testing.T) {
	date := time.Date(2025, time.January, 15, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		selector int
		want     string
	}{
		{"compact ddMMyyyy", FormatCompact, "15012025"},
		{"spaced dd / MM / yyyy", FormatSpaced, "15 / 01 / 2025"},
		{"slashed dd/MM/yyyy", FormatSlashed, "15/01/2025"},
		{"iso yyyy-MM-dd", FormatISO, "2025-01-15"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Format(date, tt.selector)
			if got != tt.want {
				t.Errorf("Format(%v, %d) = %q, want %q", date, tt.selector, got, tt.want)
			}
		})
	}
}

// TestFormat_ZeroPadding は1桁の日・月がゼロ埋めされることを検証する。
func TestFormat_ZeroPadding(t *testing.T) {
	date := time.Date(2025, time.February, 5, 0, 0, 0, 0, time.UTC)

	if got := Format(date, FormatCompact); got != "05022025" {
		t.Errorf("Format(selector=1) = %q, want %q", got, "05022025")
	}
	if got := Format(date, FormatSlashed); got != "05/02/2025" {
		t.Errorf("Format(selector=3) = %q, want %q", got, "05/02/2025")
	}
}

// TestFormat_UnknownSelector は定義外のセレクターに空文字列を返すことを検証する。
func TestFormat_UnknownSelector(t *testing.T) {
	date := time.Date(2025, time.January, 15, 0, 0, 0, 0, time.UTC)

	for _, selector := range []int{0, 5, 99, -1} {
		if got := Format(date, selector); got != "" {
			t.Errorf("Format(selector=%d) = %q, want empty string", selector, got)
		}
	}
}
