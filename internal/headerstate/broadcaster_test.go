package headerstate

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/hitoshi/blogman/internal/model"
)

func newTestLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewJSONHandler(buf, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
}

// TestSubscribe_ReceivesCurrentStateImmediately は購読時に現在状態が
// 同期的に1回配信されることを検証する。
func TestSubscribe_ReceivesCurrentStateImmediately(t *testing.T) {
	var buf bytes.Buffer
	b := NewBroadcaster(model.Anonymous(), newTestLogger(&buf))

	var received []*model.NavState
	b.Subscribe(func(next *model.NavState) {
		received = append(received, next)
	})

	if len(received) != 1 {
		t.Fatalf("配信回数 = %d, want 1", len(received))
	}
	if received[0] == nil || !received[0].ShowNoAuthSection {
		t.Errorf("初回配信 = %+v, want 未認証状態", received[0])
	}
}

// TestPush_LateSubscriberSeesCurrentState は遅れて購読した場合に
// 古い状態ではなく現在の状態を受け取ることを検証する。
func TestPush_LateSubscriberSeesCurrentState(t *testing.T) {
	var buf bytes.Buffer
	b := NewBroadcaster(model.Anonymous(), newTestLogger(&buf))

	auth := model.Authenticated()
	b.Push(&auth)

	var first *model.NavState
	b.Subscribe(func(next *model.NavState) {
		if first == nil {
			first = next
		}
	})

	if first == nil {
		t.Fatal("購読時に配信されなかった")
	}
	if !first.ShowAuthSection || first.ShowNoAuthSection {
		t.Errorf("初回配信 = %+v, want {ShowAuthSection:true ShowNoAuthSection:false}", first)
	}
}

// TestPush_NotifiesAllSubscribersInRegistrationOrder は登録順に
// 全購読者へ通知されることを検証する。
func TestPush_NotifiesAllSubscribersInRegistrationOrder(t *testing.T) {
	var buf bytes.Buffer
	b := NewBroadcaster(model.Anonymous(), newTestLogger(&buf))

	var order []string
	b.Subscribe(func(next *model.NavState) { order = append(order, "first") })
	b.Subscribe(func(next *model.NavState) { order = append(order, "second") })
	order = nil // 購読時の初回配信を除外

	auth := model.Authenticated()
	b.Push(&auth)

	if len(order) != 2 {
		t.Fatalf("通知回数 = %d, want 2", len(order))
	}
	if order[0] != "first" || order[1] != "second" {
		t.Errorf("通知順 = %v, want [first second]", order)
	}
}

// TestPush_Nil_RetainsPreviousState はnilのPushで保持状態が変化せず、
// 購読者にはnilが通知されることを検証する。
func TestPush_Nil_RetainsPreviousState(t *testing.T) {
	var buf bytes.Buffer
	b := NewBroadcaster(model.Anonymous(), newTestLogger(&buf))

	auth := model.Authenticated()
	b.Push(&auth)

	// 購読者はnil受信時に直前の描画状態を維持する（no-op契約）
	var rendered model.NavState
	b.Subscribe(func(next *model.NavState) {
		if next == nil {
			return
		}
		rendered = *next
	})

	b.Push(nil)

	if !rendered.ShowAuthSection || rendered.ShowNoAuthSection {
		t.Errorf("nil Push後の描画状態 = %+v, want 認証済み状態のまま", rendered)
	}
	if got := b.Current(); !got.ShowAuthSection {
		t.Errorf("nil Push後の保持状態 = %+v, want 認証済み状態のまま", got)
	}
}

// TestPush_Nil_LogsWarning はnilのPushが警告ログを残すことを検証する。
func TestPush_Nil_LogsWarning(t *testing.T) {
	var buf bytes.Buffer
	b := NewBroadcaster(model.Anonymous(), newTestLogger(&buf))

	b.Push(nil)

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("ログのパースに失敗した: %v", err)
	}
	if entry["level"] != "WARN" {
		t.Errorf("ログレベル = %v, want WARN", entry["level"])
	}
}

// TestPush_ReentrantSubscriber は購読者のコールバック内からのPushが
// デッドロックしないことを検証する。
func TestPush_ReentrantSubscriber(t *testing.T) {
	var buf bytes.Buffer
	b := NewBroadcaster(model.Anonymous(), newTestLogger(&buf))

	pushed := false
	b.Subscribe(func(next *model.NavState) {
		if next != nil && next.ShowAuthSection && !pushed {
			pushed = true
			anon := model.Anonymous()
			b.Push(&anon)
		}
	})

	auth := model.Authenticated()
	b.Push(&auth)

	if got := b.Current(); !got.ShowNoAuthSection {
		t.Errorf("再入Push後の状態 = %+v, want 未認証状態", got)
	}
}
