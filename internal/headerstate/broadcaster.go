// Package headerstate はヘッダーナビゲーション表示状態の共有ブロードキャスターを提供する。
//
// Broadcaster は「どのナビゲーションセクションを表示するか」の単一の情報源であり、
// 明示的に構築して必要なコンポーネントへ注入する。パッケージレベルの共有状態は持たない。
package headerstate

import (
	"log/slog"
	"sync"

	"github.com/hitoshi/blogman/internal/model"
)

// Subscriber は状態変更の通知を受け取るコールバック。
// nilが渡された場合は直前の表示状態を維持する（no-op）こと。
type Subscriber func(next *model.NavState)

// Broadcaster はNavStateの観測可能な状態セル。
// Pushされた値を保持し、購読者全員へ登録順・同期的に通知する。
// 純粋なインメモリの中継であり、I/Oを行わず、失敗しない。
type Broadcaster struct {
	mu          sync.Mutex
	current     model.NavState
	subscribers []Subscriber
	logger      *slog.Logger
}

// NewBroadcaster は初期状態を持つBroadcasterを生成する。
// loggerがnilの場合はデフォルトロガーを使用する。
func NewBroadcaster(initial model.NavState, logger *slog.Logger) *Broadcaster {
	if logger == nil {
		logger = slog.Default()
	}
	return &Broadcaster{current: initial, logger: logger}
}

// Push は新しい表示状態を保持し、登録順にすべての購読者へ同期的に通知してから返る。
//
// nextがnilの場合、保持している状態は変更せず、購読者にはnilを通知する。
// 購読者側はnil受信時に直前の描画状態を維持する契約（no-opセマンティクス）。
// このパスが本番で実際に通るかを観測できるよう、発生時は警告ログを残す。
func (b *Broadcaster) Push(next *model.NavState) {
	b.mu.Lock()
	if next == nil {
		subs := append([]Subscriber(nil), b.subscribers...)
		b.mu.Unlock()
		b.logger.Warn("nil nav state pushed, retaining previous state",
			slog.Int("subscribers", len(subs)),
		)
		for _, fn := range subs {
			fn(nil)
		}
		return
	}
	b.current = *next
	state := b.current
	subs := append([]Subscriber(nil), b.subscribers...)
	b.mu.Unlock()

	for _, fn := range subs {
		fn(&state)
	}
}

// Subscribe は購読者を登録する。
// 登録時点の現在状態で同期的に1回呼び出し、以降はPushごとに呼び出す。
// 遅れて購読した場合も古い状態ではなく現在の状態を受け取る。
func (b *Broadcaster) Subscribe(fn Subscriber) {
	b.mu.Lock()
	b.subscribers = append(b.subscribers, fn)
	state := b.current
	b.mu.Unlock()

	fn(&state)
}

// Current は現在の表示状態のコピーを返す。
func (b *Broadcaster) Current() model.NavState {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.current
}
