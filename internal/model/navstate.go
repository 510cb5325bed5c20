// Package model はドメインモデルを定義する。
package model

// NavState はヘッダーナビゲーションの表示状態を表す。
// 慣例として2つのフラグは相補的（常にどちらか一方のみtrue）だが、強制はしない。
type NavState struct {
	ShowAuthSection   bool
	ShowNoAuthSection bool
}

// Authenticated はログイン済みユーザー向けの表示状態を返す。
func Authenticated() NavState {
	return NavState{ShowAuthSection: true, ShowNoAuthSection: false}
}

// Anonymous は未ログインユーザー向けの表示状態を返す。
func Anonymous() NavState {
	return NavState{ShowAuthSection: false, ShowNoAuthSection: true}
}
