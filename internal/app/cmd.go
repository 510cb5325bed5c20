package app

// Command はアプリケーションの実行モードを表す。
type Command string

const (
	// CommandPosts は自分の記事一覧を表示することを示す。
	CommandPosts Command = "posts"
	// CommandCategories は自分のカテゴリ一覧を表示することを示す。
	CommandCategories Command = "categories"
	// CommandLogin はログインしてセッションを確立することを示す。
	CommandLogin Command = "login"
	// CommandLogout はログアウトしてセッションを破棄することを示す。
	CommandLogout Command = "logout"
	// CommandImport は外部フィードから記事を取り込むことを示す。
	CommandImport Command = "import"
	// CommandHelp は使い方を表示することを示す。
	CommandHelp Command = "help"
)

// ParseCommand はコマンドライン引数からサブコマンドを解析する。
// 引数が空またはサポート外のコマンドの場合はCommandHelpを返す。
func ParseCommand(args []string) Command {
	if len(args) == 0 {
		return CommandHelp
	}

	switch args[0] {
	case "posts":
		return CommandPosts
	case "categories":
		return CommandCategories
	case "login":
		return CommandLogin
	case "logout":
		return CommandLogout
	case "import":
		return CommandImport
	default:
		return CommandHelp
	}
}
