// Package app はアプリケーションの起動と依存関係の組み立てを提供する。
package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/time/rate"

	"github.com/hitoshi/blogman/internal/api"
	"github.com/hitoshi/blogman/internal/apperr"
	"github.com/hitoshi/blogman/internal/config"
	"github.com/hitoshi/blogman/internal/dateformat"
	"github.com/hitoshi/blogman/internal/feedimport"
	"github.com/hitoshi/blogman/internal/headerstate"
	"github.com/hitoshi/blogman/internal/logger"
	"github.com/hitoshi/blogman/internal/metrics"
	"github.com/hitoshi/blogman/internal/model"
	"github.com/hitoshi/blogman/internal/sanitize"
	"github.com/hitoshi/blogman/internal/session"
	"github.com/hitoshi/blogman/internal/view"
)

// Init はアプリケーションの初期化を行う。
// JSON構造化ログをセットアップし、環境変数からConfigを読み込む。
// writerが指定された場合はログ出力先としてそのwriterを使用する。
func Init(w io.Writer) (*config.Config, error) {
	// 1. ログの初期化（設定読み込み前にログを使えるようにする）
	logger.SetupDefault(w)

	// 2. 環境変数から設定を読み込む
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	return cfg, nil
}

// Run はアプリケーションのメインエントリーポイント。
// コマンドライン引数からサブコマンドを解析し、対応するモードで実行する。
// argsにはos.Args[1:]を渡す。outはコマンド出力先（通常os.Stdout）。
func Run(out io.Writer, logw io.Writer, args []string) error {
	cmd := ParseCommand(args)

	// help は設定不要のため、フル初期化をスキップする
	if cmd == CommandHelp {
		printUsage(out)
		return nil
	}

	cfg, err := Init(logw)
	if err != nil {
		return fmt.Errorf("initialization failed: %w", err)
	}

	slog.Info("starting blogman",
		slog.String("command", string(cmd)),
		slog.String("api_base_url", cfg.APIBaseURL),
	)

	deps, err := buildDeps(cfg)
	if err != nil {
		return err
	}
	defer deps.Close()

	if cfg.MetricsAddr != "" {
		go func() {
			if err := http.ListenAndServe(cfg.MetricsAddr, metrics.SetupMetricsRoute(deps.Registry)); err != nil {
				slog.Error("metrics server stopped", slog.String("error", err.Error()))
			}
		}()
	}

	ctx := context.Background()

	switch cmd {
	case CommandPosts:
		return runPosts(ctx, out, deps)
	case CommandCategories:
		return runCategories(ctx, out, deps)
	case CommandLogin:
		return runLogin(ctx, out, deps, args[1:])
	case CommandLogout:
		return runLogout(out, deps)
	case CommandImport:
		return runImport(ctx, out, deps, args[1:])
	default:
		printUsage(out)
		return nil
	}
}

// Deps はアプリケーションの依存関係一式を保持する。
type Deps struct {
	Store       *session.SQLiteStore
	Broadcaster *headerstate.Broadcaster
	Reporter    apperr.Reporter
	Registry    *prometheus.Registry
	Posts       *api.PostService
	Categories  *api.CategoryService
	Auth        *api.AuthService
	Importer    *feedimport.Importer
	Navigator   view.Navigator
	Sanitizer   sanitize.Sanitizer
}

// Close は依存関係が保持するリソースを解放する。
func (d *Deps) Close() {
	if d.Store != nil {
		if err := d.Store.Close(); err != nil {
			slog.Error("failed to close session store", slog.String("error", err.Error()))
		}
	}
}

// buildDeps は設定から依存関係を組み立てる。
// ブロードキャスターの初期状態はセッションストアのuser_idの有無で決める。
func buildDeps(cfg *config.Config) (*Deps, error) {
	store, err := session.Open(cfg.SessionDBPath)
	if err != nil {
		return nil, err
	}

	reporter := apperr.NewSlogReporter(slog.Default())
	normalizer := apperr.NewNormalizer(reporter)

	registry := prometheus.NewRegistry()
	collector := metrics.NewCollector(registry)

	userID, err := store.Get(session.KeyUserID)
	if err != nil {
		store.Close()
		return nil, err
	}
	initial := model.Anonymous()
	if userID != "" {
		initial = model.Authenticated()
	}
	broadcaster := headerstate.NewBroadcaster(initial, slog.Default())

	client := api.NewClient(api.ClientOptions{
		BaseURL:    cfg.APIBaseURL,
		HTTPClient: &http.Client{Timeout: cfg.RequestTimeout},
		Limiter:    rate.NewLimiter(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst),
		Normalizer: normalizer,
		Metrics:    collector,
		Tokens:     storeTokens{store: store},
		Logger:     slog.Default(),
	})

	posts := api.NewPostService(client)
	categories := api.NewCategoryService(client)
	auth := api.NewAuthService(client, store, broadcaster)
	sanitizer := sanitize.NewDescriptionSanitizer()

	guard := feedimport.NewSourceGuard()
	importer := feedimport.NewImporter(feedimport.ImporterOptions{
		Detector:  feedimport.NewDetector(guard),
		Guard:     guard,
		Creator:   posts,
		Store:     store,
		Sanitizer: sanitizer,
		Logger:    slog.Default(),
		Timeout:   cfg.ImportUserTimeout,
		FetchMax:  cfg.ImportFetchLimit,
		MaxPosts:  cfg.ImportMaxPosts,
	})

	return &Deps{
		Store:       store,
		Broadcaster: broadcaster,
		Reporter:    reporter,
		Registry:    registry,
		Posts:       posts,
		Categories:  categories,
		Auth:        auth,
		Importer:    importer,
		Navigator:   logNavigator{},
		Sanitizer:   sanitizer,
	}, nil
}

// storeTokens はセッションストアからアクセストークンを読むapi.TokenSource実装。
type storeTokens struct {
	store session.Store
}

// AccessToken はセッションストアのaccess_tokenを返す。未ログイン時は空文字列。
func (t storeTokens) AccessToken() (string, error) {
	return t.store.Get(session.KeyAccessToken)
}

// logNavigator はCLI実行でのナビゲーションコラボレーター。
// 画面遷移の代わりに遷移先をログへ記録する。
type logNavigator struct{}

// NavigateByURL は遷移先ルートをログに記録する。
func (logNavigator) NavigateByURL(route string) {
	slog.Info("navigate", slog.String("route", route))
}

func runPosts(ctx context.Context, out io.Writer, deps *Deps) error {
	list := view.NewPostsList(deps.Posts, deps.Store, deps.Navigator, deps.Reporter, deps.Sanitizer)
	list.Load(ctx)

	posts := list.Posts()
	if len(posts) == 0 {
		fmt.Fprintln(out, "no posts")
		return nil
	}
	for _, p := range posts {
		fmt.Fprintf(out, "%s\t%s\t%s\t(+%d/-%d)\n",
			p.PostID,
			dateformat.Format(p.PublicationDate, dateformat.FormatISO),
			p.Title,
			p.NumLikes,
			p.NumDislikes,
		)
	}
	return nil
}

func runCategories(ctx context.Context, out io.Writer, deps *Deps) error {
	list := view.NewCategoriesList(deps.Categories, deps.Store, deps.Navigator, deps.Reporter, deps.Sanitizer)
	list.Load(ctx)

	categories := list.Categories()
	if len(categories) == 0 {
		fmt.Fprintln(out, "no categories")
		return nil
	}
	for _, c := range categories {
		fmt.Fprintf(out, "%s\t%s\t%s\n", c.CategoryID, c.Title, c.CSSColor)
	}
	return nil
}

func runLogin(ctx context.Context, out io.Writer, deps *Deps, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: blogman login <email> <password>")
	}

	resp, err := deps.Auth.Login(ctx, args[0], args[1])
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "logged in as %s\n", resp.UserID)
	return nil
}

func runLogout(out io.Writer, deps *Deps) error {
	header := view.NewHeader(deps.Store, deps.Broadcaster, deps.Navigator, deps.Reporter, slog.Default())
	header.Logout()

	fmt.Fprintln(out, "logged out")
	return nil
}

func runImport(ctx context.Context, out io.Writer, deps *Deps, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: blogman import <feed-or-site-url>")
	}

	result, err := deps.Importer.Import(ctx, args[0])
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "imported %d posts from %q (%d skipped)\n",
		result.Imported, result.FeedTitle, result.Skipped)
	return nil
}

func printUsage(out io.Writer) {
	fmt.Fprint(out, `blogman - blog backend client

usage: blogman <command> [args]

commands:
  posts                       list my posts
  categories                  list my categories
  login <email> <password>    log in and store the session
  logout                      clear the session
  import <url>                import posts from an RSS/Atom feed
  help                        show this help
`)
}
