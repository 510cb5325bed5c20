package feedimport

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/net/html"
)

// detectTimeout はインポート元検出時のHTTPタイムアウト。
const detectTimeout = 10 * time.Second

// maxDetectBodySize は検出時に読み取るボディの最大サイズ（1MB）。
const maxDetectBodySize = 1 * 1024 * 1024

// feedContentTypes はフィードとして認識するContent-Typeのリスト。
var feedContentTypes = []string{
	"application/rss+xml",
	"application/atom+xml",
}

// xmlContentTypes はXMLとして認識するContent-Type（ボディ解析が必要）。
var xmlContentTypes = []string{
	"text/xml",
	"application/xml",
}

// Detector はインポート元フィードURLの自動検出機能を提供する。
// 入力URLが直接フィードならそのまま使い、HTMLページなら
// headタグのrel="alternate"リンクからフィードURLを発見する。
type Detector struct {
	guard SourceGuard
}

// NewDetector はDetectorの新しいインスタンスを生成する。
func NewDetector(guard SourceGuard) *Detector {
	return &Detector{guard: guard}
}

// DetectFeedURL は入力URLからインポート対象のフィードURLを決定する。
func (d *Detector) DetectFeedURL(ctx context.Context, inputURL string) (string, error) {
	if err := d.guard.ValidateURL(inputURL); err != nil {
		return "", fmt.Errorf("import source validation failed: %w", err)
	}

	client := d.guard.NewSafeClient(detectTimeout)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, inputURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/rss+xml, application/atom+xml, application/xml, text/xml, text/html, */*")

	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch import source: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("import source returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxDetectBodySize))
	if err != nil {
		return "", fmt.Errorf("failed to read import source body: %w", err)
	}

	if isDirectFeed(resp.Header.Get("Content-Type"), body) {
		return inputURL, nil
	}

	// HTMLページの場合はheadタグから自動検出
	feedURL := parseFeedLinkFromHTML(body, inputURL)
	if feedURL == "" {
		return "", fmt.Errorf("no RSS/Atom feed found at %s", inputURL)
	}

	if err := d.guard.ValidateURL(feedURL); err != nil {
		return "", fmt.Errorf("discovered feed URL validation failed: %w", err)
	}

	return feedURL, nil
}

// isDirectFeed はContent-Typeとボディから、レスポンス自体がフィードかを判定する。
func isDirectFeed(contentType string, body []byte) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		mediaType = strings.TrimSpace(strings.Split(contentType, ";")[0])
	}
	mediaType = strings.ToLower(mediaType)

	for _, feedCT := range feedContentTypes {
		if mediaType == feedCT {
			return true
		}
	}

	isXML := false
	for _, xmlCT := range xmlContentTypes {
		if mediaType == xmlCT {
			isXML = true
			break
		}
	}
	if !isXML || len(body) == 0 {
		return false
	}

	return isRSSOrAtomXML(body)
}

// isRSSOrAtomXML はXMLボディの先頭部分を解析してRSS/Atomフィードかを判定する。
func isRSSOrAtomXML(body []byte) bool {
	// 先頭4KBを検査（XMLプロローグ + ルート要素が含まれるのに十分）
	checkSize := 4096
	if len(body) < checkSize {
		checkSize = len(body)
	}
	prefix := strings.ToLower(string(body[:checkSize]))

	if strings.Contains(prefix, "<rss") {
		return true
	}
	if strings.Contains(prefix, "<rdf:rdf") {
		return true
	}
	if strings.Contains(prefix, "<feed") && strings.Contains(prefix, "http://www.w3.org/2005/atom") {
		return true
	}

	return false
}

// parseFeedLinkFromHTML はHTMLのheadタグから最初のRSS/Atomフィードリンクを返す。
// 相対URLはbaseURLを基準に絶対URLに解決する。見つからない場合は空文字列を返す。
func parseFeedLinkFromHTML(htmlBody []byte, baseURL string) string {
	baseU, err := url.Parse(baseURL)
	if err != nil {
		return ""
	}

	tokenizer := html.NewTokenizer(bytes.NewReader(htmlBody))
	inHead := false

	for {
		tt := tokenizer.Next()
		switch tt {
		case html.ErrorToken:
			return ""

		case html.StartTagToken, html.SelfClosingTagToken:
			tn, hasAttr := tokenizer.TagName()
			tagName := string(tn)

			if tagName == "head" {
				inHead = true
				continue
			}
			if tagName == "body" {
				// bodyに入ったらheadの解析を終了
				return ""
			}
			if !inHead || tagName != "link" || !hasAttr {
				continue
			}

			var rel, linkType, href string
			for {
				key, val, more := tokenizer.TagAttr()
				switch strings.ToLower(string(key)) {
				case "rel":
					rel = strings.ToLower(string(val))
				case "type":
					linkType = strings.ToLower(string(val))
				case "href":
					href = string(val)
				}
				if !more {
					break
				}
			}

			if rel != "alternate" || href == "" {
				continue
			}
			if linkType != "application/rss+xml" && linkType != "application/atom+xml" {
				continue
			}

			ref, err := url.Parse(href)
			if err != nil {
				continue
			}
			return baseU.ResolveReference(ref).String()

		case html.EndTagToken:
			tn, _ := tokenizer.TagName()
			if string(tn) == "head" {
				return ""
			}
		}
	}
}
