// Package scrape collects the Lidl DK recipe index (url and title of every recipe page).
package scrape

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"budget-recipe-api/internal/pkg/common"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
	"golang.org/x/net/html"
	"golang.org/x/time/rate"
)

// 預設來源
const (
	DefaultBaseURL   = "https://opskrifter.lidl.dk"
	DefaultIndexPath = "/opskrifter"
	DefaultDelay     = 500 * time.Millisecond
)

// Entry 一筆食譜連結
type Entry struct {
	URL   string
	Title string
}

// Scraper 食譜索引爬蟲
type Scraper struct {
	client    *resty.Client
	base      *url.URL
	indexPath string
	limiter   *rate.Limiter
}

// Option 爬蟲選項
type Option func(*Scraper)

// WithDelay 每個頁面請求之間的間隔，0 表示不限速
func WithDelay(d time.Duration) Option {
	return func(s *Scraper) {
		if d <= 0 {
			s.limiter = rate.NewLimiter(rate.Inf, 1)
			return
		}
		s.limiter = rate.NewLimiter(rate.Every(d), 1)
	}
}

// WithIndexPath 索引頁路徑
func WithIndexPath(p string) Option {
	return func(s *Scraper) {
		s.indexPath = p
	}
}

// WithTimeout 單一請求逾時
func WithTimeout(d time.Duration) Option {
	return func(s *Scraper) {
		s.client.SetTimeout(d)
	}
}

// New 創建爬蟲
func New(baseURL string, opts ...Option) (*Scraper, error) {
	base, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid base url %q: %w", baseURL, err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("invalid base url %q: scheme and host are required", baseURL)
	}

	s := &Scraper{
		client: resty.New().
			SetTimeout(30*time.Second).
			SetHeader("User-Agent", "budget-recipe-api-scraper/1.0"),
		base:      base,
		indexPath: DefaultIndexPath,
		limiter:   rate.NewLimiter(rate.Every(DefaultDelay), 1),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Links 讀取索引頁並回傳過濾、去重、排序後的食譜連結
func (s *Scraper) Links(ctx context.Context) ([]string, error) {
	indexURL := s.resolve(s.indexPath)
	doc, err := s.fetch(ctx, indexURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch index %s: %w", indexURL, err)
	}

	seen := make(map[string]struct{})
	for _, href := range collectHrefs(doc) {
		if !s.keep(href) {
			continue
		}
		seen[s.resolve(href)] = struct{}{}
	}

	links := make([]string, 0, len(seen))
	for link := range seen {
		links = append(links, link)
	}
	sort.Strings(links)

	// 只解析靜態 HTML，索引若改由前端渲染會找不到任何連結
	if len(links) == 0 {
		common.LogWarn("No recipe links found on index page, it may be rendered client-side",
			zap.String("url", indexURL),
		)
		return links, nil
	}

	common.LogInfo("Found recipe links", zap.Int("count", len(links)))
	return links, nil
}

// Title 讀取頁面第一個 <h1> 的文字，沒有時為空字串
func (s *Scraper) Title(ctx context.Context, pageURL string) (string, error) {
	doc, err := s.fetch(ctx, pageURL)
	if err != nil {
		return "", err
	}
	h1 := findFirst(doc, "h1")
	if h1 == nil {
		return "", nil
	}
	return strings.Join(strings.Fields(textContent(h1)), " "), nil
}

// Run 擷取索引後逐頁取得標題並寫出 CSV（url,title）。
// 單頁失敗只記錄並略過，回傳成功寫出的筆數。
func (s *Scraper) Run(ctx context.Context, out io.Writer) (int, error) {
	links, err := s.Links(ctx)
	if err != nil {
		return 0, err
	}

	w := csv.NewWriter(out)
	if err := w.Write([]string{"url", "title"}); err != nil {
		return 0, err
	}

	written := 0
	for i, link := range links {
		if err := s.limiter.Wait(ctx); err != nil {
			w.Flush()
			return written, err
		}

		title, err := s.Title(ctx, link)
		if err != nil {
			common.LogWarn("Failed to scrape recipe page",
				zap.Int("index", i+1),
				zap.Int("total", len(links)),
				zap.String("url", link),
				zap.Error(err),
			)
			continue
		}
		if err := w.Write([]string{link, title}); err != nil {
			return written, err
		}
		written++
		common.LogInfo("Scraped recipe page",
			zap.Int("index", i+1),
			zap.Int("total", len(links)),
			zap.String("title", title),
		)
	}

	w.Flush()
	return written, w.Error()
}

// keep 只保留站內食譜頁
func (s *Scraper) keep(href string) bool {
	return strings.HasPrefix(href, "/") &&
		!strings.HasPrefix(href, "//") &&
		!strings.Contains(href, "/udvalg/") &&
		href != s.indexPath
}

func (s *Scraper) resolve(ref string) string {
	u, err := url.Parse(ref)
	if err != nil {
		return s.base.String() + ref
	}
	return s.base.ResolveReference(u).String()
}

func (s *Scraper) fetch(ctx context.Context, pageURL string) (*html.Node, error) {
	resp, err := s.client.R().
		SetContext(ctx).
		SetDoNotParseResponse(true).
		Get(pageURL)
	if err != nil {
		return nil, err
	}
	body := resp.RawBody()
	defer body.Close()

	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode())
	}
	return html.Parse(body)
}

func collectHrefs(n *html.Node) []string {
	var hrefs []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "a" {
			for _, attr := range n.Attr {
				if attr.Key == "href" && attr.Val != "" {
					hrefs = append(hrefs, attr.Val)
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return hrefs
}

func findFirst(n *html.Node, tag string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tag {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findFirst(c, tag); found != nil {
			return found
		}
	}
	return nil
}

func textContent(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}
