package metadata

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Totarae/linkbucket/internal/model"
	"github.com/Totarae/linkbucket/internal/util"
	"go.uber.org/zap"
	"golang.org/x/net/html"
)

const (
	defaultMaxBody = 1 << 20
	userAgent      = "Mozilla/5.0 (compatible; linkbucket/1.0)"
)

// Fetcher загружает страницу и извлекает заголовок и картинку превью.
// Адреса внутренней сети (loopback, частные, link-local) отклоняются,
// пока не включён AllowPrivateNetworks.
type Fetcher struct {
	HTTPClient           *http.Client
	Cache                *Cache
	MaxBody              int64
	Logger               *zap.Logger
	AllowPrivateNetworks bool
}

// NewFetcher создаёт загрузчик. cache может быть nil.
func NewFetcher(timeout time.Duration, cache *Cache, logger *zap.Logger) *Fetcher {
	f := &Fetcher{
		Cache:   cache,
		MaxBody: defaultMaxBody,
		Logger:  logger,
	}
	f.HTTPClient = &http.Client{
		Timeout:       timeout,
		Transport:     f.newTransport(timeout),
		CheckRedirect: checkRedirect,
	}
	return f
}

// Fetch возвращает метаданные страницы, по возможности из кэша.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (model.PageMetadata, error) {
	pageURL := util.NormalizeURL(rawURL)
	if pageURL == "" {
		return model.PageMetadata{}, fmt.Errorf("empty url")
	}

	if f.Cache != nil {
		meta, ok, err := f.Cache.Get(pageURL)
		if err != nil {
			f.Logger.Warn("Metadata cache read failed", zap.Error(err))
		} else if ok {
			f.Logger.Debug("Metadata cache hit", zap.String("url", pageURL))
			return meta, nil
		}
	}

	meta, err := f.download(ctx, pageURL)
	if err != nil {
		return model.PageMetadata{}, err
	}

	if f.Cache != nil {
		if err := f.Cache.Set(pageURL, meta); err != nil {
			f.Logger.Warn("Metadata cache write failed", zap.Error(err))
		}
	}
	return meta, nil
}

func (f *Fetcher) download(ctx context.Context, pageURL string) (model.PageMetadata, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return model.PageMetadata{}, fmt.Errorf("build request: %w", err)
	}
	if err := checkScheme(req.URL); err != nil {
		return model.PageMetadata{}, err
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := f.HTTPClient.Do(req)
	if err != nil {
		return model.PageMetadata{}, fmt.Errorf("fetch %s: %w", pageURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return model.PageMetadata{}, fmt.Errorf("fetch %s: status %d", pageURL, resp.StatusCode)
	}

	maxBody := f.MaxBody
	if maxBody <= 0 {
		maxBody = defaultMaxBody
	}
	meta, err := Parse(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return model.PageMetadata{}, fmt.Errorf("parse %s: %w", pageURL, err)
	}

	base := resp.Request.URL
	if meta.ImageURL != "" {
		meta.ImageURL = resolve(base, meta.ImageURL)
	}
	return meta, nil
}

// Parse извлекает метаданные из HTML. Заголовок берётся из <title>, иначе og:title;
// картинка из og:image, иначе twitter:image.
func Parse(r io.Reader) (model.PageMetadata, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return model.PageMetadata{}, err
	}

	var title, ogTitle, ogImage, twitterImage string
	var walk func(n *html.Node, inSVG bool)
	walk = func(n *html.Node, inSVG bool) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "svg":
				inSVG = true
			case "title":
				if title == "" && !inSVG {
					title = strings.Join(strings.Fields(textOf(n)), " ")
				}
			case "meta":
				key := strings.ToLower(attr(n, "property"))
				if key == "" {
					key = strings.ToLower(attr(n, "name"))
				}
				content := strings.TrimSpace(attr(n, "content"))
				switch {
				case content == "":
				case key == "og:title" && ogTitle == "":
					ogTitle = content
				case key == "og:image" && ogImage == "":
					ogImage = content
				case key == "twitter:image" && twitterImage == "":
					twitterImage = content
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c, inSVG)
		}
	}
	walk(doc, false)

	meta := model.PageMetadata{Title: title, ImageURL: ogImage}
	if meta.Title == "" {
		meta.Title = ogTitle
	}
	if meta.ImageURL == "" {
		meta.ImageURL = twitterImage
	}
	return meta, nil
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if strings.EqualFold(a.Key, key) {
			return a.Val
		}
	}
	return ""
}

func textOf(n *html.Node) string {
	var sb strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			sb.WriteString(c.Data)
		}
	}
	return sb.String()
}

func resolve(base *url.URL, ref string) string {
	u, err := url.Parse(ref)
	if err != nil || base == nil {
		return ref
	}
	return base.ResolveReference(u).String()
}
