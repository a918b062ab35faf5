package util

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-faster/errors"
	"github.com/rs/zerolog/log"
)

// Only the start of the app link pages are read
const maxAppLinkPageSize = 1 << 20

// GetUrlsFromText returns all the reddit links in text.
// Short links (redd.it) are converted to comment links and reddit.app.link links are resolved.
// A reddit.app.link which cannot be resolved is omitted.
func GetUrlsFromText(ctx context.Context, client *http.Client, userAgent, text string) []string {
	var urls []string
	for _, word := range strings.Split(PolishText(text), " ") {
		lower := strings.ToLower(word)
		if strings.Contains(lower, "reddit.com") {
			urls = append(urls, beforeQuery(word))
		}
		if strings.Contains(lower, "redd.it") {
			_, id, _ := strings.Cut(word, "redd.it/")
			urls = append(urls, "https://www.reddit.com/comments/"+id)
		}
		if strings.Contains(lower, "reddit.app.link") {
			u, err := ResolveAppLink(ctx, client, userAgent, word)
			if err != nil {
				log.Debug().Err(err).Str("link", word).Msg("cannot resolve app link")
				continue
			}
			urls = append(urls, beforeQuery(u))
		}
	}
	return urls
}

// beforeQuery removes the "/?..." part of a link
func beforeQuery(link string) string {
	before, _, _ := strings.Cut(link, "/?")
	return before
}

// ResolveAppLink finds the destination of reddit.app.link links without following the redirect.
// It checks the Location header, then the links in the page and at last the first https url in
// the body.
func ResolveAppLink(ctx context.Context, client *http.Client, userAgent, link string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, link, nil)
	if err != nil {
		return "", errors.Wrap(err, "cannot create request")
	}
	req.Header.Set("User-Agent", userAgent)
	// Do not follow the redirects
	noRedirectClient := *client
	noRedirectClient.CheckRedirect = func(*http.Request, []*http.Request) error {
		return http.ErrUseLastResponse
	}
	resp, err := noRedirectClient.Do(req)
	if err != nil {
		return "", errors.Wrap(err, "cannot do the request")
	}
	defer resp.Body.Close()
	if location := resp.Header.Get("Location"); strings.HasPrefix(location, "https://") {
		return location, nil
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxAppLinkPageSize))
	if err != nil {
		return "", errors.Wrap(err, "cannot read body")
	}
	if u := appLinkFromHTML(body); u != "" {
		return u, nil
	}
	// Last resort: the first https url in the page
	start := bytes.Index(body, []byte("https://"))
	if start == -1 {
		return "", errors.New("no url in page")
	}
	end := bytes.IndexByte(body[start:], '"')
	if end == -1 {
		return "", errors.New("unterminated url in page")
	}
	return string(body[start : start+end]), nil
}

// appLinkFromHTML searches the page for the canonical destination of an app link
func appLinkFromHTML(body []byte) string {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return ""
	}
	var result string
	doc.Find(`meta[property="og:url"]`).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if content, _ := s.Attr("content"); strings.HasPrefix(content, "https://") {
			result = content
			return false
		}
		return true
	})
	if result != "" {
		return result
	}
	doc.Find("a[href]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if href, _ := s.Attr("href"); strings.HasPrefix(href, "https://") {
			result = href
			return false
		}
		return true
	})
	return result
}
