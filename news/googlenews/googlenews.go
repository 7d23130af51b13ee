package googlenews

import (
	"context"
	"encoding/xml"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/avaldezm/newsight/models"
)

const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// Client fetches articles from the Google News RSS search feed.
type Client struct {
	Endpoint   string
	MaxResults int
	HTTPClient *http.Client
}

func New(endpoint string, maxResults int) *Client {
	if endpoint == "" {
		endpoint = "https://news.google.com/rss/search"
	}
	if maxResults <= 0 {
		maxResults = 10
	}
	return &Client{Endpoint: endpoint, MaxResults: maxResults, HTTPClient: http.DefaultClient}
}

func (c *Client) Name() string { return "google_news" }

type rssFeed struct {
	Channel struct {
		Items []rssItem `xml:"item"`
	} `xml:"channel"`
}

type rssItem struct {
	Title       string `xml:"title"`
	Link        string `xml:"link"`
	PubDate     string `xml:"pubDate"`
	Description string `xml:"description"`
	Source      string `xml:"source"`
}

func (c *Client) Fetch(ctx context.Context, query string) ([]models.Document, error) {
	endpoint := fmt.Sprintf("%s?q=%s&hl=en-US&gl=US&ceid=US:en", c.Endpoint, url.QueryEscape(query))
	req, err := http.NewRequestWithContext(ctx, "GET", endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("google news request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("google news returned status %d", resp.StatusCode)
	}

	var feed rssFeed
	if err := xml.NewDecoder(resp.Body).Decode(&feed); err != nil {
		return nil, fmt.Errorf("google news feed decode: %w", err)
	}

	var docs []models.Document
	for _, item := range feed.Channel.Items {
		if len(docs) >= c.MaxResults {
			break
		}
		title := strings.TrimSpace(item.Title)
		if title == "" || item.Link == "" {
			continue
		}
		source := strings.TrimSpace(item.Source)
		if source == "" {
			source = "Google News"
		}
		snippet := trimSnippet(stripTags(item.Description))
		if snippet == "" {
			snippet = title
		}
		docs = append(docs, models.Document{
			Title:         title,
			URL:           item.Link,
			Snippet:       snippet,
			Source:        source,
			PublishedDate: item.PubDate,
			Kind:          models.KindArticle,
		})
	}
	return docs, nil
}

var tagPattern = regexp.MustCompile(`<[^>]*>`)

func stripTags(s string) string {
	return strings.TrimSpace(tagPattern.ReplaceAllString(s, " "))
}

const maxSnippetRunes = 250

func trimSnippet(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	if utf8.RuneCountInString(s) <= maxSnippetRunes {
		return s
	}
	return string([]rune(s)[:maxSnippetRunes])
}
