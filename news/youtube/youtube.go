package youtube

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/avaldezm/newsight/models"
)

const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// Client pulls news videos from the YouTube results page. YouTube embeds the
// result set as a ytInitialData JSON blob in the page source; no API key is
// needed.
type Client struct {
	MaxResults int
	HTTPClient *http.Client
}

func New(maxResults int) *Client {
	if maxResults <= 0 {
		maxResults = 3
	}
	return &Client{MaxResults: maxResults, HTTPClient: http.DefaultClient}
}

func (c *Client) Name() string { return "youtube" }

var initialDataPattern = regexp.MustCompile(`var ytInitialData = (\{.*?\});`)

type initialData struct {
	Contents struct {
		TwoColumnSearchResultsRenderer struct {
			PrimaryContents struct {
				SectionListRenderer struct {
					Contents []struct {
						ItemSectionRenderer struct {
							Contents []struct {
								VideoRenderer *videoRenderer `json:"videoRenderer"`
							} `json:"contents"`
						} `json:"itemSectionRenderer"`
					} `json:"contents"`
				} `json:"sectionListRenderer"`
			} `json:"primaryContents"`
		} `json:"twoColumnSearchResultsRenderer"`
	} `json:"contents"`
}

type videoRenderer struct {
	VideoID string `json:"videoId"`
	Title   struct {
		Runs []textRun `json:"runs"`
	} `json:"title"`
	OwnerText struct {
		Runs []textRun `json:"runs"`
	} `json:"ownerText"`
	Thumbnail struct {
		Thumbnails []struct {
			URL string `json:"url"`
		} `json:"thumbnails"`
	} `json:"thumbnail"`
	DescriptionSnippet struct {
		Runs []textRun `json:"runs"`
	} `json:"descriptionSnippet"`
}

type textRun struct {
	Text string `json:"text"`
}

func (c *Client) Fetch(ctx context.Context, query string) ([]models.Document, error) {
	endpoint := "https://www.youtube.com/results?search_query=" + url.QueryEscape(query+" news")
	req, err := http.NewRequestWithContext(ctx, "GET", endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("youtube request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("youtube returned status %d", resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	return c.parseResults(body)
}

func (c *Client) parseResults(page []byte) ([]models.Document, error) {
	match := initialDataPattern.FindSubmatch(page)
	if match == nil {
		return nil, fmt.Errorf("ytInitialData not found in results page")
	}

	var data initialData
	if err := json.Unmarshal(match[1], &data); err != nil {
		return nil, fmt.Errorf("ytInitialData decode: %w", err)
	}

	var docs []models.Document
	for _, section := range data.Contents.TwoColumnSearchResultsRenderer.PrimaryContents.SectionListRenderer.Contents {
		for _, item := range section.ItemSectionRenderer.Contents {
			if len(docs) >= c.MaxResults {
				return docs, nil
			}
			video := item.VideoRenderer
			if video == nil || video.VideoID == "" {
				continue
			}
			title := joinRuns(video.Title.Runs)
			if title == "" {
				continue
			}
			var thumbnail string
			if len(video.Thumbnail.Thumbnails) > 0 {
				thumbnail = video.Thumbnail.Thumbnails[0].URL
			}
			snippet := trimSnippet(joinRuns(video.DescriptionSnippet.Runs))
			docs = append(docs, models.Document{
				Title:    title,
				URL:      "https://www.youtube.com/watch?v=" + video.VideoID,
				Snippet:  snippet,
				Source:   "YouTube - " + joinRuns(video.OwnerText.Runs),
				ImageURL: thumbnail,
				Kind:     models.KindVideo,
			})
		}
	}
	return docs, nil
}

func joinRuns(runs []textRun) string {
	var b strings.Builder
	for _, run := range runs {
		b.WriteString(run.Text)
	}
	return b.String()
}

const maxSnippetRunes = 250

func trimSnippet(s string) string {
	if utf8.RuneCountInString(s) <= maxSnippetRunes {
		return s
	}
	return string([]rune(s)[:maxSnippetRunes])
}
