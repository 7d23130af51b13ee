package capture

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/chromedp/chromedp"
	readability "github.com/go-shiori/go-readability"
	"github.com/google/uuid"

	"github.com/avaldezm/newsight/internal/metrics"
)

const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// Service captures page screenshots and article text with headless Chrome.
// Captures run at most maxConcurrent at a time; individual failures are
// logged and skipped, never surfaced to the search flow.
type Service struct {
	dir           string
	timeout       time.Duration
	maxConcurrent int
	logger        *log.Logger
}

func NewService(dir string, timeout time.Duration, maxConcurrent int, logger *log.Logger) (*Service, error) {
	if logger == nil {
		logger = log.New(log.Writer(), "[CAPTURE] ", log.LstdFlags)
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	if maxConcurrent <= 0 {
		maxConcurrent = 3
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create screenshots dir: %w", err)
	}
	return &Service{dir: dir, timeout: timeout, maxConcurrent: maxConcurrent, logger: logger}, nil
}

// CaptureMany screenshots the given URLs concurrently and returns a map of
// URL to the relative screenshot reference. URLs that failed have no entry.
func (s *Service) CaptureMany(ctx context.Context, urls []string) map[string]string {
	results := make(map[string]string, len(urls))
	var mu sync.Mutex
	var wg sync.WaitGroup
	sem := make(chan struct{}, s.maxConcurrent)

	for _, u := range urls {
		wg.Add(1)
		go func(u string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			ref, err := s.Capture(ctx, u)
			if err != nil {
				s.logger.Printf("screenshot of %s failed: %v", u, err)
				metrics.CaptureFailures.Inc()
				return
			}
			mu.Lock()
			results[u] = ref
			mu.Unlock()
		}(u)
	}
	wg.Wait()
	return results
}

// Capture screenshots one URL and returns the relative reference
// ("screenshots/<file>") for clients to resolve against their static root.
func (s *Service) Capture(ctx context.Context, pageURL string) (string, error) {
	if strings.TrimSpace(pageURL) == "" {
		return "", fmt.Errorf("invalid url")
	}
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	bctx, cancelBrowser := newBrowserContext(ctx)
	defer cancelBrowser()

	var shot []byte
	err := chromedp.Run(bctx,
		chromedp.EmulateViewport(1280, 800),
		chromedp.Navigate(pageURL),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.Sleep(2*time.Second),
		chromedp.CaptureScreenshot(&shot),
	)
	if err != nil {
		return "", err
	}

	filename := fmt.Sprintf("screenshot_%d_%s.jpg", time.Now().UnixMilli(), uuid.NewString()[:8])
	if err := os.WriteFile(filepath.Join(s.dir, filename), shot, 0o644); err != nil {
		return "", err
	}
	s.logger.Printf("screenshot captured: %s", filename)
	return "screenshots/" + filename, nil
}

// ExtractContent renders the page and returns the readable article text,
// truncated to maxChars.
func (s *Service) ExtractContent(ctx context.Context, pageURL string, maxChars int) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	bctx, cancelBrowser := newBrowserContext(ctx)
	defer cancelBrowser()

	var html string
	err := chromedp.Run(bctx,
		chromedp.Navigate(pageURL),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
	)
	if err != nil {
		return "", err
	}

	article, err := readability.FromReader(strings.NewReader(html), mustParseURL(pageURL))
	if err != nil {
		return "", err
	}
	text := strings.TrimSpace(article.TextContent)
	if maxChars > 0 && len(text) > maxChars {
		text = text[:maxChars]
	}
	return text, nil
}

// CleanOld deletes screenshots older than ttl.
func (s *Service) CleanOld(ttl time.Duration) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		s.logger.Printf("cleanup: %v", err)
		return
	}
	cutoff := time.Now().Add(-ttl)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().Before(cutoff) {
			if err := os.Remove(filepath.Join(s.dir, entry.Name())); err != nil {
				s.logger.Printf("cleanup %s: %v", entry.Name(), err)
			}
		}
	}
}

func newBrowserContext(ctx context.Context) (context.Context, context.CancelFunc) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.NoSandbox,
		chromedp.DisableGPU,
		chromedp.UserAgent(userAgent),
	)
	actx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	bctx, cancelBrowser := chromedp.NewContext(actx)
	cancel := func() {
		cancelBrowser()
		cancelAlloc()
	}
	return bctx, cancel
}

func mustParseURL(raw string) *url.URL {
	u, err := url.Parse(raw)
	if err != nil {
		return &url.URL{}
	}
	return u
}
