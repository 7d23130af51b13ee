package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/avaldezm/newsight/capture"
	"github.com/avaldezm/newsight/config"
	"github.com/avaldezm/newsight/conversation"
	"github.com/avaldezm/newsight/interests"
	"github.com/avaldezm/newsight/interests/inmemory"
	"github.com/avaldezm/newsight/interests/redisstore"
	"github.com/avaldezm/newsight/internal/telemetry"
	"github.com/avaldezm/newsight/news"
	"github.com/avaldezm/newsight/news/googlenews"
	"github.com/avaldezm/newsight/news/outlet"
	"github.com/avaldezm/newsight/news/youtube"
	"github.com/avaldezm/newsight/provider"
	"github.com/avaldezm/newsight/search"
	"github.com/avaldezm/newsight/synthesis"
	"github.com/avaldezm/newsight/websearch"
)

// Run wires the pipeline from configuration and serves the HTTP API until
// the listener stops.
func Run(cfg *config.Config) error {
	tel, err := telemetry.Setup(context.Background(), cfg.Telemetry)
	if err != nil {
		return fmt.Errorf("telemetry setup: %w", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tel.Shutdown(ctx); err != nil {
			log.Printf("telemetry shutdown: %v", err)
		}
	}()

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())

	baseLogger := log.New(log.Writer(), "[HTTP] ", log.LstdFlags)
	e.HTTPErrorHandler = func(err error, c echo.Context) {
		code := http.StatusInternalServerError
		msg := err.Error()
		if he, ok := err.(*echo.HTTPError); ok {
			code = he.Code
			if he.Message != nil {
				msg = fmt.Sprint(he.Message)
			}
		}
		req := c.Request()
		baseLogger.Printf("%d %s %s from %s: %v", code, req.Method, req.URL.Path, c.RealIP(), err)
		if !c.Response().Committed {
			_ = c.JSON(code, map[string]interface{}{"status": "error", "message": msg})
		}
	}
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Cookie"},
		AllowCredentials: true,
	}))

	e.GET("/healthz", func(c echo.Context) error { return c.String(200, "ok") })
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	store, err := buildInterestStore(cfg)
	if err != nil {
		return err
	}

	session, capSvc, err := buildSession(cfg, store)
	if err != nil {
		return err
	}

	api := e.Group("/api")
	sh := &SearchHandler{Session: session}
	sh.Register(api)
	ih := &InterestsHandler{Store: store}
	ih.Register(api.Group("/interests"))
	if capSvc != nil {
		ch := &ContentHandler{Capture: capSvc}
		ch.Register(api)
	}

	return e.Start(cfg.Server.Address)
}

func buildInterestStore(cfg *config.Config) (interests.Store, error) {
	switch interests.StoreType(cfg.Storage.Interests) {
	case interests.RedisStore:
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Storage.Redis.Timeout)
		defer cancel()
		client, err := redisstore.Conn(ctx,
			cfg.Storage.Redis.Host, cfg.Storage.Redis.Port,
			cfg.Storage.Redis.Password, cfg.Storage.Redis.DB,
			cfg.Storage.Redis.Timeout)
		if err != nil {
			return nil, fmt.Errorf("redis connection: %w", err)
		}
		return redisstore.NewStore(client), nil
	case interests.InMemoryStore, "":
		return inmemory.NewStore(), nil
	default:
		return nil, fmt.Errorf("unsupported interest store: %s", cfg.Storage.Interests)
	}
}

func buildSession(cfg *config.Config, store interests.Store) (*search.Session, *capture.Service, error) {
	providers := []news.Provider{
		news.WithTimeout(
			googlenews.New(cfg.Providers.GoogleNews.Endpoint, cfg.Providers.GoogleNews.MaxResults),
			cfg.Providers.GoogleNews.Timeout),
	}

	if len(cfg.Providers.Outlets) > 0 {
		searcher, err := buildSearcher(cfg.Providers.WebSearch)
		if err != nil {
			return nil, nil, err
		}
		for _, o := range cfg.Providers.Outlets {
			providers = append(providers, outlet.New(o.Name, o.Site, o.MaxResults, searcher))
		}
	}
	providers = append(providers, news.WithTimeout(
		youtube.New(cfg.Providers.YouTube.MaxResults), cfg.Providers.YouTube.Timeout))

	// The aggregator timeout is a ceiling over the whole fan-out; providers
	// with their own configured duration are bounded tighter above.
	timeout := cfg.Providers.GoogleNews.Timeout
	for _, d := range []time.Duration{cfg.Providers.YouTube.Timeout, cfg.Providers.WebSearch.Timeout} {
		if d > timeout {
			timeout = d
		}
	}
	aggregator := news.NewAggregator(providers, timeout, log.New(log.Writer(), "[NEWS] ", log.LstdFlags))

	synthLogger := log.New(log.Writer(), "[SYNTH] ", log.LstdFlags)
	llm, err := buildLLM(cfg.LLM)
	if err != nil {
		return nil, nil, err
	}
	if llm == nil {
		synthLogger.Printf("no llm credentials configured, reports use the deterministic fallback")
	}
	synthesizer := synthesis.NewSynthesizer(llm, synthLogger)

	var capSvc *capture.Service
	if cfg.Capture.Enabled {
		capSvc, err = capture.NewService(cfg.Capture.Dir, cfg.Capture.Timeout, cfg.Capture.MaxConcurrent,
			log.New(log.Writer(), "[CAPTURE] ", log.LstdFlags))
		if err != nil {
			return nil, nil, err
		}
		go captureJanitor(capSvc, cfg.Capture.TTL)
	}

	tree := conversation.NewTree()
	session := search.NewSession(tree, store, aggregator, synthesizer, capSvc,
		log.New(log.Writer(), "[SEARCH] ", log.LstdFlags))
	return session, capSvc, nil
}

// buildLLM resolves the generative-text provider. A missing provider or
// credential yields a nil provider, which puts the synthesizer in permanent
// fallback mode rather than failing startup.
func buildLLM(cfg config.LLMConfig) (provider.Provider, error) {
	if !cfg.Enabled() {
		return nil, nil
	}
	return provider.NewProvider(cfg)
}

func buildSearcher(cfg config.WebSearchConfig) (websearch.Searcher, error) {
	switch websearch.Provider(cfg.Provider) {
	case websearch.SerperProvider:
		return websearch.NewSearcher(websearch.SerperProvider, cfg.SerperAPIKey, cfg.Timeout)
	case websearch.BraveProvider:
		return websearch.NewSearcher(websearch.BraveProvider, cfg.BraveAPIKey, cfg.Timeout)
	default:
		return nil, fmt.Errorf("outlets configured but providers.web_search.provider is %q", cfg.Provider)
	}
}

func captureJanitor(svc *capture.Service, ttl time.Duration) {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()
	for range ticker.C {
		svc.CleanOld(ttl)
	}
}
