package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/raphi011/brewlog/internal/api"
	"github.com/raphi011/brewlog/internal/config"
	"github.com/raphi011/brewlog/internal/fetchcache"
	"github.com/raphi011/brewlog/internal/history"
	"github.com/raphi011/brewlog/internal/session"
	"github.com/raphi011/brewlog/internal/storage"
	"github.com/raphi011/brewlog/internal/ui/styles"
)

// app holds the services shared by commands.
type app struct {
	cfg         *config.Config
	store       *storage.LocalStore
	session     *session.Manager
	client      *api.Client
	historyPath string
}

type appKey struct{}

func withApp(ctx context.Context, a *app) context.Context {
	return context.WithValue(ctx, appKey{}, a)
}

// appFrom returns the app set up by the root command.
func appFrom(ctx context.Context) *app {
	a, ok := ctx.Value(appKey{}).(*app)
	if !ok {
		panic("brewlog: command run without app")
	}
	return a
}

// newApp wires the local store, session manager and API client. Nothing
// touches the network until a command does.
func newApp(cfg *config.Config, stderr io.Writer) (*app, error) {
	if cfg == nil {
		d := config.Default()
		cfg = &d
	}

	store, err := storage.OpenLocalStore()
	if err != nil {
		return nil, fmt.Errorf("open local storage: %w", err)
	}
	historyPath, err := history.DefaultPath()
	if err != nil {
		return nil, fmt.Errorf("history: %w", err)
	}

	cache := fetchcache.New(fetchcache.WithFetchTimeout(cfg.API.Timeout))
	notice := sessionNotice{w: stderr}
	mgr := session.NewManager(store, nil,
		session.WithCache(cache),
		session.WithNotifier(notice),
		session.WithNavigator(notice),
	)

	client, err := api.New(apiConfig(cfg, cache), mgr)
	if err != nil {
		return nil, err
	}
	client.SetUnauthorizedHandler(mgr)
	mgr.SetClient(client)

	return &app{
		cfg:         cfg,
		store:       store,
		session:     mgr,
		client:      client,
		historyPath: historyPath,
	}, nil
}

func apiConfig(cfg *config.Config, cache *fetchcache.Cache) api.Config {
	orDefault := func(d time.Duration) time.Duration {
		if d > 0 {
			return d
		}
		return cfg.Cache.DefaultTTL
	}
	userAgent := cfg.API.UserAgent
	if userAgent == config.DefaultUserAgent {
		userAgent += "/" + version
	}
	return api.Config{
		BaseURL:   cfg.API.BaseURL,
		Timeout:   cfg.API.Timeout,
		UserAgent: userAgent,
		RateLimit: cfg.API.RateLimit,
		TTL: api.TTLs{
			Coffee:     orDefault(cfg.Cache.CoffeeTTL),
			CoffeeList: orDefault(cfg.Cache.CoffeeListTTL),
			BrewLog:    orDefault(cfg.Cache.BrewLogTTL),
			BrewLogs:   orDefault(cfg.Cache.BrewLogListTTL),
		},
		AITries:   cfg.AI.Tries,
		AITimeout: cfg.AI.Timeout,
		Cache:     cache,
	}
}

// sessionNotice tells the user on stderr when their session ends.
type sessionNotice struct {
	w io.Writer
}

func (n sessionNotice) SessionExpired() {
	fmt.Fprintln(n.w, styles.WarningStyle.Render("Your session has expired. Please log in again."))
}

func (n sessionNotice) RedirectToLogin() {
	fmt.Fprintln(n.w, styles.MutedStyle.Render("Run 'brewlog login' to sign in."))
}
