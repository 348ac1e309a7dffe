// Package browser wraps chromedp behind a small session/page surface. One
// Session owns a headless Chrome process shared by the whole run; each Page
// is an independent tab, so a stuck navigation on one card never blocks its
// siblings.
package browser

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/chromedp/cdproto/emulation"
	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Config controls the behavior of the browser session.
type Config struct {
	Headless   bool
	UserAgent  string
	NavTimeout time.Duration
	// DomainQPS caps navigations per host. Zero disables the limiter.
	DomainQPS float64
}

// Session owns the Chrome allocator and browser contexts for one crawl run.
// It must be closed on every exit path, including errors.
type Session struct {
	cfg             Config
	logger          *zap.Logger
	allocatorCancel context.CancelFunc
	browserCtx      context.Context
	browserCancel   context.CancelFunc
	domainLimiters  sync.Map
}

// NewSession launches headless Chrome and warms up the browser context.
// Failure here is fatal to the whole crawl run.
func NewSession(cfg Config, logger *zap.Logger) (*Session, error) {
	if cfg.NavTimeout <= 0 {
		cfg.NavTimeout = 35 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", cfg.Headless),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("hide-scrollbars", true),
	)
	if cfg.UserAgent != "" {
		opts = append(opts, chromedp.UserAgent(cfg.UserAgent))
	}

	allocatorCtx, allocatorCancel := chromedp.NewExecAllocator(context.Background(), opts...)
	browserCtx, browserCancel := chromedp.NewContext(allocatorCtx)
	if err := chromedp.Run(browserCtx); err != nil {
		browserCancel()
		allocatorCancel()
		return nil, fmt.Errorf("chromedp warmup: %w", err)
	}

	return &Session{
		cfg:             cfg,
		logger:          logger,
		allocatorCancel: allocatorCancel,
		browserCtx:      browserCtx,
		browserCancel:   browserCancel,
	}, nil
}

// Close tears down the browser and allocator contexts.
func (s *Session) Close() error {
	if s == nil {
		return nil
	}
	s.browserCancel()
	s.allocatorCancel()
	return nil
}

// NewPage opens a fresh tab sharing the session's cookies and connections.
func (s *Session) NewPage() (*Page, error) {
	if s == nil || s.browserCtx == nil {
		return nil, fmt.Errorf("browser session not initialized")
	}
	tabCtx, tabCancel := chromedp.NewContext(s.browserCtx)
	return &Page{
		session:   s,
		tabCtx:    tabCtx,
		tabCancel: tabCancel,
	}, nil
}

func (s *Session) waitDomainBudget(ctx context.Context, rawURL string) error {
	if s.cfg.DomainQPS <= 0 {
		return nil
	}
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("parse url: %w", err)
	}
	host := strings.ToLower(parsed.Host)
	val, _ := s.domainLimiters.LoadOrStore(host, rate.NewLimiter(rate.Limit(s.cfg.DomainQPS), 1))
	limiter, ok := val.(*rate.Limiter)
	if !ok {
		return fmt.Errorf("unexpected limiter type %T", val)
	}
	if err := limiter.Wait(ctx); err != nil {
		return fmt.Errorf("wait limiter: %w", err)
	}
	return nil
}

// Page is a single browser tab. Pages are not safe for concurrent use; each
// worker owns its own.
type Page struct {
	session   *Session
	tabCtx    context.Context
	tabCancel context.CancelFunc
}

// Navigate loads url and blocks until the document body is ready, bounded by
// the session's navigation timeout.
func (p *Page) Navigate(ctx context.Context, rawURL string) error {
	if err := p.session.waitDomainBudget(ctx, rawURL); err != nil {
		return fmt.Errorf("navigation rate limit: %w", err)
	}

	taskCtx, cancel := p.taskContext(ctx)
	defer cancel()

	tasks := chromedp.Tasks{
		network.Enable(),
		p.userAgentAction(),
		chromedp.Navigate(rawURL),
		chromedp.WaitReady("body", chromedp.ByQuery),
	}
	if err := chromedp.Run(taskCtx, tasks); err != nil {
		return fmt.Errorf("navigate %s: %w", rawURL, err)
	}
	return nil
}

// WaitVisible blocks until selector matches a visible node or the navigation
// timeout elapses.
func (p *Page) WaitVisible(ctx context.Context, selector string) error {
	taskCtx, cancel := p.taskContext(ctx)
	defer cancel()

	if err := chromedp.Run(taskCtx, chromedp.WaitVisible(selector, chromedp.ByQuery)); err != nil {
		return fmt.Errorf("wait for %q: %w", selector, err)
	}
	return nil
}

// HTML returns a snapshot of the rendered DOM.
func (p *Page) HTML(ctx context.Context) (string, error) {
	taskCtx, cancel := p.taskContext(ctx)
	defer cancel()

	var html string
	if err := chromedp.Run(taskCtx, chromedp.OuterHTML("html", &html, chromedp.ByQuery)); err != nil {
		return "", fmt.Errorf("snapshot dom: %w", err)
	}
	return html, nil
}

// URL reports the tab's current location.
func (p *Page) URL(ctx context.Context) (string, error) {
	taskCtx, cancel := p.taskContext(ctx)
	defer cancel()

	var location string
	if err := chromedp.Run(taskCtx, chromedp.Location(&location)); err != nil {
		return "", fmt.Errorf("read location: %w", err)
	}
	return location, nil
}

// Close releases the tab.
func (p *Page) Close() {
	if p == nil {
		return
	}
	p.tabCancel()
}

func (p *Page) taskContext(ctx context.Context) (context.Context, context.CancelFunc) {
	taskCtx, cancelTask := context.WithTimeout(p.tabCtx, p.session.cfg.NavTimeout)
	stopForward := forwardCancel(ctx, cancelTask)
	return taskCtx, func() {
		stopForward()
		cancelTask()
	}
}

func (p *Page) userAgentAction() chromedp.Action {
	return chromedp.ActionFunc(func(ctx context.Context) error {
		if p.session.cfg.UserAgent == "" {
			return nil
		}
		if err := emulation.SetUserAgentOverride(p.session.cfg.UserAgent).Do(ctx); err != nil {
			return fmt.Errorf("set user-agent: %w", err)
		}
		return nil
	})
}

// forwardCancel propagates cancellation of the caller's context into the
// chromedp task context, which hangs off the tab rather than the caller.
func forwardCancel(parent context.Context, cancel context.CancelFunc) func() {
	if parent == nil {
		return func() {}
	}
	done := make(chan struct{})
	go func() {
		select {
		case <-parent.Done():
			cancel()
		case <-done:
		}
	}()
	return func() { close(done) }
}
