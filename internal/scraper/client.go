package scraper

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/alexanderramin/gradeplan/internal/domain"
)

const (
	DefaultBaseURL = "https://www.dac.unicamp.br/portal/caderno-de-horarios"
	DefaultDelay   = 500 * time.Millisecond
	DefaultTimeout = 30 * time.Second
)

type Config struct {
	BaseURL string
	Delay   time.Duration
	Timeout time.Duration
}

func DefaultConfig() Config {
	return Config{BaseURL: DefaultBaseURL, Delay: DefaultDelay, Timeout: DefaultTimeout}
}

// Client fetches subject schedule pages, spacing requests at least Delay
// apart. It is safe for concurrent use; requests are serialized.
type Client struct {
	baseURL string
	http    *http.Client
	delay   time.Duration
	logger  *zap.Logger
	now     func() time.Time

	mu   sync.Mutex
	last time.Time
}

func New(cfg Config, logger *zap.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.Delay < 0 {
		cfg.Delay = 0
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    &http.Client{Timeout: cfg.Timeout},
		delay:   cfg.Delay,
		logger:  logger,
		now:     time.Now,
	}
}

// PageURL is {base}/{year}/{half}/S/G/{institute}/{code}.
func (c *Client) PageURL(subject domain.Subject, term domain.Term) string {
	return strings.Join([]string{
		c.baseURL,
		strconv.Itoa(term.Year),
		strconv.Itoa(term.Half),
		"S", "G",
		url.PathEscape(subject.Institute),
		url.PathEscape(subject.Code),
	}, "/")
}

// Fetch downloads and parses one subject's page for a term. A non-2xx
// response means the term does not offer the subject.
func (c *Client) Fetch(ctx context.Context, subject domain.Subject, term domain.Term) (*domain.Offering, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.wait(ctx); err != nil {
		return nil, err
	}

	pageURL := c.PageURL(subject, term)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("building request for %s: %w", subject, err)
	}

	start := c.now()
	resp, err := c.http.Do(req)
	c.last = c.now()
	if err != nil {
		return nil, fmt.Errorf("fetching %s for %s: %w", subject, term, err)
	}
	defer resp.Body.Close()

	c.logger.Debug("fetched schedule page",
		zap.String("subject", subject.String()),
		zap.String("term", term.String()),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", c.last.Sub(start)),
	)

	offering := &domain.Offering{Subject: subject, Term: term, FetchedAt: c.last.UTC()}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		c.logger.Info("subject not offered",
			zap.String("subject", subject.String()),
			zap.String("term", term.String()),
			zap.Int("status", resp.StatusCode),
		)
		return offering, nil
	}

	page, err := ParsePage(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%s in %s: %w", subject, term, err)
	}
	offering.Sections = page.Sections
	offering.Credits = page.Credits
	offering.Offered = len(page.Sections) > 0
	return offering, nil
}

func (c *Client) wait(ctx context.Context) error {
	if c.last.IsZero() || c.delay == 0 {
		return nil
	}
	remaining := c.delay - c.now().Sub(c.last)
	if remaining <= 0 {
		return nil
	}
	timer := time.NewTimer(remaining)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
