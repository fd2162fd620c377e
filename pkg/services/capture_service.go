package services

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"strconv"
	"sync"
	"time"

	"github.com/dskvich/capture-telegram-bot/pkg/domain"
	"github.com/dskvich/capture-telegram-bot/pkg/logger"
)

const (
	PleaseWaitText = "Please wait..."
	FailureText    = "Something went wrong, please try again."
	ThrottledText  = "Too many requests, please slow down."
)

type Capturer interface {
	Capture(ctx context.Context, req domain.CaptureRequest) (domain.CaptureResult, error)
}

type RateLimiter interface {
	Allow(key string) bool
}

type captureService struct {
	capturer  Capturer
	settings  *settingsService
	responder Responder
	limiter   RateLimiter
	timeout   time.Duration

	slots chan struct{}

	mu     sync.Mutex
	closed bool
	wg     sync.WaitGroup
}

func NewCaptureService(
	capturer Capturer,
	settings *settingsService,
	responder Responder,
	limiter RateLimiter,
	timeout time.Duration,
	concurrency int,
) *captureService {
	if concurrency < 1 {
		concurrency = 1
	}

	return &captureService{
		capturer:  capturer,
		settings:  settings,
		responder: responder,
		limiter:   limiter,
		timeout:   timeout,
		slots:     make(chan struct{}, concurrency),
	}
}

// Capture acknowledges the request and renders the page in the background.
// It returns once the job is scheduled; the result is delivered through the responder.
func (c *captureService) Capture(ctx context.Context, chatID int64, url string) error {
	if c.limiter != nil && !c.limiter.Allow(strconv.FormatInt(chatID, 10)) {
		slog.WarnContext(ctx, "Capture throttled", "chatID", chatID)
		c.responder.SendText(ctx, chatID, ThrottledText)
		return nil
	}

	settings, err := c.settings.Get(ctx, chatID)
	if err != nil {
		return err
	}

	req := domain.NewCaptureRequest(url, settings)

	// detached from the webhook request so the handler can acknowledge Telegram right away
	jobCtx := context.WithoutCancel(ctx)

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		slog.WarnContext(ctx, "Capture rejected during shutdown", "chatID", chatID)
		c.responder.SendText(ctx, chatID, FailureText)
		return nil
	}
	c.wg.Add(1)
	c.mu.Unlock()

	go c.responder.SendText(jobCtx, chatID, PleaseWaitText)

	go func() {
		defer c.wg.Done()

		runCtx, cancel := context.WithTimeout(jobCtx, c.timeout)
		defer cancel()

		c.run(runCtx, chatID, req)
	}()

	return nil
}

func (c *captureService) run(ctx context.Context, chatID int64, req domain.CaptureRequest) {
	defer func() {
		if r := recover(); r != nil {
			slog.ErrorContext(ctx, "Capture panicked", "panic", r, "stack", string(debug.Stack()))
			c.responder.SendText(context.WithoutCancel(ctx), chatID, FailureText)
		}
	}()

	start := time.Now()

	result, err := c.acquireAndCapture(ctx, req)
	if err != nil {
		slog.ErrorContext(ctx, "Capture failed", "chatID", chatID, "url", req.URL, logger.Err(err))
		c.responder.SendText(context.WithoutCancel(ctx), chatID, FailureText)
		return
	}

	slog.InfoContext(ctx, "Capture done",
		"chatID", chatID,
		"url", req.URL,
		"format", result.Format,
		"bytes", len(result.Data),
		"elapsed", time.Since(start),
	)

	c.responder.SendDocument(context.WithoutCancel(ctx), chatID, result)
}

func (c *captureService) acquireAndCapture(ctx context.Context, req domain.CaptureRequest) (domain.CaptureResult, error) {
	select {
	case c.slots <- struct{}{}:
	case <-ctx.Done():
		return domain.CaptureResult{}, fmt.Errorf("waiting for a free browser slot: %w", ctx.Err())
	}
	defer func() { <-c.slots }()

	result, err := c.capturer.Capture(ctx, req)
	if err != nil {
		return domain.CaptureResult{}, fmt.Errorf("capturing %s: %w", req.URL, err)
	}
	return result, nil
}

// Wait blocks until every scheduled capture has delivered its result.
func (c *captureService) Wait() {
	c.wg.Wait()
}

// Shutdown stops accepting captures and waits for the scheduled ones.
func (c *captureService) Shutdown() {
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()

	c.wg.Wait()
}
