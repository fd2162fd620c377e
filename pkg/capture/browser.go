package capture

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/chromedp/cdproto/emulation"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"github.com/dskvich/capture-telegram-bot/pkg/domain"
)

const (
	pngQuality   = 100
	cssPxPerInch = 96.0
)

type browser struct {
	execPath string
}

// NewBrowser returns a capturer that launches a fresh headless Chrome for every request.
// An empty execPath lets chromedp find the binary itself.
func NewBrowser(execPath string) *browser {
	return &browser{execPath: execPath}
}

func (b *browser) allocatorOptions() []chromedp.ExecAllocatorOption {
	opts := append([]chromedp.ExecAllocatorOption{},
		chromedp.NoFirstRun,
		chromedp.NoDefaultBrowserCheck,
		chromedp.Headless,
		chromedp.NoSandbox,
		chromedp.Flag("disable-setuid-sandbox", true),
		chromedp.Flag("disable-web-security", true),
		chromedp.Flag("hide-scrollbars", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.IgnoreCertErrors,
	)
	if b.execPath != "" {
		opts = append(opts, chromedp.ExecPath(b.execPath))
	}
	return opts
}

func (b *browser) Capture(ctx context.Context, req domain.CaptureRequest) (domain.CaptureResult, error) {
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, b.allocatorOptions()...)
	defer cancelAlloc()

	tabCtx, cancelTab := chromedp.NewContext(allocCtx)
	defer cancelTab()

	// first Run starts the browser
	if err := chromedp.Run(tabCtx); err != nil {
		return domain.CaptureResult{}, fmt.Errorf("launching browser: %w", err)
	}

	idle := waitNetworkIdle(tabCtx)

	err := chromedp.Run(tabCtx,
		chromedp.EmulateViewport(int64(req.Width), int64(req.Height), chromedp.EmulateScale(1)),
		emulation.SetUserAgentOverride(req.UserAgent),
		page.SetLifecycleEventsEnabled(true),
		chromedp.Navigate(req.URL),
	)
	if err != nil {
		return domain.CaptureResult{}, fmt.Errorf("navigating to %s: %w", req.URL, err)
	}

	select {
	case <-idle:
	case <-tabCtx.Done():
		return domain.CaptureResult{}, fmt.Errorf("waiting for network idle: %w", tabCtx.Err())
	}

	slog.DebugContext(ctx, "Page settled", "url", req.URL, "width", req.Width, "height", req.Height)

	data, err := render(tabCtx, req)
	if err != nil {
		return domain.CaptureResult{}, err
	}

	return domain.CaptureResult{Data: data, Format: req.Format}, nil
}

func render(ctx context.Context, req domain.CaptureRequest) ([]byte, error) {
	var buf []byte

	switch req.Format {
	case domain.FormatPDF:
		err := chromedp.Run(ctx, chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			buf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(float64(req.Width) / cssPxPerInch).
				WithPaperHeight(float64(req.Height) / cssPxPerInch).
				Do(ctx)
			return err
		}))
		if err != nil {
			return nil, fmt.Errorf("printing pdf: %w", err)
		}
	default:
		action := chromedp.CaptureScreenshot(&buf)
		if req.FullPage {
			action = chromedp.FullScreenshot(&buf, pngQuality)
		}
		if err := chromedp.Run(ctx, action); err != nil {
			return nil, fmt.Errorf("taking screenshot: %w", err)
		}
	}

	return buf, nil
}

// waitNetworkIdle closes the returned channel on the first networkIdle lifecycle
// event that follows a document init, so idle events of about:blank are ignored.
func waitNetworkIdle(ctx context.Context) <-chan struct{} {
	done := make(chan struct{})

	var (
		navigated atomic.Bool
		once      sync.Once
	)

	chromedp.ListenTarget(ctx, func(ev any) {
		e, ok := ev.(*page.EventLifecycleEvent)
		if !ok {
			return
		}

		switch e.Name {
		case "init":
			navigated.Store(true)
		case "networkIdle":
			if navigated.Load() {
				once.Do(func() { close(done) })
			}
		}
	})

	return done
}
