package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dskvich/capture-telegram-bot/pkg/domain"
	"github.com/dskvich/capture-telegram-bot/pkg/repository"
)

func newCapture(capturer *fakeCapturer, limiter RateLimiter, timeout time.Duration) (*captureService, *fakeResponder, *settingsService) {
	responder := &fakeResponder{}
	settings := NewSettingsService(repository.NewMemorySettingsRepository("bot"))
	return NewCaptureService(capturer, settings, responder, limiter, timeout, 2), responder, settings
}

func TestCaptureDeliversDocument(t *testing.T) {
	ctx := context.Background()
	capturer := &fakeCapturer{result: domain.CaptureResult{Data: []byte("%PDF"), Format: domain.FormatPDF}}
	svc, responder, settings := newCapture(capturer, nil, time.Second)

	require.NoError(t, settings.Set(ctx, chatID, domain.FormatChange{Value: domain.FormatPDF}))
	require.NoError(t, settings.Set(ctx, chatID, domain.DeviceChange{Value: domain.DeviceIOS}))

	require.NoError(t, svc.Capture(ctx, chatID, "https://example.com"))
	svc.Wait()

	requests := capturer.Requests()
	require.Len(t, requests, 1)
	assert.Equal(t, domain.FormatPDF, requests[0].Format)
	assert.Equal(t, domain.DeviceIOS.UserAgent(), requests[0].UserAgent)
	assert.Equal(t, "https://example.com", requests[0].URL)

	require.Eventually(t, func() bool { return len(responder.Calls()) == 2 }, time.Second, 10*time.Millisecond)
	assert.ElementsMatch(t, []string{"SendText", "SendDocument"}, responder.Methods())

	for _, c := range responder.Calls() {
		switch c.Method {
		case "SendText":
			assert.Equal(t, PleaseWaitText, c.Text)
		case "SendDocument":
			assert.Equal(t, "capture.pdf", c.Result.Filename())
		}
	}
}

func TestCaptureFailureSendsGenericMessage(t *testing.T) {
	capturer := &fakeCapturer{err: errors.New("net::ERR_NAME_NOT_RESOLVED")}
	svc, responder, _ := newCapture(capturer, nil, time.Second)

	require.NoError(t, svc.Capture(context.Background(), chatID, "https://nope.invalid"))
	svc.Wait()

	require.Eventually(t, func() bool { return len(responder.Calls()) == 2 }, time.Second, 10*time.Millisecond)
	assert.NotContains(t, responder.Methods(), "SendDocument")

	var texts []string
	for _, c := range responder.Calls() {
		texts = append(texts, c.Text)
	}
	assert.ElementsMatch(t, []string{PleaseWaitText, FailureText}, texts)
}

func TestCaptureTimesOut(t *testing.T) {
	capturer := &fakeCapturer{block: make(chan struct{})}
	svc, responder, _ := newCapture(capturer, nil, 50*time.Millisecond)

	require.NoError(t, svc.Capture(context.Background(), chatID, "https://slow.example.com"))
	svc.Wait()

	require.Eventually(t, func() bool { return len(responder.Calls()) == 2 }, time.Second, 10*time.Millisecond)
	assert.NotContains(t, responder.Methods(), "SendDocument")
}

func TestCaptureSurvivesCancelledRequestContext(t *testing.T) {
	capturer := &fakeCapturer{result: domain.CaptureResult{Data: []byte("png"), Format: domain.FormatImage}}
	svc, responder, _ := newCapture(capturer, nil, time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, svc.Capture(ctx, chatID, "https://example.com"))
	cancel()
	svc.Wait()

	require.Eventually(t, func() bool { return len(responder.Calls()) == 2 }, time.Second, 10*time.Millisecond)
	assert.Contains(t, responder.Methods(), "SendDocument")
}

func TestCaptureThrottled(t *testing.T) {
	capturer := &fakeCapturer{}
	svc, responder, _ := newCapture(capturer, denyLimiter{}, time.Second)

	require.NoError(t, svc.Capture(context.Background(), chatID, "https://example.com"))
	svc.Wait()

	assert.Empty(t, capturer.Requests())
	assert.Equal(t, []call{{Method: "SendText", ChatID: chatID, Text: ThrottledText}}, responder.Calls())
}

func TestCaptureAfterShutdown(t *testing.T) {
	capturer := &fakeCapturer{result: domain.CaptureResult{Data: []byte("png"), Format: domain.FormatImage}}
	svc, responder, _ := newCapture(capturer, nil, time.Second)

	svc.Shutdown()

	require.NoError(t, svc.Capture(context.Background(), chatID, "https://example.com"))
	svc.Wait()

	assert.Empty(t, capturer.Requests())
	assert.Equal(t, []call{{Method: "SendText", ChatID: chatID, Text: FailureText}}, responder.Calls())
}

func TestShutdownWaitsForScheduledCaptures(t *testing.T) {
	capturer := &fakeCapturer{
		result: domain.CaptureResult{Data: []byte("png"), Format: domain.FormatImage},
		block:  make(chan struct{}),
	}
	svc, responder, _ := newCapture(capturer, nil, time.Second)

	require.NoError(t, svc.Capture(context.Background(), chatID, "https://example.com"))
	time.AfterFunc(20*time.Millisecond, func() { close(capturer.block) })

	svc.Shutdown()

	assert.Contains(t, responder.Methods(), "SendDocument")
}
