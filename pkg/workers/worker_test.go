package workers

import (
	"context"
	"errors"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dskvich/capture-telegram-bot/pkg/api"
)

type funcWorker struct {
	name string
	fn   func(ctx context.Context) error
}

func (f funcWorker) Name() string                    { return f.name }
func (f funcWorker) Start(ctx context.Context) error { return f.fn(ctx) }

func blocking(ctx context.Context) error {
	<-ctx.Done()
	return nil
}

func TestGroupStopsOnFirstFailure(t *testing.T) {
	g := Group{
		funcWorker{name: "idle", fn: blocking},
		funcWorker{name: "broken", fn: func(context.Context) error { return errors.New("port in use") }},
	}

	err := g.Start(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken: port in use")
}

func TestGroupStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(20*time.Millisecond, cancel)

	err := Group{funcWorker{name: "a", fn: blocking}, funcWorker{name: "b", fn: blocking}}.Start(ctx)
	assert.NoError(t, err)
}

func TestHTTPServerShutsDown(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(50*time.Millisecond, cancel)

	srv := NewHTTPServer("127.0.0.1:0", http.NotFoundHandler())
	assert.NoError(t, srv.Start(ctx))
}

func TestHTTPServerReportsListenErrors(t *testing.T) {
	err := NewHTTPServer("127.0.0.1:-1", http.NotFoundHandler()).Start(context.Background())
	assert.ErrorContains(t, err, "listening on 127.0.0.1:-1")
}

type fakeRegistrar struct {
	urls []string
	err  error
}

func (f *fakeRegistrar) SetWebhook(url string) (*tgbotapi.APIResponse, error) {
	f.urls = append(f.urls, url)
	if f.err != nil {
		return nil, f.err
	}
	return &tgbotapi.APIResponse{Ok: true, Description: "Webhook was set"}, nil
}

func TestWebhookRegistrar(t *testing.T) {
	failing := &fakeRegistrar{err: errors.New("unauthorized")}
	ok := &fakeRegistrar{}

	w := NewWebhookRegistrar("http://bots.example.com//", []api.Bot{
		{Name: "broken", Token: "1:a", Registrar: failing},
		{Name: "puppeteer_screenshot", Token: "2:b", Registrar: ok},
	})

	require.NoError(t, w.Start(context.Background()))
	assert.Equal(t, []string{"https://bots.example.com/broken/webhook/1:a"}, failing.urls)
	assert.Equal(t, []string{"https://bots.example.com/puppeteer_screenshot/webhook/2:b"}, ok.urls)
}

type countingJobs struct{ shutdowns atomic.Int32 }

func (c *countingJobs) Shutdown() { c.shutdowns.Add(1) }

func TestCaptureDrainerWaitsOnShutdown(t *testing.T) {
	jobs := &countingJobs{}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.NoError(t, NewCaptureDrainer(jobs).Start(ctx))
	assert.Equal(t, int32(1), jobs.shutdowns.Load())
}
