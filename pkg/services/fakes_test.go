package services

import (
	"context"
	"sync"

	"github.com/dskvich/capture-telegram-bot/pkg/domain"
)

type call struct {
	Method    string
	ChatID    int64
	MessageID int
	Text      string
	Alert     bool
	Keyboard  domain.Keyboard
	Result    domain.CaptureResult
}

type fakeResponder struct {
	mu    sync.Mutex
	calls []call
}

func (f *fakeResponder) record(c call) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, c)
}

func (f *fakeResponder) Calls() []call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]call(nil), f.calls...)
}

func (f *fakeResponder) Methods() []string {
	var methods []string
	for _, c := range f.Calls() {
		methods = append(methods, c.Method)
	}
	return methods
}

func (f *fakeResponder) SendText(_ context.Context, chatID int64, text string) {
	f.record(call{Method: "SendText", ChatID: chatID, Text: text})
}

func (f *fakeResponder) SendDocument(_ context.Context, chatID int64, result domain.CaptureResult) {
	f.record(call{Method: "SendDocument", ChatID: chatID, Result: result})
}

func (f *fakeResponder) SendMenu(_ context.Context, chatID int64, keyboard domain.Keyboard) {
	f.record(call{Method: "SendMenu", ChatID: chatID, Keyboard: keyboard})
}

func (f *fakeResponder) EditMenu(_ context.Context, chatID int64, messageID int, keyboard domain.Keyboard) {
	f.record(call{Method: "EditMenu", ChatID: chatID, MessageID: messageID, Keyboard: keyboard})
}

func (f *fakeResponder) AnswerCallback(_ context.Context, _ string, text string, alert bool) {
	f.record(call{Method: "AnswerCallback", Text: text, Alert: alert})
}

func (f *fakeResponder) DeleteMessage(_ context.Context, chatID int64, messageID int) {
	f.record(call{Method: "DeleteMessage", ChatID: chatID, MessageID: messageID})
}

type fakeCapturer struct {
	mu       sync.Mutex
	requests []domain.CaptureRequest
	result   domain.CaptureResult
	err      error
	block    chan struct{}
}

func (f *fakeCapturer) Capture(ctx context.Context, req domain.CaptureRequest) (domain.CaptureResult, error) {
	f.mu.Lock()
	f.requests = append(f.requests, req)
	f.mu.Unlock()

	if f.block != nil {
		select {
		case <-f.block:
		case <-ctx.Done():
			return domain.CaptureResult{}, ctx.Err()
		}
	}

	if f.err != nil {
		return domain.CaptureResult{}, f.err
	}
	return f.result, nil
}

func (f *fakeCapturer) Requests() []domain.CaptureRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.CaptureRequest(nil), f.requests...)
}

type denyLimiter struct{}

func (denyLimiter) Allow(string) bool { return false }
