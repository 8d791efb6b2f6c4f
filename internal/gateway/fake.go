package gateway

import (
	"context"
	"sync"
)

// Fake is an in-memory Provider for offline runs and tests. It replies with
// Reply, or fails with Err when set, and records the prompts it received.
type Fake struct {
	ProviderName string
	Reply        string
	Err          error

	mu    sync.Mutex
	calls []FakeCall
}

type FakeCall struct {
	System string
	User   string
}

func (f *Fake) Name() string {
	if f.ProviderName == "" {
		return "fake"
	}
	return f.ProviderName
}

func (f *Fake) Complete(ctx context.Context, system, user string) (string, error) {
	f.mu.Lock()
	f.calls = append(f.calls, FakeCall{System: system, User: user})
	f.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return "", err
	}
	if f.Err != nil {
		return "", f.Err
	}
	return f.Reply, nil
}

func (f *Fake) Calls() []FakeCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]FakeCall(nil), f.calls...)
}
