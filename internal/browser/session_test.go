package browser

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestWaitDomainBudgetDisabled(t *testing.T) {
	t.Parallel()

	s := &Session{cfg: Config{DomainQPS: 0}}
	require.NoError(t, s.waitDomainBudget(context.Background(), "https://example.com/vente/1"))
}

func TestWaitDomainBudgetBadURL(t *testing.T) {
	t.Parallel()

	s := &Session{cfg: Config{DomainQPS: 1}}
	require.Error(t, s.waitDomainBudget(context.Background(), "://nope"))
}

func TestWaitDomainBudgetThrottlesPerHost(t *testing.T) {
	t.Parallel()

	s := &Session{cfg: Config{DomainQPS: 5}}

	// First call on each host consumes the initial token without waiting.
	start := time.Now()
	require.NoError(t, s.waitDomainBudget(context.Background(), "https://a.example/1"))
	require.NoError(t, s.waitDomainBudget(context.Background(), "https://b.example/1"))
	require.Less(t, time.Since(start), 100*time.Millisecond)

	// The second call on the same host has to wait for a refill.
	start = time.Now()
	require.NoError(t, s.waitDomainBudget(context.Background(), "https://a.example/2"))
	require.GreaterOrEqual(t, time.Since(start), 100*time.Millisecond)
}

func TestWaitDomainBudgetHonorsCancellation(t *testing.T) {
	t.Parallel()

	s := &Session{cfg: Config{DomainQPS: 0.001}}
	require.NoError(t, s.waitDomainBudget(context.Background(), "https://a.example/1"))

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	require.Error(t, s.waitDomainBudget(ctx, "https://a.example/2"))
}

func TestForwardCancelPropagates(t *testing.T) {
	t.Parallel()

	parent, cancelParent := context.WithCancel(context.Background())
	child, cancelChild := context.WithCancel(context.Background())
	defer cancelChild()

	stop := forwardCancel(parent, cancelChild)
	defer stop()

	cancelParent()

	select {
	case <-child.Done():
	case <-time.After(time.Second):
		t.Fatal("cancellation was not forwarded")
	}
}

func TestForwardCancelStopDetaches(t *testing.T) {
	t.Parallel()

	parent, cancelParent := context.WithCancel(context.Background())
	child, cancelChild := context.WithCancel(context.Background())
	defer cancelChild()

	stop := forwardCancel(parent, cancelChild)
	stop()
	cancelParent()

	select {
	case <-child.Done():
		t.Fatal("cancellation forwarded after stop")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestNilPageCloseIsSafe(t *testing.T) {
	t.Parallel()

	var p *Page
	p.Close()

	var s *Session
	require.NoError(t, s.Close())
}
