package quote

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/hellodex/swapkit/api"
	"github.com/hellodex/swapkit/model"
	"github.com/stretchr/testify/require"
)

const quiet = 10 * time.Millisecond

// stubFetcher answers every request with a fixed result.
type stubFetcher struct {
	calls int64
	quote *model.Quote
	err   error
}

func (f *stubFetcher) GetQuote(req model.QuoteRequest) (*model.Quote, error) {
	atomic.AddInt64(&f.calls, 1)
	return f.quote, f.err
}

// gateFetcher blocks each request until the test releases it, keyed by
// the raw input amount.
type gateFetcher struct {
	mu      sync.Mutex
	gates   map[string]chan *model.Quote
	started chan string
}

func newGateFetcher() *gateFetcher {
	return &gateFetcher{
		gates:   map[string]chan *model.Quote{},
		started: make(chan string, 8),
	}
}

func (f *gateFetcher) GetQuote(req model.QuoteRequest) (*model.Quote, error) {
	f.mu.Lock()
	gate, ok := f.gates[req.AmountRawIn]
	if !ok {
		gate = make(chan *model.Quote, 1)
		f.gates[req.AmountRawIn] = gate
	}
	f.mu.Unlock()

	f.started <- req.AmountRawIn
	return <-gate, nil
}

func (f *gateFetcher) release(amountRaw string, quote *model.Quote) {
	f.mu.Lock()
	gate, ok := f.gates[amountRaw]
	if !ok {
		gate = make(chan *model.Quote, 1)
		f.gates[amountRaw] = gate
	}
	f.mu.Unlock()
	gate <- quote
}

func waitStarted(t *testing.T, f *gateFetcher, amountRaw string) {
	t.Helper()
	select {
	case got := <-f.started:
		require.Equal(t, amountRaw, got)
	case <-time.After(time.Second):
		t.Fatalf("request %s never started", amountRaw)
	}
}

func watchStates(o *Orchestrator) (<-chan Snapshot, func()) {
	ch := make(chan Snapshot, 64)
	unsubscribe := o.Subscribe(func(s Snapshot) {
		ch <- s
	})
	return ch, unsubscribe
}

func waitState(t *testing.T, ch <-chan Snapshot, want State) Snapshot {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		select {
		case s := <-ch:
			if s.State == want {
				return s
			}
		case <-deadline:
			t.Fatalf("never reached state %v", want)
		}
	}
}

func inputs(amount string) Inputs {
	return Inputs{
		ChainId:   1,
		FromToken: model.TokenRef{Address: "0xaaa0000000000000000000000000000000000001", Decimals: 1},
		ToToken:   model.TokenRef{Address: "0xbbb0000000000000000000000000000000000002", Decimals: 1},
		AmountIn:  amount,
		Enabled:   true,
	}
}

func quoteWithRawOut(rawOut string) *model.Quote {
	return &model.Quote{
		RawAmountOut:    rawOut,
		Routes:          []model.Route{},
		ToTokenDecimals: -1,
	}
}

func TestInvalidAmountGoesIdleWithoutFetch(t *testing.T) {
	for _, amount := range []string{"", "   ", "abc", "0", "-3"} {
		fetcher := &stubFetcher{quote: quoteWithRawOut("100")}
		o := New(fetcher, quiet)

		ch, unsubscribe := watchStates(o)
		o.SetInputs(inputs(amount))

		snap := waitState(t, ch, StateIdle)
		require.Empty(t, snap.ToAmount)
		require.Nil(t, snap.Quote)
		require.NoError(t, snap.Err)
		require.False(t, snap.Loading)
		require.Zero(t, atomic.LoadInt64(&fetcher.calls))

		unsubscribe()
		o.Stop()
	}
}

func TestMissingContextGoesIdleSynchronously(t *testing.T) {
	fetcher := &stubFetcher{quote: quoteWithRawOut("100")}
	o := New(fetcher, quiet)
	defer o.Stop()

	ch, unsubscribe := watchStates(o)
	defer unsubscribe()

	o.SetInputs(inputs("5"))
	waitState(t, ch, StateSettled)

	// dropping the output token resets immediately, no fetch involved
	in := inputs("5")
	in.ToToken.Address = ""
	o.SetInputs(in)

	snap := waitState(t, ch, StateIdle)
	require.Empty(t, snap.ToAmount)
	require.Nil(t, snap.Quote)
	require.NoError(t, snap.Err)
}

func TestDisabledGoesIdle(t *testing.T) {
	fetcher := &stubFetcher{quote: quoteWithRawOut("100")}
	o := New(fetcher, quiet)
	defer o.Stop()

	ch, unsubscribe := watchStates(o)
	defer unsubscribe()

	in := inputs("5")
	in.Enabled = false
	o.SetInputs(in)

	snap := waitState(t, ch, StateIdle)
	require.Empty(t, snap.ToAmount)
	require.Zero(t, atomic.LoadInt64(&fetcher.calls))
}

func TestSettledQuoteConvertsAndTruncates(t *testing.T) {
	// ToToken has 1 decimal: raw 200 -> "20"
	fetcher := &stubFetcher{quote: quoteWithRawOut("200")}
	o := New(fetcher, quiet)
	defer o.Stop()

	ch, unsubscribe := watchStates(o)
	defer unsubscribe()

	o.SetInputs(inputs("5"))
	snap := waitState(t, ch, StateSettled)

	require.Equal(t, "20", snap.ToAmount)
	require.NotNil(t, snap.Quote)
	require.False(t, snap.Loading)
	require.NoError(t, snap.Err)
}

func TestUpstreamDecimalsWinOverCallerDecimals(t *testing.T) {
	q := quoteWithRawOut("12345670000")
	q.ToTokenDecimals = 10
	fetcher := &stubFetcher{quote: q}
	o := New(fetcher, quiet)
	defer o.Stop()

	ch, unsubscribe := watchStates(o)
	defer unsubscribe()

	o.SetInputs(inputs("5"))
	snap := waitState(t, ch, StateSettled)

	// 1.2345670000 truncated for display
	require.Equal(t, "1.234567", snap.ToAmount)
}

func TestLastRequestWins(t *testing.T) {
	fetcher := newGateFetcher()
	o := New(fetcher, quiet)
	defer o.Stop()

	ch, unsubscribe := watchStates(o)
	defer unsubscribe()

	// Decimals 1, so human "10" -> raw "100"
	o.SetInputs(inputs("10"))
	waitStarted(t, fetcher, "100")

	o.SetInputs(inputs("20"))
	waitStarted(t, fetcher, "200")

	// B resolves first and settles
	fetcher.release("200", quoteWithRawOut("2000"))
	snap := waitState(t, ch, StateSettled)
	require.Equal(t, "200", snap.ToAmount)

	// A resolves late; its response must be dropped on the floor
	fetcher.release("100", quoteWithRawOut("1000"))
	time.Sleep(50 * time.Millisecond)

	final := o.Snapshot()
	require.Equal(t, StateSettled, final.State)
	require.Equal(t, "200", final.ToAmount)
}

func TestQuoteUnavailableVsFailed(t *testing.T) {
	o := New(&stubFetcher{err: api.ErrQuoteUnavailable}, quiet)
	ch, unsubscribe := watchStates(o)
	o.SetInputs(inputs("5"))
	snap := waitState(t, ch, StateFailed)
	require.ErrorIs(t, snap.Err, api.ErrQuoteUnavailable)
	require.Empty(t, snap.ToAmount)
	unsubscribe()
	o.Stop()

	o = New(&stubFetcher{err: api.ErrQuoteFailed}, quiet)
	ch, unsubscribe = watchStates(o)
	o.SetInputs(inputs("5"))
	snap = waitState(t, ch, StateFailed)
	require.ErrorIs(t, snap.Err, api.ErrQuoteFailed)
	require.Empty(t, snap.ToAmount)
	unsubscribe()
	o.Stop()
}

func TestAmountChangeDebouncesBeforeFetching(t *testing.T) {
	fetcher := &stubFetcher{quote: quoteWithRawOut("100")}
	o := New(fetcher, 50*time.Millisecond)
	defer o.Stop()

	ch, unsubscribe := watchStates(o)
	defer unsubscribe()

	// rapid typing: only the final value may reach the fetcher
	o.SetInputs(inputs("1"))
	o.SetInputs(inputs("12"))
	o.SetInputs(inputs("123"))

	snap := waitState(t, ch, StateDebouncing)
	require.True(t, snap.Debouncing)

	waitState(t, ch, StateSettled)
	require.Equal(t, int64(1), atomic.LoadInt64(&fetcher.calls))
}

func TestStopDropsInFlightResponse(t *testing.T) {
	fetcher := newGateFetcher()
	o := New(fetcher, quiet)

	ch, unsubscribe := watchStates(o)
	defer unsubscribe()

	o.SetInputs(inputs("10"))
	waitStarted(t, fetcher, "100")
	waitState(t, ch, StateFetching)

	o.Stop()
	fetcher.release("100", quoteWithRawOut("1000"))
	time.Sleep(50 * time.Millisecond)

	snap := o.Snapshot()
	require.NotEqual(t, StateSettled, snap.State)
	require.Empty(t, snap.ToAmount)
}
