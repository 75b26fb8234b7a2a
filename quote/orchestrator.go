// Package quote drives the debounced, race-safe quote flow: user
// input goes through the debouncer, becomes an aggregator request, and
// only the most recent request's response ever reaches visible state.
package quote

import (
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/hellodex/swapkit/api"
	"github.com/hellodex/swapkit/config"
	"github.com/hellodex/swapkit/debounce"
	"github.com/hellodex/swapkit/logger"
	"github.com/hellodex/swapkit/model"
	"github.com/hellodex/swapkit/util"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// Fetcher is the single upstream dependency of the orchestrator.
// Tests inject fakes; production uses the api package.
type Fetcher interface {
	GetQuote(req model.QuoteRequest) (*model.Quote, error)
}

type apiFetcher struct{}

func (apiFetcher) GetQuote(req model.QuoteRequest) (*model.Quote, error) {
	return api.GetQuote(req)
}

type State int

const (
	StateIdle State = iota
	StateDebouncing
	StateFetching
	StateSettled
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateDebouncing:
		return "debouncing"
	case StateFetching:
		return "fetching"
	case StateSettled:
		return "settled"
	case StateFailed:
		return "failed"
	}
	return "unknown"
}

// Inputs is everything the quote flow reacts to. Any field change
// re-evaluates preconditions; the amount additionally waits out the
// debounce quiet period.
type Inputs struct {
	ChainId   int
	FromToken model.TokenRef
	ToToken   model.TokenRef
	AmountIn  string // human units
	Enabled   bool
}

// Snapshot is the immutable view handed to subscribers. ToAmount is
// display-truncated; execution values must come from Quote instead.
type Snapshot struct {
	State      State
	ToAmount   string
	Quote      *model.Quote
	Err        error
	Loading    bool
	Debouncing bool
}

// Orchestrator owns all mutable quote state. State changes only
// through debounced-input events and request completions; every
// request carries a generation token and stale completions are
// dropped without a trace.
type Orchestrator struct {
	mu            sync.Mutex
	fetcher       Fetcher
	debouncer     *debounce.Debouncer[string]
	inputs        Inputs
	settledAmount string
	generation    uint64
	state         State
	toAmount      string
	quote         *model.Quote
	err           error
	loading       bool
	stopped       bool
	listeners     map[int]func(Snapshot)
	nextListener  int
}

// New builds an orchestrator around the given fetcher and quiet
// period.
func New(fetcher Fetcher, quiet time.Duration) *Orchestrator {
	o := &Orchestrator{
		fetcher:   fetcher,
		state:     StateIdle,
		listeners: map[int]func(Snapshot){},
	}
	o.debouncer = debounce.New(quiet, o.onSettledAmount)
	return o
}

// NewDefault builds an orchestrator against the live aggregator with
// the configured quiet period.
func NewDefault() *Orchestrator {
	quiet := time.Duration(config.YmlConfig.Swap.DebounceMs) * time.Millisecond
	return New(apiFetcher{}, quiet)
}

// Subscribe registers a listener for state snapshots and returns its
// unsubscribe func.
func (o *Orchestrator) Subscribe(fn func(Snapshot)) func() {
	o.mu.Lock()
	id := o.nextListener
	o.nextListener++
	o.listeners[id] = fn
	o.mu.Unlock()

	return func() {
		o.mu.Lock()
		delete(o.listeners, id)
		o.mu.Unlock()
	}
}

// Snapshot returns the current visible state.
func (o *Orchestrator) Snapshot() Snapshot {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.snapshotLocked()
}

func (o *Orchestrator) snapshotLocked() Snapshot {
	return Snapshot{
		State:      o.state,
		ToAmount:   o.toAmount,
		Quote:      o.quote,
		Err:        o.err,
		Loading:    o.loading,
		Debouncing: o.state == StateDebouncing,
	}
}

// SetInputs applies a new input snapshot. Amount changes restart the
// debouncer; everything else re-evaluates immediately with the last
// settled amount.
func (o *Orchestrator) SetInputs(in Inputs) {
	o.mu.Lock()
	if o.stopped {
		o.mu.Unlock()
		return
	}
	prev := o.inputs
	o.inputs = in
	amountChanged := in.AmountIn != prev.AmountIn
	otherChanged := in.ChainId != prev.ChainId ||
		in.FromToken != prev.FromToken ||
		in.ToToken != prev.ToToken ||
		in.Enabled != prev.Enabled
	if amountChanged {
		o.state = StateDebouncing
	}
	o.mu.Unlock()

	if amountChanged {
		o.notify()
		o.debouncer.Update(strings.TrimSpace(in.AmountIn))
	}
	if otherChanged {
		o.evaluate()
	}
}

// Stop tears the flow down: the pending debounce timer is cancelled
// without emission and any in-flight response becomes stale.
func (o *Orchestrator) Stop() {
	o.debouncer.Stop()
	o.mu.Lock()
	o.stopped = true
	o.generation++
	o.mu.Unlock()
}

func (o *Orchestrator) onSettledAmount(amount string) {
	o.mu.Lock()
	o.settledAmount = amount
	o.mu.Unlock()
	o.evaluate()
}

// evaluate re-checks preconditions and, when they hold, issues a new
// generation-tagged request. Resets happen synchronously; an in-flight
// request is never waited on, its response just goes stale.
func (o *Orchestrator) evaluate() {
	o.mu.Lock()
	if o.stopped {
		o.mu.Unlock()
		return
	}

	in := o.inputs
	amt := strings.TrimSpace(o.settledAmount)

	if !in.Enabled || in.ChainId == 0 || in.FromToken.Address == "" || in.ToToken.Address == "" || !isPositiveAmount(amt) {
		o.generation++
		o.state = StateIdle
		o.toAmount = ""
		o.quote = nil
		o.err = nil
		o.loading = false
		o.mu.Unlock()
		o.notify()
		return
	}

	o.generation++
	gen := o.generation
	o.state = StateFetching
	o.quote = nil
	o.err = nil
	o.loading = true
	o.mu.Unlock()
	o.notify()

	go o.fetch(gen, in, amt)
}

func (o *Orchestrator) fetch(gen uint64, in Inputs, amt string) {
	// A failed conversion degrades to a zero-amount request instead of
	// a client-side error, matching upstream behavior for exotic input.
	amountRaw, err := util.ToAtomicUnits(amt, in.FromToken.EffectiveDecimals())
	if err != nil {
		amountRaw = "0"
	}

	req := model.QuoteRequest{
		ChainId:     in.ChainId,
		TokenIn:     in.FromToken.Address,
		TokenOut:    in.ToToken.Address,
		AmountRawIn: amountRaw,
	}

	quote, fetchErr := o.fetcher.GetQuote(req)

	o.mu.Lock()
	if gen != o.generation {
		// stale response, dropped unconditionally
		o.mu.Unlock()
		return
	}

	if fetchErr != nil {
		o.toAmount = ""
		o.quote = nil
		if errors.Is(fetchErr, api.ErrQuoteUnavailable) {
			o.err = api.ErrQuoteUnavailable
		} else {
			o.err = api.ErrQuoteFailed
		}
		o.loading = false
		o.state = StateFailed
		o.mu.Unlock()
		o.notify()
		return
	}

	decimals := in.ToToken.EffectiveDecimals()
	if quote.ToTokenDecimals >= 0 {
		decimals = quote.ToTokenDecimals
	}

	display := "0"
	if quote.RawAmountOut != "" {
		if human, convErr := util.FromAtomicUnits(quote.RawAmountOut, decimals); convErr == nil {
			display = human
		}
	}

	toAmount := util.TruncateDisplay(display, 6)
	o.toAmount = toAmount
	o.quote = quote
	o.err = nil
	o.loading = false
	o.state = StateSettled
	o.mu.Unlock()

	log.Debug().
		Func(logger.WithCategory(logger.CategoryQuote)).
		Str("toAmount", toAmount).
		Str("amountRaw", amountRaw).
		Send()

	o.notify()
}

func (o *Orchestrator) notify() {
	o.mu.Lock()
	snap := o.snapshotLocked()
	fns := make([]func(Snapshot), 0, len(o.listeners))
	for _, fn := range o.listeners {
		fns = append(fns, fn)
	}
	o.mu.Unlock()

	for _, fn := range fns {
		fn(snap)
	}
}

func isPositiveAmount(amt string) bool {
	if amt == "" {
		return false
	}
	d, err := decimal.NewFromString(amt)
	if err != nil {
		return false
	}
	return d.Sign() > 0
}
