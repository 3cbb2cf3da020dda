package decorator

import (
	"context"
	"slices"
	"sync"

	"github.com/code19m/errx"
	"github.com/samber/lo"

	"github.com/rise-and-shine/decor/callable"
)

// SlotCount is the number of capability slots owned by one access controller.
const SlotCount = 4

// Tier is an access level deciding how many capability slots a caller sees.
type Tier int

const (
	// TierUnknown is any unrecognized access keyword.
	TierUnknown Tier = iota
	TierNo
	TierLow
	TierMid
	TierHigh

	tierCount
)

//nolint:gochecknoglobals // static tier tables
var (
	tierSlots = [tierCount]int{
		TierUnknown: 0,
		TierNo:      1,
		TierLow:     2,
		TierMid:     3,
		TierHigh:    SlotCount,
	}

	tierByName = map[string]Tier{
		"no":   TierNo,
		"low":  TierLow,
		"mid":  TierMid,
		"high": TierHigh,
	}

	tierNames = lo.Invert(tierByName)
)

// ParseTier maps an access keyword ("high", "mid", "low", "no") to its Tier.
// Anything else yields TierUnknown.
func ParseTier(keyword string) Tier {
	return tierByName[keyword]
}

// String returns the access keyword of t.
func (t Tier) String() string {
	if name, ok := tierNames[t]; ok {
		return name
	}
	return "unknown"
}

// Valid reports whether t is one of the recognized tiers.
func (t Tier) Valid() bool {
	return t > TierUnknown && t < tierCount
}

// SlotCount returns how many slots t exposes; zero for unrecognized tiers.
func (t Tier) SlotCount() int {
	if !t.Valid() {
		return 0
	}
	return tierSlots[t]
}

// AccessWrapper replaces the wrapped function with a tier sized view of its capability slots.
//
// Slots start empty and belong to this wrapper alone.
type AccessWrapper[I callable.Input, R callable.Result] struct {
	tier Tier
	next callable.Callable[I, R]

	mu    sync.Mutex
	slots [SlotCount]string
}

// NewAccessWrapper returns a function that wraps a callable into an AccessWrapper for tier.
//
// The wrapped function is never invoked; it only lends its metadata.
func NewAccessWrapper[I callable.Input, R callable.Result](tier Tier) func(callable.Callable[I, R]) *AccessWrapper[I, R] {
	return func(next callable.Callable[I, R]) *AccessWrapper[I, R] {
		return &AccessWrapper[I, R]{tier: tier, next: next}
	}
}

// Call ignores its input and returns the first N slot values, N being decided by the tier.
// An unrecognized tier yields a rejected outcome carrying MsgImproperAccess.
func (w *AccessWrapper[I, R]) Call(context.Context, I) (Outcome[[]string], error) {
	if !w.tier.Valid() {
		return rejected[[]string](MsgImproperAccess), nil
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	return accepted(slices.Clone(w.slots[:w.tier.SlotCount()])), nil
}

func (w *AccessWrapper[I, R]) Meta() callable.Meta {
	return w.next.Meta()
}

// Tier returns the access tier of the wrapper.
func (w *AccessWrapper[I, R]) Tier() Tier {
	return w.tier
}

// SetSlot stores value in slot index (0 based).
func (w *AccessWrapper[I, R]) SetSlot(index int, value string) error {
	if err := checkSlot(index); err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	w.slots[index] = value
	return nil
}

// Slot returns the value of slot index (0 based) regardless of tier.
func (w *AccessWrapper[I, R]) Slot(index int) (string, error) {
	if err := checkSlot(index); err != nil {
		return "", err
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	return w.slots[index], nil
}

func checkSlot(index int) error {
	if index < 0 || index >= SlotCount {
		return errx.New("[decorator.access]: slot index out of range",
			errx.WithType(errx.T_Validation),
			errx.WithCode(CodeInvalidSlot),
			errx.WithDetails(errx.D{"index": index, "slot_count": SlotCount}),
		)
	}
	return nil
}
