package scenario

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	apperrors "github.com/louisbranch/copyless/internal/platform/errors"
	"github.com/louisbranch/copyless/internal/sequence"
	"github.com/louisbranch/copyless/internal/sequences/ef"
	"github.com/louisbranch/copyless/internal/transaction"
)

var (
	// ErrTargetNotFound indicates a scenario selected an unregistered target.
	ErrTargetNotFound = apperrors.New(apperrors.CodeScenarioTargetNotFound, "scenario target is not registered")
	// ErrTargetAlreadyRegistered indicates a duplicate target registration.
	ErrTargetAlreadyRegistered = apperrors.New(apperrors.CodeScenarioTargetDuplicate, "scenario target already registered")
	// ErrTargetNameRequired indicates a target without a name.
	ErrTargetNameRequired = errors.New("scenario target name is required")
)

// Instance is one freshly initialised composite and the transaction it
// shares with its sequences.
type Instance struct {
	Dispatcher  sequence.Dispatcher
	Transaction *transaction.Transaction
	// State reports handler-specific counters for expect_state.
	State func() map[string]int
}

// Target builds instances of one composition.
type Target struct {
	Name        string
	Description string
	New         func() (Instance, error)
}

// Registry holds scenario targets by name.
type Registry struct {
	mu      sync.RWMutex
	targets map[string]Target
}

// NewRegistry creates an empty target registry.
func NewRegistry() *Registry {
	return &Registry{targets: make(map[string]Target)}
}

// Register adds a target.
func (r *Registry) Register(target Target) error {
	name := strings.TrimSpace(target.Name)
	if name == "" {
		return ErrTargetNameRequired
	}
	if target.New == nil {
		return fmt.Errorf("scenario target %s: constructor is required", name)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.targets == nil {
		r.targets = make(map[string]Target)
	}
	if _, exists := r.targets[name]; exists {
		return apperrors.WrapWithMetadata(apperrors.CodeScenarioTargetDuplicate,
			fmt.Sprintf("scenario target already registered: %s", name),
			map[string]string{"Target": name}, ErrTargetAlreadyRegistered)
	}
	target.Name = name
	r.targets[name] = target
	return nil
}

// Get returns the target registered under name.
func (r *Registry) Get(name string) (Target, error) {
	name = strings.TrimSpace(name)
	r.mu.RLock()
	target, ok := r.targets[name]
	r.mu.RUnlock()
	if !ok {
		return Target{}, apperrors.WrapWithMetadata(apperrors.CodeScenarioTargetNotFound,
			fmt.Sprintf("scenario target is not registered: %s", name),
			map[string]string{"Target": name}, ErrTargetNotFound)
	}
	return target, nil
}

// Names returns the registered target names in order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.targets))
	for name := range r.targets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DefaultRegistry returns the built-in targets over the ef sequences.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	for _, target := range []Target{
		{Name: "ef", Description: "generated TestSequence (E, F)", New: newTestSequence},
		{Name: "ef-generic", Description: "GenericSequence (E, F) over sequence.Composite2", New: newGenericSequence},
		{Name: "efg", Description: "generated WideSequence (E, F, G)", New: newWideSequence},
	} {
		if err := r.Register(target); err != nil {
			panic(err)
		}
	}
	return r
}

func newTestSequence() (Instance, error) {
	txn := new(transaction.Transaction)
	seq := new(ef.TestSequence)
	seq.Init(txn)
	return Instance{
		Dispatcher:  seq,
		Transaction: txn,
		State:       func() map[string]int { return efState(seq.E(), seq.F(), nil) },
	}, nil
}

func newGenericSequence() (Instance, error) {
	txn := new(transaction.Transaction)
	seq := new(ef.GenericSequence)
	if err := seq.Init(txn); err != nil {
		return Instance{}, err
	}
	return Instance{
		Dispatcher:  seq,
		Transaction: txn,
		State:       func() map[string]int { return efState(seq.First(), seq.Second(), nil) },
	}, nil
}

func newWideSequence() (Instance, error) {
	txn := new(transaction.Transaction)
	seq := new(ef.WideSequence)
	seq.Init(txn)
	return Instance{
		Dispatcher:  seq,
		Transaction: txn,
		State:       func() map[string]int { return efState(seq.E(), seq.F(), seq.G()) },
	}, nil
}

func efState(e *ef.E, f *ef.F, g *ef.G) map[string]int {
	state := map[string]int{
		"e.x":     e.X(),
		"e.RunA":  e.Runs(ef.RunA),
		"e.RunB":  e.Runs(ef.RunB),
		"f.total": f.Total(),
		"f.RunX":  f.Runs(ef.RunX),
		"f.RunY":  f.Runs(ef.RunY),
	}
	if g != nil {
		state["g.RunP"] = g.Runs(ef.RunP)
		state["g.RunQ"] = g.Runs(ef.RunQ)
		state["g.on"] = 0
		if g.On() {
			state["g.on"] = 1
		}
	}
	return state
}
