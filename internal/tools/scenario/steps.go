package scenario

import (
	"context"
	"errors"
	"fmt"
	"math"

	apperrors "github.com/louisbranch/copyless/internal/platform/errors"
	"github.com/louisbranch/copyless/internal/sequence"
	"github.com/louisbranch/copyless/internal/sequence/seqtrace"
)

type scenarioState struct {
	target   string
	instance Instance
	traced   *seqtrace.Dispatcher
}

func (r *Runner) runStep(ctx context.Context, state *scenarioState, step Step) error {
	if step.Kind == "target" {
		return r.runTarget(state, step)
	}
	if state.traced == nil {
		return apperrors.New(apperrors.CodeScenarioTargetNotSelected, "scenario has no target")
	}
	switch step.Kind {
	case "expect_flag":
		want, err := intArg(step, "value", 0, math.MaxInt)
		if err != nil {
			return err
		}
		if got := state.traced.CompositionFlag(); got != sequence.Flag(want) {
			return r.assertions.Expect("composition flag", sequence.Flag(want), got)
		}
	case "expect_sequences":
		want, err := intArg(step, "value", 0, int(sequence.MaxID))
		if err != nil {
			return err
		}
		if got := state.traced.NumSequences(); got != want {
			return r.assertions.Expect("number of sequences", want, got)
		}
	case "expect_member":
		id, err := idArg(step)
		if err != nil {
			return err
		}
		want, _ := step.Args["member"].(bool)
		if got := state.traced.IsMember(id); got != want {
			return r.assertions.Expect(fmt.Sprintf("member(%d)", id), want, got)
		}
	case "dispatch":
		return r.runDispatch(ctx, state, step)
	case "expect_steps":
		want, err := intArg(step, "value", 0, math.MaxInt)
		if err != nil {
			return err
		}
		name, got := "steps", state.instance.Transaction.Steps()
		if _, ok := step.Args["id"]; ok {
			id, err := idArg(step)
			if err != nil {
				return err
			}
			name, got = fmt.Sprintf("steps(%d)", id), state.instance.Transaction.StepsFor(id)
		}
		if got != want {
			return r.assertions.Expect(name, want, got)
		}
	case "expect_state":
		key, _ := step.Args["key"].(string)
		want, err := intArg(step, "value", math.MinInt, math.MaxInt)
		if err != nil {
			return err
		}
		if state.instance.State == nil {
			return invalidArgument(step, "key")
		}
		got, ok := state.instance.State()[key]
		if !ok {
			return invalidArgument(step, "key")
		}
		if got != want {
			return r.assertions.Expect(key, want, got)
		}
	default:
		return apperrors.WithMetadata(apperrors.CodeScenarioUnknownStep,
			fmt.Sprintf("unknown scenario step %s", step.Kind),
			map[string]string{"Step": step.Kind})
	}
	return nil
}

func (r *Runner) runTarget(state *scenarioState, step Step) error {
	name, _ := step.Args["name"].(string)
	target, err := r.registry.Get(name)
	if err != nil {
		return err
	}
	instance, err := target.New()
	if err != nil {
		return r.assertions.Failf("build target %s: %w", name, err)
	}
	traced, err := r.wrap(target.Name, instance)
	if err != nil {
		return err
	}
	state.target = target.Name
	state.instance = instance
	state.traced = traced
	r.logf("target %s: flag %s, %d sequences", target.Name, traced.CompositionFlag(), traced.NumSequences())
	return nil
}

// runDispatch dispatches one opcode and checks the optional handled and
// error expectations. Without an error expectation any error fails; an error
// with a fatal code stops the run even in log-only mode.
func (r *Runner) runDispatch(ctx context.Context, state *scenarioState, step Step) error {
	id, err := idArg(step)
	if err != nil {
		return err
	}
	raw, err := intArg(step, "opcode", 0, math.MaxInt)
	if err != nil {
		return err
	}
	if uint64(raw) > math.MaxUint32 {
		return invalidArgument(step, "opcode")
	}
	opcode := sequence.OpcodeBase(raw)

	var handled bool
	var dispatchErr error
	if strict, _ := step.Args["strict"].(bool); strict {
		dispatchErr = sequence.DispatchStrict(state.traced, id, opcode)
		handled = !errors.Is(dispatchErr, sequence.ErrNotMember)
	} else {
		handled, dispatchErr = state.traced.DispatchContext(ctx, id, opcode)
	}
	r.logf("dispatch(%d, %d) on %s: handled=%v err=%v", id, raw, state.target, handled, dispatchErr)

	label := fmt.Sprintf("dispatch(%d, %d)", id, raw)
	// A fatal code means the target itself is unusable, in either mode.
	if dispatchErr != nil && apperrors.CodeOf(dispatchErr).Fatal() {
		return fmt.Errorf("%s: %w", label, dispatchErr)
	}
	if value, ok := step.Args["handled"]; ok {
		want, ok := value.(bool)
		if !ok {
			return invalidArgument(step, "handled")
		}
		if handled != want {
			if err := r.assertions.Expect(label+" handled", want, handled); err != nil {
				return err
			}
		}
	}

	got := "none"
	if dispatchErr != nil {
		got = string(apperrors.CodeOf(dispatchErr))
	}
	want := "none"
	if value, ok := step.Args["error"]; ok {
		code, ok := value.(string)
		if !ok || code == "" {
			return invalidArgument(step, "error")
		}
		want = code
	}
	if got != want {
		return r.assertions.Expect(label+" error", want, got)
	}
	return nil
}

func idArg(step Step) (sequence.ID, error) {
	id, err := intArg(step, "id", 0, math.MaxUint8)
	if err != nil {
		return 0, err
	}
	return sequence.ID(id), nil
}

func intArg(step Step, key string, lo, hi int) (int, error) {
	value, ok := step.Args[key].(int)
	if !ok || value < lo || value > hi {
		return 0, invalidArgument(step, key)
	}
	return value, nil
}

func invalidArgument(step Step, argument string) error {
	return apperrors.WithMetadata(apperrors.CodeScenarioInvalidStepArgument,
		fmt.Sprintf("scenario step %s: invalid %s", step.Kind, argument),
		map[string]string{"Step": step.Kind, "Argument": argument})
}
