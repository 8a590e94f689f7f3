package scenario

import (
	"fmt"
	"log"

	apperrors "github.com/louisbranch/copyless/internal/platform/errors"
)

// AssertionMode controls how failed expectations are handled.
type AssertionMode int

const (
	// AssertionStrict stops the run at the first failed expectation.
	AssertionStrict AssertionMode = iota
	// AssertionLogOnly logs failed expectations and keeps running.
	AssertionLogOnly
)

func (m AssertionMode) String() string {
	switch m {
	case AssertionStrict:
		return "strict"
	case AssertionLogOnly:
		return "log-only"
	default:
		return fmt.Sprintf("AssertionMode(%d)", int(m))
	}
}

// Assertions applies an AssertionMode to expectation failures.
type Assertions struct {
	Mode   AssertionMode
	Logger *log.Logger
	Locale string

	failures []error
}

// Failf reports a failure that stops the run regardless of mode.
func (a *Assertions) Failf(format string, args ...any) error {
	return fmt.Errorf(format, args...)
}

// Expect reports a failed expectation of name. In strict mode the coded
// error is returned; otherwise it is logged in the configured locale and
// recorded.
func (a *Assertions) Expect(name string, want, got any) error {
	err := apperrors.WithMetadata(apperrors.CodeScenarioExpectationFailed,
		fmt.Sprintf("expected %s = %v, got %v", name, want, got),
		map[string]string{
			"Expectation": name,
			"Want":        fmt.Sprint(want),
			"Got":         fmt.Sprint(got),
		})
	if a.Mode == AssertionStrict {
		return err
	}
	a.failures = append(a.failures, err)
	if a.Logger != nil {
		a.Logger.Printf("expectation failed: %s", apperrors.Localize(err, a.Locale))
	}
	return nil
}

// Failures returns the expectations recorded in log-only mode.
func (a *Assertions) Failures() []error {
	return a.failures
}
