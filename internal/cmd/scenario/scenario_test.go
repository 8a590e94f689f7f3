package scenario

import (
	"bytes"
	"context"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseConfigDefaults(t *testing.T) {
	fs := flag.NewFlagSet("scenario", flag.ContinueOnError)

	cfg, err := ParseConfig(fs, nil)
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if !cfg.Assertions {
		t.Fatal("expected assertions to default to true")
	}
	if cfg.Locale != "en-US" || cfg.Color != "auto" {
		t.Fatalf("locale/color = %q/%q", cfg.Locale, cfg.Color)
	}
}

func TestParseConfigEnvAndFlags(t *testing.T) {
	t.Setenv("COPYLESS_SCENARIO_FILE", "env.lua")
	t.Setenv("COPYLESS_SCENARIO_ASSERT", "false")

	fs := flag.NewFlagSet("scenario", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, []string{"-scenario", "flag.lua", "-color", "never"})
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.Scenario != "flag.lua" || cfg.Assertions || cfg.Color != "never" {
		t.Fatalf("cfg = %+v", cfg)
	}
}

func TestParseConfigRejectsColor(t *testing.T) {
	fs := flag.NewFlagSet("scenario", flag.ContinueOnError)
	if _, err := ParseConfig(fs, []string{"-color", "sometimes"}); err == nil {
		t.Fatal("expected invalid color error")
	}
}

func TestRunRequiresScenario(t *testing.T) {
	if err := Run(context.Background(), Config{}, nil, nil); err == nil {
		t.Fatal("expected missing scenario error")
	}
}

func TestRunListsTargets(t *testing.T) {
	var out bytes.Buffer
	if err := Run(context.Background(), Config{ListOnly: true}, &out, nil); err != nil {
		t.Fatalf("run: %v", err)
	}
	for _, name := range []string{"ef ", "ef-generic", "efg"} {
		if !strings.Contains(out.String(), name) {
			t.Fatalf("output missing %q: %q", name, out.String())
		}
	}
}

func TestRunPrintsSummary(t *testing.T) {
	t.Setenv("COPYLESS_OTEL_ENDPOINT", "")
	path := writeScenario(t, `
local s = Scenario.new("cli")
s:target("ef"):expect_flag(3)
return s
`)
	var out bytes.Buffer
	if err := Run(context.Background(), Config{Scenario: path, Assertions: true, Color: "never"}, &out, nil); err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.HasPrefix(out.String(), "PASS cli (2 steps") {
		t.Fatalf("output = %q", out.String())
	}
}

func TestRunPrintsLocalizedFailure(t *testing.T) {
	t.Setenv("COPYLESS_OTEL_ENDPOINT", "")
	path := writeScenario(t, `
local s = Scenario.new("broken")
s:target("ef"):expect_flag(7)
return s
`)
	var out bytes.Buffer
	err := Run(context.Background(), Config{Scenario: path, Assertions: true, Color: "always", Locale: "pt-BR"}, &out, nil)
	if err == nil {
		t.Fatal("expected failure")
	}
	if !strings.Contains(out.String(), "\x1b[31mFAIL\x1b[0m broken: Esperava composition flag igual a 0x7, obtido 0x3") {
		t.Fatalf("output = %q", out.String())
	}
}

func TestRunLogOnlyWarns(t *testing.T) {
	t.Setenv("COPYLESS_OTEL_ENDPOINT", "")
	path := writeScenario(t, `
local s = Scenario.new("soft")
s:target("ef"):expect_sequences(3)
return s
`)
	var out, errOut bytes.Buffer
	if err := Run(context.Background(), Config{Scenario: path, Color: "never"}, &out, &errOut); err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.HasPrefix(out.String(), "WARN soft (2 steps, 1 failed expectations") {
		t.Fatalf("output = %q", out.String())
	}
	if !strings.Contains(errOut.String(), "Expected number of sequences to be 3, got 2") {
		t.Fatalf("log = %q", errOut.String())
	}
}

func writeScenario(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "scenario.lua")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write scenario: %v", err)
	}
	return path
}
