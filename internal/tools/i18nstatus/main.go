// Package main renders translation coverage of the error message catalogs.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/louisbranch/copyless/internal/platform/errors/i18n"
)

type report struct {
	BaseLocale string         `json:"base_locale"`
	Locales    []localeStatus `json:"locales"`
}

type localeStatus struct {
	Locale      string        `json:"locale"`
	BaseKeys    int           `json:"base_keys"`
	Translated  int           `json:"translated"`
	Missing     int           `json:"missing"`
	Extra       int           `json:"extra"`
	Completion  float64       `json:"completion"`
	Groups      []groupStatus `json:"groups"`
	MissingKeys []string      `json:"missing_keys"`
	ExtraKeys   []string      `json:"extra_keys"`
}

// groupStatus covers the codes sharing a prefix, such as SEQUENCE or SCENARIO.
type groupStatus struct {
	Group      string  `json:"group"`
	BaseKeys   int     `json:"base_keys"`
	Translated int     `json:"translated"`
	Missing    int     `json:"missing"`
	Completion float64 `json:"completion"`
}

func main() {
	if err := run(flag.CommandLine, os.Args[1:], os.Stdout); err != nil {
		fatalf("i18nstatus: %v", err)
	}
}

func run(fs *flag.FlagSet, args []string, out io.Writer) error {
	var baseLocale string
	var markdownOut string
	var jsonOut string

	fs.StringVar(&baseLocale, "base-locale", i18n.BaseLocale, "base locale used as translation source of truth")
	fs.StringVar(&markdownOut, "out", "docs/i18n-status.md", "markdown output path")
	fs.StringVar(&jsonOut, "json-out", "docs/i18n-status.json", "json output path")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if !hasLocale(baseLocale) {
		return fmt.Errorf("base locale %q is missing from catalogs", baseLocale)
	}
	rep := buildReport(baseLocale)
	if err := writeJSON(jsonOut, rep); err != nil {
		return fmt.Errorf("write json report: %w", err)
	}
	if err := writeMarkdown(markdownOut, rep); err != nil {
		return fmt.Errorf("write markdown report: %w", err)
	}
	fmt.Fprintf(out, "wrote %s and %s\n", markdownOut, jsonOut)
	return nil
}

func hasLocale(locale string) bool {
	for _, registered := range i18n.Locales() {
		if registered == locale {
			return true
		}
	}
	return false
}

func buildReport(baseLocale string) report {
	baseMessages := i18n.GetCatalog(baseLocale).Messages()

	locales := i18n.Locales()
	statuses := make([]localeStatus, 0, len(locales))
	for _, locale := range locales {
		localeMessages := i18n.GetCatalog(locale).Messages()
		missingKeyList := missingKeys(baseMessages, localeMessages)
		extraKeyList := missingKeys(localeMessages, baseMessages)
		translated := len(baseMessages) - len(missingKeyList)

		groups := map[string]*groupStatus{}
		for code := range baseMessages {
			name := groupOf(code)
			g, ok := groups[name]
			if !ok {
				g = &groupStatus{Group: name}
				groups[name] = g
			}
			g.BaseKeys++
			if _, ok := localeMessages[code]; ok {
				g.Translated++
			} else {
				g.Missing++
			}
		}
		groupStatuses := make([]groupStatus, 0, len(groups))
		for _, g := range groups {
			g.Completion = percent(g.Translated, g.BaseKeys)
			groupStatuses = append(groupStatuses, *g)
		}
		sort.Slice(groupStatuses, func(i, j int) bool {
			return groupStatuses[i].Group < groupStatuses[j].Group
		})

		statuses = append(statuses, localeStatus{
			Locale:      locale,
			BaseKeys:    len(baseMessages),
			Translated:  translated,
			Missing:     len(missingKeyList),
			Extra:       len(extraKeyList),
			Completion:  percent(translated, len(baseMessages)),
			Groups:      groupStatuses,
			MissingKeys: missingKeyList,
			ExtraKeys:   extraKeyList,
		})
	}

	sort.Slice(statuses, func(i, j int) bool {
		return statuses[i].Locale < statuses[j].Locale
	})

	return report{BaseLocale: baseLocale, Locales: statuses}
}

// groupOf returns the code prefix before the first underscore.
func groupOf(code string) string {
	if i := strings.IndexByte(code, '_'); i > 0 {
		return code[:i]
	}
	return code
}

func writeJSON(path string, rep report) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", filepath.Dir(path), err)
	}
	data, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func writeMarkdown(path string, rep report) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(renderMarkdown(rep)), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func renderMarkdown(rep report) string {
	var b strings.Builder
	b.WriteString("# Error Catalog I18n Status\n\n")
	b.WriteString("Generated by `go run ./internal/tools/i18nstatus`.\n\n")
	b.WriteString("Base locale: `")
	b.WriteString(rep.BaseLocale)
	b.WriteString("`.\n\n")

	b.WriteString("## Locale Summary\n\n")
	b.WriteString("| Locale | Base Keys | Translated | Missing | Extra | Completion |\n")
	b.WriteString("| --- | ---: | ---: | ---: | ---: | ---: |\n")
	for _, locale := range rep.Locales {
		b.WriteString(fmt.Sprintf("| `%s` | %d | %d | %d | %d | %.1f%% |\n", locale.Locale, locale.BaseKeys, locale.Translated, locale.Missing, locale.Extra, locale.Completion))
	}

	for _, locale := range rep.Locales {
		b.WriteString("\n## Locale: `")
		b.WriteString(locale.Locale)
		b.WriteString("`\n\n")

		b.WriteString("| Group | Base Keys | Translated | Missing | Completion |\n")
		b.WriteString("| --- | ---: | ---: | ---: | ---: |\n")
		for _, g := range locale.Groups {
			b.WriteString(fmt.Sprintf("| `%s` | %d | %d | %d | %.1f%% |\n", g.Group, g.BaseKeys, g.Translated, g.Missing, g.Completion))
		}

		if len(locale.MissingKeys) > 0 {
			b.WriteString("\n### Missing Keys\n\n")
			for _, key := range locale.MissingKeys {
				b.WriteString("- `")
				b.WriteString(key)
				b.WriteString("`\n")
			}
		}
		if len(locale.ExtraKeys) > 0 {
			b.WriteString("\n### Extra Keys\n\n")
			for _, key := range locale.ExtraKeys {
				b.WriteString("- `")
				b.WriteString(key)
				b.WriteString("`\n")
			}
		}
	}
	return b.String()
}

// missingKeys lists keys of base absent from target.
func missingKeys(base map[string]string, target map[string]string) []string {
	out := make([]string, 0)
	for key := range base {
		if _, ok := target[key]; !ok {
			out = append(out, key)
		}
	}
	sort.Strings(out)
	return out
}

func percent(numerator int, denominator int) float64 {
	if denominator <= 0 {
		return 100
	}
	value := float64(numerator) * 100 / float64(denominator)
	return math.Round(value*10) / 10
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
