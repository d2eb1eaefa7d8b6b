package output

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/sofmeright/git2container/src/secrets"
)

// Colors for terminal output.
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorYellow = "\033[33m"
	colorGray   = "\033[90m"
	colorBold   = "\033[1m"
)

func isTerminal() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}

// UseColor returns true if colored output should be used.
// Respects NO_COLOR env, TERM=dumb, and terminal detection.
func UseColor() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if os.Getenv("TERM") == "dumb" {
		return false
	}
	return isTerminal() || IsCI()
}

// severityTag returns a short severity label, optionally colored.
func severityTag(s secrets.Severity, color bool) string {
	switch s {
	case secrets.SeverityCritical:
		if color {
			return colorRed + "CRIT" + colorReset
		}
		return "CRIT"
	case secrets.SeverityWarning:
		if color {
			return colorYellow + "WARN" + colorReset
		}
		return "WARN"
	case secrets.SeverityInfo:
		if color {
			return colorGray + "INFO" + colorReset
		}
		return "INFO"
	default:
		return s.String()
	}
}

// SectionFindings renders secret findings inside a section, ordered by
// file, line, then rule.
func SectionFindings(sec *Section, findings []secrets.Finding, color bool) {
	if len(findings) == 0 {
		return
	}

	ff := append([]secrets.Finding(nil), findings...)
	sort.Slice(ff, func(i, j int) bool {
		a, b := ff[i], ff[j]
		if a.File != b.File {
			return a.File < b.File
		}
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		return a.Rule < b.Rule
	})

	for _, f := range ff {
		loc := "-"
		if f.Line > 0 {
			loc = fmt.Sprintf("%s:%d", f.File, f.Line)
		}
		sec.Row("%-16s %-4s  %s", loc, severityTag(f.Severity, color), f.Message)
	}
}

// SectionWarnings renders validation warnings inside a section.
func SectionWarnings(sec *Section, warnings []string, color bool) {
	tag := "WARN"
	if color {
		tag = colorYellow + tag + colorReset
	}
	for _, w := range warnings {
		sec.Row("%s  %s", tag, w)
	}
}

// RowStatus writes a row with label, detail, and a status icon.
func RowStatus(sec *Section, label, detail, status string, color bool) {
	icon := StatusIcon(status, color)
	if detail != "" {
		sec.Row("%-16s%s %s", label, detail, icon)
	} else {
		sec.Row("%-16s%s", label, icon)
	}
}

// Document writes text verbatim, for piping a rendered definition.
func Document(w io.Writer, text string) error {
	_, err := io.WriteString(w, text)
	if err == nil && !strings.HasSuffix(text, "\n") {
		_, err = io.WriteString(w, "\n")
	}
	return err
}
