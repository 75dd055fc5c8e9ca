package diagnostics

import (
	"fmt"
	"time"
)

type Severity string

const (
	Info Severity = "info"
	Warn Severity = "warning"
	Err  Severity = "error"
)

type Diagnostic struct {
	Severity       Severity       `json:"severity"`
	Code           string         `json:"code"`
	Summary        string         `json:"summary"`
	Detail         string         `json:"detail,omitempty"`
	LikelyCauses   []string       `json:"likely_causes,omitempty"`
	SuggestedFixes []string       `json:"suggested_fixes,omitempty"`
	Evidence       map[string]any `json:"evidence,omitempty"`
	At             time.Time      `json:"at"`
}

func New(sev Severity, code, summary string) Diagnostic {
	return Diagnostic{Severity: sev, Code: code, Summary: summary, At: time.Now()}
}

// Rejected describes a press the state machine refused.
func Rejected(x, y int, region, reason string) Diagnostic {
	d := New(Warn, "PRESS.REJECTED", fmt.Sprintf("%s rejected: %s", region, reason))
	d.Evidence = map[string]any{"x": x, "y": y}
	switch reason {
	case "macro selected":
		d.SuggestedFixes = []string{"clear the macro selection before picking a controller"}
	case "controller selected":
		d.SuggestedFixes = []string{"clear the controller selection before picking a macro"}
	}
	return d
}

// Committed describes a command sent downstream.
func Committed(prompt string) Diagnostic {
	d := New(Info, "COMMIT", prompt)
	d.Evidence = map[string]any{"prompt": prompt}
	return d
}

// SyncFailed reports a panel write error.
func SyncFailed(err error) Diagnostic {
	d := New(Err, "PANEL.SYNC", "panel sync failed")
	d.Detail = err.Error()
	d.LikelyCauses = []string{"loose bus cable", "tile address mismatch", "device unplugged"}
	return d
}
