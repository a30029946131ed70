package edd

import "strings"

// Severity classifies a single finding recorded against a row.
type Severity string

const (
	// SeverityCorrected marks a field that was adjusted automatically.
	SeverityCorrected Severity = "corrigido"
	// SeverityError marks a data-quality problem that needs manual review.
	SeverityError Severity = "erro"
)

// Finding is one stage's verdict on one row.
type Finding struct {
	Stage    string
	Severity Severity
	Message  string
}

// Annotations accumulates findings for a single row across every pipeline
// stage. It is append-only: a stage may add to it but never rewrite what an
// earlier stage recorded.
type Annotations struct {
	findings []Finding
}

// AddCorrection records an automatically applied adjustment.
func (a *Annotations) AddCorrection(stage, message string) {
	a.findings = append(a.findings, Finding{Stage: stage, Severity: SeverityCorrected, Message: message})
}

// AddError records a data-quality error. Errors are never cleared; a row with
// at least one error always lands on the error sheets at export.
func (a *Annotations) AddError(stage, message string) {
	a.findings = append(a.findings, Finding{Stage: stage, Severity: SeverityError, Message: message})
}

// Findings returns the recorded findings in insertion order.
func (a *Annotations) Findings() []Finding {
	return a.findings
}

// HasError reports whether any stage recorded an error for this row.
func (a *Annotations) HasError() bool {
	for _, f := range a.findings {
		if f.Severity == SeverityError {
			return true
		}
	}
	return false
}

// ActionCell renders the "acao" column value: the severity tags in the order
// they first appeared, joined by " / ". A row that was corrected and later
// errored reads "corrigido / erro".
func (a *Annotations) ActionCell() string {
	var tags []string
	for _, f := range a.findings {
		tag := string(f.Severity)
		seen := false
		for _, t := range tags {
			if t == tag {
				seen = true
				break
			}
		}
		if !seen {
			tags = append(tags, tag)
		}
	}
	return strings.Join(tags, " / ")
}

// CommentCell renders the "comentario_correcao" column value: every finding
// message in stage-execution order, joined by " / ".
func (a *Annotations) CommentCell() string {
	if len(a.findings) == 0 {
		return ""
	}
	msgs := make([]string, 0, len(a.findings))
	for _, f := range a.findings {
		msgs = append(msgs, f.Message)
	}
	return strings.Join(msgs, " / ")
}
