package dmp

import (
	apperrors "github.com/alexisbeaulieu97/decisionhub/pkg/errors"
)

// Issue is one validation finding.
type Issue struct {
	Kind     apperrors.Kind `json:"kind"`
	Artifact string         `json:"artifact,omitempty"`
	Message  string         `json:"message"`
}

// Report collects the findings of one validation pass in check order.
type Report struct {
	Root   string  `json:"root"`
	Issues []Issue `json:"issues"`
	// Card is the decoded decision card when the card could be parsed.
	Card *Card `json:"card,omitempty"`
}

func (r *Report) add(kind apperrors.Kind, artifact string, messages ...string) {
	for _, message := range messages {
		r.Issues = append(r.Issues, Issue{Kind: kind, Artifact: artifact, Message: message})
	}
}

// OK reports whether the package passed every check.
func (r *Report) OK() bool {
	return len(r.Issues) == 0
}

// Errors returns the findings as plain messages.
func (r *Report) Errors() []string {
	out := make([]string, 0, len(r.Issues))
	for _, issue := range r.Issues {
		out = append(out, issue.Message)
	}
	return out
}

// Kind classifies the report by its first finding. A clean report has no kind.
func (r *Report) Kind() apperrors.Kind {
	if len(r.Issues) == 0 {
		return ""
	}
	return r.Issues[0].Kind
}
