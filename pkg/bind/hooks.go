package bind

import "context"

// Decision is the verdict of a pre-commit hook.
type Decision uint8

const (
	// DecisionNone lets the change proceed.
	DecisionNone Decision = iota
	// DecisionAccept lets the change proceed.
	DecisionAccept
	// DecisionReject vetoes the change.
	DecisionReject
)

func (d Decision) String() string {
	switch d {
	case DecisionAccept:
		return "accept"
	case DecisionReject:
		return "reject"
	default:
		return "none"
	}
}

// Change describes a pending or committed write.
type Change struct {
	Field    string
	Previous any
	Value    any
	Metadata any
}

// PreCommitHook runs after validation and before the write. It may block;
// returning DecisionReject or an error aborts the change.
type PreCommitHook func(ctx context.Context, change Change) (Decision, error)

// PostCommitHook runs synchronously after a successful write.
type PostCommitHook func(change Change)
