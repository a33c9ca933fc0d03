package reconcile

import "github.com/linkhub-io/linkhub/app/labels"

// OutcomeKind classifies what a reconciler run did to the record store.
type OutcomeKind string

const (
	OutcomeSaved   OutcomeKind = "saved"
	OutcomeDeleted OutcomeKind = "deleted"
	OutcomeSkipped OutcomeKind = "skipped"
)

// Skip reasons surfaced in logs.
const (
	ReasonNotSiteIssue     = "not a site-related issue"
	ReasonNotCategoryIssue = "not a category-related issue"
	ReasonOpenCorrection   = "open correction is finalized by the merge flow"
	ReasonOpenDeletion     = "open deletion request is finalized by the approval flow"
)

// Outcome is the result of mapping an issue to its target record state.
// Record carries the saved record (a record.SiteRecord or CategoryRecord)
// on a saved outcome and is nil otherwise.
type Outcome struct {
	Kind   OutcomeKind
	Reason string
	Status labels.Status
	Record any
}

func skipped(reason string) *Outcome {
	return &Outcome{Kind: OutcomeSkipped, Reason: reason}
}
