package models

type PublicationStatus string

const (
	StatusDraft         PublicationStatus = "draft"
	StatusUnderReview   PublicationStatus = "under_review"
	StatusNeedsRevision PublicationStatus = "needs_revision"
	StatusPublished     PublicationStatus = "published"
	StatusArchived      PublicationStatus = "archived"
)

// Valid reports whether s is one of the recognized lifecycle states.
func (s PublicationStatus) Valid() bool {
	switch s {
	case StatusDraft, StatusUnderReview, StatusNeedsRevision, StatusPublished, StatusArchived:
		return true
	}
	return false
}

// expectedTransitions is the intended lifecycle. It is advisory: writing an
// unlisted transition succeeds but is reported back as a warning.
var expectedTransitions = map[PublicationStatus][]PublicationStatus{
	StatusDraft:         {StatusUnderReview},
	StatusUnderReview:   {StatusPublished, StatusNeedsRevision},
	StatusNeedsRevision: {StatusUnderReview},
	StatusPublished:     {StatusArchived},
	StatusArchived:      {},
}

func TransitionExpected(from, to PublicationStatus) bool {
	for _, next := range expectedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// ProfessorTransitionAllowed limits what a professor may do with their own
// record: submit a draft for review, or resubmit after revisions. Everything
// else is staff territory.
func ProfessorTransitionAllowed(from, to PublicationStatus) bool {
	return (from == StatusDraft && to == StatusUnderReview) ||
		(from == StatusNeedsRevision && to == StatusUnderReview)
}
