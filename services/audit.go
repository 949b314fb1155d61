package services

import (
	"sort"
	"strconv"
	"strings"

	"pubregistry/models"
)

// publicationProjection flattens the audited scalar fields of a publication
// to strings. Nil values normalize to the empty string; the same
// normalization is applied to update payloads so optional fields never
// produce spurious diffs.
func publicationProjection(pub *models.Publication) map[string]string {
	return map[string]string{
		"title":      stringValue(pub.Title),
		"venue_id":   uintValue(pub.VenueID),
		"venue_name": stringValue(pub.VenueName),
		"level":      string(pub.Level),
		"year":       intValue(pub.Year),
		"abstract":   stringValue(pub.Abstract),
		"link_url":   stringValue(pub.LinkURL),
		"file_path":  stringValue(pub.FilePath),
		"has_file":   strconv.FormatBool(pub.HasFile),
	}
}

func stringValue(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

func intValue(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

func uintValue(v *uint) string {
	if v == nil {
		return ""
	}
	return strconv.FormatUint(uint64(*v), 10)
}

// diffEntries emits one edit-log row per field in next whose value differs
// from the before projection. Fields are visited in sorted order so repeated
// identical updates produce identical ledgers.
func diffEntries(publicationID, actorID uint, before, next map[string]string) []models.EditLog {
	fields := make([]string, 0, len(next))
	for field := range next {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	var entries []models.EditLog
	for _, field := range fields {
		if before[field] == next[field] {
			continue
		}
		entries = append(entries, models.EditLog{
			PublicationID: publicationID,
			Field:         field,
			OldValue:      before[field],
			NewValue:      next[field],
			ActorID:       actorID,
		})
	}
	return entries
}

// applyAbstractEdit materializes an incremental abstract edit against the
// stored text. The caller diffs the result against the previous abstract and
// logs only when they differ.
func applyAbstractEdit(current string, edit models.AbstractEdit) (string, error) {
	switch edit.Op {
	case "set":
		return edit.Text, nil
	case "prepend":
		return edit.Text + current, nil
	case "append":
		return current + edit.Text, nil
	case "delete":
		if edit.Text == "" {
			return "", models.ErrorValidation{Field: "abstract_edit", Reason: "delete requires text"}
		}
		return strings.ReplaceAll(current, edit.Text, ""), nil
	case "delete_range":
		if edit.From < 0 || edit.To < edit.From {
			return "", models.ErrorValidation{Field: "abstract_edit", Reason: "invalid range"}
		}
		from, to := edit.From, edit.To
		if from > len(current) {
			from = len(current)
		}
		if to > len(current) {
			to = len(current)
		}
		return current[:from] + current[to:], nil
	default:
		return "", models.ErrorValidation{Field: "abstract_edit", Reason: "unknown op " + edit.Op}
	}
}
