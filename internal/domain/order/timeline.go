package order

import "time"

// Stage is one rendered step of the six-stage timeline.
type Stage struct {
	Status    Status     `json:"status"`
	Completed bool       `json:"completed"`
	Current   bool       `json:"current"`
	Timestamp *time.Time `json:"timestamp,omitempty"`
	AdminNote string     `json:"adminNote,omitempty"`
}

// Timeline is the computed lifecycle position of an order. Cancelled orders
// are a distinct terminal state rather than a progression position; the
// stages are still reported so the UI can show how far the order got.
type Timeline struct {
	Stages      []Stage    `json:"stages"`
	Cancelled   bool       `json:"cancelled"`
	CancelledAt *time.Time `json:"cancelledAt,omitempty"`
	CancelNote  string     `json:"cancelNote,omitempty"`
}

// BuildTimeline computes the timeline for a fetched order record.
//
// Each canonical stage is completed iff its index is at or below the
// effective status's progression index, and current iff it matches the
// effective status exactly (after legacy-alias normalization). Per stage the
// first matching history entry wins; later duplicates are ignored.
func BuildTimeline(o *Order) Timeline {
	effective := Canonical(o.EffectiveStatus())
	current := ProgressIndex(effective)

	tl := Timeline{Stages: make([]Stage, 0, len(Progression))}
	for i, status := range Progression {
		stage := Stage{
			Status:    status,
			Completed: i <= current,
			Current:   status == effective,
		}
		if entry, ok := firstHistoryEntry(o.StatusHistory, status); ok {
			ts := entry.Timestamp
			stage.Timestamp = &ts
			stage.AdminNote = entry.AdminNote
		}
		tl.Stages = append(tl.Stages, stage)
	}

	if effective == StatusCancelled {
		tl.Cancelled = true
		if entry, ok := firstHistoryEntry(o.StatusHistory, StatusCancelled); ok {
			ts := entry.Timestamp
			tl.CancelledAt = &ts
			tl.CancelNote = entry.AdminNote
		}
	}

	return tl
}

func firstHistoryEntry(history []StatusEntry, status Status) (StatusEntry, bool) {
	for _, entry := range history {
		if Canonical(entry.Status) == Canonical(status) {
			return entry, true
		}
	}
	return StatusEntry{}, false
}
