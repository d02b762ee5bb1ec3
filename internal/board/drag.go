package board

import "github.com/pdrmenezes/basic-todo/internal/model"

// DragEvent describes one completed drag gesture. OverID is the drop
// target: another todo's id, a day column name, or "" when the gesture was
// cancelled.
type DragEvent struct {
	ActiveID string
	OverID   string
}

// ResolveDrop interprets a completed drag gesture and applies the resulting
// mutation, if any.
//
// Dropping on a different day's column reassigns the todo to that day; this
// takes priority over positional placement, so a drop on an empty area of
// another column never attempts a reorder. Dropping on another todo reorders
// within the dragged todo's own column. Everything else, including dropping
// a todo onto itself or onto its own column, leaves the board unchanged.
func (b *Board) ResolveDrop(ev DragEvent) {
	if ev.OverID == "" {
		return
	}

	i := b.index(ev.ActiveID)
	if i < 0 {
		return
	}
	active := b.todos[i]

	if day := model.Day(ev.OverID); day.Valid() {
		if day != active.Day {
			b.ChangeDay(active.ID, day)
		}
		return
	}

	bucket := b.ForDay(active.Day)
	from, to := -1, -1
	for j, t := range bucket {
		switch t.ID {
		case ev.ActiveID:
			from = j
		case ev.OverID:
			to = j
		}
	}
	if from != -1 && to != -1 && from != to {
		b.ReorderWithinDay(active.Day, from, to)
	}
}
