// Package board holds the weekly todo board: an ordered todo collection
// partitioned into day columns, with the mutation operations the UI invokes
// and the resolver that turns drag gestures into mutations.
package board

import (
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pdrmenezes/basic-todo/internal/model"
)

// Persister loads and saves the full todo collection. Every board mutation
// rewrites the whole collection; there is no delta persistence.
type Persister interface {
	Load() ([]model.Todo, error)
	Save(todos []model.Todo) error
}

// Board owns the authoritative todo list for the current profile.
// It is not safe for concurrent use; callers serialize mutations on a
// single event loop.
type Board struct {
	todos   []model.Todo
	persist Persister
	err     string

	now   func() time.Time
	newID func() string
}

// New creates a board backed by p and loads the persisted collection.
// A load failure leaves the board empty with a sticky error message.
func New(p Persister) *Board {
	b := &Board{
		persist: p,
		now:     func() time.Time { return time.Now().UTC() },
		newID:   func() string { return uuid.New().String() },
	}
	b.Reload()
	return b
}

// Reload replaces the in-memory collection with the persisted one.
func (b *Board) Reload() {
	b.err = ""
	todos, err := b.persist.Load()
	if err != nil {
		log.Printf("loading todos: %v", err)
		b.err = "Failed to load todos"
		b.todos = nil
		return
	}
	b.todos = todos
}

// Err returns the sticky human-readable error from the last failed load or
// save, or "" when the board is healthy.
func (b *Board) Err() string { return b.err }

// Todos returns a copy of the full collection in display order.
func (b *Board) Todos() []model.Todo {
	out := make([]model.Todo, len(b.todos))
	copy(out, b.todos)
	return out
}

// ForDay returns the day's column in display order.
func (b *Board) ForDay(day model.Day) []model.Todo {
	var out []model.Todo
	for _, t := range b.todos {
		if t.Day == day {
			out = append(out, t)
		}
	}
	return out
}

// Add appends a new todo to the given day. Empty (after trimming) text or
// an unknown day is silently ignored.
func (b *Board) Add(text string, day model.Day) {
	text = strings.TrimSpace(text)
	if text == "" || !day.Valid() {
		return
	}
	now := b.now()
	b.todos = append(b.todos, model.Todo{
		ID:        b.newID(),
		Text:      text,
		Completed: false,
		Day:       day,
		SortOrder: len(b.ForDay(day)) + 1,
		CreatedAt: now,
		UpdatedAt: now,
	})
	b.save()
}

// Toggle flips the completed flag of the todo with the given id.
// Unknown ids are silently ignored.
func (b *Board) Toggle(id string) {
	i := b.index(id)
	if i < 0 {
		return
	}
	b.todos[i].Completed = !b.todos[i].Completed
	b.todos[i].UpdatedAt = b.now()
	b.save()
}

// Edit replaces the todo's text. Unknown ids, empty text, and text equal to
// the current value are silently ignored.
func (b *Board) Edit(id, text string) {
	i := b.index(id)
	if i < 0 {
		return
	}
	text = strings.TrimSpace(text)
	if text == "" || text == b.todos[i].Text {
		return
	}
	b.todos[i].Text = text
	b.todos[i].UpdatedAt = b.now()
	b.save()
}

// Delete removes the todo with the given id. Unknown ids are silently
// ignored.
func (b *Board) Delete(id string) {
	i := b.index(id)
	if i < 0 {
		return
	}
	day := b.todos[i].Day
	b.todos = append(b.todos[:i], b.todos[i+1:]...)
	b.renumber(day)
	b.save()
}

// ChangeDay reassigns the todo to another day's column. The todo keeps its
// position in the collection, so it joins the new column wherever that
// position falls; both columns' ranks are rewritten to 1..n. Unknown ids
// and a day equal to the todo's current day are silently ignored.
func (b *Board) ChangeDay(id string, newDay model.Day) {
	i := b.index(id)
	if i < 0 || !newDay.Valid() || b.todos[i].Day == newDay {
		return
	}
	oldDay := b.todos[i].Day
	b.todos[i].Day = newDay
	b.todos[i].UpdatedAt = b.now()
	b.renumber(oldDay)
	b.renumber(newDay)
	b.save()
}

// ReorderWithinDay removes the item at from within the day's column and
// reinserts it at to. Other days keep their relative order: the collection
// is rebuilt as all other days' todos followed by the reordered column.
// Out-of-range indexes and from == to are silently ignored.
func (b *Board) ReorderWithinDay(day model.Day, from, to int) {
	bucket := b.ForDay(day)
	if from == to || from < 0 || to < 0 || from >= len(bucket) || to >= len(bucket) {
		return
	}

	moved := bucket[from]
	bucket = append(bucket[:from], bucket[from+1:]...)
	bucket = append(bucket[:to], append([]model.Todo{moved}, bucket[to:]...)...)

	rebuilt := make([]model.Todo, 0, len(b.todos))
	for _, t := range b.todos {
		if t.Day != day {
			rebuilt = append(rebuilt, t)
		}
	}
	now := b.now()
	for i := range bucket {
		bucket[i].SortOrder = i + 1
		bucket[i].UpdatedAt = now
	}
	b.todos = append(rebuilt, bucket...)
	b.save()
}

// index returns the position of id in the collection, or -1.
func (b *Board) index(id string) int {
	for i, t := range b.todos {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// renumber rewrites SortOrder to 1..n within the day's column.
func (b *Board) renumber(day model.Day) {
	n := 0
	for i := range b.todos {
		if b.todos[i].Day == day {
			n++
			b.todos[i].SortOrder = n
		}
	}
}

// save writes the whole collection. A failure is logged and kept as the
// board's sticky error; the in-memory mutation is not rolled back.
func (b *Board) save() {
	if err := b.persist.Save(b.Todos()); err != nil {
		log.Printf("saving todos: %v", err)
		b.err = "Failed to save todos"
		return
	}
	b.err = ""
}
