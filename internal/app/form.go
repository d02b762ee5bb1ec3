package app

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/pdrmenezes/basic-todo/internal/model"
)

type formState int

const (
	formEditing formState = iota
	formSubmitted
	formCancelled
)

// formBindings holds form field values on the heap so that huh's Value()
// pointers remain valid across Bubble Tea model copies.
type formBindings struct {
	text string
	day  string
}

// todoForm is the add/edit form for a single todo.
type todoForm struct {
	form   *huh.Form
	fb     *formBindings
	editID string
}

func newTodoForm(text string, day model.Day) *todoForm {
	fb := &formBindings{text: text, day: string(day)}

	dayOptions := make([]huh.Option[string], len(model.Days))
	for i, d := range model.Days {
		dayOptions[i] = huh.NewOption(string(d), string(d))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("todo").
				Value(&fb.text),
			huh.NewSelect[string]().
				Title("day").
				Options(dayOptions...).
				Value(&fb.day),
		),
	)

	return &todoForm{form: form, fb: fb}
}

func (f *todoForm) Init() tea.Cmd {
	return f.form.Init()
}

func (f *todoForm) Update(msg tea.Msg) (*todoForm, tea.Cmd) {
	updated, cmd := f.form.Update(msg)
	if form, ok := updated.(*huh.Form); ok {
		f.form = form
	}
	return f, cmd
}

func (f *todoForm) State() formState {
	switch f.form.State {
	case huh.StateCompleted:
		return formSubmitted
	case huh.StateAborted:
		return formCancelled
	default:
		return formEditing
	}
}

func (f *todoForm) View() string { return f.form.View() }

func (f *todoForm) Text() string { return f.fb.text }

func (f *todoForm) Day() model.Day { return model.Day(f.fb.day) }
