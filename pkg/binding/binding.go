// Package binding models the input controls a presentation layer binds to
// view-model cells. Each control forwards its change event through a
// single callback set with Bind.
//
// User-originated changes (Edit, Slide) fire the callback. Programmatic
// writes (SetText, SetValue) do not, which is what lets a control and a
// cell be bound in both directions without a feedback loop.
package binding

import (
	"sync"

	"github.com/Rahulguptaid/ViewModelExample/pkg/observable"
)

// TextField is a text input that reports editing changes.
type TextField struct {
	text        string
	textChanged func(string)
	mu          sync.RWMutex
}

// NewTextField creates an empty text field.
func NewTextField() *TextField {
	return &TextField{}
}

// Bind sets the editing-changed callback, replacing any previous one.
func (f *TextField) Bind(callback func(string)) {
	f.mu.Lock()
	f.textChanged = callback
	f.mu.Unlock()
}

// Text returns the current text.
func (f *TextField) Text() string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.text
}

// SetText replaces the text without firing the callback.
func (f *TextField) SetText(s string) {
	f.mu.Lock()
	f.text = s
	f.mu.Unlock()
}

// Edit applies a user edit and fires the callback with the new text.
func (f *TextField) Edit(s string) {
	f.mu.Lock()
	f.text = s
	cb := f.textChanged
	f.mu.Unlock()

	if cb != nil {
		cb(s)
	}
}

// Slider is a bounded float input that reports value changes.
type Slider struct {
	min, max     float32
	value        float32
	valueChanged func(float32)
	mu           sync.RWMutex
}

// NewSlider creates a slider over [min, max] positioned at min.
// The bounds are swapped if given in reverse.
func NewSlider(min, max float32) *Slider {
	if min > max {
		min, max = max, min
	}
	return &Slider{min: min, max: max, value: min}
}

// Bind sets the value-changed callback, replacing any previous one.
func (s *Slider) Bind(callback func(float32)) {
	s.mu.Lock()
	s.valueChanged = callback
	s.mu.Unlock()
}

// Value returns the current position.
func (s *Slider) Value() float32 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.value
}

// SetValue moves the slider without firing the callback.
func (s *Slider) SetValue(v float32) {
	s.mu.Lock()
	s.value = s.clamp(v)
	s.mu.Unlock()
}

// Slide applies a user change and fires the callback with the clamped value.
func (s *Slider) Slide(v float32) {
	s.mu.Lock()
	s.value = s.clamp(v)
	value := s.value
	cb := s.valueChanged
	s.mu.Unlock()

	if cb != nil {
		cb(value)
	}
}

func (s *Slider) clamp(v float32) float32 {
	if v < s.min {
		return s.min
	}
	if v > s.max {
		return s.max
	}
	return v
}

// DefaultButtonTitle is reported when a button's title is empty.
const DefaultButtonTitle = "Title"

// ButtonTitle is a button whose title changes are observed.
type ButtonTitle struct {
	title        string
	titleChanged func(string)
	mu           sync.RWMutex
}

// NewButtonTitle creates a button with the given title.
func NewButtonTitle(title string) *ButtonTitle {
	return &ButtonTitle{title: title}
}

// Bind sets the title-changed callback, replacing any previous one.
func (b *ButtonTitle) Bind(callback func(string)) {
	b.mu.Lock()
	b.titleChanged = callback
	b.mu.Unlock()
}

// Title returns the current title.
func (b *ButtonTitle) Title() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.title
}

// SetTitle replaces the title and fires the callback. Any write to the
// title is observed, so programmatic sets fire too.
func (b *ButtonTitle) SetTitle(title string) {
	b.mu.Lock()
	b.title = title
	cb := b.titleChanged
	b.mu.Unlock()

	if cb == nil {
		return
	}
	if title == "" {
		title = DefaultButtonTitle
	}
	cb(title)
}

// TwoWay binds a text field and a string cell in both directions: edits
// are written into the cell and cell writes are mirrored into the field.
// It replaces the field's callback and the cell's primary listener.
func TwoWay(field *TextField, cell *observable.Cell[string]) {
	field.Bind(cell.Set)
	cell.Bind(field.SetText)
}

// TwoWaySlider is TwoWay for a slider and a float cell.
func TwoWaySlider(slider *Slider, cell *observable.Cell[float32]) {
	slider.Bind(cell.Set)
	cell.Bind(slider.SetValue)
}
