package binding

import (
	"testing"

	"github.com/Rahulguptaid/ViewModelExample/pkg/observable"
)

func TestTextFieldEditFires(t *testing.T) {
	f := NewTextField()
	var got []string
	f.Bind(func(s string) { got = append(got, s) })

	f.Edit("a")
	f.Edit("ab")

	if len(got) != 2 || got[0] != "a" || got[1] != "ab" {
		t.Errorf("callback saw %v, want [a ab]", got)
	}
	if f.Text() != "ab" {
		t.Errorf("Text() = %q, want %q", f.Text(), "ab")
	}
}

func TestTextFieldSetTextIsSilent(t *testing.T) {
	f := NewTextField()
	calls := 0
	f.Bind(func(string) { calls++ })

	f.SetText("programmatic")

	if calls != 0 {
		t.Errorf("SetText fired callback %d times, want 0", calls)
	}
	if f.Text() != "programmatic" {
		t.Errorf("Text() = %q, want %q", f.Text(), "programmatic")
	}
}

func TestTextFieldUnbound(t *testing.T) {
	f := NewTextField()
	f.Edit("no callback")
	if f.Text() != "no callback" {
		t.Errorf("Text() = %q", f.Text())
	}
}

func TestSliderClampsAndFires(t *testing.T) {
	s := NewSlider(10, 0)
	var got []float32
	s.Bind(func(v float32) { got = append(got, v) })

	s.Slide(5)
	s.Slide(42)
	s.Slide(-1)

	want := []float32{5, 10, 0}
	if len(got) != len(want) {
		t.Fatalf("callback saw %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("got[%d] = %v, want %v", i, got[i], want[i])
		}
	}

	s.SetValue(99)
	if s.Value() != 10 {
		t.Errorf("Value() = %v, want 10", s.Value())
	}
	if len(got) != len(want) {
		t.Errorf("SetValue fired the callback")
	}
}

func TestButtonTitle(t *testing.T) {
	b := NewButtonTitle("Sign in")
	var got []string
	b.Bind(func(s string) { got = append(got, s) })

	b.SetTitle("Signing in")
	b.SetTitle("")

	if len(got) != 2 {
		t.Fatalf("callback saw %v, want two titles", got)
	}
	if got[0] != "Signing in" {
		t.Errorf("got[0] = %q, want %q", got[0], "Signing in")
	}
	if got[1] != DefaultButtonTitle {
		t.Errorf("got[1] = %q, want %q", got[1], DefaultButtonTitle)
	}
	if b.Title() != "" {
		t.Errorf("Title() = %q, want empty", b.Title())
	}
}

func TestTwoWay(t *testing.T) {
	field := NewTextField()
	cell := observable.New("")
	TwoWay(field, cell)

	field.Edit("a@b.com")
	if cell.Get() != "a@b.com" {
		t.Errorf("cell = %q after edit, want %q", cell.Get(), "a@b.com")
	}

	cell.Set("reset")
	if field.Text() != "reset" {
		t.Errorf("field = %q after cell write, want %q", field.Text(), "reset")
	}
}

func TestTwoWaySlider(t *testing.T) {
	slider := NewSlider(0, 1)
	cell := observable.New[float32](0)
	TwoWaySlider(slider, cell)

	slider.Slide(2)
	if cell.Get() != 1 {
		t.Errorf("cell = %v after slide, want 1", cell.Get())
	}

	cell.Set(0.25)
	if slider.Value() != 0.25 {
		t.Errorf("slider = %v after cell write, want 0.25", slider.Value())
	}
}
