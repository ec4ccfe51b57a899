package prompt

import (
	"errors"
	"testing"
)

func TestTerminal_NonInteractive(t *testing.T) {
	sel := &Terminal{IsInteractive: func() bool { return false }}

	_, err := sel.Select("Pick", []string{"a", "b"})
	if !errors.Is(err, ErrUserInput) {
		t.Errorf("error = %v, want ErrUserInput", err)
	}
}

func TestTerminal_NoChoices(t *testing.T) {
	sel := &Terminal{IsInteractive: func() bool { return true }}

	_, err := sel.Select("Pick", nil)
	if !errors.Is(err, ErrUserInput) {
		t.Errorf("error = %v, want ErrUserInput", err)
	}
}

func TestScripted(t *testing.T) {
	boom := errors.New("boom")
	sel := NewScripted("b", boom, "z")

	got, err := sel.Select("first", []string{"a", "b"})
	if err != nil || got != "b" {
		t.Errorf("first = (%q, %v), want b", got, err)
	}
	if _, err := sel.Select("second", []string{"a"}); !errors.Is(err, boom) {
		t.Errorf("second error = %v, want boom", err)
	}
	if _, err := sel.Select("third", []string{"a"}); !errors.Is(err, ErrUserInput) {
		t.Errorf("third error = %v, want ErrUserInput for unknown choice", err)
	}
	if _, err := sel.Select("fourth", []string{"a"}); !errors.Is(err, ErrUserInput) {
		t.Errorf("fourth error = %v, want ErrUserInput when drained", err)
	}
	if len(sel.Questions) != 4 || sel.Questions[0] != "first" {
		t.Errorf("Questions = %v", sel.Questions)
	}
}
