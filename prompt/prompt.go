package prompt

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/charmbracelet/huh"
	"golang.org/x/term"
)

// ErrUserInput indicates the user aborted a prompt or no input was possible.
var ErrUserInput = errors.New("failed to get user input")

// Selector asks the user to pick one of several choices.
type Selector interface {
	Select(question string, choices []string) (string, error)
}

// Terminal prompts on the controlling terminal using huh.
type Terminal struct {
	// IsInteractive reports whether prompting is possible. Defaults to
	// checking that stdin and stdout are terminals.
	IsInteractive func() bool
}

// NewTerminal creates a terminal selector.
func NewTerminal() *Terminal {
	return &Terminal{IsInteractive: stdioIsTerminal}
}

// Select shows an arrow-key list and returns the chosen item.
func (t *Terminal) Select(question string, choices []string) (string, error) {
	if len(choices) == 0 {
		return "", fmt.Errorf("%w: nothing to choose from for %q", ErrUserInput, question)
	}
	if t.IsInteractive != nil && !t.IsInteractive() {
		return "", fmt.Errorf("%w: %q needs an interactive terminal", ErrUserInput, question)
	}

	options := make([]huh.Option[string], len(choices))
	for i, c := range choices {
		options[i] = huh.NewOption(c, c)
	}

	var selected string
	err := huh.NewSelect[string]().
		Title(question).
		Options(options...).
		Value(&selected).
		Run()
	if err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return "", fmt.Errorf("%w: aborted", ErrUserInput)
		}
		return "", fmt.Errorf("%w: %v", ErrUserInput, err)
	}
	return selected, nil
}

func stdioIsTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

// Scripted answers prompts from a fixed list, for tests and automation.
// Each answer is either a choice to return or an error.
type Scripted struct {
	mu        sync.Mutex
	answers   []any
	Questions []string // Every question asked, in order
}

// NewScripted creates a selector that returns answers in order.
func NewScripted(answers ...any) *Scripted {
	return &Scripted{answers: answers}
}

// Select implements Selector. An answer that is not among choices, or a
// drained script, returns ErrUserInput.
func (s *Scripted) Select(question string, choices []string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.Questions = append(s.Questions, question)
	if len(s.answers) == 0 {
		return "", fmt.Errorf("%w: no scripted answer for %q", ErrUserInput, question)
	}
	answer := s.answers[0]
	s.answers = s.answers[1:]

	switch a := answer.(type) {
	case error:
		return "", a
	case string:
		for _, c := range choices {
			if c == a {
				return a, nil
			}
		}
		return "", fmt.Errorf("%w: %q is not a choice", ErrUserInput, a)
	}
	return "", fmt.Errorf("%w: unsupported scripted answer %T", ErrUserInput, answer)
}
