// Package prompt asks the user to choose between options.
//
// Terminal renders an interactive list with huh and refuses to prompt when
// stdin or stdout is not a terminal. Scripted replays canned answers.
//
//	sel := prompt.NewTerminal()
//	base, err := sel.Select("Select a base branch", []string{"main", "develop"})
//	if errors.Is(err, prompt.ErrUserInput) {
//	    // aborted or non-interactive
//	}
package prompt
