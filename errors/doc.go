// Package errors turns failures from any releaseflow package into messages a
// person can act on.
//
// Describe maps an error chain to a CLIError with a one-line message, a
// suggestion, and the full chain as details. Failures that may leave the
// repository half-changed (an incomplete checkout, a truncated history) set
// NeedsInspection.
//
//	if err := pipeline.Run(ctx, rt); err != nil {
//	    fmt.Fprint(os.Stderr, errors.Describe(err).Render())
//	    os.Exit(1)
//	}
//
// Errors that know their own advice implement Suggester. Bug marks defects:
//
//	return errors.Bug(fmt.Errorf("step %s changed run mode", name))
package errors
