package workflow

import (
	"bytes"
	"context"
	"strings"
	"testing"

	rfcontext "github.com/randalmurphal/releaseflow/context"
	"github.com/randalmurphal/releaseflow/prompt"
	"github.com/randalmurphal/releaseflow/testutil"
)

// testEnv is a context wired to an output buffer and a scripted selector.
type testEnv struct {
	ctx      context.Context
	out      *bytes.Buffer
	selector *prompt.Scripted
}

func newTestEnv(t *testing.T, dir string, answers ...any) *testEnv {
	t.Helper()

	env := &testEnv{out: &bytes.Buffer{}, selector: prompt.NewScripted(answers...)}
	ctx := testutil.TestContext(t)
	ctx = rfcontext.WithDir(ctx, dir)
	ctx = rfcontext.WithOutput(ctx, env.out)
	ctx = rfcontext.WithSelector(ctx, env.selector)
	env.ctx = ctx
	return env
}

func lines(buf *bytes.Buffer) []string {
	s := strings.TrimSpace(buf.String())
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

const cargoToml = `[package]
name = "demo"
version = "1.2.3"
edition = "2021"
`
