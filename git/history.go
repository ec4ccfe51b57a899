package git

import (
	"errors"
	"log/slog"
	"strings"
)

const (
	fieldSep  = "\x1f"
	recordSep = "\x1e"

	// %m is "-" for boundary commits and ">" otherwise.
	logFormat = "--format=%m%x1f%H%x1f%P%x1f%D%x1f%B%x1e"
)

// commitNode is one commit of the graph loaded from `git log`.
type commitNode struct {
	sha      string
	parents  []string
	grafted  bool // shallow boundary: real parents are not available
	boundary bool // excluded parent of a listed commit
	message  string
}

// CommitMessagesSince returns the raw messages of every commit reachable from
// HEAD that is not the commit tagged tag or one of its ancestors, in git's
// topological order (newest first). The walk stops at the tag: nothing below
// it is read.
//
// An empty tag means there is no previous release and every reachable commit
// is returned. A tag that cannot be resolved to a commit is logged and
// treated the same way. If the walk needs a commit that is not available
// locally, a *MissingAncestorError is returned.
func (g *Context) CommitMessagesSince(tag string) ([]string, error) {
	stop := ""
	if tag != "" {
		sha, err := g.runGit("rev-parse", "--verify", "--quiet", "refs/tags/"+tag+"^{commit}")
		if err != nil || sha == "" {
			slog.Error("found tagged version but could not resolve it to a commit", "tag", tag)
		} else {
			stop = sha
			slog.Debug("processing commits since tag", "tag", tag, "commit", sha)
		}
	}

	order, graph, err := g.loadGraph(stop)
	if err != nil {
		return nil, err
	}

	var messages []string
	for _, sha := range order {
		node := graph[sha]
		if node.grafted {
			return nil, &MissingAncestorError{Commit: sha}
		}
		for _, p := range node.parents {
			if _, ok := graph[p]; !ok {
				return nil, &MissingAncestorError{Commit: sha}
			}
		}
		messages = append(messages, node.message)
	}
	return messages, nil
}

// loadGraph reads the commits reachable from HEAD. With a stop commit the
// walk excludes stop and its ancestors; the excluded parents of listed
// commits come back as boundary nodes, which are in the graph but not in
// order.
func (g *Context) loadGraph(stop string) ([]string, map[string]*commitNode, error) {
	args := []string{"log", "--topo-order", logFormat, "HEAD"}
	if stop != "" {
		args = []string{"log", "--topo-order", "--boundary", logFormat, "HEAD", "--not", stop}
	}
	out, err := g.runGit(args...)
	if err != nil {
		output := commandOutput(err)
		if isMissingObject(output) {
			return nil, nil, &MissingAncestorError{Err: err}
		}
		return nil, nil, &Error{Op: "read history", Cmd: "git " + strings.Join(args, " "), Output: output, Err: err}
	}

	var order []string
	graph := make(map[string]*commitNode)
	for _, record := range strings.Split(out, recordSep) {
		record = strings.TrimLeft(record, "\n")
		if record == "" {
			continue
		}
		fields := strings.SplitN(record, fieldSep, 5)
		if len(fields) != 5 {
			return nil, nil, &Error{Op: "read history", Cmd: "git log", Err: errors.New("malformed log record")}
		}

		node := &commitNode{
			sha:      fields[1],
			parents:  strings.Fields(fields[2]),
			grafted:  hasDecoration(fields[3], "grafted"),
			boundary: strings.HasSuffix(strings.TrimSpace(fields[0]), "-"),
			message:  strings.TrimRight(fields[4], "\n"),
		}
		if _, seen := graph[node.sha]; seen {
			continue
		}
		graph[node.sha] = node
		if !node.boundary {
			order = append(order, node.sha)
		}
	}
	return order, graph, nil
}

func hasDecoration(decorations, name string) bool {
	for _, d := range strings.Split(decorations, ",") {
		if strings.TrimSpace(d) == name {
			return true
		}
	}
	return false
}

func isMissingObject(output string) bool {
	output = strings.ToLower(output)
	for _, marker := range []string{"missing", "bad object", "could not read", "unable to read"} {
		if strings.Contains(output, marker) {
			return true
		}
	}
	return false
}
