// Package context provides dependency injection for workflow services.
//
// Steps run as flowgraph nodes and find the services they need in the
// context.Context they are given:
//   - WithRunner/Runner/GetRunner: command runner for git and Command steps
//   - WithDir/Dir, OpenRepo: the directory steps operate in
//   - WithTracker/Tracker: issue trackers, keyed by TrackerKind
//   - WithSelector/Selector: interactive prompts
//   - WithReleaser/Releaser: release publishing
//   - WithOutput/Output: where step and dry-run output goes
//   - WithPackageName/PackageName: release tag prefix
//
// NewServices builds Services from a parsed project file:
//
//	services := context.NewServices(context.Config{Project: project, Dir: "."})
//	ctx := services.InjectAll(ctx)
//
//	tracker, err := context.Tracker(ctx, context.TrackerJira)
package context
