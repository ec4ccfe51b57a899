// Package jira is a minimal Jira REST client and the issue.Tracker adapter
// built on it.
//
// Both Jira Cloud (API v3, the default) and Server/Data Center (API v2) are
// supported. Requests go through the shared retrying client in the http
// package, so error values unwrap to its sentinels:
//
//	cfg := jira.DefaultConfig()
//	cfg.URL = "https://your-domain.atlassian.net"
//	cfg.Project = "REL"
//	cfg.Auth.Email = "you@example.com"
//	cfg.Auth.Token = os.Getenv("JIRA_TOKEN")
//
//	client, err := jira.NewClient(cfg)
//	if err != nil {
//		return err
//	}
//	tracker := jira.NewTracker(client)
//	issues, err := tracker.Search(ctx, issue.Query{Status: "To Do"})
//
// Transition looks the transition up by its exact name and reports
// issue.ErrInvalidTransition when the issue has no such transition.
package jira
