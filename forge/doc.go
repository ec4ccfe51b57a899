// Package forge talks to the code hosting platforms a project lives on.
//
// GitHub and GitLab each implement two interfaces:
//   - issue.Tracker: list open issues by label and open or close them
//   - Releaser: publish a release for a tag
//
// Repositories are identified either explicitly or from a git remote URL:
//
//	owner, repo, err := forge.ParseRepoFromURL("git@github.com:acme/widgets.git")
//	gh, err := forge.NewGitHub(token, owner, repo)
//	url, err := gh.CreateRelease(ctx, forge.Release{Tag: "v1.2.0", Body: notes})
package forge
