package forge

import "errors"

// Forge errors.
var (
	// ErrNoReleaser indicates a release was requested but no forge is configured.
	ErrNoReleaser = errors.New("no release target configured")

	// ErrUnknownForge indicates the git remote is on an unsupported host.
	ErrUnknownForge = errors.New("unknown git hosting platform")

	// ErrTokenRequired indicates the forge client was created without a token.
	ErrTokenRequired = errors.New("access token is required")

	// ErrRepoRequired indicates the repository could not be identified.
	ErrRepoRequired = errors.New("repository is required")

	// ErrInvalidRemoteURL indicates a remote URL has no owner/repo path.
	ErrInvalidRemoteURL = errors.New("invalid remote URL")
)
