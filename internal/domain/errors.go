package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrFetchFailed covers network errors, timeouts and non-2xx responses.
	ErrFetchFailed = errors.New("fetch failed")
	// ErrParseEmpty marks a document without a usable title.
	ErrParseEmpty = errors.New("parsed signal has no title")
	// ErrNoArticlesDiscovered marks a listing page without article links.
	ErrNoArticlesDiscovered = errors.New("no article urls discovered")
	// ErrDisallowedByRobots marks a URL excluded by the host's robots.txt.
	ErrDisallowedByRobots = errors.New("disallowed by robots.txt")
	// ErrStoreWriteFailed marks a failed create for a single article.
	ErrStoreWriteFailed = errors.New("store write failed")
	// ErrPostExists is returned by stores when (site, slug) is already taken.
	ErrPostExists = errors.New("post already exists")
	// ErrNoActiveSites aborts a run: there is nothing to publish to.
	ErrNoActiveSites = errors.New("no active sites")
	// ErrNoAdminIdentity aborts a run: posts need an author.
	ErrNoAdminIdentity = errors.New("no admin identity")
	// ErrDeployFailed is recorded, never fatal.
	ErrDeployFailed = errors.New("deploy failed")
)

// FetchError reports which URL failed and why.
type FetchError struct {
	URL   string
	Cause error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Cause)
}

func (e *FetchError) Unwrap() error {
	return e.Cause
}

// Is lets errors.Is(err, ErrFetchFailed) match any FetchError.
func (e *FetchError) Is(target error) bool {
	return target == ErrFetchFailed
}
