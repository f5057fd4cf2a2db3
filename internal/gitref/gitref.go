// Package gitref normalizes user-supplied repository references into a
// canonical clone target plus optional branch and path scope.
package gitref

import (
	"net/url"
	"strings"
)

// providerHost is the hosting provider whose URL shape we understand.
const providerHost = "github.com"

// viewMarkers are the path segments GitHub inserts between the repository
// name and the branch in browser URLs.
var viewMarkers = map[string]struct{}{
	"tree": {},
	"blob": {},
}

// Ref is the normalized form of a repository reference. Branch and PathScope
// are empty when the reference did not carry them.
type Ref struct {
	CloneURL  string
	Branch    string
	PathScope string
}

// Normalize parses a repository reference and extracts the canonical clone
// URL, branch, and path scope. References that are not GitHub browser URLs
// (SSH remotes, other providers, plain clone URLs from elsewhere) pass
// through unchanged: the caller must accept them as already canonical.
// Normalize never fails; degraded pass-through output is the designed
// fallback for anything it does not recognize.
//
// Examples:
//
//	https://github.com/llvm/llvm-project/tree/main/clang
//	    -> {https://github.com/llvm/llvm-project.git, main, clang}
//	https://github.com/llvm/llvm-project
//	    -> {https://github.com/llvm/llvm-project.git, "", ""}
//	git@example.com:owner/repo.git
//	    -> passed through unchanged
func Normalize(reference string) Ref {
	// Remove trailing fragment markers and whitespace.
	cleaned := strings.TrimSpace(reference)
	cleaned = strings.TrimRight(cleaned, "#")
	cleaned = strings.TrimSpace(cleaned)

	parsed, err := url.Parse(cleaned)
	if err != nil {
		return Ref{CloneURL: cleaned}
	}

	if !strings.Contains(parsed.Host, providerHost) {
		return Ref{CloneURL: cleaned}
	}

	segments := splitPath(parsed.Path)
	if len(segments) < 2 {
		// No owner and repository name; malformed for our purposes but not
		// an error. Hand it back untouched.
		return Ref{CloneURL: cleaned}
	}

	owner := segments[0]
	repo := segments[1]

	var branch, scope string
	if len(segments) >= 4 {
		if _, ok := viewMarkers[segments[2]]; ok {
			branch = segments[3]
			if len(segments) > 4 {
				scope = strings.Join(segments[4:], "/")
			}
		}
	}

	// Guarantee the clone suffix appears exactly once even when the input
	// repository name already carries it.
	repo = strings.TrimSuffix(repo, ".git")
	cloneURL := "https://" + providerHost + "/" + owner + "/" + repo + ".git"

	return Ref{CloneURL: cloneURL, Branch: branch, PathScope: scope}
}

// splitPath splits a URL path into its non-empty segments.
func splitPath(p string) []string {
	var segments []string
	for _, s := range strings.Split(p, "/") {
		if s != "" {
			segments = append(segments, s)
		}
	}
	return segments
}
