// Package repository provides the git repository metadata value object.
package repository

import "strings"

// Repository holds the metadata of a loaded git working tree needed by
// extraction and caching. The value is produced by the git loader and never
// mutated afterwards.
type Repository struct {
	userName       string
	repositoryName string
	remoteURL      string
	branch         string
	commitHash     string
	isDirty        bool
	rootPath       string
}

// NewRepository creates a Repository.
func NewRepository(
	userName, repositoryName, remoteURL, branch, commitHash string,
	isDirty bool,
	rootPath string,
) Repository {
	return Repository{
		userName:       userName,
		repositoryName: repositoryName,
		remoteURL:      remoteURL,
		branch:         branch,
		commitHash:     commitHash,
		isDirty:        isDirty,
		rootPath:       rootPath,
	}
}

// UserName returns the repository owner.
func (r Repository) UserName() string { return r.userName }

// RepositoryName returns the repository name.
func (r Repository) RepositoryName() string { return r.repositoryName }

// RemoteURL returns the origin remote URL.
func (r Repository) RemoteURL() string { return r.remoteURL }

// Branch returns the checked-out branch, or empty in detached HEAD state.
func (r Repository) Branch() string { return r.branch }

// CommitHash returns the HEAD commit hash, or empty when unknown.
func (r Repository) CommitHash() string { return r.commitHash }

// IsDirty reports whether the working tree has uncommitted changes.
func (r Repository) IsDirty() bool { return r.isDirty }

// RootPath returns the local working tree root, or empty when unknown.
func (r Repository) RootPath() string { return r.rootPath }

// CacheKey normalizes the remote URL to a protocol-independent key so clones
// of the same repository via different protocols share one cache entry.
//
//	https://github.com/owner/repo  -> github_com_owner_repo
//	git@github.com:owner/repo      -> github_com_owner_repo
//	ssh://git@github.com/owner/repo -> github_com_owner_repo
func (r Repository) CacheKey() string {
	return normalizeRemoteURL(r.remoteURL)
}

func normalizeRemoteURL(url string) string {
	// SSH shorthand: git@host:owner/repo
	if rest, ok := strings.CutPrefix(url, "git@"); ok {
		if host, path, found := strings.Cut(rest, ":"); found {
			if key, ok := hostPathKey(host, path); ok {
				return key
			}
		}
	}

	// Full SSH URL: ssh://git@host/owner/repo
	if rest, ok := strings.CutPrefix(url, "ssh://"); ok {
		if _, hostPath, found := strings.Cut(rest, "@"); found {
			if host, path, found := strings.Cut(hostPath, "/"); found {
				if key, ok := hostPathKey(host, path); ok {
					return key
				}
			}
		}
	}

	// HTTP(S): https://host/owner/repo
	for _, prefix := range []string{"https://", "http://"} {
		if rest, ok := strings.CutPrefix(url, prefix); ok {
			if host, path, found := strings.Cut(rest, "/"); found {
				if key, ok := hostPathKey(host, path); ok {
					return key
				}
			}
		}
	}

	// Malformed or local URL: flatten into a filesystem-safe key.
	return strings.NewReplacer("/", "_", ":", "_", ".", "_").Replace(url)
}

func hostPathKey(host, path string) (string, bool) {
	parts := strings.Split(path, "/")
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return "", false
	}

	owner := parts[0]
	repo := strings.TrimSuffix(parts[1], ".git")
	return strings.ReplaceAll(host, ".", "_") + "_" + owner + "_" + repo, true
}

// ParseOwnerAndName extracts the owner and repository name from a remote URL.
// Unknown formats yield ("unknown", "unknown").
func ParseOwnerAndName(url string) (string, string) {
	if rest, ok := strings.CutPrefix(url, "git@"); ok {
		if _, path, found := strings.Cut(rest, ":"); found {
			parts := strings.Split(strings.TrimSuffix(path, ".git"), "/")
			if len(parts) >= 2 {
				return parts[0], parts[1]
			}
		}
	}

	for _, prefix := range []string{"https://", "http://", "ssh://git@", "ssh://"} {
		if rest, ok := strings.CutPrefix(url, prefix); ok {
			parts := strings.Split(rest, "/")
			if len(parts) >= 3 {
				return parts[1], strings.TrimSuffix(parts[2], ".git")
			}
		}
	}

	return "unknown", "unknown"
}
