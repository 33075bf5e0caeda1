// Package git reads repository metadata and files through go-git.
package git

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	gogit "github.com/go-git/go-git/v5"

	"github.com/typedrill/typedrill/domain/repository"
)

// ErrNotRepository indicates the path is not inside a git work tree.
var ErrNotRepository = errors.New("not a git repository")

// MetadataLoader reads repository identity from a local work tree.
type MetadataLoader struct {
	logger *slog.Logger
}

// NewMetadataLoader creates a MetadataLoader.
func NewMetadataLoader(logger *slog.Logger) *MetadataLoader {
	if logger == nil {
		logger = slog.Default()
	}
	return &MetadataLoader{logger: logger}
}

// Load opens the repository at rootPath and returns its identity: owner and
// name from the origin remote, HEAD commit, branch, and work tree dirtiness.
// A repository without an origin remote is identified by its directory name.
func (l *MetadataLoader) Load(rootPath string) (repository.Repository, error) {
	repo, err := gogit.PlainOpenWithOptions(rootPath, &gogit.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		if errors.Is(err, gogit.ErrRepositoryNotExists) {
			return repository.Repository{}, fmt.Errorf("%w: %s", ErrNotRepository, rootPath)
		}
		return repository.Repository{}, fmt.Errorf("open repository: %w", err)
	}

	head, err := repo.Head()
	if err != nil {
		return repository.Repository{}, fmt.Errorf("resolve HEAD: %w", err)
	}

	commitHash := head.Hash().String()
	branch := ""
	if head.Name().IsBranch() {
		branch = head.Name().Short()
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return repository.Repository{}, fmt.Errorf("get worktree: %w", err)
	}

	status, err := worktree.Status()
	if err != nil {
		return repository.Repository{}, fmt.Errorf("read worktree status: %w", err)
	}
	isDirty := !status.IsClean()

	remoteURL := l.originURL(repo)
	owner, name := ownerAndName(remoteURL, rootPath)

	l.logger.Debug("loaded repository metadata",
		slog.String("repo", owner+"/"+name),
		slog.String("commit", shortSHA(commitHash)),
		slog.Bool("dirty", isDirty),
	)

	return repository.NewRepository(owner, name, remoteURL, branch, commitHash, isDirty, rootPath), nil
}

func (l *MetadataLoader) originURL(repo *gogit.Repository) string {
	remote, err := repo.Remote("origin")
	if err != nil {
		return ""
	}

	urls := remote.Config().URLs
	if len(urls) == 0 {
		return ""
	}
	return urls[0]
}

func ownerAndName(remoteURL, rootPath string) (string, string) {
	if remoteURL == "" || strings.HasPrefix(remoteURL, "file://") {
		return "local", filepath.Base(rootPath)
	}

	owner, name := repository.ParseOwnerAndName(remoteURL)
	if owner == "unknown" && name == "unknown" {
		return "local", filepath.Base(rootPath)
	}
	return owner, name
}

func shortSHA(sha string) string {
	if len(sha) > 8 {
		return sha[:8]
	}
	return sha
}
