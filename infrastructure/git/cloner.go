package git

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	gogit "github.com/go-git/go-git/v5"

	"github.com/typedrill/typedrill/domain/repository"
)

// Cloner materializes remote repositories under a local cache directory so
// they can be practiced on like any local work tree.
type Cloner struct {
	baseDir string
	logger  *slog.Logger
}

// NewCloner creates a Cloner that clones under baseDir/owner/name.
func NewCloner(baseDir string, logger *slog.Logger) *Cloner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Cloner{baseDir: baseDir, logger: logger}
}

// CloneOrUpdate clones remoteURL into the cache directory, or fast-forwards
// the existing clone. It returns the local path of the work tree.
func (c *Cloner) CloneOrUpdate(ctx context.Context, remoteURL string) (string, error) {
	owner, name := repository.ParseOwnerAndName(remoteURL)
	localPath := filepath.Join(c.baseDir, owner, name)

	if _, err := os.Stat(filepath.Join(localPath, ".git")); err == nil {
		return localPath, c.update(ctx, localPath)
	}

	c.logger.Info("cloning repository",
		slog.String("url", remoteURL),
		slog.String("path", localPath),
	)

	if err := os.MkdirAll(filepath.Dir(localPath), 0o755); err != nil {
		return "", fmt.Errorf("create clone directory: %w", err)
	}

	_, err := gogit.PlainCloneContext(ctx, localPath, false, &gogit.CloneOptions{
		URL:   remoteURL,
		Depth: 1,
	})
	if err != nil {
		// A failed clone leaves a partial work tree that would shadow the
		// next attempt.
		_ = os.RemoveAll(localPath)
		return "", fmt.Errorf("clone %s: %w", remoteURL, err)
	}

	return localPath, nil
}

func (c *Cloner) update(ctx context.Context, localPath string) error {
	repo, err := gogit.PlainOpen(localPath)
	if err != nil {
		return fmt.Errorf("open repository: %w", err)
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return fmt.Errorf("get worktree: %w", err)
	}

	err = worktree.PullContext(ctx, &gogit.PullOptions{RemoteName: "origin"})
	if err != nil && !errors.Is(err, gogit.NoErrAlreadyUpToDate) {
		return fmt.Errorf("pull repository: %w", err)
	}

	return nil
}
