// Package source resolves the tool's input into a local directory, cloning
// remote repositories into a temporary working copy first.
package source

import (
	"context"
	"os"
	"strings"

	"repo2file/pkg/apperror"

	"github.com/go-git/go-git/v5"
	"go.uber.org/zap"
)

// RemotePrefix marks an input as a remote repository locator.
const RemotePrefix = "https://github.com/"

const tempPattern = "temp-repo2file-*"

// IsRemote reports whether input names a remote repository. Anything else is
// a local path, even when it looks like a malformed URL.
func IsRemote(input string) bool {
	return strings.HasPrefix(input, RemotePrefix)
}

// CloneFunc fetches url into the existing empty directory dir.
type CloneFunc func(ctx context.Context, dir, url string) error

// GitClone clones the default branch of url with go-git.
func GitClone(ctx context.Context, dir, url string) error {
	_, err := git.PlainCloneContext(ctx, dir, false, &git.CloneOptions{
		URL:          url,
		Depth:        1,
		SingleBranch: true,
	})
	return err
}

// Checkout is a local directory ready for traversal.
type Checkout struct {
	Dir    string
	Remote bool
	logger *zap.Logger
}

// Close removes the temporary working copy of a remote checkout.
func (c *Checkout) Close() error {
	if !c.Remote || c.Dir == "" {
		return nil
	}
	if err := os.RemoveAll(c.Dir); err != nil {
		c.logger.Warn("Failed to remove temporary checkout", zap.String("dir", c.Dir), zap.Error(err))
		return err
	}
	c.logger.Debug("Removed temporary checkout", zap.String("dir", c.Dir))
	return nil
}

// Acquirer turns inputs into checkouts.
type Acquirer struct {
	Clone  CloneFunc
	logger *zap.Logger
}

// New returns an Acquirer that clones with go-git.
func New(logger *zap.Logger) *Acquirer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Acquirer{Clone: GitClone, logger: logger}
}

// Acquire returns a checkout for input. Local inputs are returned untouched;
// remote inputs are cloned completely before Acquire returns.
func (a *Acquirer) Acquire(ctx context.Context, input string) (*Checkout, error) {
	if !IsRemote(input) {
		return &Checkout{Dir: input, logger: a.logger}, nil
	}

	dir, err := os.MkdirTemp("", tempPattern)
	if err != nil {
		a.logger.Error("Failed to create temporary directory", zap.Error(err))
		return nil, apperror.Wrap(err, apperror.TempDirFailed, "failed to create temporary directory")
	}

	a.logger.Info("Cloning repository", zap.String("url", input), zap.String("dir", dir))
	if err := a.Clone(ctx, dir, input); err != nil {
		a.logger.Error("Failed to clone repository", zap.String("url", input), zap.Error(err))
		if rmErr := os.RemoveAll(dir); rmErr != nil {
			a.logger.Warn("Failed to remove temporary checkout", zap.String("dir", dir), zap.Error(rmErr))
		}
		return nil, apperror.Wrap(err, apperror.CloneFailed, "failed to clone repository").WithPath(input)
	}

	return &Checkout{Dir: dir, Remote: true, logger: a.logger}, nil
}
