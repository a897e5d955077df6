package source

import (
	"context"
	"path"
	"path/filepath"
	"strings"

	"github.com/droidbuild/droidbuild/pkg/config"
	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/pkg/errors"
)

// VCSSource is a git checkout. It always reports work for Fetch: a
// checkout is synced on every run rather than treated as materialized,
// which is what keeps development builds tracking upstream.
type VCSSource struct {
	url    string
	branch string

	sources string
}

type VCSOption func(*VCSSource)

func WithBranch(branch string) VCSOption {
	return func(s *VCSSource) {
		s.branch = branch
	}
}

func NewVCS(cfg *config.Config, url string, opts ...VCSOption) *VCSSource {
	s := &VCSSource{
		url:     url,
		sources: cfg.SourcesDir(),
	}

	for _, o := range opts {
		o(s)
	}

	return s
}

func (s *VCSSource) URL() string {
	return s.url
}

func (s *VCSSource) SigSuffix() string {
	return ""
}

func (s *VCSSource) Dir() string {
	base := strings.TrimSuffix(path.Base(s.url), ".git")

	return filepath.Join(s.sources, base)
}

func (s *VCSSource) NeedDownload() bool {
	return true
}

// Version is the short hash of HEAD. Before the first checkout exists
// there is nothing to hash and the version is unknown.
func (s *VCSSource) Version() (string, error) {
	repo, err := git.PlainOpen(s.Dir())
	if err != nil {
		return "", errors.Wrapf(ErrVersionUnknown, "%s", s.url)
	}

	head, err := repo.Head()
	if err != nil {
		return "", errors.Wrapf(ErrVersionUnknown, "%s", s.url)
	}

	return head.Hash().String()[:12], nil
}

func (s *VCSSource) Fetch(ctx context.Context) error {
	dir := s.Dir()

	repo, err := git.PlainOpen(dir)
	if err != nil {
		if err != git.ErrRepositoryNotExists {
			return errors.Wrapf(err, "opening checkout %s", dir)
		}

		opts := &git.CloneOptions{
			URL: s.url,
		}

		if s.branch != "" {
			opts.ReferenceName = plumbing.NewBranchReferenceName(s.branch)
			opts.SingleBranch = true
		}

		_, err = git.PlainCloneContext(ctx, dir, false, opts)
		if err != nil {
			return &FetchError{URL: s.url, Err: err}
		}

		return nil
	}

	wt, err := repo.Worktree()
	if err != nil {
		return errors.Wrapf(err, "opening worktree %s", dir)
	}

	err = wt.PullContext(ctx, &git.PullOptions{RemoteName: "origin"})
	if err != nil && err != git.NoErrAlreadyUpToDate {
		return &FetchError{URL: s.url, Err: err}
	}

	return nil
}
