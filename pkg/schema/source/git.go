package source

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"

	"github.com/metricgov/metricgov/pkg/config"
	"github.com/metricgov/metricgov/pkg/schema/builder"
)

// GitSource loads a schema file from a Git repository. The repository
// is cloned on first Load and pulled on every subsequent Load, so the
// compiled schema always reflects the tracked branch's latest commit.
type GitSource struct {
	cfg    config.GitSchemaConfig
	local  string
	parser *builder.Parser

	mu   sync.Mutex
	repo *gogit.Repository
}

// NewGitSource creates a source over a schema file in a Git repository.
func NewGitSource(cfg config.GitSchemaConfig) (*GitSource, error) {
	if cfg.Repository == "" {
		return nil, fmt.Errorf("git schema source: repository URL cannot be empty")
	}
	if cfg.Branch == "" {
		return nil, fmt.Errorf("git schema source: branch cannot be empty")
	}

	local := cfg.LocalPath
	if local == "" {
		local = filepath.Join(os.TempDir(), "metricgov-schema")
	}

	return &GitSource{
		cfg:    cfg,
		local:  local,
		parser: builder.NewParser(),
	}, nil
}

func (s *GitSource) Load(ctx context.Context) (*builder.Schema, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureRepo(ctx); err != nil {
		return nil, err
	}
	if err := s.pull(ctx); err != nil {
		return nil, err
	}

	return s.parser.Parse(filepath.Join(s.local, s.cfg.Path))
}

// Path returns the schema file's location inside the local clone.
func (s *GitSource) Path() string {
	return filepath.Join(s.local, s.cfg.Path)
}

// Head returns the SHA of the current local HEAD commit.
func (s *GitSource) Head() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.repo == nil {
		return "", fmt.Errorf("repository not initialized, call Load first")
	}
	ref, err := s.repo.Head()
	if err != nil {
		return "", fmt.Errorf("failed to read HEAD: %w", err)
	}
	return ref.Hash().String(), nil
}

// ensureRepo opens the existing clone or performs the initial clone.
func (s *GitSource) ensureRepo(ctx context.Context) error {
	if s.repo != nil {
		return nil
	}

	if _, err := os.Stat(filepath.Join(s.local, ".git")); err == nil {
		repo, err := gogit.PlainOpen(s.local)
		if err != nil {
			return fmt.Errorf("failed to open existing clone: %w", err)
		}
		s.repo = repo
		return nil
	}

	if err := os.MkdirAll(s.local, 0755); err != nil {
		return fmt.Errorf("failed to create clone directory: %w", err)
	}

	cloneCtx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	repo, err := gogit.PlainCloneContext(cloneCtx, s.local, false, &gogit.CloneOptions{
		URL:           s.cfg.Repository,
		ReferenceName: plumbing.NewBranchReferenceName(s.cfg.Branch),
		SingleBranch:  true,
	})
	if err != nil {
		return fmt.Errorf("failed to clone %s: %w", s.cfg.Repository, err)
	}

	s.repo = repo
	return nil
}

// pull fast-forwards the local clone to the remote branch head.
func (s *GitSource) pull(ctx context.Context) error {
	worktree, err := s.repo.Worktree()
	if err != nil {
		return fmt.Errorf("failed to get worktree: %w", err)
	}

	pullCtx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	err = worktree.PullContext(pullCtx, &gogit.PullOptions{
		RemoteName:    "origin",
		ReferenceName: plumbing.NewBranchReferenceName(s.cfg.Branch),
	})
	if err != nil && err != gogit.NoErrAlreadyUpToDate {
		return fmt.Errorf("failed to pull: %w", err)
	}
	return nil
}
