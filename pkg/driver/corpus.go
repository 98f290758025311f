package driver

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// CorpusRequest describes a git repository of AST programs to fetch. At most
// one of Rev, Tag and Branch may be set; none means the remote HEAD.
type CorpusRequest struct {
	URL    string
	Rev    string
	Tag    string
	Branch string
}

// Revision returns the go-git revision to resolve and a short descriptor.
func (r CorpusRequest) Revision() (plumbing.Revision, string, error) {
	set := 0
	for _, v := range []string{r.Rev, r.Tag, r.Branch} {
		if strings.TrimSpace(v) != "" {
			set++
		}
	}
	if set > 1 {
		return "", "", fmt.Errorf("corpus: rev, tag and branch are mutually exclusive")
	}
	if rev := strings.TrimSpace(r.Rev); rev != "" {
		return plumbing.Revision(rev), rev, nil
	}
	if tag := strings.TrimSpace(r.Tag); tag != "" {
		return plumbing.Revision("refs/tags/" + tag), tag, nil
	}
	if branch := strings.TrimSpace(r.Branch); branch != "" {
		return plumbing.Revision("refs/remotes/origin/" + branch), branch, nil
	}
	return plumbing.Revision(plumbing.HEAD), "HEAD", nil
}

// FetchCorpus clones the repository, checks out the requested revision
// under <baseDir>/<sanitized url>/<commit> and returns that directory and
// the commit hash. A checkout that already exists for the commit is reused.
func FetchCorpus(ctx context.Context, baseDir string, req CorpusRequest, logger *slog.Logger) (string, string, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if strings.TrimSpace(req.URL) == "" {
		return "", "", fmt.Errorf("corpus: url is required")
	}
	revision, descriptor, err := req.Revision()
	if err != nil {
		return "", "", err
	}
	repoDir := filepath.Join(baseDir, sanitizePathSegment(req.URL))
	if err := os.MkdirAll(repoDir, 0o755); err != nil {
		return "", "", err
	}

	// A full hash names its checkout directly, so no clone is needed.
	if plumbing.IsHash(req.Rev) {
		existing := filepath.Join(repoDir, req.Rev)
		if _, err := os.Stat(existing); err == nil {
			logger.Debug("corpus checkout reused", "url", req.URL, "commit", req.Rev)
			return existing, req.Rev, nil
		}
	}

	tmpDir, err := os.MkdirTemp(repoDir, "git-fetch-*")
	if err != nil {
		return "", "", err
	}
	if err := os.RemoveAll(tmpDir); err != nil {
		return "", "", err
	}

	logger.Info("cloning corpus", "url", req.URL, "revision", descriptor)
	repo, err := git.PlainCloneContext(ctx, tmpDir, false, &git.CloneOptions{
		URL: req.URL,
	})
	if err != nil {
		_ = os.RemoveAll(tmpDir)
		return "", "", fmt.Errorf("git clone %s: %w", req.URL, err)
	}

	hash, err := repo.ResolveRevision(revision)
	if err != nil {
		_ = os.RemoveAll(tmpDir)
		return "", "", fmt.Errorf("resolve revision %s: %w", descriptor, err)
	}

	targetDir := filepath.Join(repoDir, hash.String())
	if _, err := os.Stat(targetDir); err == nil {
		_ = os.RemoveAll(tmpDir)
		logger.Debug("corpus checkout reused", "url", req.URL, "commit", hash.String())
		return targetDir, hash.String(), nil
	}

	worktree, err := repo.Worktree()
	if err != nil {
		_ = os.RemoveAll(tmpDir)
		return "", "", err
	}
	if err := worktree.Checkout(&git.CheckoutOptions{
		Hash:  *hash,
		Force: true,
	}); err != nil {
		_ = os.RemoveAll(tmpDir)
		return "", "", fmt.Errorf("git checkout %s: %w", descriptor, err)
	}

	if err := os.Rename(tmpDir, targetDir); err != nil {
		_ = os.RemoveAll(tmpDir)
		return "", "", err
	}
	logger.Info("corpus fetched", "url", req.URL, "commit", hash.String(), "dir", targetDir)
	return targetDir, hash.String(), nil
}

func sanitizePathSegment(segment string) string {
	segment = strings.TrimSpace(segment)
	segment = strings.TrimPrefix(segment, "https://")
	segment = strings.TrimPrefix(segment, "http://")
	segment = strings.TrimSuffix(segment, ".git")
	var b strings.Builder
	for _, r := range segment {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '.' || r == '-' || r == '_' {
			b.WriteRune(r)
		} else {
			b.WriteByte('_')
		}
	}
	result := strings.Trim(b.String(), "_")
	if result == "" {
		return "corpus"
	}
	return result
}
