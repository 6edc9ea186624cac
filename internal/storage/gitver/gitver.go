// Package gitver versions the collection store with go-git. Every mutating
// API request ends with a commit of the changed JSONL files, giving the
// append-only store a full edit history without a database.
package gitver

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// Commit is one entry of the store history.
type Commit struct {
	Hash    string    `json:"hash"`
	Message string    `json:"message"`
	Author  string    `json:"author"`
	When    time.Time `json:"when"`
}

// Repo wraps a git repository over the store directory.
type Repo struct {
	dir         string
	authorName  string
	authorEmail string
	repo        *gogit.Repository
	mu          sync.Mutex
}

// Open opens the repository at dir, initializing it on first use.
func Open(dir, authorName, authorEmail string) (*Repo, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create repo directory: %w", err)
	}
	repo, err := gogit.PlainOpen(dir)
	if err != nil {
		repo, err = gogit.PlainInit(dir, false)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize git repo: %w", err)
		}
	}
	return &Repo{
		dir:         dir,
		authorName:  authorName,
		authorEmail: authorEmail,
		repo:        repo,
	}, nil
}

// CommitAll stages every change in the store and commits it with msg.
// A clean worktree is a no-op.
func (r *Repo) CommitAll(ctx context.Context, msg string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Detach from the request context but keep a bound.
	_, cancel := context.WithTimeout(context.WithoutCancel(ctx), time.Minute)
	defer cancel()

	w, err := r.repo.Worktree()
	if err != nil {
		return fmt.Errorf("failed to get worktree: %w", err)
	}
	if err := w.AddWithOptions(&gogit.AddOptions{All: true}); err != nil {
		return fmt.Errorf("failed to stage changes: %w", err)
	}
	status, err := w.Status()
	if err != nil {
		return fmt.Errorf("failed to get worktree status: %w", err)
	}
	if status.IsClean() {
		return nil
	}
	_, err = w.Commit(msg, &gogit.CommitOptions{
		Author: &object.Signature{
			Name:  r.authorName,
			Email: r.authorEmail,
			When:  time.Now(),
		},
	})
	if err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	return nil
}

// History returns up to n most recent commits, newest first. n is capped at
// 1000 and defaults to 50 when non-positive.
func (r *Repo) History(ctx context.Context, n int) ([]*Commit, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if n <= 0 {
		n = 50
	}
	if n > 1000 {
		n = 1000
	}
	head, err := r.repo.Head()
	if err != nil {
		// Empty repository: no commits yet.
		return []*Commit{}, nil
	}
	iter, err := r.repo.Log(&gogit.LogOptions{From: head.Hash()})
	if err != nil {
		return nil, fmt.Errorf("failed to read log: %w", err)
	}
	defer iter.Close()
	commits := make([]*Commit, 0, n)
	for len(commits) < n {
		c, err := iter.Next()
		if err != nil {
			break
		}
		commits = append(commits, &Commit{
			Hash:    c.Hash.String(),
			Message: c.Message,
			Author:  c.Author.Name,
			When:    c.Author.When,
		})
	}
	return commits, nil
}
