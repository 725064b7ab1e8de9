// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package resolve assigns collision-free destination paths within a batch run.
package resolve

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// maxAttempts bounds the suffix search. Hitting it means something is very
// wrong with the destination directory; the file is failed, not the batch.
const maxAttempts = 1_000_000

// ErrExhausted is returned when no free suffix could be found.
var ErrExhausted = errors.New("collision suffixes exhausted")

// Claims tracks destination paths assigned during a single batch run, so
// two source files that sanitize to the same title cannot collide even
// before the first one lands on disk. Owned by one run; not goroutine-safe.
type Claims struct {
	claimed map[string]struct{}
}

// NewClaims creates an empty claim set for one run.
func NewClaims() *Claims {
	return &Claims{claimed: make(map[string]struct{})}
}

// Claim marks path as taken without resolving it. Used when a file keeps
// its current name so later files cannot be assigned it.
func (c *Claims) Claim(path string) {
	c.claimed[filepath.Clean(path)] = struct{}{}
}

// Resolve returns a path in dir for the desired filename that is free both
// on disk and in the claim set, appending " (n)" before the extension with
// n starting at 1. The returned path is claimed for the rest of the run.
func (c *Claims) Resolve(dir, name string) (string, error) {
	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)

	for n := 0; n < maxAttempts; n++ {
		candidate := name
		if n > 0 {
			candidate = fmt.Sprintf("%s (%d)%s", stem, n, ext)
		}
		path := filepath.Clean(filepath.Join(dir, candidate))

		if _, taken := c.claimed[path]; taken {
			continue
		}
		if _, err := os.Lstat(path); err == nil {
			continue
		} else if !os.IsNotExist(err) {
			return "", fmt.Errorf("checking %s: %w", path, err)
		}

		c.claimed[path] = struct{}{}
		return path, nil
	}
	return "", fmt.Errorf("%w for %s in %s", ErrExhausted, name, dir)
}
