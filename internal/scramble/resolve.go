package scramble

import (
	"errors"
	"fmt"
	"path/filepath"
)

// Recovery is a caller's decision about a failed path or rename.
type Recovery int

const (
	// RecoverySkip drops the affected file and continues.
	RecoverySkip Recovery = iota
	// RecoveryRetry attempts the failed operation again.
	RecoveryRetry
	// RecoveryHalt aborts the whole run.
	RecoveryHalt
)

// OnError decides how to recover from a per-file failure. Interactive
// callers prompt the user; non-interactive callers return a fixed decision.
type OnError func(path string, err error) Recovery

// ErrHalted is returned when an OnError handler aborts the run.
var ErrHalted = errors.New("halted")

// ResolveInputs converts raw input paths to absolute, symlink-resolved,
// deduplicated paths, preserving input order. Failures are routed through
// onErr; skipped paths are dropped from the result.
func ResolveInputs(paths []string, onErr OnError) ([]string, error) {
	resolved := make([]string, 0, len(paths))
	seen := make(map[string]bool)

	for _, path := range paths {
		for {
			abs, err := canonicalize(path)
			if err == nil {
				if !seen[abs] {
					seen[abs] = true
					resolved = append(resolved, abs)
				}
				break
			}

			switch onErr(path, err) {
			case RecoverySkip:
			case RecoveryRetry:
				continue
			case RecoveryHalt:
				return nil, fmt.Errorf("resolve %s: %w", path, errors.Join(ErrHalted, err))
			}
			break
		}
	}

	return resolved, nil
}

// canonicalize resolves path to an absolute path with symlinks evaluated.
// The path must exist.
func canonicalize(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	return filepath.EvalSymlinks(abs)
}
