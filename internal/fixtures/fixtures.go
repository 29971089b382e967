// Package fixtures builds the throwaway filesystem the demo records
// against: a sample media tree for mediar to link, and a scratch zsh
// home with a minimal prompt so the capture stays clean.
package fixtures

import (
	"fmt"
	"os"
	"path/filepath"
)

var mediaFiles = []string{
	"source/movie/Star.Trek.Generations.mkv",
	"source/show/Sample.mkv",
	"source/show/Star.Trek.The.Next.Generation.S01E01.mkv",
	"source/show/Star.Trek.The.Next.Generation.S01E02.mkv",
	"source/show/Star.Trek.The.Next.Generation.S02E01.mkv",
	"source/show/Star.Trek.The.Next.Generation.S02E02.mkv",
}

// BuildMediaTree recreates the demo directory from scratch: empty .mkv
// placeholders under source/ and an empty target/.
func BuildMediaTree(root string) error {
	if err := os.RemoveAll(root); err != nil {
		return fmt.Errorf("clear demo dir: %w", err)
	}
	for _, rel := range mediaFiles {
		path := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return fmt.Errorf("create %s: %w", filepath.Dir(rel), err)
		}
		if err := os.WriteFile(path, nil, 0o644); err != nil {
			return fmt.Errorf("touch %s: %w", rel, err)
		}
	}
	if err := os.MkdirAll(filepath.Join(root, "target"), 0o755); err != nil {
		return fmt.Errorf("create target dir: %w", err)
	}
	return nil
}

// NewZshHome writes a scratch ZDOTDIR whose .zshrc reduces the prompt to
// "$ ". Returns the directory; the caller removes it after the run.
func NewZshHome(parent string) (string, error) {
	dir, err := os.MkdirTemp(parent, "codeanim-zsh-")
	if err != nil {
		return "", fmt.Errorf("create zsh home: %w", err)
	}
	rc := `export PROMPT="$ "` + "\n"
	if err := os.WriteFile(filepath.Join(dir, ".zshrc"), []byte(rc), 0o644); err != nil {
		_ = os.RemoveAll(dir)
		return "", fmt.Errorf("write .zshrc: %w", err)
	}
	return dir, nil
}
