// Package integration checks the host environment for the external
// collaborators a recording run needs.
package integration

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/shadanan/codeanim/internal/config"
)

type DoctorCheck struct {
	Name    string `json:"name"`
	Status  string `json:"status"` // pass | warn | fail
	Message string `json:"message"`
	Path    string `json:"path,omitempty"`
}

type DoctorResult struct {
	OK       bool          `json:"ok"`
	Checks   []DoctorCheck `json:"checks"`
	Warnings []string      `json:"warnings,omitempty"`
}

// Doctor verifies the binaries and paths a run depends on. tmux is a
// warning rather than a failure because the pty backend works without
// it; the recorder is required either way.
func Doctor(cfg config.Config) DoctorResult {
	out := DoctorResult{OK: true}
	add := func(c DoctorCheck) {
		out.Checks = append(out.Checks, c)
		if c.Status == "warn" {
			out.Warnings = append(out.Warnings, fmt.Sprintf("%s: %s", c.Name, c.Message))
		}
		if c.Status == "fail" {
			out.OK = false
		}
	}

	add(checkBinary("recorder", cfg.RecorderBin, "fail"))
	add(checkBinary("tmux", cfg.TmuxBin, "warn"))
	add(checkBinary("shell", cfg.Shell, "fail"))
	add(checkCatalogDir(cfg.CatalogPath))
	return out
}

func checkBinary(name, bin, missingStatus string) DoctorCheck {
	path, err := exec.LookPath(bin)
	if err != nil {
		return DoctorCheck{
			Name:    name,
			Status:  missingStatus,
			Message: fmt.Sprintf("%s not found in PATH", bin),
		}
	}
	return DoctorCheck{Name: name, Status: "pass", Message: "found", Path: path}
}

func checkCatalogDir(path string) DoctorCheck {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return DoctorCheck{
			Name:    "catalog_dir",
			Status:  "warn",
			Message: fmt.Sprintf("cannot create %s: %v", dir, err),
		}
	}
	return DoctorCheck{Name: "catalog_dir", Status: "pass", Message: "writable", Path: dir}
}
