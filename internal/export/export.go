package export

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"wz-generator/internal/logging"
)

// ErrUnavailable reports that no converter can run. The DOCX input is still
// a valid result.
var ErrUnavailable = errors.New("pdf converter unavailable")

// DefaultBinary is the office suite executable looked up on PATH.
const DefaultBinary = "soffice"

// DefaultTimeout bounds a single conversion.
const DefaultTimeout = 60 * time.Second

// Converter turns a DOCX document into PDF.
type Converter interface {
	Convert(ctx context.Context, docx []byte) ([]byte, error)
}

// Disabled is a converter for deployments without an office suite.
type Disabled struct{}

// Convert always fails with ErrUnavailable.
func (Disabled) Convert(context.Context, []byte) ([]byte, error) {
	return nil, ErrUnavailable
}

// RunFunc executes a command in dir and returns its combined output.
type RunFunc func(ctx context.Context, dir, name string, args ...string) ([]byte, error)

// Soffice converts with LibreOffice in headless mode.
type Soffice struct {
	Binary  string
	Timeout time.Duration
	Logger  *logging.Logger

	// Run replaces process execution in tests.
	Run RunFunc
	// LookPath replaces the PATH lookup in tests.
	LookPath func(string) (string, error)
}

// NewSoffice returns a converter running binary; "" selects DefaultBinary.
func NewSoffice(binary string, timeout time.Duration, logger *logging.Logger) *Soffice {
	return &Soffice{Binary: binary, Timeout: timeout, Logger: logging.OrNop(logger)}
}

// Available reports whether the binary can be found.
func (s *Soffice) Available() bool {
	_, err := s.lookPath()
	return err == nil
}

// Convert writes docx to a temporary directory, runs the office suite on it
// and returns the produced PDF.
func (s *Soffice) Convert(ctx context.Context, docx []byte) ([]byte, error) {
	bin, err := s.lookPath()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	dir, err := os.MkdirTemp("", "wz-export-*")
	if err != nil {
		return nil, fmt.Errorf("creating export directory: %w", err)
	}
	defer os.RemoveAll(dir)

	in := filepath.Join(dir, "document.docx")
	if err := os.WriteFile(in, docx, 0o600); err != nil {
		return nil, fmt.Errorf("writing export input: %w", err)
	}

	timeout := s.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	log := logging.OrNop(s.Logger)
	start := time.Now()

	out, err := s.run()(ctx, dir, bin, "--headless", "--convert-to", "pdf", "--outdir", dir, in)
	if err != nil {
		log.Warn("pdf conversion failed", "binary", bin, "error", err, "output", strings.TrimSpace(string(out)))

		if ctx.Err() != nil {
			return nil, fmt.Errorf("pdf conversion timed out after %s: %w", timeout, ctx.Err())
		}

		return nil, fmt.Errorf("pdf conversion failed: %w", err)
	}

	pdf, err := os.ReadFile(filepath.Join(dir, "document.pdf"))
	if err != nil {
		return nil, fmt.Errorf("pdf conversion produced no output: %w", err)
	}

	if !bytes.HasPrefix(pdf, []byte("%PDF")) {
		return nil, fmt.Errorf("pdf conversion produced an invalid file")
	}

	log.Debug("pdf conversion finished", "bytes", len(pdf), "duration_ms", time.Since(start).Milliseconds())

	return pdf, nil
}

func (s *Soffice) lookPath() (string, error) {
	bin := s.Binary
	if bin == "" {
		bin = DefaultBinary
	}

	look := s.LookPath
	if look == nil {
		look = exec.LookPath
	}

	return look(bin)
}

func (s *Soffice) run() RunFunc {
	if s.Run != nil {
		return s.Run
	}

	return runCommand
}

func runCommand(ctx context.Context, dir, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	// LibreOffice refuses to start twice with one profile; give each run its own.
	cmd.Env = append(os.Environ(), "HOME="+dir)

	return cmd.CombinedOutput()
}
