package gateways

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-logr/logr"

	"github.com/ochairo/headless/internal/domain/entities"
)

// ChecksumVerifier checks the SHA-256 digest of a target before analysis
type ChecksumVerifier struct {
	log logr.Logger
}

// NewChecksumVerifier creates a new checksum verifier
func NewChecksumVerifier(log logr.Logger) *ChecksumVerifier {
	return &ChecksumVerifier{log: log}
}

// VerifyChecksum fails with entities.ErrChecksum unless the SHA-256 of
// filePath equals expected. The comparison ignores case and surrounding space.
func (v *ChecksumVerifier) VerifyChecksum(ctx context.Context, filePath, expected string) error {
	want := strings.ToLower(strings.TrimSpace(expected))
	if len(want) != sha256.Size*2 {
		return fmt.Errorf("%w: %q is not a SHA-256 hex digest", entities.ErrChecksum, expected)
	}

	got, err := v.sum(ctx, filePath)
	if err != nil {
		return fmt.Errorf("%w: %w", entities.ErrChecksum, err)
	}
	v.log.V(1).Info("computed checksum", "path", filePath, "sha256", got)

	if got != want {
		return fmt.Errorf("%w: mismatch for %s: expected %s, got %s", entities.ErrChecksum, filePath, want, got)
	}
	return nil
}

func (v *ChecksumVerifier) sum(ctx context.Context, filePath string) (string, error) {
	//nolint:gosec // G304: File path is the operator's target
	f, err := os.Open(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	//nolint:errcheck // Defer close on read-only file
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, ctxReader{ctx: ctx, r: f}); err != nil {
		return "", fmt.Errorf("failed to hash file: %w", err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// ctxReader stops a long copy once ctx is done
type ctxReader struct {
	ctx context.Context
	r   io.Reader
}

func (c ctxReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}
