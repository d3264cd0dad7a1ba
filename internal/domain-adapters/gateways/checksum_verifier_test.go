package gateways

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-logr/logr/testr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ochairo/headless/internal/domain/entities"
)

func writeChecksumTarget(t *testing.T) (string, string) {
	t.Helper()
	content := []byte("Hello, World! This is a test file for checksum verification.")
	path := filepath.Join(t.TempDir(), "target")
	require.NoError(t, os.WriteFile(path, content, 0o600))
	sum := sha256.Sum256(content)
	return path, hex.EncodeToString(sum[:])
}

func TestChecksumVerifier_VerifyChecksum(t *testing.T) {
	path, sum := writeChecksumTarget(t)
	verifier := NewChecksumVerifier(testr.New(t))

	tests := []struct {
		name     string
		path     string
		expected string
		wantErr  string
	}{
		{name: "valid checksum", path: path, expected: sum},
		{name: "upper case with spaces", path: path, expected: "  " + strings.ToUpper(sum) + "\n"},
		{name: "mismatch", path: path, expected: strings.Repeat("0", 64), wantErr: "mismatch"},
		{name: "not a digest", path: path, expected: "abc", wantErr: "not a SHA-256 hex digest"},
		{name: "missing file", path: "/nonexistent/file.txt", expected: sum, wantErr: "failed to open file"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := verifier.VerifyChecksum(context.Background(), tt.path, tt.expected)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, entities.ErrChecksum)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestChecksumVerifier_Canceled(t *testing.T) {
	path, sum := writeChecksumTarget(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := NewChecksumVerifier(testr.New(t)).VerifyChecksum(ctx, path, sum)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}
