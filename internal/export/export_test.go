package export

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func found(name string) (string, error) { return "/usr/bin/" + name, nil }

func missing(name string) (string, error) {
	return "", errors.New("executable file not found in $PATH")
}

func TestDisabled(t *testing.T) {
	_, err := Disabled{}.Convert(context.Background(), []byte("docx"))
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestSofficeMissingBinary(t *testing.T) {
	s := &Soffice{LookPath: missing}

	assert.False(t, s.Available())

	_, err := s.Convert(context.Background(), []byte("docx"))
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestSofficeConvert(t *testing.T) {
	var gotArgs []string

	s := &Soffice{
		LookPath: found,
		Run: func(_ context.Context, dir, name string, args ...string) ([]byte, error) {
			gotArgs = append([]string{name}, args...)

			in, err := os.ReadFile(filepath.Join(dir, "document.docx"))
			if err != nil {
				return nil, err
			}

			return nil, os.WriteFile(filepath.Join(dir, "document.pdf"), append([]byte("%PDF-1.7 "), in...), 0o600)
		},
	}

	assert.True(t, s.Available())

	pdf, err := s.Convert(context.Background(), []byte("docx"))
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.7 docx", string(pdf))

	require.Len(t, gotArgs, 7)
	assert.Equal(t, []string{"/usr/bin/soffice", "--headless", "--convert-to", "pdf", "--outdir"}, gotArgs[:5])
	assert.Equal(t, "document.docx", filepath.Base(gotArgs[6]))
}

func TestSofficeFailures(t *testing.T) {
	tests := []struct {
		name string
		run  RunFunc
		want string
	}{
		{
			name: "process error",
			run: func(context.Context, string, string, ...string) ([]byte, error) {
				return []byte("boom"), errors.New("exit status 1")
			},
			want: "pdf conversion failed",
		},
		{
			name: "no output",
			run: func(context.Context, string, string, ...string) ([]byte, error) {
				return nil, nil
			},
			want: "produced no output",
		},
		{
			name: "not a pdf",
			run: func(_ context.Context, dir, _ string, _ ...string) ([]byte, error) {
				return nil, os.WriteFile(filepath.Join(dir, "document.pdf"), []byte("html"), 0o600)
			},
			want: "invalid file",
		},
		{
			name: "timeout",
			run: func(ctx context.Context, _, _ string, _ ...string) ([]byte, error) {
				<-ctx.Done()
				return nil, ctx.Err()
			},
			want: "timed out",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &Soffice{LookPath: found, Run: tt.run, Timeout: 10 * time.Millisecond}

			_, err := s.Convert(context.Background(), []byte("docx"))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
			assert.NotErrorIs(t, err, ErrUnavailable)
		})
	}
}
