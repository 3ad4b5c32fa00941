package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/s3share/internal/common"
	"github.com/dmitrijs2005/s3share/internal/config"
	"github.com/dmitrijs2005/s3share/internal/logging"
	"github.com/dmitrijs2005/s3share/internal/sharekey"
	"github.com/dmitrijs2005/s3share/internal/storage"
)

func newTestApp(t *testing.T, store storage.Store) (*App, *bytes.Buffer) {
	t.Helper()

	old := openStore
	t.Cleanup(func() { openStore = old })
	openStore = func(ctx context.Context, c *config.Config) (storage.Store, error) {
		return store, nil
	}

	cfg := &config.Config{}
	cfg.LoadDefaults()
	var out bytes.Buffer
	return NewApp(cfg, logging.NewNop(), &out), &out
}

func seed(t *testing.T, email, secret, ext, body string) *storage.MemoryStore {
	t.Helper()
	store := storage.NewMemoryStore()
	key := sharekey.DeriveUploadKey(email, secret, ext)
	require.NoError(t, store.Put(context.Background(), key.String(), storage.Object{Body: []byte(body), ContentType: "text/plain"}, ""))
	return store
}

func TestRun_Usage(t *testing.T) {
	app, out := newTestApp(t, storage.NewMemoryStore())

	err := app.Run(context.Background(), nil)
	assert.ErrorIs(t, err, ErrUsage)
	assert.Contains(t, out.String(), "Usage:")

	out.Reset()
	err = app.Run(context.Background(), []string{"upload"})
	assert.ErrorIs(t, err, ErrUsage)
	assert.Contains(t, out.String(), "Unknown command: upload")

	out.Reset()
	assert.NoError(t, app.Run(context.Background(), []string{"help"}))
}

func TestKey(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    []string
		wantErr error
	}{
		{
			name: "explicit secret",
			args: []string{"-email", "alice@example.com", "-secret", "kitten", "-file", "notes.txt"},
			want: []string{"Key: YWxpY2VAZXhhbXBsZS5jb20=kitten.txt", "Secret to share: kitten-txt"},
		},
		{
			name: "default secret",
			args: []string{"-email=alice@example.com", "-file=notes.txt"},
			want: []string{"Key: YWxpY2VAZXhhbXBsZS5jb20=password.txt", "Secret to share: password-txt"},
		},
		{
			name: "config flags are ignored",
			args: []string{"-b", "other", "-email", "alice@example.com", "-file", "notes.txt"},
			want: []string{"Secret to share: password-txt"},
		},
		{
			name:    "missing file",
			args:    []string{"-email", "alice@example.com"},
			wantErr: ErrUsage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, out := newTestApp(t, storage.NewMemoryStore())

			err := app.Run(context.Background(), append([]string{"key"}, tt.args...))
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			for _, w := range tt.want {
				assert.Contains(t, out.String(), w)
			}
		})
	}
}

func TestDownload_WritesFile(t *testing.T) {
	store := seed(t, "alice@example.com", "kitten", "txt", "hello notes")
	app, out := newTestApp(t, store)
	path := filepath.Join(t.TempDir(), "notes.txt")

	err := app.Run(context.Background(), []string{"download", "-email", "alice@example.com", "-secret", "kitten-txt", "-out", path})
	require.NoError(t, err)

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "hello notes", string(got))
	assert.Contains(t, out.String(), "Saved "+path+" (11 B)")
}

func TestDownload_DefaultFilename(t *testing.T) {
	store := seed(t, "alice@example.com", "kitten", "txt", "x")
	app, _ := newTestApp(t, store)
	t.Chdir(t.TempDir())

	err := app.Run(context.Background(), []string{"download", "-email", "alice@example.com", "-secret", "kitten-txt"})
	require.NoError(t, err)

	_, err = os.Stat("download.txt")
	assert.NoError(t, err)
}

func TestDownload_PromptsForSecret(t *testing.T) {
	old := readPassword
	defer func() { readPassword = old }()
	readPassword = func(int) ([]byte, error) { return []byte("kitten-txt"), nil }

	store := seed(t, "alice@example.com", "kitten", "txt", "x")
	app, out := newTestApp(t, store)
	path := filepath.Join(t.TempDir(), "out.txt")

	err := app.Run(context.Background(), []string{"download", "-email", "alice@example.com", "-out", path})
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Enter secret to share:")
}

func TestDownload_Errors(t *testing.T) {
	t.Run("wrong email", func(t *testing.T) {
		store := seed(t, "alice@example.com", "kitten", "txt", "x")
		app, out := newTestApp(t, store)

		err := app.Run(context.Background(), []string{"download", "-email", "mallory@example.com", "-secret", "kitten-txt", "-out", filepath.Join(t.TempDir(), "x")})
		assert.ErrorIs(t, err, common.ErrorNotFound)
		assert.Contains(t, out.String(), "file not found")
	})

	t.Run("missing email", func(t *testing.T) {
		app, _ := newTestApp(t, storage.NewMemoryStore())
		err := app.Run(context.Background(), []string{"download", "-secret", "kitten-txt"})
		assert.ErrorIs(t, err, ErrUsage)
	})

	t.Run("storage init failure", func(t *testing.T) {
		app, _ := newTestApp(t, nil)
		openStore = func(ctx context.Context, c *config.Config) (storage.Store, error) {
			return nil, errors.New("no endpoint")
		}
		err := app.Run(context.Background(), []string{"download", "-email", "a@example.com", "-secret", "s-txt"})
		assert.ErrorContains(t, err, "storage init error")
	})
}
