package player

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	verrors "github.com/five82/vista/internal/errors"
	"github.com/five82/vista/internal/state"
)

func TestParseBaseURL(t *testing.T) {
	tests := []struct {
		in, want string
		wantErr  bool
	}{
		{in: "127.0.0.1:9000", want: "http://127.0.0.1:9000"},
		{in: " http://example.com:1234/path?x=1#frag ", want: "http://example.com:1234"},
		{in: "https://player.local", want: "https://player.local"},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			u, err := parseBaseURL(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, u.String())
		})
	}
}

func TestClient_Fetch(t *testing.T) {
	var gotUA, gotAccept string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		gotAccept = r.Header.Get("Accept")
		switch r.URL.Path {
		case "/api/state":
			_, _ = w.Write([]byte(`{"playing":true,"volume":0.5}`))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	t.Cleanup(cancel)

	p, err := c.Fetch(ctx)
	require.NoError(t, err)
	assert.Equal(t, true, p[state.FieldPlaying])
	assert.Equal(t, 0.5, p[state.FieldVolume])
	assert.Equal(t, defaultUserAgent, gotUA)
	assert.Equal(t, "application/json", gotAccept)
}

func TestClient_FetchErrors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr string
		unknown bool
	}{
		{name: "server error", status: http.StatusInternalServerError, wantErr: "returned status 500"},
		{name: "malformed", status: http.StatusOK, body: `{"playing":`, wantErr: "decode patch"},
		{name: "unknown field", status: http.StatusOK, body: `{"brightness":1}`, unknown: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			t.Cleanup(server.Close)

			c, err := NewClient(server.URL)
			require.NoError(t, err)
			_, err = c.Fetch(context.Background())
			require.Error(t, err)
			if tt.unknown {
				assert.ErrorIs(t, err, verrors.ErrUnknownField)
				return
			}
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestClient_Nil(t *testing.T) {
	var c *Client
	_, err := c.Fetch(context.Background())
	require.Error(t, err)
}

func TestFile_Fetch(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "state.jsonl")
	f := &File{Path: path}

	p, err := f.Fetch(context.Background())
	require.NoError(t, err, "missing file is not an error")
	assert.Empty(t, p)

	content := "{\"playing\":false}\n{\"playing\":true,\"speed\":2}\n\n   \n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	p, err = f.Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, true, p[state.FieldPlaying])
	assert.Equal(t, 2.0, p[state.FieldSpeed])

	require.NoError(t, os.WriteFile(path, []byte("{\"bogus\":1}\n"), 0o644))
	_, err = f.Fetch(context.Background())
	require.ErrorIs(t, err, verrors.ErrUnknownField)
}

func TestFile_FetchCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := (&File{Path: "unused"}).Fetch(ctx)
	require.ErrorIs(t, err, context.Canceled)
}
