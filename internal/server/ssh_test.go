package server

import (
	"bytes"
	"context"
	"net"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gossh "golang.org/x/crypto/ssh"

	"fractal-perlin/internal/render"
)

// syncBuffer collects session output written from the client's copy goroutine.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

var ansiSeq = regexp.MustCompile(`\x1b\[[0-9;?]*[A-Za-z]`)

// visible drops escape sequences so HUD text reads contiguously.
func visible(s string) string {
	return ansiSeq.ReplaceAllString(s, "")
}

func startServer(t *testing.T, seedFor SeedFunc) string {
	t.Helper()
	keyPath := filepath.Join(t.TempDir(), "host_key")
	require.NoError(t, EnsureHostKey(keyPath))

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	srv := NewSSHServer(ln.Addr().String(), keyPath, seedFor)
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ln) }()

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		srv.Shutdown(ctx)
		assert.NoError(t, <-done)
	})
	return ln.Addr().String()
}

func dial(t *testing.T, addr, user string) *gossh.Client {
	t.Helper()
	client, err := gossh.Dial("tcp", addr, &gossh.ClientConfig{
		User:            user,
		HostKeyCallback: gossh.InsecureIgnoreHostKey(),
		Timeout:         5 * time.Second,
	})
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })
	return client
}

func TestEnsureHostKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "key")
	require.NoError(t, EnsureHostKey(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	_, err = gossh.ParsePrivateKey(data)
	require.NoError(t, err)

	// existing keys are left alone
	require.NoError(t, EnsureHostKey(path))
	again, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, data, again)
}

func TestSessionRequiresPTY(t *testing.T) {
	addr := startServer(t, func(string) int64 { return 1 })
	client := dial(t, addr, "alice")

	sess, err := client.NewSession()
	require.NoError(t, err)
	defer sess.Close()

	out, _ := sess.Output("")
	assert.Contains(t, string(out), "PTY required")
}

func TestSessionRendersAndQuits(t *testing.T) {
	var gotUser string
	var mu sync.Mutex
	addr := startServer(t, func(user string) int64 {
		mu.Lock()
		gotUser = user
		mu.Unlock()
		return 42
	})
	client := dial(t, addr, "bob")

	sess, err := client.NewSession()
	require.NoError(t, err)
	defer sess.Close()

	require.NoError(t, sess.RequestPty("xterm-256color", 8, 24, gossh.TerminalModes{}))
	stdin, err := sess.StdinPipe()
	require.NoError(t, err)
	out := &syncBuffer{}
	sess.Stdout = out
	require.NoError(t, sess.Shell())

	require.Eventually(t, func() bool {
		return strings.Contains(visible(out.String()), "seed 42")
	}, 5*time.Second, 20*time.Millisecond)
	assert.Contains(t, out.String(), string(render.HalfBlock))
	assert.Contains(t, out.String(), render.EnableAltScreen())

	mu.Lock()
	assert.Equal(t, "bob", gotUser)
	mu.Unlock()

	// reseed only redraws the changed seed digit
	_, err = stdin.Write([]byte("r"))
	require.NoError(t, err)
	require.Eventually(t, func() bool {
		text := visible(out.String())
		i := strings.Index(text, "seed 42")
		return strings.Contains(text[i+len("seed 42"):], "3")
	}, 5*time.Second, 20*time.Millisecond)

	_, err = stdin.Write([]byte("q"))
	require.NoError(t, err)

	waitErr := make(chan error, 1)
	go func() { waitErr <- sess.Wait() }()
	select {
	case <-waitErr:
	case <-time.After(5 * time.Second):
		t.Fatal("session did not end after quit")
	}
	assert.Contains(t, out.String(), render.DisableAltScreen())
}
