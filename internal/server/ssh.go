package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net"

	"github.com/gliderlabs/ssh"

	"fractal-perlin/internal/preview"
	"fractal-perlin/internal/render"
)

// SeedFunc picks the starting seed for a new session.
type SeedFunc func(user string) int64

// SSHServer serves an interactive noise explorer to SSH clients.
type SSHServer struct {
	addr    string
	hostKey string
	seedFor SeedFunc
	srv     *ssh.Server
}

// NewSSHServer creates a new SSH server bound to the given address.
func NewSSHServer(addr string, hostKey string, seedFor SeedFunc) *SSHServer {
	s := &SSHServer{
		addr:    addr,
		hostKey: hostKey,
		seedFor: seedFor,
	}
	s.srv = &ssh.Server{
		Addr: addr,
		Handler: func(sess ssh.Session) {
			s.handleSession(sess)
		},
	}
	return s
}

// Start begins listening for SSH connections. It returns nil after Shutdown.
func (s *SSHServer) Start() error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.addr, err)
	}
	return s.Serve(ln)
}

// Serve accepts SSH connections on ln until Shutdown.
func (s *SSHServer) Serve(ln net.Listener) error {
	if err := s.srv.SetOption(ssh.HostKeyFile(s.hostKey)); err != nil {
		ln.Close()
		return fmt.Errorf("set host key: %w", err)
	}

	log.Printf("SSH server listening on %s", ln.Addr())
	if err := s.srv.Serve(ln); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting sessions and waits for open ones until ctx ends.
func (s *SSHServer) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}

type event struct {
	actions []preview.Action
	win     *ssh.Window
	closed  bool
}

func (s *SSHServer) handleSession(sess ssh.Session) {
	// Require PTY
	ptyReq, winCh, ok := sess.Pty()
	if !ok {
		fmt.Fprintln(sess, "Error: PTY required. Use: ssh -t ...")
		return
	}

	username := sess.User()
	if username == "" {
		username = "Anonymous"
	}

	view := preview.NewView(s.seedFor(username))
	log.Printf("Viewer connected: %s (seed %d)", username, view.Generator().Seed())
	defer log.Printf("Viewer disconnected: %s", username)

	termW := ptyReq.Window.Width
	termH := ptyReq.Window.Height
	engine := render.NewEngine(termW, termH)

	io.WriteString(sess, render.EnableAltScreen())
	io.WriteString(sess, render.HideCursor())
	io.WriteString(sess, render.ClearScreen())
	defer func() {
		io.WriteString(sess, render.ShowCursor())
		io.WriteString(sess, render.DisableAltScreen())
	}()

	ctx := sess.Context()
	events := make(chan event, 16)

	// Goroutine: read input
	go func() {
		buf := make([]byte, 64)
		for {
			n, err := sess.Read(buf)
			if err != nil {
				select {
				case events <- event{closed: true}:
				case <-ctx.Done():
				}
				return
			}
			select {
			case events <- event{actions: preview.ParseInput(buf[:n])}:
			case <-ctx.Done():
				return
			}
		}
	}()

	// Goroutine: forward window resizes
	go func() {
		for win := range winCh {
			select {
			case events <- event{win: &win}:
			case <-ctx.Done():
				return
			}
		}
	}()

	draw := func() {
		w, h := render.CanvasSize(termW, termH)
		out := engine.Render(view.Texture(w, h), view.HUD(), termW, termH)
		if len(out) > 0 {
			io.WriteString(sess, out)
		}
	}
	draw()

	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-events:
			if ev.closed {
				return
			}
			dirty := false
			if ev.win != nil {
				termW, termH = ev.win.Width, ev.win.Height
				dirty = true
			}
			for _, a := range ev.actions {
				if a == preview.ActionQuit {
					return
				}
				if view.Apply(a) {
					dirty = true
				}
			}
			if dirty {
				draw()
			}
		}
	}
}
