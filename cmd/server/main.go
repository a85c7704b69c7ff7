package main

import (
	"context"
	"flag"
	"hash/fnv"
	"log"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"fractal-perlin/internal/noise"
	"fractal-perlin/internal/server"
)

const (
	defaultAddr = ":2222"
	hostKeyPath = "host_key"
)

func main() {
	log.SetFlags(log.Ltime | log.Lshortfile)

	addr := flag.String("addr", defaultAddr, "listen address")
	hostKey := flag.String("hostkey", hostKeyPath, "host key file (generated if missing)")
	seed := flag.Int64("seed", 0, "base seed (0 picks a time based seed, so 0 itself cannot be requested)")
	perUser := flag.Bool("per-user", false, "derive each viewer's seed from their username")
	flag.Parse()

	// Generate host key if it doesn't exist
	if err := server.EnsureHostKey(*hostKey); err != nil {
		log.Fatalf("Host key error: %v", err)
	}

	if *seed == 0 {
		*seed = noise.NewFromTime().Seed()
	}
	base := *seed
	seedFor := func(user string) int64 {
		if !*perUser {
			return base
		}
		h := fnv.New64a()
		h.Write([]byte(user))
		return base ^ int64(h.Sum64())
	}

	listenAddr := *addr
	if port := os.Getenv("PORT"); port != "" {
		listenAddr = ":" + port
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	sshServer := server.NewSSHServer(listenAddr, *hostKey, seedFor)
	g, ctx := errgroup.WithContext(ctx)
	g.Go(sshServer.Start)
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, done := context.WithTimeout(context.Background(), 5*time.Second)
		defer done()
		return sshServer.Shutdown(shutdownCtx)
	})

	_, port, _ := net.SplitHostPort(listenAddr)
	log.Printf("Serving fractal noise (seed %d), connect with: ssh -p %s localhost", base, port)
	if err := g.Wait(); err != nil && err != context.DeadlineExceeded {
		log.Fatalf("SSH server error: %v", err)
	}
	log.Println("Server stopped")
}

