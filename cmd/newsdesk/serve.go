package main

import (
	"context"
	"fmt"
	"time"

	ndhttp "github.com/fwojciec/newsdesk/http"
)

// shutdownTimeout bounds graceful shutdown of the API server.
const shutdownTimeout = 10 * time.Second

// Run executes the serve command. It blocks until the context is
// cancelled.
func (c *ServeCmd) Run(deps *Dependencies) error {
	s := ndhttp.NewServer(deps.Pipeline, deps.Logger)
	s.Addr = deps.Config.Server.Addr
	if c.Addr != "" {
		s.Addr = c.Addr
	}
	if err := s.Open(); err != nil {
		return reportError(deps, err)
	}
	fmt.Fprintf(deps.Stdout, "Listening on %s\n", s.URL())

	<-deps.Ctx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return s.Close(ctx)
}
