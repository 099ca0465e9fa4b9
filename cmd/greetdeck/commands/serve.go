package commands

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"google.golang.org/grpc"

	"github.com/greetdeck/greetdeck/internal/greeting/rpc"
	"github.com/greetdeck/greetdeck/internal/web"
)

func serveCmd() *cobra.Command {
	var (
		addr     string
		grpcAddr string
		metrics  bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the greeting page to a browser",
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = wire.Config.Server.Addr
			}
			metrics = metrics || wire.Config.Server.Metrics

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx, addr, grpcAddr, metrics)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "HTTP listen address (default from config)")
	cmd.Flags().StringVar(&grpcAddr, "grpc-addr", "", "also serve the greeter over gRPC on this address")
	cmd.Flags().BoolVar(&metrics, "metrics", false, "expose Prometheus metrics at /metrics")
	return cmd
}

// serve runs the browser server, and optionally the gRPC greeter, until ctx
// is done or a listener fails.
func serve(ctx context.Context, addr, grpcAddr string, withMetrics bool) error {
	opts := []web.Option{web.WithLogger(wire.Log)}
	if withMetrics {
		opts = append(opts, web.WithMetrics(wire.MetricsHandler()))
	}
	srv := web.NewServer(addr, wire.Commands, opts...)

	errCh := make(chan error, 2)

	var gs *grpc.Server
	if grpcAddr != "" {
		lis, err := net.Listen("tcp", grpcAddr)
		if err != nil {
			return fmt.Errorf("listen grpc %s: %w", grpcAddr, err)
		}
		gs = grpc.NewServer()
		rpc.Register(gs, wire.Greeter)
		go func() {
			wire.Log.Info(fmt.Sprintf("greeter gRPC listening on %s", lis.Addr()))
			if err := gs.Serve(lis); err != nil {
				errCh <- fmt.Errorf("serve grpc: %w", err)
			}
		}()
	}

	go func() {
		wire.Log.Info(fmt.Sprintf("greeting page on http://%s", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("serve http: %w", err)
		}
	}()

	var runErr error
	select {
	case <-ctx.Done():
		wire.Log.Info("shutting down servers...")
	case runErr = <-errCh:
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if gs != nil {
		gs.GracefulStop()
	}
	if err := srv.Shutdown(shutdownCtx); err != nil && runErr == nil {
		runErr = err
	}
	return runErr
}
