package rpc

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"

	"github.com/greetdeck/greetdeck/internal/greeting"
)

// startServer serves g on an in-memory listener and returns a connected client.
func startServer(t *testing.T, g greeting.Greeter, opts ...grpc.ServerOption) (*Client, *bufconn.Listener) {
	t.Helper()

	lis := bufconn.Listen(1 << 20)
	srv := grpc.NewServer(opts...)
	Register(srv, g)
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)

	c, err := Dial("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c, lis
}

func TestClientGreetRoundTrip(t *testing.T) {
	local, err := greeting.NewLocal("")
	require.NoError(t, err)
	c, _ := startServer(t, local)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	got, err := c.Greet(ctx, "John")
	require.NoError(t, err)
	assert.Equal(t, "Hello, John! You've been greeted from Go!", got)

	got, err = c.Greet(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, "Hello, ! You've been greeted from Go!", got)
}

func TestClientGreetBackendError(t *testing.T) {
	c, _ := startServer(t, greeting.GreeterFunc(func(ctx context.Context, name string) (string, error) {
		return "", errors.New("no greetings today")
	}))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := c.Greet(ctx, "John")
	require.Error(t, err)
	assert.Equal(t, codes.Internal, status.Code(err))
	assert.Contains(t, err.Error(), "no greetings today")
}

func TestServerInterceptorSeesGreetMethod(t *testing.T) {
	var seen string
	interceptor := func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		seen = info.FullMethod
		return handler(ctx, req)
	}

	local, err := greeting.NewLocal("Hey {name}")
	require.NoError(t, err)
	c, _ := startServer(t, local, grpc.UnaryInterceptor(interceptor))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	got, err := c.Greet(ctx, "Ann")
	require.NoError(t, err)
	assert.Equal(t, "Hey Ann", got)
	assert.Equal(t, GreetMethod, seen)
}

func TestClientGreetUnreachable(t *testing.T) {
	local, err := greeting.NewLocal("")
	require.NoError(t, err)
	c, lis := startServer(t, local)
	require.NoError(t, lis.Close())

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	_, err = c.Greet(ctx, "John")
	assert.Error(t, err)
}

func TestNewClientDoesNotOwnConnection(t *testing.T) {
	c := NewClient(nil)
	assert.NoError(t, c.Close())
}
