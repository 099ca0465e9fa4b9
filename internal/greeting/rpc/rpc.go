// Package rpc exposes a greeting.Greeter over gRPC and provides a client that
// satisfies greeting.Greeter against a remote process.
//
// The service uses google.protobuf.StringValue for both request and response,
// so no generated stubs are needed.
package rpc

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/greetdeck/greetdeck/internal/greeting"
)

const (
	// ServiceName is the fully qualified gRPC service name.
	ServiceName = "greetdeck.v1.Greeter"
	// GreetMethod is the full method path of the Greet RPC.
	GreetMethod = "/" + ServiceName + "/Greet"
)

// ServiceDesc describes the Greeter service for grpc.Server.RegisterService.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*greeting.Greeter)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "Greet",
			Handler:    greetHandler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "greetdeck/v1/greeter.proto",
}

// Register serves g on s.
func Register(s *grpc.Server, g greeting.Greeter) {
	s.RegisterService(&ServiceDesc, g)
}

func greetHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(wrapperspb.StringValue)
	if err := dec(in); err != nil {
		return nil, err
	}

	handler := func(ctx context.Context, req any) (any, error) {
		return greet(ctx, srv.(greeting.Greeter), req.(*wrapperspb.StringValue))
	}
	if interceptor == nil {
		return handler(ctx, in)
	}

	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: GreetMethod,
	}
	return interceptor(ctx, in, info, handler)
}

func greet(ctx context.Context, g greeting.Greeter, in *wrapperspb.StringValue) (*wrapperspb.StringValue, error) {
	message, err := g.Greet(ctx, in.GetValue())
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, status.FromContextError(err).Err()
		}
		return nil, status.Error(codes.Internal, err.Error())
	}
	return wrapperspb.String(message), nil
}

// Client calls a remote Greeter service.
type Client struct {
	conn grpc.ClientConnInterface
	cc   *grpc.ClientConn // nil when built with NewClient
}

// NewClient wraps an existing connection. The caller keeps ownership of conn.
func NewClient(conn grpc.ClientConnInterface) *Client {
	return &Client{conn: conn}
}

// Dial creates a client for target. Without options the connection is
// plaintext.
func Dial(target string, opts ...grpc.DialOption) (*Client, error) {
	if len(opts) == 0 {
		opts = []grpc.DialOption{grpc.WithTransportCredentials(insecure.NewCredentials())}
	}

	cc, err := grpc.NewClient(target, opts...)
	if err != nil {
		return nil, fmt.Errorf("dial greeter %s: %w", target, err)
	}
	return &Client{conn: cc, cc: cc}, nil
}

// Greet implements greeting.Greeter.
func (c *Client) Greet(ctx context.Context, name string) (string, error) {
	out := new(wrapperspb.StringValue)
	if err := c.conn.Invoke(ctx, GreetMethod, wrapperspb.String(name), out); err != nil {
		return "", fmt.Errorf("greet rpc: %w", err)
	}
	return out.GetValue(), nil
}

// Close releases the connection opened by Dial.
func (c *Client) Close() error {
	if c.cc == nil {
		return nil
	}
	return c.cc.Close()
}
