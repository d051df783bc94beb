package server

import "context"

type (
	serverKey struct{}
)

func withServer(ctx context.Context, server *Server) context.Context {
	return context.WithValue(ctx, serverKey{}, server)
}

func serverFromContext(ctx context.Context) *Server {
	value := ctx.Value(serverKey{})
	if value == nil {
		return nil
	}
	return value.(*Server)
}
