package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/ganot/daybook/internal/domain/identity"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

type contextKey int

const userKey contextKey = iota

// getUser extracts the resolved identity from context.
func getUser(ctx context.Context) identity.User {
	u, _ := ctx.Value(userKey).(identity.User)
	return u
}

// IdentityResolver resolves a session identity from a bearer token.
type IdentityResolver interface {
	ResolveIdentity(ctx context.Context, token string) (identity.User, error)
}

// authMiddleware implements bearer token authentication as MCP middleware.
func authMiddleware(resolver IdentityResolver) sdkmcp.Middleware {
	return func(next sdkmcp.MethodHandler) sdkmcp.MethodHandler {
		return func(ctx context.Context, method string, req sdkmcp.Request) (sdkmcp.Result, error) {
			// Skip auth for protocol methods
			if method == "initialize" || method == "ping" {
				return next(ctx, method, req)
			}

			extra := req.GetExtra()
			if extra == nil || extra.Header == nil {
				return nil, fmt.Errorf("unauthorized: missing headers")
			}

			auth := extra.Header.Get("Authorization")
			token := strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
			if token == "" {
				return nil, fmt.Errorf("unauthorized: missing bearer token")
			}

			user, err := resolver.ResolveIdentity(ctx, token)
			if err != nil {
				return nil, fmt.Errorf("unauthorized: %w", err)
			}
			if user.TenantID == "" {
				return nil, fmt.Errorf("unauthorized: invalid bearer token")
			}

			// A superadmin may masquerade as one tenant for the request.
			// Everyone else is pinned to their own tenant.
			if masq := extra.Header.Get("X-Daybook-Tenant"); masq != "" {
				if !user.Role.AtLeast(identity.RoleSuperadmin) {
					return nil, fmt.Errorf("unauthorized: tenant masquerade requires superadmin")
				}
				user.TenantID = masq
			}

			ctx = context.WithValue(ctx, userKey, user)
			return next(ctx, method, req)
		}
	}
}

// noAuthMiddleware injects a default identity when auth is disabled. The
// default identity is a tenant admin of the default tenant, mirroring
// single-user local use.
func noAuthMiddleware(user identity.User) sdkmcp.Middleware {
	return func(next sdkmcp.MethodHandler) sdkmcp.MethodHandler {
		return func(ctx context.Context, method string, req sdkmcp.Request) (sdkmcp.Result, error) {
			ctx = context.WithValue(ctx, userKey, user)
			return next(ctx, method, req)
		}
	}
}
