package mcp

import (
	"context"
	"log/slog"

	"github.com/ganot/daybook/internal/domain/activity"
	"github.com/ganot/daybook/internal/domain/directory"
	"github.com/ganot/daybook/internal/domain/identity"
	"github.com/ganot/daybook/internal/domain/journal"
	"github.com/ganot/daybook/internal/domain/suggestion"
	"github.com/ganot/daybook/internal/domain/task"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// JournalService defines journal operations needed by MCP.
type JournalService interface {
	Load(ctx context.Context, tenantID, date string) (*journal.Entry, error)
	Save(ctx context.Context, actorTenant string, entry *journal.Entry) (*journal.SaveResult, error)
	LoadMerged(ctx context.Context, role identity.Role, date string, candidateTenants []string) (*journal.Entry, error)
}

// DirectoryService defines project directory operations needed by MCP.
type DirectoryService interface {
	Create(ctx context.Context, tenantID string, req directory.CreateRequest) (*directory.Project, error)
	List(ctx context.Context, actor identity.User, tenantFilter string) ([]directory.Project, error)
}

// TaskService defines task operations needed by MCP.
type TaskService interface {
	Create(ctx context.Context, tenantID, actorID string, req task.CreateRequest) (*task.Task, error)
	UpdateStatus(ctx context.Context, tenantID, taskID string, to task.Status, actorID string) (*task.Task, error)
	ToggleBlock(ctx context.Context, tenantID, taskID string, isBlocking bool, actorID string) (*task.Task, error)
	List(ctx context.Context, tenantID string, scope task.Scope) ([]task.Task, error)
}

// SuggestionService defines suggestion operations needed by MCP. Staged
// suggestion state is scoped to the acting identity.
type SuggestionService interface {
	Propose(ctx context.Context, actor identity.User, text string) (*suggestion.Summary, error)
	Pending(actor identity.User) []string
	Accept(ctx context.Context, actor identity.User, req suggestion.AcceptRequest) (*task.Task, error)
	Dismiss(actor identity.User, text string)
}

// ActivityService defines activity operations needed by MCP.
type ActivityService interface {
	GetRecentActivity(ctx context.Context, tenantID string, opts activity.ListActivityOptions) ([]activity.ActivityEntry, error)
}

// Services contains all domain services needed by MCP.
type Services struct {
	Journal     JournalService
	Directory   DirectoryService
	Tasks       TaskService
	Suggestions SuggestionService
	Activity    ActivityService
}

// Config contains server configuration.
type Config struct {
	Services      Services
	Resolver      IdentityResolver
	AuthEnabled   bool
	TransportMode string // "stdio" or "http"
	Logger        *slog.Logger
}

// NewServer creates and configures an MCP server with all tools and middleware.
func NewServer(cfg Config) *sdkmcp.Server {
	server := sdkmcp.NewServer(&sdkmcp.Implementation{
		Name:    "daybook",
		Version: "0.1.0",
	}, &sdkmcp.ServerOptions{
		Logger: cfg.Logger,
	})

	localAdmin := identity.User{
		ID:       "local",
		TenantID: journal.TenantDefault,
		Role:     identity.RoleTenantAdmin,
	}

	// Stdio mode is local single-user; auth stays off there.
	if cfg.TransportMode == "stdio" || !cfg.AuthEnabled {
		server.AddReceivingMiddleware(noAuthMiddleware(localAdmin))
	} else {
		server.AddReceivingMiddleware(authMiddleware(cfg.Resolver))
	}
	server.AddReceivingMiddleware(trafficLoggingMiddleware(cfg.Logger, "inbound"))
	server.AddSendingMiddleware(trafficLoggingMiddleware(cfg.Logger, "outbound"))

	registerTools(server, cfg.Services)

	return server
}
