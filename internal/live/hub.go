// Package live pushes task subscription snapshots to WebSocket clients.
package live

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/ganot/daybook/internal/domain/task"
	"github.com/ganot/daybook/internal/metrics"
	"github.com/gorilla/websocket"
)

// TaskSubscriber is the slice of the task service the feed needs.
type TaskSubscriber interface {
	Subscribe(ctx context.Context, tenantID string, scope task.Scope) (*task.Subscription, error)
}

// Resolver authenticates the feed's bearer token.
type Resolver interface {
	ResolveTenant(ctx context.Context, token string) (string, error)
}

// Feed serves /ws/tasks: each connection subscribes to one task scope and
// receives the task list as JSON after every in-scope change.
type Feed struct {
	tasks    TaskSubscriber
	resolver Resolver
	logger   *slog.Logger
	upgrader websocket.Upgrader
}

// NewFeed creates a websocket task feed.
func NewFeed(tasks TaskSubscriber, resolver Resolver, logger *slog.Logger) *Feed {
	return &Feed{
		tasks:    tasks,
		resolver: resolver,
		logger:   logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
		},
	}
}

func (f *Feed) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	tenantID, err := f.resolver.ResolveTenant(r.Context(), token)
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	scope := task.OpenGlobalScope()
	if projectID := r.URL.Query().Get("project_id"); projectID != "" {
		scope = task.ProjectScope(projectID)
	}

	conn, err := f.upgrader.Upgrade(w, r, nil)
	if err != nil {
		f.logger.Warn("websocket upgrade failed", "error", err)
		return
	}

	f.serve(r.Context(), conn, tenantID, scope)
}

func (f *Feed) serve(ctx context.Context, conn *websocket.Conn, tenantID string, scope task.Scope) {
	defer conn.Close()

	sub, err := f.tasks.Subscribe(ctx, tenantID, scope)
	if err != nil {
		f.logger.Warn("task subscription failed", "tenant", tenantID, "error", err)
		return
	}
	defer sub.Unsubscribe()

	metrics.LiveClients.Inc()
	defer metrics.LiveClients.Dec()

	// Reader goroutine: surfaces client disconnects.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case tasks, ok := <-sub.C:
			if !ok {
				return
			}
			if err := conn.WriteJSON(tasks); err != nil {
				f.logger.Debug("websocket write failed", "tenant", tenantID, "error", err)
				return
			}
		case <-done:
			return
		case <-ctx.Done():
			return
		}
	}
}
