package suggestion

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/ganot/daybook/internal/domain/identity"
	"github.com/ganot/daybook/internal/domain/journal"
	"github.com/ganot/daybook/internal/domain/task"
)

// Ingestor turns accepted suggestion lines into tasks. Staged lines are
// ephemeral session-local state, keyed by the acting identity so one user's
// note lines are never visible to, or consumed by, anyone else; nothing here
// is persisted except the tasks themselves and the journal save an
// acceptance triggers.
type Ingestor struct {
	summarizer Summarizer
	tasks      TaskCreator
	entries    EntrySaver
	logger     *slog.Logger

	mu       sync.Mutex
	sessions map[string]*sessionState
}

// sessionState is one identity's staged lines and acceptance history.
type sessionState struct {
	pending  []string
	accepted map[string]bool
}

// NewIngestor creates a new suggestion ingestor.
func NewIngestor(summarizer Summarizer, tasks TaskCreator, entries EntrySaver, logger *slog.Logger) *Ingestor {
	return &Ingestor{
		summarizer: summarizer,
		tasks:      tasks,
		entries:    entries,
		logger:     logger,
		sessions:   map[string]*sessionState{},
	}
}

func sessionKey(actor identity.User) string {
	return actor.TenantID + "\x00" + actor.ID
}

// stateLocked returns the actor's session state, creating it on first use.
// Callers must hold mu.
func (g *Ingestor) stateLocked(actor identity.User) *sessionState {
	key := sessionKey(actor)
	st, ok := g.sessions[key]
	if !ok {
		st = &sessionState{accepted: map[string]bool{}}
		g.sessions[key] = st
	}
	return st
}

// Propose runs the summarizer over free text and replaces the actor's
// pending list with the proposed task lines.
func (g *Ingestor) Propose(ctx context.Context, actor identity.User, text string) (*Summary, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrInvalidInput
	}

	summary, err := g.summarizer.Summarize(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("summarizing notes: %w", err)
	}

	g.mu.Lock()
	g.stateLocked(actor).pending = append([]string{}, summary.ExtractedTasks...)
	g.mu.Unlock()

	return summary, nil
}

// Pending returns the actor's current suggestion lines.
func (g *Ingestor) Pending(actor identity.User) []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]string{}, g.stateLocked(actor).pending...)
}

// AcceptRequest carries everything an acceptance needs.
type AcceptRequest struct {
	Text       string
	IsBlocking bool
	ProjectID  string
	// Entry is the journal entry currently on screen; it is saved after
	// the task is created so the task's origin note is durable.
	Entry *journal.Entry
}

// Accept creates exactly one task from a suggestion line. The task is
// attributed to the acting user's tenant, never the tenant owning the
// active project: users only author data in their own namespace even while
// viewing shared projects. Deduplication is per identity; another user
// accepting the same words is a distinct suggestion.
func (g *Ingestor) Accept(ctx context.Context, actor identity.User, req AcceptRequest) (*task.Task, error) {
	text := strings.TrimSpace(req.Text)
	if text == "" {
		return nil, ErrInvalidInput
	}

	g.mu.Lock()
	if g.stateLocked(actor).accepted[text] {
		g.mu.Unlock()
		return nil, ErrAlreadyAccepted
	}
	g.mu.Unlock()

	entryID := ""
	if req.Entry != nil {
		entryID = journal.EntryID(actor.TenantID, req.Entry.Date)
	}

	t, err := g.tasks.Create(ctx, actor.TenantID, actor.ID, task.CreateRequest{
		ProjectID:  req.ProjectID,
		Title:      text,
		IsBlocking: req.IsBlocking,
		EntryID:    entryID,
	})
	if err != nil {
		return nil, fmt.Errorf("creating task from suggestion: %w", err)
	}

	g.mu.Lock()
	st := g.stateLocked(actor)
	st.accepted[text] = true
	st.removeLocked(text)
	g.mu.Unlock()

	if req.Entry != nil {
		if _, err := g.entries.Save(ctx, actor.TenantID, req.Entry); err != nil {
			// The task exists either way; surface the save failure so the
			// caller keeps its unsaved-changes indicator asserted.
			return t, fmt.Errorf("saving originating entry: %w", err)
		}
	}

	return t, nil
}

// Dismiss removes one of the actor's suggestion lines without creating a
// task.
func (g *Ingestor) Dismiss(actor identity.User, text string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.stateLocked(actor).removeLocked(strings.TrimSpace(text))
}

func (st *sessionState) removeLocked(text string) {
	kept := st.pending[:0]
	for _, line := range st.pending {
		if line != text {
			kept = append(kept, line)
		}
	}
	st.pending = kept
}
