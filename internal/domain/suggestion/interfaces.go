package suggestion

import (
	"context"

	"github.com/ganot/daybook/internal/domain/journal"
	"github.com/ganot/daybook/internal/domain/task"
)

// Summary is what the summarization service proposes for a block of notes.
type Summary struct {
	Summary        string   `json:"summary"`
	ExtractedTasks []string `json:"extracted_tasks"`
	NextSteps      []string `json:"next_steps"`
}

// Summarizer is the black-box natural-language service proposing candidate
// task lines from free text.
type Summarizer interface {
	Summarize(ctx context.Context, text string) (*Summary, error)
}

// TaskCreator creates tasks from accepted suggestions.
type TaskCreator interface {
	Create(ctx context.Context, tenantID, actorID string, req task.CreateRequest) (*task.Task, error)
}

// EntrySaver persists the journal entry an accepted suggestion came from,
// so accepted tasks never reference a note that was never saved.
type EntrySaver interface {
	Save(ctx context.Context, actorTenant string, entry *journal.Entry) (*journal.SaveResult, error)
}
