package suggestion

import (
	"context"
	"strings"
)

// LineSummarizer is the built-in summarizer: it proposes one task per
// bullet or action line of the input. It stands in wherever no external
// summarization service is configured.
type LineSummarizer struct{}

var actionPrefixes = []string{"todo:", "task:", "next:", "pendiente:"}

// Summarize scans the text line by line. Bullet lines and lines starting
// with an action prefix become extracted tasks; the first non-empty line
// doubles as the summary.
func (LineSummarizer) Summarize(ctx context.Context, text string) (*Summary, error) {
	out := &Summary{}
	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		if out.Summary == "" {
			out.Summary = line
		}

		if task, ok := actionLine(line); ok {
			out.ExtractedTasks = append(out.ExtractedTasks, task)
		}
	}
	out.NextSteps = append([]string{}, out.ExtractedTasks...)
	return out, nil
}

// actionLine reports whether the line reads as an actionable item and
// returns it with the marker stripped.
func actionLine(line string) (string, bool) {
	lower := strings.ToLower(line)
	for _, prefix := range actionPrefixes {
		if strings.HasPrefix(lower, prefix) {
			return strings.TrimSpace(line[len(prefix):]), true
		}
	}
	for _, marker := range []string{"- [ ]", "-", "*"} {
		if strings.HasPrefix(line, marker+" ") {
			return strings.TrimSpace(line[len(marker):]), true
		}
	}
	return "", false
}
