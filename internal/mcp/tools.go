package mcp

import (
	"context"
	"time"

	"github.com/ganot/daybook/internal/domain/activity"
	"github.com/ganot/daybook/internal/domain/directory"
	"github.com/ganot/daybook/internal/domain/journal"
	"github.com/ganot/daybook/internal/domain/suggestion"
	"github.com/ganot/daybook/internal/domain/task"
	"github.com/ganot/daybook/internal/domain/visibility"
	"github.com/ganot/daybook/internal/metrics"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// registerTools wires every tool onto the SDK server.
func registerTools(server *sdkmcp.Server, svcs Services) {
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_entry",
		Description: "Load the journal entry for a date, with the projects visible to the caller",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in GetEntryParams) (*sdkmcp.CallToolResult, *EntryResponse, error) {
		user := getUser(ctx)
		entry, err := svcs.Journal.Load(ctx, user.TenantID, in.Date)
		if err != nil {
			metrics.EntryLoads.WithLabelValues("error").Inc()
			return nil, nil, wrapErr(err)
		}
		metrics.EntryLoads.WithLabelValues("ok").Inc()

		projects, err := svcs.Directory.List(ctx, user, user.TenantID)
		if err != nil {
			return nil, nil, wrapErr(err)
		}

		return nil, &EntryResponse{
			Entry:           entry,
			VisibleProjects: visibility.VisibleProjects(entry, user, projects),
		}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_merged_entry",
		Description: "Load the cross-tenant merged journal entry for a date (superadmin only)",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in GetMergedEntryParams) (*sdkmcp.CallToolResult, *EntryResponse, error) {
		user := getUser(ctx)

		tenants := in.TenantIDs
		if len(tenants) == 0 {
			projects, err := svcs.Directory.List(ctx, user, directory.TenantAll)
			if err != nil {
				return nil, nil, wrapErr(err)
			}
			tenants = tenantsOf(projects)
		}

		entry, err := svcs.Journal.LoadMerged(ctx, user.Role, in.Date, tenants)
		if err != nil {
			metrics.EntryLoads.WithLabelValues("error").Inc()
			return nil, nil, wrapErr(err)
		}
		metrics.EntryLoads.WithLabelValues("ok").Inc()

		return nil, &EntryResponse{Entry: entry, VisibleProjects: entry.Projects}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "save_entry",
		Description: "Save a journal entry; projects are partitioned to their owning tenants",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in SaveEntryParams) (*sdkmcp.CallToolResult, *SaveEntryResponse, error) {
		user := getUser(ctx)

		start := time.Now()
		result, err := svcs.Journal.Save(ctx, user.TenantID, &in.Entry)
		metrics.SaveDuration.Observe(time.Since(start).Seconds())
		if err != nil {
			if result != nil {
				metrics.EntrySaves.WithLabelValues("partial").Inc()
			} else {
				metrics.EntrySaves.WithLabelValues("error").Inc()
			}
			return nil, nil, wrapErr(err)
		}
		metrics.EntrySaves.WithLabelValues("ok").Inc()

		resp := &SaveEntryResponse{}
		for _, slice := range result.Slices {
			resp.SavedTenants = append(resp.SavedTenants, slice.TenantID)
		}
		return nil, resp, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "update_note_block",
		Description: "Update one note block of a project section and save the entry",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in UpdateBlockParams) (*sdkmcp.CallToolResult, *EntryResponse, error) {
		user := getUser(ctx)

		entry, err := svcs.Journal.Load(ctx, user.TenantID, in.Date)
		if err != nil {
			return nil, nil, wrapErr(err)
		}
		if in.ProjectIndex < 0 || in.ProjectIndex >= len(entry.Projects) {
			return nil, nil, wrapErr(journal.ErrInvalidInput)
		}

		entry.Projects[in.ProjectIndex] = journal.UpdateBlock(
			entry.Projects[in.ProjectIndex], in.BlockID, journal.BlockField(in.Field), in.Value)

		if _, err := svcs.Journal.Save(ctx, user.TenantID, entry); err != nil {
			return nil, nil, wrapErr(err)
		}
		return nil, &EntryResponse{Entry: entry, VisibleProjects: entry.Projects}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "create_project",
		Description: "Add a project to the directory",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in CreateProjectParams) (*sdkmcp.CallToolResult, *directory.Project, error) {
		user := getUser(ctx)
		proj, err := svcs.Directory.Create(ctx, user.TenantID, directory.CreateRequest{
			ID:    in.ID,
			Name:  in.Name,
			Color: in.Color,
		})
		if err != nil {
			return nil, nil, wrapErr(err)
		}
		return nil, proj, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_projects",
		Description: "List the project directory; tenant_filter ALL is superadmin only",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in ListProjectsParams) (*sdkmcp.CallToolResult, []directory.Project, error) {
		user := getUser(ctx)
		projects, err := svcs.Directory.List(ctx, user, in.TenantFilter)
		if err != nil {
			return nil, nil, wrapErr(err)
		}
		return nil, projects, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "create_task",
		Description: "Create a task in the caller's tenant",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in CreateTaskParams) (*sdkmcp.CallToolResult, *task.Task, error) {
		user := getUser(ctx)

		entryID := ""
		if in.EntryDate != "" {
			entryID = journal.EntryID(user.TenantID, in.EntryDate)
		}

		t, err := svcs.Tasks.Create(ctx, user.TenantID, user.ID, task.CreateRequest{
			ProjectID:   in.ProjectID,
			Title:       in.Title,
			Description: in.Description,
			IsBlocking:  in.IsBlocking,
			AssignedTo:  in.AssignedTo,
			EntryID:     entryID,
			EndDate:     in.EndDate,
		})
		if err != nil {
			return nil, nil, wrapErr(err)
		}
		metrics.TaskMutations.WithLabelValues("create").Inc()
		return nil, t, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "update_task_status",
		Description: "Move a task through its workflow; same-status requests are no-ops",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in UpdateTaskStatusParams) (*sdkmcp.CallToolResult, *task.Task, error) {
		user := getUser(ctx)
		t, err := svcs.Tasks.UpdateStatus(ctx, user.TenantID, in.ID, in.Status, user.ID)
		if err != nil {
			return nil, nil, wrapErr(err)
		}
		metrics.TaskMutations.WithLabelValues("status").Inc()
		return nil, t, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "toggle_task_block",
		Description: "Set or clear a task's blocking risk flag",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in ToggleTaskBlockParams) (*sdkmcp.CallToolResult, *task.Task, error) {
		user := getUser(ctx)
		t, err := svcs.Tasks.ToggleBlock(ctx, user.TenantID, in.ID, in.IsBlocking, user.ID)
		if err != nil {
			return nil, nil, wrapErr(err)
		}
		metrics.TaskMutations.WithLabelValues("block").Inc()
		return nil, t, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_tasks",
		Description: "List tasks for a project tab, or the general view narrowed to the day's entry",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in ListTasksParams) (*sdkmcp.CallToolResult, *TaskListResponse, error) {
		user := getUser(ctx)

		if in.ProjectID != "" {
			tasks, err := svcs.Tasks.List(ctx, user.TenantID, task.ProjectScope(in.ProjectID))
			if err != nil {
				return nil, nil, wrapErr(err)
			}
			visible := visibility.VisibleTasks(
				visibility.Tab{Kind: visibility.TabProject, ProjectID: in.ProjectID},
				tasks, nil, user, nil)
			return nil, &TaskListResponse{Tasks: taskViews(visible, time.Now())}, nil
		}

		date := in.Date
		if date == "" {
			date = time.Now().Format("2006-01-02")
		}
		entry, err := svcs.Journal.Load(ctx, user.TenantID, date)
		if err != nil {
			return nil, nil, wrapErr(err)
		}
		tasks, err := svcs.Tasks.List(ctx, user.TenantID, task.OpenGlobalScope())
		if err != nil {
			return nil, nil, wrapErr(err)
		}
		projects, err := svcs.Directory.List(ctx, user, user.TenantID)
		if err != nil {
			return nil, nil, wrapErr(err)
		}

		visible := visibility.VisibleTasks(
			visibility.Tab{Kind: visibility.TabGeneral},
			tasks, entry, user, projects)
		return nil, &TaskListResponse{Tasks: taskViews(visible, time.Now())}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "summarize_notes",
		Description: "Run the summarizer over free text and stage the proposed task lines",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in SummarizeParams) (*sdkmcp.CallToolResult, *SuggestionListResponse, error) {
		user := getUser(ctx)
		summary, err := svcs.Suggestions.Propose(ctx, user, in.Text)
		if err != nil {
			return nil, nil, wrapErr(err)
		}
		return nil, &SuggestionListResponse{Summary: summary, Pending: svcs.Suggestions.Pending(user)}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "accept_suggestion",
		Description: "Create a task from a staged suggestion line",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in AcceptSuggestionParams) (*sdkmcp.CallToolResult, *task.Task, error) {
		user := getUser(ctx)

		var entry *journal.Entry
		if in.EntryDate != "" {
			var err error
			entry, err = svcs.Journal.Load(ctx, user.TenantID, in.EntryDate)
			if err != nil {
				return nil, nil, wrapErr(err)
			}
		}

		t, err := svcs.Suggestions.Accept(ctx, user, suggestion.AcceptRequest{
			Text:       in.Text,
			IsBlocking: in.IsBlocking,
			ProjectID:  in.ProjectID,
			Entry:      entry,
		})
		if err != nil {
			return nil, nil, wrapErr(err)
		}
		metrics.TaskMutations.WithLabelValues("create").Inc()
		return nil, t, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "dismiss_suggestion",
		Description: "Drop a staged suggestion line without creating a task",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in DismissSuggestionParams) (*sdkmcp.CallToolResult, *SuggestionListResponse, error) {
		user := getUser(ctx)
		svcs.Suggestions.Dismiss(user, in.Text)
		return nil, &SuggestionListResponse{Pending: svcs.Suggestions.Pending(user)}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "recent_activity",
		Description: "List recent activity for the caller's tenant",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in RecentActivityParams) (*sdkmcp.CallToolResult, *ActivityListResponse, error) {
		user := getUser(ctx)
		entries, err := svcs.Activity.GetRecentActivity(ctx, user.TenantID, activity.ListActivityOptions{
			ProjectID: in.ProjectID,
			Limit:     in.Limit,
		})
		if err != nil {
			return nil, nil, wrapErr(err)
		}
		return nil, &ActivityListResponse{Entries: entries}, nil
	})
}

func tenantsOf(projects []directory.Project) []string {
	seen := map[string]bool{}
	var out []string
	for _, p := range projects {
		if !seen[p.TenantID] {
			seen[p.TenantID] = true
			out = append(out, p.TenantID)
		}
	}
	return out
}
