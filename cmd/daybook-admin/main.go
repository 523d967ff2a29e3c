// Command daybook-admin performs operator tasks against the database
// directly: issuing API keys, seeding projects, running migrations, and the
// administrative task reopen that the normal workflow forbids.
package main

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ganot/daybook/internal/config"
	"github.com/ganot/daybook/internal/domain/activity"
	"github.com/ganot/daybook/internal/domain/directory"
	"github.com/ganot/daybook/internal/domain/identity"
	"github.com/ganot/daybook/internal/domain/task"
	"github.com/ganot/daybook/internal/sqlite"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		color.Red("%v", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "daybook-admin",
		Short:         "Operator tooling for the daybook server",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(migrateCmd())
	root.AddCommand(apikeyCmd())
	root.AddCommand(projectCmd())
	root.AddCommand(taskCmd())

	return root
}

func openDB() (*sqlite.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	db, err := sqlite.New(cfg.DB.Path)
	if err != nil {
		return nil, fmt.Errorf("open database %s: %w", cfg.DB.Path, err)
	}
	return db, nil
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply schema migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openDB()
			if err != nil {
				return err
			}
			defer db.Close()

			if err := db.RunMigrations(); err != nil {
				return err
			}
			color.Green("migrations applied")
			return nil
		},
	}
}

func apikeyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "apikey",
		Short: "Manage API keys",
	}

	var (
		tenantID    string
		userID      string
		roleName    string
		assigned    []string
		description string
	)

	create := &cobra.Command{
		Use:   "create",
		Short: "Issue a new API key; the plaintext is printed once",
		RunE: func(cmd *cobra.Command, args []string) error {
			role, err := identity.ParseRole(roleName)
			if err != nil {
				return err
			}
			if strings.TrimSpace(tenantID) == "" {
				return fmt.Errorf("--tenant is required")
			}

			db, err := openDB()
			if err != nil {
				return err
			}
			defer db.Close()

			token, err := newToken()
			if err != nil {
				return err
			}

			user := identity.User{
				ID:                 userID,
				TenantID:           tenantID,
				Role:               role,
				AssignedProjectIDs: assigned,
			}
			keys := sqlite.NewAPIKeyRepository(db)
			if err := keys.Create(context.Background(), hashToken(token), user, description); err != nil {
				return err
			}

			color.Green("api key created for tenant %s (%s)", tenantID, role)
			fmt.Println(token)
			return nil
		},
	}
	create.Flags().StringVar(&tenantID, "tenant", "", "tenant the key belongs to")
	create.Flags().StringVar(&userID, "user", "", "user id recorded on the key")
	create.Flags().StringVar(&roleName, "role", "user", "role: user, pm, admin, superadmin")
	create.Flags().StringSliceVar(&assigned, "project", nil, "assigned project id (repeatable)")
	create.Flags().StringVar(&description, "description", "", "free-form key description")

	list := &cobra.Command{
		Use:   "list",
		Short: "List issued API keys (hashes only)",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openDB()
			if err != nil {
				return err
			}
			defer db.Close()

			rows, err := db.Query(`SELECT key_hash, tenant_id, user_id, role, description FROM api_keys ORDER BY created_at ASC`)
			if err != nil {
				return err
			}
			defer rows.Close()

			for rows.Next() {
				var hash, tenant, user, role string
				var desc sql.NullString
				if err := rows.Scan(&hash, &tenant, &user, &role, &desc); err != nil {
					return err
				}
				fmt.Printf("%s\t%s\t%s\t%s\t%s\n", hash[:12], tenant, user, role, desc.String)
			}
			return rows.Err()
		},
	}

	cmd.AddCommand(create, list)
	return cmd
}

func projectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Manage the project directory",
	}

	var (
		tenantID  string
		projectID string
		colorHex  string
	)

	create := &cobra.Command{
		Use:   "create <name>",
		Short: "Add a project to the directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(tenantID) == "" {
				return fmt.Errorf("--tenant is required")
			}

			db, err := openDB()
			if err != nil {
				return err
			}
			defer db.Close()

			svc := directory.NewService(sqlite.NewProjectRepository(db), discardLogger())
			proj, err := svc.Create(context.Background(), tenantID, directory.CreateRequest{
				ID:    projectID,
				Name:  args[0],
				Color: colorHex,
			})
			if err != nil {
				return err
			}
			color.Green("project %s created (id %s)", proj.Name, proj.ID)
			return nil
		},
	}
	create.Flags().StringVar(&tenantID, "tenant", "", "owning tenant")
	create.Flags().StringVar(&projectID, "id", "", "explicit project id (default: generated)")
	create.Flags().StringVar(&colorHex, "color", "", "display color")

	list := &cobra.Command{
		Use:   "list",
		Short: "List the directory for a tenant, or every tenant",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openDB()
			if err != nil {
				return err
			}
			defer db.Close()

			filter := tenantID
			if filter == "" {
				filter = directory.TenantAll
			}
			projects, err := sqlite.NewProjectRepository(db).List(context.Background(), filter)
			if err != nil {
				return err
			}
			for _, p := range projects {
				fmt.Printf("%s\t%s\t%s\n", p.TenantID, p.ID, p.Name)
			}
			return nil
		},
	}
	list.Flags().StringVar(&tenantID, "tenant", "", "tenant filter (default: all tenants)")

	cmd.AddCommand(create, list)
	return cmd
}

func taskCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Administrative task operations",
	}

	var tenantID string

	reopen := &cobra.Command{
		Use:   "reopen <task-id>",
		Short: "Return a completed task to pending",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(tenantID) == "" {
				return fmt.Errorf("--tenant is required")
			}

			db, err := openDB()
			if err != nil {
				return err
			}
			defer db.Close()

			activitySvc := activity.NewService(sqlite.NewActivityRepository(db), discardLogger())
			svc := task.NewService(sqlite.NewTaskRepository(db), activitySvc, discardLogger())
			t, err := svc.Reopen(context.Background(), tenantID, args[0], "admin-cli")
			if err != nil {
				return err
			}
			color.Green("task #%d reopened", t.FriendlyID)
			return nil
		},
	}
	reopen.Flags().StringVar(&tenantID, "tenant", "", "tenant owning the task")

	cmd.AddCommand(reopen)
	return cmd
}

func newToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}
	return "dbk_" + hex.EncodeToString(buf), nil
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
