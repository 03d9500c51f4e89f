package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"taskdeck/internal/api"
	"taskdeck/internal/format"
	"taskdeck/internal/session"
	"taskdeck/internal/state"
	"taskdeck/internal/tui"

	"github.com/spf13/cobra"
)

type App struct {
	APIURL     string
	PrettyJSON bool
	Format     string
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "taskdeck",
		Short:        "Task manager client (CLI + TUI)",
		SilenceUsage:  true,
		SilenceErrors: true,
		Example: strings.TrimSpace(`
  # Start the interactive TUI
  taskdeck

  # Scriptable commands
  taskdeck login --username alice
  taskdeck tasks list --search report --sort dueDate

  # Direct task lookup (shortcut for: taskdeck tasks show <id>)
  taskdeck 17
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			if cmd.HasSubCommands() && len(args) == 0 {
				return runTUI(app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().StringVar(&app.APIURL, "api", envOr("TASKDECK_API", ""), "Task server URL (default: config.json apiUrl, else "+state.DefaultAPIURL+")")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON output")
	cmd.PersistentFlags().StringVar(&app.Format, "format", envOr("TASKDECK_FORMAT", "json"), "Output format (json)")

	cmd.AddCommand(newLoginCmd(app))
	cmd.AddCommand(newLogoutCmd(app))
	cmd.AddCommand(newWhoamiCmd(app))
	cmd.AddCommand(newTasksCmd(app))
	cmd.AddCommand(newConfigCmd(app))

	return cmd
}

// env holds the wired-up client pieces a command needs.
type env struct {
	kv      *state.KV
	session *session.Store
	client  *api.Client
}

func (e *env) Close() {
	_ = e.kv.Close()
}

func openEnv(ctx context.Context, app *App) (*env, error) {
	dir, err := state.ConfigDir()
	if err != nil {
		return nil, err
	}
	kv, err := state.OpenKV(ctx, dir)
	if err != nil {
		return nil, err
	}
	sess := session.NewStore(kv)
	if err := sess.Load(ctx); err != nil {
		_ = kv.Close()
		return nil, err
	}
	apiURL, err := resolveAPIURL(app)
	if err != nil {
		_ = kv.Close()
		return nil, err
	}
	return &env{
		kv:      kv,
		session: sess,
		client:  api.NewClient(apiURL, sess),
	}, nil
}

// resolveAPIURL picks the server URL: --api / TASKDECK_API, then config.json,
// then the development default.
func resolveAPIURL(app *App) (string, error) {
	if v := strings.TrimSpace(app.APIURL); v != "" {
		return v, nil
	}
	cfg, err := state.LoadConfig()
	if err != nil {
		return "", err
	}
	if v := strings.TrimSpace(cfg.APIURL); v != "" {
		return v, nil
	}
	return state.DefaultAPIURL, nil
}

func runTUI(app *App) error {
	ctx := context.Background()
	e, err := openEnv(ctx, app)
	if err != nil {
		return err
	}
	defer e.Close()
	return tui.Run(e.session, e.client)
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.Write(cmd.OutOrStdout(), v, app.Format, app.PrettyJSON)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
