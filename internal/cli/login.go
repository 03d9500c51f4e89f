package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"taskdeck/internal/state"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func newLoginCmd(app *App) *cobra.Command {
	var username string
	var password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and save the session",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer e.Close()

			if strings.TrimSpace(username) == "" {
				return writeErr(cmd, errors.New("username is required"))
			}
			if password == "" {
				p, err := promptPassword(cmd)
				if err != nil {
					return writeErr(cmd, err)
				}
				password = p
			}

			res, err := e.client.Login(cmd.Context(), username, password)
			if err != nil {
				// Never more specific than this, whatever the server said.
				return writeErr(cmd, errors.New("invalid username or password"))
			}
			if err := e.session.Save(cmd.Context(), res.User(), res.Token); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": res.User()})
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "Username")
	cmd.Flags().StringVar(&password, "password", "", "Password (prompted when omitted)")
	_ = cmd.MarkFlagRequired("username")
	return cmd
}

func promptPassword(cmd *cobra.Command) (string, error) {
	fd := int(os.Stdin.Fd())
	if isatty.IsTerminal(os.Stdin.Fd()) {
		fmt.Fprint(cmd.ErrOrStderr(), "Password: ")
		b, err := term.ReadPassword(fd)
		fmt.Fprintln(cmd.ErrOrStderr())
		if err != nil {
			return "", err
		}
		return string(b), nil
	}
	// Piped input (scripts, tests).
	r := bufio.NewReader(cmd.InOrStdin())
	line, err := r.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func newLogoutCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Clear the saved session",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer e.Close()
			if err := e.session.Clear(cmd.Context()); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": "logged out"})
		},
	}
}

func newWhoamiCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the current session",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer e.Close()
			u := e.session.Current()
			if u == nil {
				return writeErr(cmd, errors.New("not logged in; run `taskdeck login --username <name>`"))
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{
				"username": u.Username,
				"role":     u.Role,
				"isAdmin":  u.IsAdmin(),
			}})
		},
	}
}

func newConfigCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Client configuration",
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Show the saved configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := state.LoadConfig()
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": cfg})
		},
	}

	var apiURL string
	set := &cobra.Command{
		Use:   "set",
		Short: "Save configuration values",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := state.LoadConfig()
			if err != nil {
				return writeErr(cmd, err)
			}
			if strings.TrimSpace(apiURL) != "" {
				cfg.APIURL = strings.TrimSpace(apiURL)
			}
			if err := state.SaveConfig(cfg); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": cfg})
		},
	}
	set.Flags().StringVar(&apiURL, "api", "", "Task server URL")

	cmd.AddCommand(show)
	cmd.AddCommand(set)
	return cmd
}
