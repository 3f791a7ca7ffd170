package main

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/hpungsan/alfred-gitignore/internal/alfred"
	"github.com/hpungsan/alfred-gitignore/internal/catalog"
	"github.com/hpungsan/alfred-gitignore/internal/config"
	"github.com/hpungsan/alfred-gitignore/internal/errors"
	"github.com/hpungsan/alfred-gitignore/internal/mcp"
	"github.com/hpungsan/alfred-gitignore/internal/ops"
)

// cliEnv holds what every action needs.
type cliEnv struct {
	db       *sql.DB // nil when the ledger couldn't be opened
	cfg      *config.Config
	logger   *slog.Logger
	terminal bool // plain text output instead of Alfred JSON
}

// newCLIApp creates the CLI application. Actions are root flags rather than
// subcommands because Alfred passes "--select {query}" style arguments.
func newCLIApp(env *cliEnv) *cli.App {
	app := &cli.App{
		Name:      "alfred-gitignore",
		Usage:     "An Alfred workflow to generate .gitignore files",
		Version:   Version,
		ArgsUsage: "[template...]",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "repository", Aliases: []string{"r"}, Usage: "Template directory (overrides repository_dir)"},
			&cli.BoolFlag{Name: "build", Aliases: []string{"b"}, Usage: "Create a single .gitignore file from the templates"},
			&cli.BoolFlag{Name: "select", Aliases: []string{"s"}, Usage: "Select templates to combine them into a single file"},
			&cli.BoolFlag{Name: "update", Aliases: []string{"u"}, Usage: "Download the latest templates from github/gitignore"},
			&cli.BoolFlag{Name: "history", Usage: "List recently built files"},
			&cli.BoolFlag{Name: "mcp", Usage: "Serve the workflow as MCP tools over stdio"},
		},
		HideHelpCommand: true,
		Action:          env.run,
	}
	// Disable default exit error handler to allow proper error return in tests
	app.ExitErrHandler = func(_ *cli.Context, _ error) {}
	return app
}

// run dispatches on the action flags. When several are given, build wins,
// then update, select, history and mcp.
func (e *cliEnv) run(c *cli.Context) error {
	out := c.App.Writer

	repo, err := e.openRepository(c.String("repository"))
	if err != nil {
		return e.exit(c, err)
	}

	tokens := tokensFrom(c.Args().Slice())

	switch {
	case c.Bool("build"):
		err = e.build(out, repo, tokens)
	case c.Bool("update"):
		err = e.update(c.Context, out, repo)
	case c.Bool("select"):
		err = e.selectTemplates(out, repo, tokens)
	case c.Bool("history"):
		err = e.history(out)
	case c.Bool("mcp"):
		err = mcp.Run(e.db, e.cfg, repo, Version)
	default:
		err = alfred.Write(out, selectItem(), updateItem())
	}
	if err != nil {
		return e.exit(c, err)
	}
	return nil
}

// openRepository opens the catalog, preferring an explicit path over config.
func (e *cliEnv) openRepository(override string) (*catalog.Repository, error) {
	path := e.cfg.RepositoryDir
	if override != "" {
		path = override
	}
	return catalog.Open(path, e.logger)
}

// selectTemplates renders the incremental selection list.
func (e *cliEnv) selectTemplates(w io.Writer, repo *catalog.Repository, tokens []string) error {
	output, err := ops.Select(repo, ops.SelectInput{Tokens: tokens})
	if err != nil {
		return err
	}

	selected := strings.Join(output.Canonical, " ")

	items := make([]alfred.Item, 0, len(output.Suggestions)+1)
	if len(output.Canonical) == 0 {
		items = append(items, updateItem())
	} else {
		items = append(items, buildItem(selected))
	}

	prefix := "--select "
	if selected != "" {
		prefix += selected + " "
	}
	for _, suggestion := range output.Suggestions {
		items = append(items, alfred.NewItem(suggestion).
			WithAutocomplete(prefix+suggestion+" ").
			WithValid(false))
	}

	return alfred.Write(w, items...)
}

// build writes the combined file and offers to open or copy it.
func (e *cliEnv) build(w io.Writer, repo *catalog.Repository, tokens []string) error {
	output, err := ops.Build(e.db, e.cfg, repo, ops.BuildInput{
		Tokens:         tokens,
		IncludeContent: true,
	})
	if err != nil {
		return err
	}

	if len(output.Ignored) > 0 && e.logger != nil {
		e.logger.Info("ignored unknown templates", "tokens", output.Ignored)
	}

	if e.terminal {
		_, err := io.WriteString(w, output.Content)
		return err
	}

	return alfred.Write(w,
		alfred.NewItem("Open .gitignore file").
			WithSubtitle(output.Path).
			WithArg(output.Path).
			AsFile(output.Path),
		alfred.NewItem("Copy to clipboard").
			WithSubtitle(strings.Join(output.Templates, ", ")).
			WithArg(output.Content),
	)
}

// update refreshes the catalog.
func (e *cliEnv) update(ctx context.Context, w io.Writer, repo *catalog.Repository) error {
	if ctx == nil {
		ctx = context.Background()
	}
	output, err := ops.Update(ctx, e.cfg, repo)
	if err != nil {
		return err
	}

	if e.terminal {
		_, err := fmt.Fprintf(w, "Updated %d templates from %s (%d in catalog)\n", output.Written, output.URL, output.Templates)
		return err
	}

	return alfred.Write(w, alfred.NewItem("Successfully updated the templates").
		WithSubtitle("The latest templates from github/gitignore have been downloaded"))
}

// history lists recent builds.
func (e *cliEnv) history(w io.Writer) error {
	output, err := ops.History(e.db, e.cfg, ops.HistoryInput{})
	if err != nil {
		return err
	}

	if e.terminal {
		for _, b := range output.Items {
			if _, err := fmt.Fprintf(w, "%s  %s  %s\n", formatTime(b.BuiltAt), strings.Join(b.Templates, ", "), b.Path); err != nil {
				return err
			}
		}
		return nil
	}

	if len(output.Items) == 0 {
		return alfred.Write(w, alfred.NewItem("No builds yet").
			WithSubtitle("Combined .gitignore files will be listed here").
			WithAutocomplete("--select ").
			WithValid(false))
	}

	items := make([]alfred.Item, 0, len(output.Items))
	for _, b := range output.Items {
		items = append(items, alfred.NewItem(strings.Join(b.Templates, ", ")).
			WithSubtitle(fmt.Sprintf("Built %s, %s", formatTime(b.BuiltAt), b.Path)).
			WithArg(b.Path).
			WithAutocomplete("--build "+strings.Join(b.Templates, " ")).
			AsFile(b.Path))
	}
	return alfred.Write(w, items...)
}

// Alfred items shared between actions

func selectItem() alfred.Item {
	return alfred.NewItem("Select templates").
		WithSubtitle("Choose the templates to combine into a .gitignore file").
		WithAutocomplete("--select ").
		WithValid(false)
}

func updateItem() alfred.Item {
	return alfred.NewItem("Update .gitignore templates").
		WithSubtitle("Download the latest templates from github/gitignore").
		WithArg("--update")
}

func buildItem(selected string) alfred.Item {
	return alfred.NewItem("Create .gitignore file").
		WithSubtitle("Combine the selected templates into a single .gitignore file").
		WithAutocomplete("--build " + selected).
		WithValid(false)
}

// Helper functions

// exit reports err in the current output mode and ends with status 1.
func (e *cliEnv) exit(c *cli.Context, err error) error {
	e.fail(c.App.Writer, c.App.ErrWriter, err)
	return cli.Exit("", 1)
}

// fail writes err as an Alfred error item, or in color on stderr in a terminal.
func (e *cliEnv) fail(stdout, stderr io.Writer, err error) {
	message := err.Error()
	if appErr, ok := errors.As(err); ok {
		message = appErr.Message
	}

	if e.terminal {
		color.New(color.FgRed, color.Bold).Fprint(stderr, "error: ")
		fmt.Fprintln(stderr, message)
		return
	}

	_ = alfred.Write(stdout, alfred.NewItem("Error running gitignore workflow").WithSubtitle(message))
}

// tokensFrom splits arguments on whitespace. Alfred may pass the whole query as one argument.
func tokensFrom(args []string) []string {
	var tokens []string
	for _, arg := range args {
		tokens = append(tokens, ops.Tokenize(arg)...)
	}
	return tokens
}

// formatTime renders a ledger timestamp in local time.
func formatTime(unix int64) string {
	return time.Unix(unix, 0).Format("2006-01-02 15:04")
}
