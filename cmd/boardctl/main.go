// boardctl operates a task board file from the terminal: it opens the same
// local storage the board server uses, applies one operation, and prints the
// resulting board.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/pflag"

	"github.com/fastygo/taskboard/domain"
	"github.com/fastygo/taskboard/internal/config"
	"github.com/fastygo/taskboard/internal/infrastructure/localstorage"
	"github.com/fastygo/taskboard/pkg/clock"
	"github.com/fastygo/taskboard/pkg/logger"
	"github.com/fastygo/taskboard/repository/local"
	"github.com/fastygo/taskboard/usecase"
	boardUC "github.com/fastygo/taskboard/usecase/board"
)

// errUsage marks errors caused by bad invocation; they exit with status 2.
var errUsage = errors.New("usage error")

// errRejected means the board refused the operation; the outcome was already printed.
var errRejected = errors.New("operation rejected")

type options struct {
	dbPath      string
	bucket      string
	key         string
	logLevel    string
	search      string
	priority    string
	category    string
	title       string
	description string
	due         string
	quiet       bool
}

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		switch {
		case errors.Is(err, errRejected):
			os.Exit(1)
		case errors.Is(err, errUsage):
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(2)
		default:
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
	}
}

func run(argv []string, stdout, stderr io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	var opts options
	flagSet := pflag.NewFlagSet("boardctl", pflag.ContinueOnError)
	flagSet.SetOutput(stderr)
	flagSet.StringVar(&opts.dbPath, "db", cfg.Board.DBPath, "board storage file")
	flagSet.StringVar(&opts.bucket, "bucket", cfg.Board.Bucket, "storage bucket")
	flagSet.StringVar(&opts.key, "key", cfg.Board.StorageKey, "storage key of the task list")
	flagSet.StringVar(&opts.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	flagSet.StringVarP(&opts.search, "search", "s", "", "only show tasks whose title or description contains this text")
	flagSet.StringVarP(&opts.priority, "priority", "p", "", "priority filter for list, or priority of a new task")
	flagSet.StringVarP(&opts.category, "category", "c", "", "category filter for list, or category of a new task")
	flagSet.StringVarP(&opts.title, "title", "t", "", "title of a new task")
	flagSet.StringVarP(&opts.description, "description", "d", "", "description of a new task")
	flagSet.StringVar(&opts.due, "due", "", "due date of a new task (YYYY-MM-DD)")
	flagSet.BoolVarP(&opts.quiet, "quiet", "q", false, "do not print the board after a change")
	flagSet.Usage = func() { printHelp(stderr, flagSet) }

	if err := flagSet.Parse(argv); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return fmt.Errorf("%w: %v", errUsage, err)
	}
	args := flagSet.Args()
	if len(args) == 0 {
		printHelp(stderr, flagSet)
		return fmt.Errorf("%w: missing command", errUsage)
	}

	zapLogger, err := logger.New(logger.Config{Level: opts.logLevel, Encoding: "console", Output: stderr})
	if err != nil {
		return err
	}
	defer zapLogger.Sync()

	storage, err := localstorage.Open(opts.dbPath, opts.bucket)
	if err != nil {
		return fmt.Errorf("open %s: %w", opts.dbPath, err)
	}
	defer storage.Close()

	ctx := context.Background()
	clk := clock.Real()
	store := local.NewTaskStore(storage, opts.key, clk, zapLogger)
	if err := store.Load(ctx); err != nil {
		return err
	}

	var last domain.Outcome
	notifier := usecase.NotifierFunc(func(ctx context.Context, outcome domain.Outcome) {
		last = outcome
		fmt.Fprintln(stderr, renderOutcome(outcome))
	})
	board := boardUC.New(store, notifier, nil, clk, zapLogger, boardUC.Options{})

	if args[0] == "reset" {
		if err := storage.Delete(ctx, opts.key); err != nil {
			return fmt.Errorf("reset board: %w", err)
		}
		fmt.Fprintf(stderr, "board %s cleared\n", opts.key)
		return nil
	}

	cmd := &command{board: board, opts: opts, stdout: stdout}
	if err := cmd.dispatch(ctx, args[0], args[1:]); err != nil {
		return err
	}
	if last.Kind != "" && !last.OK() {
		return errRejected
	}
	return nil
}

type command struct {
	board  *boardUC.UseCase
	opts   options
	stdout io.Writer
}

func (c *command) dispatch(ctx context.Context, name string, args []string) error {
	switch name {
	case "list", "ls":
		filter, err := domain.ParseTaskFilter(c.opts.search, c.opts.priority, c.opts.category)
		if err != nil {
			return fmt.Errorf("%w: %v", errUsage, err)
		}
		return c.list(ctx, filter)
	case "add":
		title := c.opts.title
		if title == "" && len(args) > 0 {
			title = args[0]
		}
		return c.mutate(ctx, func() (domain.Outcome, error) {
			return c.board.AddTask(ctx, domain.TaskInput{
				Title:       title,
				Description: c.opts.description,
				Priority:    defaultString(c.opts.priority, string(domain.PriorityMedium)),
				Category:    defaultString(c.opts.category, string(domain.CategoryOther)),
				DueDate:     c.opts.due,
			})
		})
	case "advance":
		id, err := parseID(args)
		if err != nil {
			return err
		}
		return c.mutate(ctx, func() (domain.Outcome, error) { return c.board.Advance(ctx, id) })
	case "move":
		id, err := parseID(args)
		if err != nil {
			return err
		}
		if len(args) < 2 {
			return fmt.Errorf("%w: move needs ID and STATUS", errUsage)
		}
		return c.mutate(ctx, func() (domain.Outcome, error) { return c.board.MoveToColumn(ctx, id, args[1]) })
	case "delete", "rm":
		id, err := parseID(args)
		if err != nil {
			return err
		}
		return c.mutate(ctx, func() (domain.Outcome, error) { return c.board.DeleteTask(ctx, id) })
	case "seed":
		return c.mutate(ctx, func() (domain.Outcome, error) { return c.board.SeedSampleData(ctx) })
	default:
		return fmt.Errorf("%w: unknown command %q", errUsage, name)
	}
}

func (c *command) mutate(ctx context.Context, op func() (domain.Outcome, error)) error {
	outcome, err := op()
	if err != nil {
		return err
	}
	if !outcome.Mutated() || c.opts.quiet {
		return nil
	}
	// --priority and --category describe the new task here, not a filter
	return c.list(ctx, domain.TaskFilter{})
}

func (c *command) list(ctx context.Context, filter domain.TaskFilter) error {
	board, err := c.board.Board(ctx, filter)
	if err != nil {
		return err
	}
	fmt.Fprintln(c.stdout, renderBoard(board))
	return nil
}

func parseID(args []string) (int, error) {
	if len(args) == 0 {
		return 0, fmt.Errorf("%w: missing task id", errUsage)
	}
	id, err := strconv.Atoi(args[0])
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: invalid task id %q", errUsage, args[0])
	}
	return id, nil
}

func defaultString(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

func printHelp(w io.Writer, flagSet *pflag.FlagSet) {
	fmt.Fprintf(w, `boardctl operates a local task board.

Usage:
  boardctl [flags] <command> [args]

Commands:
  list                    show the board (honours --search, --priority, --category)
  add [TITLE]             add a task (--title, --description, --priority, --category, --due)
  advance ID              move a task one column forward
  move ID STATUS          put a task in todo, in-progress or done
  delete ID               remove a task
  seed                    fill an empty board with sample tasks
  reset                   remove every task from the board

Flags:
%s`, flagSet.FlagUsages())
}
