// Package console drives a scoreboard from line commands.
//
// A line is a command word followed by comma separated arguments:
//
//	announce Mexico, Canada
//	goal 6f1c..., Mexico
//	summary
package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"
	service "github.com/okian/livescore/internal/app"
	"github.com/okian/livescore/internal/domain/types"
	"github.com/okian/livescore/pkg/logger"
	"github.com/okian/livescore/pkg/metrics"
)

// eventLifecycle is the write side of the event-sourced scoreboard.
type eventLifecycle interface {
	AnnounceMatch(ctx context.Context, home, away string) (uuid.UUID, error)
	StartMatch(ctx context.Context, matchID uuid.UUID) (uuid.UUID, error)
	FinishMatch(ctx context.Context, matchID uuid.UUID) (uuid.UUID, error)
	AddGoal(ctx context.Context, matchID uuid.UUID, team string) (uuid.UUID, error)
}

// snapshotLifecycle is the write side of the snapshot scoreboard.
type snapshotLifecycle interface {
	StartMatch(ctx context.Context, home, away string) (uuid.UUID, error)
	FinishMatch(ctx context.Context, matchID uuid.UUID) error
	UpdateScore(ctx context.Context, matchID uuid.UUID, home, away int) error
}

// Console executes commands against one scoreboard.
type Console struct {
	board    service.Scoreboard
	events   eventLifecycle
	snapshot snapshotLifecycle
	out      io.Writer
	logger   logger.Logger
}

// Option configures a Console.
type Option func(*Console)

// WithLogger sets the logger used for command failures.
func WithLogger(l logger.Logger) Option {
	return func(c *Console) {
		if l != nil {
			c.logger = l
		}
	}
}

// New creates a Console writing results to out. The write commands that are
// available depend on which lifecycle board implements.
func New(board service.Scoreboard, out io.Writer, opts ...Option) *Console {
	c := &Console{board: board, out: out, logger: logger.Nop()}
	c.events, _ = board.(eventLifecycle)
	c.snapshot, _ = board.(snapshotLifecycle)
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.Named("console")
	return c
}

// Run executes every line of r until EOF, a quit command or ctx is done.
// Failed commands are reported on the output and do not stop the loop.
func (c *Console) Run(ctx context.Context, r io.Reader) error {
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if cmd, _ := split(line); cmd == "quit" || cmd == "exit" {
			return nil
		}
		res, err := c.Execute(ctx, line)
		if err != nil {
			c.logger.Debug(ctx, "command failed", logger.String("line", line), logger.Error(err))
			fmt.Fprintf(c.out, "error: %v\n", err)
			continue
		}
		fmt.Fprint(c.out, res)
	}
	return sc.Err()
}

// Execute runs a single command line and returns its output.
func (c *Console) Execute(ctx context.Context, line string) (string, error) {
	cmd, args := split(line)
	switch cmd {
	case "announce":
		return c.announce(ctx, args)
	case "start":
		return c.start(ctx, args)
	case "goal":
		return c.goal(ctx, args)
	case "score":
		return c.score(ctx, args)
	case "finish":
		return c.finish(ctx, args)
	case "summary":
		items, err := c.board.ActiveMatchSummary(ctx)
		if err != nil {
			return "", err
		}
		return types.FormatSummary(items), nil
	case "prune":
		n, err := c.board.PruneFinished(ctx)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("pruned %d\n", n), nil
	case "stats":
		return formatStats(c.board.Stats(ctx)), nil
	case "metrics":
		var b strings.Builder
		if err := metrics.WriteText(&b); err != nil {
			return "", err
		}
		return b.String(), nil
	case "help":
		return c.help(), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownCommand, cmd)
	}
}

func (c *Console) announce(ctx context.Context, args []string) (string, error) {
	if c.events == nil {
		return "", fmt.Errorf("announce: %w", ErrUnsupported)
	}
	if len(args) != 2 {
		return "", fmt.Errorf("%w: announce <home>, <away>", ErrUsage)
	}
	id, err := c.events.AnnounceMatch(ctx, args[0], args[1])
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("announced %s\n", id), nil
}

func (c *Console) start(ctx context.Context, args []string) (string, error) {
	switch {
	case c.events != nil:
		if len(args) != 1 {
			return "", fmt.Errorf("%w: start <id>", ErrUsage)
		}
		id, err := parseID(args[0])
		if err != nil {
			return "", err
		}
		if _, err := c.events.StartMatch(ctx, id); err != nil {
			return "", err
		}
		return fmt.Sprintf("started %s\n", id), nil
	case c.snapshot != nil:
		if len(args) != 2 {
			return "", fmt.Errorf("%w: start <home>, <away>", ErrUsage)
		}
		id, err := c.snapshot.StartMatch(ctx, args[0], args[1])
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("started %s\n", id), nil
	default:
		return "", fmt.Errorf("start: %w", ErrUnsupported)
	}
}

func (c *Console) goal(ctx context.Context, args []string) (string, error) {
	if c.events == nil {
		return "", fmt.Errorf("goal: %w", ErrUnsupported)
	}
	if len(args) != 2 {
		return "", fmt.Errorf("%w: goal <id>, <team>", ErrUsage)
	}
	id, err := parseID(args[0])
	if err != nil {
		return "", err
	}
	if _, err := c.events.AddGoal(ctx, id, args[1]); err != nil {
		return "", err
	}
	return fmt.Sprintf("goal %s for %s\n", id, args[1]), nil
}

func (c *Console) score(ctx context.Context, args []string) (string, error) {
	if c.snapshot == nil {
		return "", fmt.Errorf("score: %w", ErrUnsupported)
	}
	if len(args) != 3 {
		return "", fmt.Errorf("%w: score <id>, <home>, <away>", ErrUsage)
	}
	id, err := parseID(args[0])
	if err != nil {
		return "", err
	}
	home, errHome := strconv.Atoi(args[1])
	away, errAway := strconv.Atoi(args[2])
	if errHome != nil || errAway != nil {
		return "", fmt.Errorf("%w: score goals must be integers", ErrUsage)
	}
	if err := c.snapshot.UpdateScore(ctx, id, home, away); err != nil {
		return "", err
	}
	return fmt.Sprintf("score %s %d-%d\n", id, home, away), nil
}

func (c *Console) finish(ctx context.Context, args []string) (string, error) {
	if len(args) != 1 {
		return "", fmt.Errorf("%w: finish <id>", ErrUsage)
	}
	id, err := parseID(args[0])
	if err != nil {
		return "", err
	}
	switch {
	case c.events != nil:
		_, err = c.events.FinishMatch(ctx, id)
	case c.snapshot != nil:
		err = c.snapshot.FinishMatch(ctx, id)
	default:
		err = fmt.Errorf("finish: %w", ErrUnsupported)
	}
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("finished %s\n", id), nil
}

func (c *Console) help() string {
	var b strings.Builder
	b.WriteString("commands:\n")
	if c.events != nil {
		b.WriteString("  announce <home>, <away>\n")
		b.WriteString("  start <id>\n")
		b.WriteString("  goal <id>, <team>\n")
	}
	if c.snapshot != nil {
		b.WriteString("  start <home>, <away>\n")
		b.WriteString("  score <id>, <home goals>, <away goals>\n")
	}
	b.WriteString("  finish <id>\n")
	b.WriteString("  summary\n  prune\n  stats\n  metrics\n  help\n  quit\n")
	return b.String()
}

// split separates the command word from its comma separated arguments.
func split(line string) (string, []string) {
	line = strings.TrimSpace(line)
	cmd, rest, _ := strings.Cut(line, " ")
	cmd = strings.ToLower(cmd)
	rest = strings.TrimSpace(rest)
	if rest == "" {
		return cmd, nil
	}
	args := strings.Split(rest, ",")
	for i := range args {
		args[i] = strings.TrimSpace(args[i])
	}
	return cmd, args
}

func parseID(s string) (uuid.UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: bad match id %q: %w", ErrUsage, s, err)
	}
	return id, nil
}

func formatStats(stats map[string]any) string {
	keys := make([]string, 0, len(stats))
	for k := range stats {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var b strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&b, "%s=%v\n", k, stats[k])
	}
	return b.String()
}
