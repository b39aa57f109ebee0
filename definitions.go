package helpscan

import (
	"context"
	"log/slog"
	"sync"

	"github.com/napalu/helpscan/errs"
	"github.com/napalu/helpscan/parse"
	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"
)

// HelpSource returns the --help output of the command identified by path, for
// example [docker image ls]. Any error marks the command as unresolvable.
type HelpSource interface {
	FetchHelp(ctx context.Context, path []string) (string, error)
}

// HelpSourceFunc adapts a function to HelpSource
type HelpSourceFunc func(ctx context.Context, path []string) (string, error)

// FetchHelp calls f
func (f HelpSourceFunc) FetchHelp(ctx context.Context, path []string) (string, error) {
	return f(ctx, path)
}

// ConfigureResolverFunc is used when defining Resolver options
type ConfigureResolverFunc func(r *Resolver, err *error)

// Resolver infers ShellCommand trees from help text. It is safe for
// concurrent use once constructed.
type Resolver struct {
	source      HelpSource
	concurrency int
	maxDepth    int
	logger      *slog.Logger
	skipped     map[string]struct{}
	reserved    []string
	limiter     *rate.Limiter
	fetchSlots  *semaphore.Weighted
}

const (
	// DefaultConcurrency bounds the number of help texts fetched at once
	DefaultConcurrency = 8
	// DefaultMaxDepth bounds how many subcommand levels below the requested
	// command are resolved
	DefaultMaxDepth = 4
)

// DefaultSkippedSubcommands are listed by many tools but never describe a
// subcommand grammar of their own
var DefaultSkippedSubcommands = []string{"help", "completion"}

// StaticSource serves help text held in memory, keyed by command line
type StaticSource struct {
	mu    sync.RWMutex
	texts map[string]string
}

// NewStaticSource creates a StaticSource from help texts keyed by command
// line, such as "docker image ls". Keys are split with shell quoting rules and
// trailing flags like --help are ignored.
func NewStaticSource(texts map[string]string) (*StaticSource, error) {
	s := &StaticSource{texts: make(map[string]string, len(texts))}
	for line, text := range texts {
		if err := s.Add(line, text); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Add registers the help text of a command line
func (s *StaticSource) Add(line, text string) error {
	path, err := parse.SplitCommandPath(line)
	if err != nil {
		return errs.ErrInvalidCommandLine.WithArgs(line).Wrap(err)
	}
	if len(path) == 0 {
		return errs.ErrInvalidCommandLine.WithArgs(line)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.texts[parse.JoinCommandPath(path)] = text
	return nil
}

// FetchHelp implements HelpSource
func (s *StaticSource) FetchHelp(ctx context.Context, path []string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	key := parse.JoinCommandPath(path)
	s.mu.RLock()
	text, ok := s.texts[key]
	s.mu.RUnlock()
	if !ok {
		return "", errs.ErrHelpUnavailable.WithArgs(key)
	}
	return text, nil
}
