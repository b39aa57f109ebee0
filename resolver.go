// Package helpscan infers the command grammar of a command-line program from
// its --help output.
//
// A Resolver fetches the help text of a command through a HelpSource, parses
// its usage section and option descriptions, and recursively resolves the
// subcommands it lists:
//
//	source, _ := helpscan.NewStaticSource(map[string]string{"docker": dockerHelp})
//	cmd, err := helpscan.ResolveCommand(ctx, source, "docker")
package helpscan

import (
	"context"
	"log/slog"
	"slices"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/napalu/helpscan/derive"
	"github.com/napalu/helpscan/errs"
	"github.com/napalu/helpscan/parse"
	"github.com/napalu/helpscan/types"
)

// ResolveCommand resolves path with a Resolver using default settings
func ResolveCommand(ctx context.Context, source HelpSource, path ...string) (*types.ShellCommand, error) {
	r, err := NewResolverWith(source)
	if err != nil {
		return nil, err
	}
	return r.Resolve(ctx, path...)
}

// ResolveCommandLine resolves the command named by a command line such as
// "docker image --help"
func ResolveCommandLine(ctx context.Context, source HelpSource, line string) (*types.ShellCommand, error) {
	r, err := NewResolverWith(source)
	if err != nil {
		return nil, err
	}
	return r.ResolveCommandLine(ctx, line)
}

// ResolveCommandLine splits line into a command path and resolves it
func (r *Resolver) ResolveCommandLine(ctx context.Context, line string) (*types.ShellCommand, error) {
	path, err := parse.SplitCommandPath(line)
	if err != nil {
		return nil, errs.ErrInvalidCommandLine.WithArgs(line).Wrap(err)
	}
	return r.Resolve(ctx, path...)
}

// Resolve builds the command tree rooted at path. Subcommands that cannot be
// resolved are left out; only a failure of path itself is returned.
func (r *Resolver) Resolve(ctx context.Context, path ...string) (*types.ShellCommand, error) {
	if len(path) == 0 {
		return nil, errs.ErrEmptyCommandPath
	}

	cmd, err := r.resolve(ctx, slices.Clone(path), 0, nil)
	if err != nil {
		commandResolveTotal.WithLabelValues(statusError).Inc()
		return nil, err
	}
	commandResolveTotal.WithLabelValues(statusSuccess).Inc()

	r.logger.Debug("resolved command tree",
		slog.String("command", cmd.Path()),
		slog.Int("commands", types.Count(cmd)))
	return cmd, nil
}

type ancestor struct {
	path string
	text string
}

func (r *Resolver) resolve(ctx context.Context, path []string, depth int, lineage []ancestor) (*types.ShellCommand, error) {
	key := parse.JoinCommandPath(path)
	if depth > r.maxDepth {
		return nil, errs.ErrRecursionDepthExceeded.WithArgs(key, r.maxDepth)
	}

	text, err := r.fetch(ctx, path)
	if err != nil {
		return nil, errs.ErrHelpUnavailable.WithArgs(key).Wrap(err)
	}
	for _, a := range lineage {
		if a.text == text {
			return nil, errs.ErrHelpCycle.WithArgs(key, a.path)
		}
	}

	cmd, subcommands, err := Assemble(path, text, r.reserved...)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(subcommands))
	for _, name := range subcommands {
		if _, skip := r.skipped[name]; !skip {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return cmd, nil
	}

	lineage = append(slices.Clip(lineage), ancestor{path: key, text: text})
	children := make([]*types.ShellCommand, len(names))

	var g errgroup.Group
	g.SetLimit(r.concurrency)
	for i, name := range names {
		i, name := i, name // per-iteration copy (go 1.21 loop semantics)
		g.Go(func() error {
			childPath := append(slices.Clone(path), name)
			child, err := r.resolve(ctx, childPath, depth+1, lineage)
			if err != nil {
				subcommandOmittedTotal.Inc()
				r.logger.Debug("omitting subcommand",
					slog.String("command", parse.JoinCommandPath(childPath)),
					slog.String("error", err.Error()))
				return nil
			}
			children[i] = child
			return nil
		})
	}
	_ = g.Wait()

	seen := make(map[string]struct{}, len(children))
	for _, child := range children {
		if child == nil {
			continue
		}
		if _, dup := seen[child.Path()]; dup {
			continue
		}
		seen[child.Path()] = struct{}{}
		cmd.SubCommands = append(cmd.SubCommands, child)
	}
	return cmd, nil
}

func (r *Resolver) fetch(ctx context.Context, path []string) (string, error) {
	if r.limiter != nil {
		if err := r.limiter.Wait(ctx); err != nil {
			return "", err
		}
	}
	if err := r.fetchSlots.Acquire(ctx, 1); err != nil {
		return "", err
	}
	defer r.fetchSlots.Release(1)

	r.logger.Debug("fetching help", slog.String("command", parse.JoinCommandPath(path)))
	start := time.Now()
	text, err := r.source.FetchHelp(ctx, slices.Clone(path))
	helpFetchDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		helpFetchTotal.WithLabelValues(statusError).Inc()
		return "", err
	}
	helpFetchTotal.WithLabelValues(statusSuccess).Inc()
	return text, nil
}

// Assemble builds the command described by text without resolving its
// subcommands. It returns the command together with the subcommand names it
// lists, in listing order. path names the command when the usage section does
// not.
func Assemble(path []string, text string, reserved ...string) (*types.ShellCommand, []string, error) {
	key := parse.JoinCommandPath(path)

	overview, ok := parse.ParseOverview(text)
	if !ok {
		return nil, nil, errs.ErrNoSections.WithArgs(key)
	}
	section, ok := overview.UsageSection()
	if !ok {
		return nil, nil, errs.ErrNoUsageSection.WithArgs(key)
	}
	usage, ok := parse.ParseUsageSection(section)
	if !ok {
		return nil, nil, errs.ErrInvalidUsage.WithArgs(key)
	}

	alternatives := make([][]types.Option, 0, len(usage.Usages))
	for _, u := range usage.Usages {
		alternatives = append(alternatives, derive.FromUsage(u, reserved...))
	}

	cmd := &types.ShellCommand{
		Name:    commandName(usage.Usages, path),
		Options: derive.Union(derive.Merge(alternatives...), derive.Described(overview.Sections)),
	}
	return cmd, derive.Subcommands(overview.Sections), nil
}

// commandName returns the words every usage starts with, or path when they
// share none
func commandName(usages []parse.Usage, path []string) []string {
	var name []string
	for i, u := range usages {
		words := u.LeadingWords()
		if i == 0 {
			name = words
			continue
		}
		n := 0
		for n < len(name) && n < len(words) && name[n] == words[n] {
			n++
		}
		name = name[:n]
	}
	if len(name) == 0 {
		return slices.Clone(path)
	}
	return slices.Clone(name)
}
