package helpscan

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/napalu/helpscan/errs"
	"github.com/napalu/helpscan/export"
	"github.com/napalu/helpscan/parse"
	"github.com/napalu/helpscan/types"
)

func readFixture(t *testing.T, name string) string {
	t.Helper()
	b, err := os.ReadFile("testdata/" + name)
	require.NoError(t, err)
	return string(b)
}

func dockerSource(t *testing.T) *StaticSource {
	t.Helper()
	source, err := NewStaticSource(map[string]string{
		"docker":          readFixture(t, "docker.txt"),
		"docker image":    readFixture(t, "docker_image.txt"),
		"docker image ls": readFixture(t, "docker_image_ls.txt"),
		"docker image rm": readFixture(t, "docker_image_rm.txt"),
	})
	require.NoError(t, err)
	return source
}

// treeSource serves a help text for every path which lists the given
// subcommands below each command
func treeSource(subs ...string) HelpSourceFunc {
	return func(ctx context.Context, path []string) (string, error) {
		var b strings.Builder
		fmt.Fprintf(&b, "Usage: %s [OPTIONS] COMMAND\n\nCommands:\n", strings.Join(path, " "))
		for _, sub := range subs {
			fmt.Fprintf(&b, "  %s     Run %s\n", sub, sub)
		}
		return b.String(), nil
	}
}

type recordingSource struct {
	mu      sync.Mutex
	fetched []string
	next    HelpSource
}

func (s *recordingSource) FetchHelp(ctx context.Context, path []string) (string, error) {
	s.mu.Lock()
	s.fetched = append(s.fetched, strings.Join(path, " "))
	s.mu.Unlock()
	return s.next.FetchHelp(ctx, path)
}

func (s *recordingSource) calls() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.fetched...)
}

func TestResolver_ResolveDocker(t *testing.T) {
	r, err := NewResolverWith(dockerSource(t))
	require.NoError(t, err)

	docker, err := r.Resolve(context.Background(), "docker")
	require.NoError(t, err)

	assert.Equal(t, []string{"docker"}, docker.Name)
	require.Len(t, docker.SubCommands, 1, "only resolvable subcommands are kept")

	host, ok := docker.Option("host")
	require.True(t, ok)
	assert.Equal(t, []string{"H", "host"}, host.Names)
	assert.Equal(t, types.Value, host.Kind)
	assert.Equal(t, "list", host.Argument)

	logLevel, ok := docker.Option("log-level")
	require.True(t, ok)
	assert.Equal(t, []string{"debug", "info", "warn", "error", "fatal"}, logLevel.Choices)
	assert.Equal(t, "info", logLevel.Default)

	image, ok := docker.SubCommand("image")
	require.True(t, ok)
	assert.Equal(t, []string{"docker", "image"}, image.Name)
	assert.Empty(t, image.Options)

	var names []string
	for _, sub := range image.SubCommands {
		names = append(names, sub.Path())
	}
	assert.Equal(t, []string{"docker image ls", "docker image rm"}, names)

	ls, _ := image.SubCommand("ls")
	repository := ls.InlineValues()
	require.Len(t, repository, 1)
	assert.Equal(t, "REPOSITORY", repository[0].Argument)
	assert.False(t, repository[0].Mandatory)

	filter, ok := ls.Option("f")
	require.True(t, ok)
	assert.Equal(t, types.Value, filter.Kind)
	assert.Equal(t, []string{"f", "filter"}, filter.Names)

	quiet, ok := ls.Option("quiet")
	require.True(t, ok)
	assert.Equal(t, types.Flag, quiet.Kind)

	rm, _ := image.SubCommand("rm")
	inline := rm.InlineValues()
	require.Len(t, inline, 2)
	assert.True(t, inline[0].Mandatory)
	assert.False(t, inline[0].Repeatable)
	assert.False(t, inline[1].Mandatory)
	assert.True(t, inline[1].Repeatable)

	force, ok := rm.Option("force")
	require.True(t, ok)
	assert.Equal(t, types.Flag, force.Kind)
	assert.Equal(t, "Force removal of the image", force.Description)

	assert.Equal(t, 4, types.Count(docker))
}

func TestResolver_ResolveSubcommandDirectly(t *testing.T) {
	cmd, err := ResolveCommand(context.Background(), dockerSource(t), "docker", "image", "rm")
	require.NoError(t, err)

	assert.Equal(t, []string{"docker", "image", "rm"}, cmd.Name)
	assert.Empty(t, cmd.SubCommands)
	_, ok := cmd.Option("no-prune")
	assert.True(t, ok)
}

func TestResolver_RootErrors(t *testing.T) {
	tests := []struct {
		name string
		text string
		want error
	}{
		{
			name: "no sections",
			text: "just some prose\nwithout any titles\n",
			want: errs.ErrNoSections,
		},
		{
			name: "no usage section",
			text: "Options:\n  -a, --all   Show everything\n",
			want: errs.ErrNoUsageSection,
		},
		{
			name: "unparseable usage",
			text: "Usage: tool [OPTIONS\n",
			want: errs.ErrInvalidUsage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			source, err := NewStaticSource(map[string]string{"tool": tt.text})
			require.NoError(t, err)

			cmd, err := ResolveCommand(context.Background(), source, "tool")
			assert.Nil(t, cmd)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestResolver_HelpUnavailable(t *testing.T) {
	cause := fmt.Errorf("exit status 127")
	source := HelpSourceFunc(func(ctx context.Context, path []string) (string, error) {
		return "", cause
	})

	_, err := ResolveCommand(context.Background(), source, "missing")
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrHelpUnavailable)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "missing")
}

func TestResolver_EmptyPath(t *testing.T) {
	r, err := NewResolverWith(dockerSource(t))
	require.NoError(t, err)

	_, err = r.Resolve(context.Background())
	assert.ErrorIs(t, err, errs.ErrEmptyCommandPath)

	_, err = r.ResolveCommandLine(context.Background(), "--help")
	assert.ErrorIs(t, err, errs.ErrEmptyCommandPath)
}

func TestResolveCommandLine(t *testing.T) {
	source := dockerSource(t)

	tests := []struct {
		name    string
		line    string
		want    []string
		wantErr error
	}{
		{name: "plain path", line: "docker image ls", want: []string{"docker", "image", "ls"}},
		{name: "trailing help flag", line: "docker image rm --help", want: []string{"docker", "image", "rm"}},
		{name: "quoted words", line: `"docker" 'image' ls`, want: []string{"docker", "image", "ls"}},
		{name: "unterminated quote", line: `docker "image`, wantErr: errs.ErrInvalidCommandLine},
		{name: "unknown command", line: "podman", wantErr: errs.ErrHelpUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, err := ResolveCommandLine(context.Background(), source, tt.line)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, cmd.Name)
		})
	}
}

func TestResolver_HelpCycle(t *testing.T) {
	text := "Usage: tool [OPTIONS] COMMAND\n\nCommands:\n  sub     Run sub\n"
	source := &recordingSource{next: HelpSourceFunc(func(ctx context.Context, path []string) (string, error) {
		return text, nil
	})}

	r, err := NewResolverWith(source)
	require.NoError(t, err)

	cmd, err := r.Resolve(context.Background(), "tool")
	require.NoError(t, err)
	assert.Empty(t, cmd.SubCommands)
	assert.ElementsMatch(t, []string{"tool", "tool sub"}, source.calls())

	_, err = r.resolve(context.Background(), []string{"tool", "sub"}, 1, []ancestor{{path: "tool", text: text}})
	assert.ErrorIs(t, err, errs.ErrHelpCycle)
}

func TestResolver_MaxDepth(t *testing.T) {
	tests := []struct {
		name     string
		maxDepth int
		want     int
	}{
		{name: "root only", maxDepth: 0, want: 1},
		{name: "one level", maxDepth: 1, want: 2},
		{name: "three levels", maxDepth: 3, want: 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := NewResolverWith(treeSource("sub"), WithMaxDepth(tt.maxDepth))
			require.NoError(t, err)

			cmd, err := r.Resolve(context.Background(), "tool")
			require.NoError(t, err)
			assert.Equal(t, tt.want, types.Count(cmd))

			deepest := cmd
			for len(deepest.SubCommands) > 0 {
				deepest = deepest.SubCommands[0]
			}
			assert.Len(t, deepest.Name, tt.want)
		})
	}

	r, err := NewResolverWith(treeSource("sub"), WithMaxDepth(2))
	require.NoError(t, err)
	_, err = r.resolve(context.Background(), []string{"tool", "sub", "sub", "sub"}, 3, nil)
	assert.ErrorIs(t, err, errs.ErrRecursionDepthExceeded)
}

func TestResolver_SkippedSubcommands(t *testing.T) {
	tests := []struct {
		name    string
		configs []ConfigureResolverFunc
		want    []string
	}{
		{
			name: "defaults skip help and completion",
			want: []string{"tool run"},
		},
		{
			name:    "custom list replaces defaults",
			configs: []ConfigureResolverFunc{WithSkippedSubcommands("run")},
			want:    []string{"tool help", "tool completion"},
		},
		{
			name:    "empty list skips nothing",
			configs: []ConfigureResolverFunc{WithSkippedSubcommands()},
			want:    []string{"tool help", "tool completion", "tool run"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			configs := append([]ConfigureResolverFunc{WithMaxDepth(1)}, tt.configs...)
			r, err := NewResolverWith(treeSource("help", "completion", "run"), configs...)
			require.NoError(t, err)

			cmd, err := r.Resolve(context.Background(), "tool")
			require.NoError(t, err)

			var got []string
			for _, sub := range cmd.SubCommands {
				got = append(got, sub.Path())
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolver_KeepsListingOrder(t *testing.T) {
	delays := map[string]time.Duration{"alpha": 30 * time.Millisecond, "beta": 20 * time.Millisecond, "gamma": 0}
	tree := treeSource("alpha", "beta", "gamma")
	source := HelpSourceFunc(func(ctx context.Context, path []string) (string, error) {
		if len(path) > 1 {
			time.Sleep(delays[path[1]])
			return fmt.Sprintf("Usage: %s [OPTIONS]\n", strings.Join(path, " ")), nil
		}
		return tree(ctx, path)
	})

	cmd, err := ResolveCommand(context.Background(), source, "tool")
	require.NoError(t, err)

	var got []string
	for _, sub := range cmd.SubCommands {
		got = append(got, sub.BaseName())
	}
	assert.Equal(t, []string{"alpha", "beta", "gamma"}, got)
}

func TestResolver_OmitsFailingSubcommands(t *testing.T) {
	source, err := NewStaticSource(map[string]string{
		"tool":        "Usage: tool COMMAND\n\nCommands:\n  good     Works\n  broken   Prints nonsense\n  absent   Not installed\n",
		"tool good":   "Usage: tool good [--verbose]\n",
		"tool broken": "Options:\n  -v   Verbose\n",
	})
	require.NoError(t, err)

	cmd, err := ResolveCommand(context.Background(), source, "tool")
	require.NoError(t, err)
	require.Len(t, cmd.SubCommands, 1)
	assert.Equal(t, "tool good", cmd.SubCommands[0].Path())

	verbose, ok := cmd.SubCommands[0].Option("verbose")
	require.True(t, ok)
	assert.False(t, verbose.Mandatory)
}

func TestResolver_Concurrency(t *testing.T) {
	var inFlight, peak atomic.Int32
	tree := treeSource("a", "b", "c", "d", "e", "f")
	source := HelpSourceFunc(func(ctx context.Context, path []string) (string, error) {
		n := inFlight.Add(1)
		defer inFlight.Add(-1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}
		time.Sleep(10 * time.Millisecond)
		return tree(ctx, path)
	})

	r, err := NewResolverWith(source, WithConcurrency(2), WithMaxDepth(2))
	require.NoError(t, err)

	cmd, err := r.Resolve(context.Background(), "tool")
	require.NoError(t, err)
	assert.Equal(t, 1+6+36, types.Count(cmd))
	assert.LessOrEqual(t, peak.Load(), int32(2))
}

func TestResolver_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := ResolveCommand(ctx, dockerSource(t), "docker")
	assert.ErrorIs(t, err, errs.ErrHelpUnavailable)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestResolver_FetchRate(t *testing.T) {
	source := &recordingSource{next: treeSource("a", "b")}
	r, err := NewResolverWith(source, WithFetchRate(1000, 1), WithMaxDepth(1))
	require.NoError(t, err)

	cmd, err := r.Resolve(context.Background(), "tool")
	require.NoError(t, err)
	assert.Len(t, cmd.SubCommands, 2)
	assert.Len(t, source.calls(), 3)
}

func TestResolver_ReservedPlaceholders(t *testing.T) {
	source, err := NewStaticSource(map[string]string{
		"tool": "Usage: tool [FLAGS] TARGET\n",
	})
	require.NoError(t, err)

	cmd, err := ResolveCommand(context.Background(), source, "tool")
	require.NoError(t, err)
	assert.Len(t, cmd.InlineValues(), 2)

	r, err := NewResolverWith(source, WithReservedPlaceholders("flags"))
	require.NoError(t, err)
	cmd, err = r.Resolve(context.Background(), "tool")
	require.NoError(t, err)

	inline := cmd.InlineValues()
	require.Len(t, inline, 1)
	assert.Equal(t, "TARGET", inline[0].Argument)
	assert.True(t, inline[0].Mandatory)
}

func TestAssemble(t *testing.T) {
	tests := []struct {
		name     string
		path     []string
		text     string
		wantName []string
		wantSubs []string
		wantErr  error
	}{
		{
			name:     "name taken from usage",
			path:     []string{"docker"},
			text:     readFixture(t, "docker_image.txt"),
			wantName: []string{"docker", "image"},
			wantSubs: []string{"build", "history", "import", "inspect", "load", "ls", "prune", "pull", "push", "rm", "save", "tag"},
		},
		{
			name:     "common prefix of several usages",
			path:     []string{"git", "remote"},
			text:     "Usage: git remote add NAME URL\n       git remote remove NAME\n",
			wantName: []string{"git", "remote"},
		},
		{
			name:     "path used when usage starts with a placeholder",
			path:     []string{"tool"},
			text:     "Usage: <command> [OPTIONS]\n",
			wantName: []string{"tool"},
		},
		{
			name:    "missing usage",
			path:    []string{"tool"},
			text:    "Commands:\n  run     Run it\n",
			wantErr: errs.ErrNoUsageSection,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, subs, err := Assemble(tt.path, tt.text)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, cmd.Name)
			assert.Equal(t, tt.wantSubs, subs)
		})
	}
}

func TestResolver_Export(t *testing.T) {
	docker, err := ResolveCommand(context.Background(), dockerSource(t), "docker")
	require.NoError(t, err)
	assert.Equal(t, []string{"docker", "docker image", "docker image ls", "docker image rm"}, types.Paths(docker))

	var buf bytes.Buffer
	require.NoError(t, export.NewWriter(export.FormatJSON, &buf).Serialize(context.Background(), docker))

	var decoded types.ShellCommand
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	rm, ok := types.Find(&decoded, "image", "rm")
	require.True(t, ok)
	assert.Equal(t, []string{"docker", "image", "rm"}, rm.Name)

	buf.Reset()
	require.NoError(t, export.NewWriter(export.FormatTable, &buf).Serialize(context.Background(), docker))
	assert.Contains(t, buf.String(), "docker image rm")
	assert.Contains(t, buf.String(), "--no-prune")
}

func TestCommandName(t *testing.T) {
	tests := []struct {
		name       string
		lines      []string
		path       []string
		want       []string
		firstWords []string
	}{
		{
			name:       "single usage matches its leading words",
			lines:      []string{"docker image rm [OPTIONS] IMAGE"},
			path:       []string{"docker"},
			want:       []string{"docker", "image", "rm"},
			firstWords: []string{"docker", "image", "rm"},
		},
		{
			name:       "several usages keep the shared prefix only",
			lines:      []string{"git remote add NAME URL", "git remote remove NAME"},
			path:       []string{"git", "remote"},
			want:       []string{"git", "remote"},
			firstWords: []string{"git", "remote", "add"},
		},
		{
			name:       "no shared words fall back to the path",
			lines:      []string{"start [OPTIONS]", "stop [OPTIONS]"},
			path:       []string{"service"},
			want:       []string{"service"},
			firstWords: []string{"start"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			section := parse.Section{Title: parse.Token{Kind: parse.Word, Text: "Usage"}}
			for _, l := range tt.lines {
				section.Lines = append(section.Lines, parse.Token{Kind: parse.Line, Text: l})
			}
			usage, ok := parse.ParseUsageSection(section)
			require.True(t, ok)
			require.Len(t, usage.Usages, len(tt.lines))

			assert.Equal(t, tt.firstWords, usage.Usages[0].LeadingWords())
			assert.Equal(t, tt.want, commandName(usage.Usages, tt.path))
		})
	}
}
