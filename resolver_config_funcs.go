package helpscan

import (
	"log/slog"

	"github.com/napalu/helpscan/errs"
	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"
)

// NewResolverWith allows initialization of Resolver using option functions. The caller should always test for error on
// return because Resolver will be nil when an error occurs during initialization.
//
// Configuration example:
//
//	resolver, err := NewResolverWith(source,
//		WithConcurrency(4),
//		WithMaxDepth(2),
//		WithFetchRate(rate.Limit(10), 1),
//		WithSkippedSubcommands("help", "completion", "version"))
func NewResolverWith(source HelpSource, configs ...ConfigureResolverFunc) (*Resolver, error) {
	if source == nil {
		return nil, errs.ErrNilSource
	}

	r := &Resolver{
		source:      source,
		concurrency: DefaultConcurrency,
		maxDepth:    DefaultMaxDepth,
		logger:      slog.Default(),
	}
	WithSkippedSubcommands(DefaultSkippedSubcommands...)(r, nil)

	var err error
	for _, config := range configs {
		config(r, &err)
		if err != nil {
			return nil, err
		}
	}

	r.fetchSlots = semaphore.NewWeighted(int64(r.concurrency))
	return r, nil
}

// WithConcurrency sets how many help texts may be fetched at the same time
func WithConcurrency(n int) ConfigureResolverFunc {
	return func(r *Resolver, err *error) {
		if n < 1 {
			*err = errs.ErrInvalidConcurrency.WithArgs(n)
			return
		}
		r.concurrency = n
	}
}

// WithMaxDepth sets how many subcommand levels below the requested command are
// resolved. Zero resolves the requested command only.
func WithMaxDepth(depth int) ConfigureResolverFunc {
	return func(r *Resolver, err *error) {
		if depth < 0 {
			*err = errs.ErrInvalidDepth.WithArgs(depth)
			return
		}
		r.maxDepth = depth
	}
}

// WithLogger sets the logger used for resolution diagnostics
func WithLogger(logger *slog.Logger) ConfigureResolverFunc {
	return func(r *Resolver, err *error) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithFetchRate paces calls to the help source to limit events per second with
// the given burst
func WithFetchRate(limit rate.Limit, burst int) ConfigureResolverFunc {
	return func(r *Resolver, err *error) {
		if limit <= 0 || burst < 1 {
			*err = errs.ErrInvalidRate.WithArgs(limit, burst)
			return
		}
		r.limiter = rate.NewLimiter(limit, burst)
	}
}

// WithSkippedSubcommands replaces the subcommand names which are never resolved
func WithSkippedSubcommands(names ...string) ConfigureResolverFunc {
	return func(r *Resolver, err *error) {
		r.skipped = make(map[string]struct{}, len(names))
		for _, name := range names {
			r.skipped[name] = struct{}{}
		}
	}
}

// WithReservedPlaceholders adds placeholder names which stand for groups of
// arguments and never become inline values
func WithReservedPlaceholders(names ...string) ConfigureResolverFunc {
	return func(r *Resolver, err *error) {
		r.reserved = append(r.reserved, names...)
	}
}
