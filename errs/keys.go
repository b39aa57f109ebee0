// Package errs defines the errors returned by helpscan.
// This file contains constants for all translation keys used throughout the library.
package errs

// Prefix for all helpscan translation keys
const (
	prefixKey = "helpscan"
)

// Error prefixes
const (
	ErrorPrefixKey = prefixKey + ".error"
)

const (
	ErrHelpUnavailableKey        = ErrorPrefixKey + ".help_unavailable"
	ErrNoSectionsKey             = ErrorPrefixKey + ".no_sections"
	ErrNoUsageSectionKey         = ErrorPrefixKey + ".no_usage_section"
	ErrInvalidUsageKey           = ErrorPrefixKey + ".invalid_usage"
	ErrEmptyCommandPathKey       = ErrorPrefixKey + ".empty_command_path"
	ErrRecursionDepthExceededKey = ErrorPrefixKey + ".recursion_depth_exceeded"
	ErrHelpCycleKey              = ErrorPrefixKey + ".help_cycle"
	ErrInvalidConcurrencyKey     = ErrorPrefixKey + ".invalid_concurrency"
	ErrInvalidDepthKey           = ErrorPrefixKey + ".invalid_depth"
	ErrInvalidRateKey            = ErrorPrefixKey + ".invalid_rate"
	ErrNilSourceKey              = ErrorPrefixKey + ".nil_source"
	ErrInvalidCommandLineKey     = ErrorPrefixKey + ".invalid_command_line"
	ErrUnsupportedFormatKey      = ErrorPrefixKey + ".unsupported_format"
)
