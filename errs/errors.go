package errs

import "github.com/napalu/helpscan/i18n"

// Resolution errors
var (
	ErrHelpUnavailable        = i18n.NewError(ErrHelpUnavailableKey)
	ErrNoSections             = i18n.NewError(ErrNoSectionsKey)
	ErrNoUsageSection         = i18n.NewError(ErrNoUsageSectionKey)
	ErrInvalidUsage           = i18n.NewError(ErrInvalidUsageKey)
	ErrEmptyCommandPath       = i18n.NewError(ErrEmptyCommandPathKey)
	ErrRecursionDepthExceeded = i18n.NewError(ErrRecursionDepthExceededKey)
	ErrHelpCycle              = i18n.NewError(ErrHelpCycleKey)
	ErrInvalidCommandLine     = i18n.NewError(ErrInvalidCommandLineKey)
)

// Configuration errors
var (
	ErrInvalidConcurrency = i18n.NewError(ErrInvalidConcurrencyKey)
	ErrInvalidDepth       = i18n.NewError(ErrInvalidDepthKey)
	ErrInvalidRate        = i18n.NewError(ErrInvalidRateKey)
	ErrNilSource          = i18n.NewError(ErrNilSourceKey)
	ErrUnsupportedFormat  = i18n.NewError(ErrUnsupportedFormatKey)
)

// UpdateMessageProvider renders every error through provider
func UpdateMessageProvider(provider i18n.MessageProvider) {
	i18n.SetDefaultMessageProvider(provider)
}
