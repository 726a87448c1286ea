package kernel

import "errors"

var (
	// ErrIncompleteConfig is returned when Dispatch is handed a Config
	// missing a field the selected execution mode requires.
	ErrIncompleteConfig = errors.New("kernel: config is missing data for the selected mode")

	// ErrNoThreads is returned when Config.Threads < 1.
	ErrNoThreads = errors.New("kernel: threads must be >= 1")

	// ErrUnknownStrategy is returned for a Strategy value outside the
	// defined enum.
	ErrUnknownStrategy = errors.New("kernel: unknown strategy")
)
