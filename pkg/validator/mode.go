package validator

import "fmt"

// Mode is the configured reaction to a validation failure detected at
// emission time.
type Mode string

const (
	// ModeStrict fails the emission call; nothing is forwarded.
	ModeStrict Mode = "strict"
	// ModeWarn logs a warning and forwards the metric unmodified.
	ModeWarn Mode = "warn"
	// ModeDrop silently discards the metric: no forward, no warning.
	ModeDrop Mode = "drop"
	// ModeOff skips validation entirely and forwards unmodified.
	ModeOff Mode = "off"
)

// ParseMode converts a string into a Mode. An empty string defaults to
// strict.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case "":
		return ModeStrict, nil
	case ModeStrict, ModeWarn, ModeDrop, ModeOff:
		return Mode(s), nil
	default:
		return "", fmt.Errorf("unknown validation mode %q (valid: strict, warn, drop, off)", s)
	}
}
