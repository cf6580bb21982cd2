package config

import (
	"fmt"
	"sort"
	"strings"
)

// normalizer maps raw config strings onto a typed enum with a default for
// unrecognized input. Keys are matched case-insensitively with surrounding
// whitespace ignored.
type normalizer[T comparable] struct {
	values       map[string]T
	defaultValue T
	validKeys    []string
}

func newNormalizer[T comparable](values map[string]T, defaultValue T) *normalizer[T] {
	cleaned := make(map[string]T, len(values))
	keys := make([]string, 0, len(values))
	for k, v := range values {
		ck := cleanKey(k)
		cleaned[ck] = v
		keys = append(keys, ck)
	}
	sort.Strings(keys)
	return &normalizer[T]{values: cleaned, defaultValue: defaultValue, validKeys: keys}
}

func cleanKey(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

// Normalize converts raw input to the enum value, falling back to the default.
func (n *normalizer[T]) Normalize(raw string) T {
	if v, ok := n.values[cleanKey(raw)]; ok {
		return v
	}
	return n.defaultValue
}

// NormalizeWithValidation converts raw input, returning an error naming the
// valid options when the input is not recognized. Empty input normalizes to
// the default without error.
func (n *normalizer[T]) NormalizeWithValidation(raw string) (T, error) {
	if strings.TrimSpace(raw) == "" {
		return n.defaultValue, nil
	}
	if v, ok := n.values[cleanKey(raw)]; ok {
		return v, nil
	}
	var zero T
	return zero, fmt.Errorf("invalid value %q, valid options: %v", raw, n.validKeys)
}

// DeploymentTarget is a named output profile controlling which marker files
// the deployment adapter generates.
type DeploymentTarget string

const (
	TargetGeneric     DeploymentTarget = "generic"
	TargetGitHubPages DeploymentTarget = "github-pages"
)

var deploymentTargets = newNormalizer(map[string]DeploymentTarget{
	"generic":      TargetGeneric,
	"github-pages": TargetGitHubPages,
	"github":       TargetGitHubPages,
}, TargetGeneric)

// LogLevel enumerates supported logging levels.
type LogLevel string

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

var logLevels = newNormalizer(map[string]LogLevel{
	"debug": LogLevelDebug,
	"info":  LogLevelInfo,
	"warn":  LogLevelWarn,
	"error": LogLevelError,
}, LogLevelInfo)

// NormalizeLogLevel maps a raw config string onto a LogLevel.
func NormalizeLogLevel(raw string) LogLevel { return logLevels.Normalize(raw) }

// LogFormat enumerates supported log output formats.
type LogFormat string

const (
	LogFormatJSON LogFormat = "json"
	LogFormatText LogFormat = "text"
)

var logFormats = newNormalizer(map[string]LogFormat{
	"json": LogFormatJSON,
	"text": LogFormatText,
}, LogFormatText)

// NormalizeLogFormat maps a raw config string onto a LogFormat.
func NormalizeLogFormat(raw string) LogFormat { return logFormats.Normalize(raw) }
