// Package zapadapter adapts a *zap.Logger into the func(string, ...any)
// hook Config.SetLogf expects, for callers who already run zap and want the
// pool's verbose-gated diagnostics folded into their existing structured
// log stream instead of stdlib log.Printf.
package zapadapter

import (
	"fmt"

	"go.uber.org/zap"
)

// Logf wraps logger into the signature Config.SetLogf takes. Pool log
// lines are already preformatted with a leading "[POOL]"-style tag, so
// this forwards each one, formatted, as the message of an Info entry rather
// than trying to decompose it into fields.
func Logf(logger *zap.Logger) func(format string, args ...any) {
	return func(format string, args ...any) {
		logger.Info(fmt.Sprintf(format, args...))
	}
}

// SugaredLogf is the equivalent adapter for callers holding a
// *zap.SugaredLogger rather than the structured *zap.Logger.
func SugaredLogf(logger *zap.SugaredLogger) func(format string, args ...any) {
	return func(format string, args ...any) {
		logger.Infof(format, args...)
	}
}
