package badger

import (
	"strings"

	"github.com/dgraph-io/badger/v4"
	"go.uber.org/zap"
)

var _ badger.Logger = (*zapAdapter)(nil)

// zapAdapter routes badger's printf-style logs to zap.
// Badger messages end with a newline, which is trimmed.
type zapAdapter struct {
	l *zap.SugaredLogger
}

func (a *zapAdapter) Errorf(msg string, args ...any) {
	a.l.Errorf(strings.TrimRight(msg, "\n"), args...)
}

func (a *zapAdapter) Warningf(msg string, args ...any) {
	a.l.Warnf(strings.TrimRight(msg, "\n"), args...)
}

func (a *zapAdapter) Infof(msg string, args ...any) {
	a.l.Debugf(strings.TrimRight(msg, "\n"), args...)
}

func (a *zapAdapter) Debugf(msg string, args ...any) {
	a.l.Debugf(strings.TrimRight(msg, "\n"), args...)
}
