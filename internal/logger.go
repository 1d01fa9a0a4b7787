package internal

import "go.uber.org/zap"

var zlog = zap.NewNop()

// SetLogger installs the process logger used by the handlers and the
// lifecycle engine. Tests leave the default nop logger in place.
func SetLogger(l *zap.Logger) {
	if l != nil {
		zlog = l
	}
}
