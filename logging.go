package thames

import (
	"os"

	kitlog "github.com/go-kit/kit/log"
)

// logger is the engine-wide structured logger, in the same
// logfmt/"level"+"subsys" keyed style as the teacher's
// spacecraft.SCLogInit. It is package-level because the propagation
// core has no long-lived object a logger would naturally attach to
// (unlike the teacher's per-Spacecraft logger): every propagate_* call
// borrows it for the duration of one run.
var logger = kitlog.With(kitlog.NewLogfmtLogger(kitlog.NewSyncWriter(os.Stdout)), "subsys", "thames")

// SetLogger replaces the package-wide logger, letting an embedding
// application redirect propagation-core log output (e.g. to a file or
// a different writer) without the core depending on that application's
// logging configuration.
func SetLogger(l kitlog.Logger) { logger = l }

func logNotice(op string, keyvals ...interface{}) {
	args := append([]interface{}{"level", "notice", "op", op}, keyvals...)
	logger.Log(args...)
}

func logWarning(op string, keyvals ...interface{}) {
	args := append([]interface{}{"level", "warning", "op", op}, keyvals...)
	logger.Log(args...)
}
