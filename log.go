package posidonius

import (
	"os"

	kitlog "github.com/go-kit/kit/log"
)

// NewLogger returns a logfmt logger tagged with the universe's name,
// following the same construction the rest of the dependency pack uses for
// its own subsystem loggers: a sync-wrapped stdout writer extended with
// `With` for per-subsystem context.
func NewLogger(name string) kitlog.Logger {
	klog := kitlog.NewLogfmtLogger(kitlog.NewSyncWriter(os.Stdout))
	return kitlog.With(klog, "universe", name)
}

// Subsys returns a logger further tagged for one of the core's subsystems,
// so call sites only ever add "level" and their own key/value pairs.
func Subsys(logger kitlog.Logger, subsys string) kitlog.Logger {
	return kitlog.With(logger, "subsys", subsys)
}
