package behavior

import (
	"sync"
	"time"

	"github.com/hupe1980/stagekit/logging"
)

// Runtime is the process-wide collaborator behaviors report to. The
// application root installs itself on construction so that new behaviors are
// announced to every live subsystem and usage errors reach its logger.
type Runtime interface {
	Logger() logging.Logger
	AnnounceBehavior(b Behavior)
}

var (
	runtimeMu sync.RWMutex
	runtime   Runtime
)

// SetRuntime installs r as the process-wide runtime. Passing nil restores the
// silent default.
func SetRuntime(r Runtime) {
	runtimeMu.Lock()
	defer runtimeMu.Unlock()
	runtime = r
}

// CurrentRuntime returns the installed runtime or nil.
func CurrentRuntime() Runtime {
	runtimeMu.RLock()
	defer runtimeMu.RUnlock()
	return runtime
}

// Logger returns the runtime logger, or a NoOpLogger when none is installed.
func Logger() logging.Logger {
	if r := CurrentRuntime(); r != nil {
		if l := r.Logger(); l != nil {
			return l
		}
	}
	return logging.NoOpLogger{}
}

// Report logs a usage error on the runtime logger and returns it unchanged.
func Report(err error, kv ...any) error {
	if err == nil {
		return nil
	}
	args := make([]any, 0, len(kv)+2)
	args = append(args, "error", err.Error())
	args = append(args, kv...)
	Logger().Warn("usage error", args...)
	return err
}

func announce(b Behavior) {
	if r := CurrentRuntime(); r != nil {
		r.AnnounceBehavior(b)
	}
}

type lifecycleLogger interface {
	LogLifecycle(host, name string, receivers int, dur time.Duration)
}

type mountLogger interface {
	LogMount(host, behavior, kind string)
}

func logLifecycle(host, name string, receivers int, dur time.Duration) {
	l := Logger()
	if ll, ok := l.(lifecycleLogger); ok {
		ll.LogLifecycle(host, name, receivers, dur)
		return
	}
	l.Debug("Lifecycle dispatched", "host", host, "lifecycle", name, "receivers", receivers, "duration", dur)
}

func logMount(host, behavior string, kind Kind) {
	l := Logger()
	if ml, ok := l.(mountLogger); ok {
		ml.LogMount(host, behavior, kind.String())
		return
	}
	l.Debug("Behavior mounted", "host", host, "behavior", behavior, "kind", kind.String())
}
