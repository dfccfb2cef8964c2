package game

import (
	"sync"
	"sync/atomic"

	"github.com/hupe1980/stagekit/behavior"
	"github.com/hupe1980/stagekit/core"
	"github.com/hupe1980/stagekit/logging"
	"github.com/hupe1980/stagekit/module"
	"github.com/hupe1980/stagekit/node"
)

// Name is the extension target that selects the application root.
const Name = "Game"

// Lifecycle names fired on the root and on every subsystem declaring them.
const (
	OnBeforeMount = "OnBeforeMount"
	OnAfterMount  = "OnAfterMount"
	OnGameStart   = "OnGameStart"
)

var rootLifecycles = behavior.Declare(OnBeforeMount, OnAfterMount, OnGameStart)

// ErrAlreadyMounted is returned when MountView is called twice.
var ErrAlreadyMounted = core.Errorf(core.ErrUsage, "game already mounted")

// Options configures the application root.
type Options struct {
	// Width and Height describe the design resolution handed to views.
	Width  int
	Height int

	// Logger receives usage errors and lifecycle traffic (defaults to NoOp logger if nil).
	// A *logging.RuntimeLogger is tagged with the component "Game".
	Logger logging.Logger

	// Registry lists the subsystems to instantiate (defaults to module.Default).
	Registry *module.Registry
}

// Game is the application root. There is at most one per process.
type Game struct {
	behavior.Capability
	opts    Options
	modules *module.Set
	stage   *node.Node
	view    View
	started bool
}

var (
	constructMu sync.Mutex
	current     atomic.Pointer[Game]
)

// New builds the application root: it installs itself as the behavior
// runtime, instantiates every registered subsystem and creates the stage.
// It fails with core.ErrAlreadyConstructed while another root exists, and
// with a configuration error when a subsystem cannot be built.
func New(optFns ...func(o *Options)) (*Game, error) {
	constructMu.Lock()
	defer constructMu.Unlock()

	if current.Load() != nil {
		return nil, core.ErrAlreadyConstructed
	}

	opts := Options{
		Width:    800,
		Height:   600,
		Logger:   logging.NoOpLogger{},
		Registry: module.Default,
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Logger == nil {
		opts.Logger = logging.NoOpLogger{}
	}
	if opts.Registry == nil {
		opts.Registry = module.Default
	}
	if rl, ok := opts.Logger.(*logging.RuntimeLogger); ok {
		opts.Logger = rl.WithComponent(Name)
	}

	g := &Game{opts: opts}
	g.Bind(g, behavior.Secondary)
	current.Store(g)
	behavior.SetRuntime(g)

	set, err := opts.Registry.Instantiate()
	if err != nil {
		current.Store(nil)
		behavior.SetRuntime(nil)
		opts.Logger.Error("Failed to instantiate modules", "error", err)
		return nil, err
	}
	g.modules = set
	g.stage = node.NewStage()

	opts.Logger.Info("Game constructed", "modules", set.Len(), "width", opts.Width, "height", opts.Height)
	return g, nil
}

// Current returns the live application root.
func Current() (*Game, bool) {
	g := current.Load()
	return g, g != nil
}

// Reset forgets the application root, uninstalls the behavior runtime and
// empties module.Default. Intended for tests.
func Reset() {
	constructMu.Lock()
	defer constructMu.Unlock()
	current.Store(nil)
	behavior.SetRuntime(nil)
	module.Reset()
}

// Lifecycles declares the root lifecycles.
func (g *Game) Lifecycles() []string { return rootLifecycles }

// Logger implements behavior.Runtime.
func (g *Game) Logger() logging.Logger { return g.opts.Logger }

// AnnounceBehavior offers b to every subsystem and then to the root itself.
func (g *Game) AnnounceBehavior(b behavior.Behavior) {
	g.modules.Each(func(m module.Module) {
		m.OnBehaviorInit(b)
	})
	if g.accepts(b) {
		g.Mount(b)
	}
}

func (g *Game) accepts(b behavior.Behavior) bool {
	if _, ok := b.(module.Module); ok {
		return false
	}
	ext := behavior.ExtensionOf(b)
	return ext.All() || ext.Includes(Name) || ext.Includes(g)
}

// Options returns the construction options.
func (g *Game) Options() Options { return g.opts }

// Stage returns the live root node.
func (g *Game) Stage() *node.Node { return g.stage }

// Modules returns the instantiated subsystems.
func (g *Game) Modules() *module.Set { return g.modules }

// Module returns the subsystem registered for key, a definition or a name.
// A base definition finds its registered specialization.
func (g *Game) Module(key any) module.Module {
	m, _ := g.modules.Get(key)
	return m
}

// ModuleOf returns the first subsystem of type T.
func ModuleOf[T module.Module](g *Game) (T, bool) {
	var zero T
	if g == nil {
		return zero, false
	}
	for _, m := range g.modules.All() {
		if t, ok := m.(T); ok {
			return t, true
		}
	}
	return zero, false
}

// Broadcast fires name on the root and on every subsystem that declared it.
func (g *Game) Broadcast(name string, args ...any) {
	if m := g.Manager(); m != nil && m.Has(name) {
		_ = g.Trigger(name, args...)
	}
	g.modules.Each(func(mod module.Module) {
		if m := mod.Manager(); m != nil && m.Has(name) {
			_ = mod.Trigger(name, args...)
		}
	})
}

// MountView attaches view to the stage, surrounded by OnBeforeMount and
// OnAfterMount.
func (g *Game) MountView(view View) error {
	if view == nil {
		return behavior.Report(core.Errorf(core.ErrUsage, "nil view"))
	}
	if g.view != nil {
		return behavior.Report(ErrAlreadyMounted)
	}
	g.Broadcast(OnBeforeMount, g)
	if err := view.Attach(g.stage); err != nil {
		g.opts.Logger.Error("Failed to attach view", "error", err)
		return err
	}
	g.view = view
	g.Broadcast(OnAfterMount, g)
	return nil
}

// View returns the mounted view, or nil.
func (g *Game) View() View { return g.view }

// Start fires OnGameStart. Starting twice is a no-op.
func (g *Game) Start() {
	if g.started {
		return
	}
	g.started = true
	if tl, ok := g.opts.Logger.(timerLogger); ok {
		defer tl.StartTimer(OnGameStart)()
	}
	g.opts.Logger.Info("Game started")
	g.Broadcast(OnGameStart, g)
}

type timerLogger interface {
	StartTimer(op string) func()
}

// Started reports whether Start ran.
func (g *Game) Started() bool { return g.started }

// String implements fmt.Stringer.
func (g *Game) String() string { return Name }
