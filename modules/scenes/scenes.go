package scenes

import (
	"fmt"
	"slices"

	"github.com/mitchellh/mapstructure"

	"github.com/hupe1980/stagekit/behavior"
	"github.com/hupe1980/stagekit/core"
	"github.com/hupe1980/stagekit/game"
	"github.com/hupe1980/stagekit/module"
	"github.com/hupe1980/stagekit/node"
)

// Lifecycles fired on the scene manager for behaviors that extend it.
const (
	OnSceneOpen  = "OnSceneOpen"
	OnSceneClose = "OnSceneClose"
)

var managerLifecycles = behavior.Declare(OnSceneOpen, OnSceneClose)

// Definition is the family root of scene managers.
var Definition = module.Define("SceneManager", module.Root, New)

// ErrNoStage is returned by Open when no application root is live.
var ErrNoStage = core.Errorf(core.ErrUsage, "scene manager has no stage")

// Options configures the scene cache.
type Options struct {
	// Cache keeps loaded scenes with an id for reuse.
	Cache bool `mapstructure:"cache"`
	// MaxCached bounds the cache; the oldest scene is evicted first. Zero
	// means unbounded.
	MaxCached int `mapstructure:"max_cached"`
}

// DefaultOptions enables an unbounded cache.
var DefaultOptions = Options{Cache: true}

// Factory builds a scene root.
type Factory func() *node.Node

// Manager loads, caches and swaps scenes under the stage.
type Manager struct {
	module.Base
	opts    Options
	cache   map[string]*node.Node
	order   []string
	current *node.Node
	stage   func() *node.Node
}

// New builds a scene manager. It accepts an Options value or a map decoded
// with mapstructure, as produced by configuration files.
func New(args ...any) (module.Module, error) {
	opts := DefaultOptions
	for _, arg := range args {
		switch v := arg.(type) {
		case Options:
			opts = v
		case map[string]any:
			if err := decodeOptions(v, &opts); err != nil {
				return nil, err
			}
		case nil:
		default:
			return nil, fmt.Errorf("unsupported scene manager argument %T", arg)
		}
	}
	if opts.MaxCached < 0 {
		return nil, fmt.Errorf("max_cached must not be negative, got %d", opts.MaxCached)
	}
	return &Manager{opts: opts, cache: map[string]*node.Node{}, stage: currentStage}, nil
}

func decodeOptions(in map[string]any, opts *Options) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		TagName:          "mapstructure",
		Result:           opts,
	})
	if err != nil {
		return err
	}
	return dec.Decode(in)
}

func currentStage() *node.Node {
	if g, ok := game.Current(); ok {
		return g.Stage()
	}
	return nil
}

// Lifecycles declares OnSceneOpen and OnSceneClose.
func (m *Manager) Lifecycles() []string { return managerLifecycles }

// Options returns the active options.
func (m *Manager) Options() Options { return m.opts }

// Load returns the scene cached under id, or builds one with factory. It then
// fires OnSceneLoad with args and OnSceneBeforeOpen on the scene.
func (m *Manager) Load(factory Factory, id string, args ...any) *node.Node {
	scene, ok := m.Cached(id)
	if !ok {
		if factory == nil {
			return nil
		}
		scene = factory()
		if scene == nil {
			return nil
		}
		m.store(id, scene)
	}
	m.fireLoad(scene, args)
	return scene
}

// fireLoad delivers the load hooks even when a cached scene went dormant
// after closing. A scene still off stage afterwards is dormant again.
func (m *Manager) fireLoad(scene *node.Node, args []any) {
	if mgr := scene.Manager(); mgr != nil && !mgr.Enabled() {
		mgr.SetEnabled(true)
		defer func() {
			if !scene.OnStage() {
				mgr.SetEnabled(false)
			}
		}()
	}
	_ = scene.Trigger(node.OnSceneLoad, args...)
	_ = scene.Trigger(node.OnSceneBeforeOpen)
}

// Cached returns the scene cached under id.
func (m *Manager) Cached(id string) (*node.Node, bool) {
	if id == "" {
		return nil, false
	}
	scene, ok := m.cache[id]
	return scene, ok
}

func (m *Manager) store(id string, scene *node.Node) {
	if id == "" || !m.opts.Cache {
		return
	}
	m.cache[id] = scene
	m.order = append(m.order, id)
	for m.opts.MaxCached > 0 && len(m.order) > m.opts.MaxCached {
		evicted := m.order[0]
		m.order = m.order[1:]
		old := m.cache[evicted]
		delete(m.cache, evicted)
		if old != m.current {
			old.Destroy(node.WithChildren())
		}
	}
}

func (m *Manager) isCached(scene *node.Node) bool {
	for _, id := range m.order {
		if m.cache[id] == scene {
			return true
		}
	}
	return false
}

// Open replaces the current scene with scene under the stage and fires
// OnSceneOpen.
func (m *Manager) Open(scene *node.Node) error {
	if scene == nil {
		return behavior.Report(core.Errorf(core.ErrUsage, "open nil scene"))
	}
	if scene == m.current {
		return nil
	}
	stage := m.stage()
	if stage == nil {
		return behavior.Report(ErrNoStage)
	}
	m.Close()
	if err := stage.AddChild(scene); err != nil {
		return err
	}
	m.current = scene
	_ = m.Trigger(OnSceneOpen, scene)
	return nil
}

// Close removes the current scene from the stage and fires OnSceneClose.
// Scenes that are not cached are destroyed.
func (m *Manager) Close() {
	prev := m.current
	if prev == nil {
		return
	}
	m.current = nil
	if parent := prev.Parent(); parent != nil {
		_ = parent.RemoveChild(prev)
	}
	_ = m.Trigger(OnSceneClose, prev)
	if !m.isCached(prev) {
		prev.Destroy(node.WithChildren())
	}
}

// Current returns the open scene, or nil.
func (m *Manager) Current() *node.Node { return m.current }

// CachedIDs returns the cached scene ids, oldest first.
func (m *Manager) CachedIDs() []string { return slices.Clone(m.order) }
