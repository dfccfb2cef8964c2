// Package stagekit is the entry point for applications built on the behavior
// runtime. It re-exports the few calls most programs need:
//  1. Define and RegisterModule subsystems before construction
//  2. New builds the application root and instantiates the subsystems
//  3. Mount behaviors on nodes below the root's stage
//
// The packages behind it (behavior, module, node, game) stay usable directly
// when finer control is needed.
package stagekit

import (
	"github.com/hupe1980/stagekit/behavior"
	"github.com/hupe1980/stagekit/game"
	"github.com/hupe1980/stagekit/module"
)

// Options configures the application root.
type Options = game.Options

// New builds the application root. Subsystems registered with RegisterModule
// are instantiated unless Options.Registry points elsewhere.
func New(optFns ...func(o *Options)) (*game.Game, error) {
	return game.New(optFns...)
}

// Current returns the live application root.
func Current() (*game.Game, bool) { return game.Current() }

// Define declares a subsystem definition. Pass module.Root as parent to start
// a new family, or an existing definition to specialize it.
func Define(name string, parent *module.Definition, factory module.Factory) *module.Definition {
	return module.Define(name, parent, factory)
}

// RegisterModule adds def to the default registry.
func RegisterModule(def *module.Definition, args ...any) error {
	return module.Register(def, args...)
}

// ModuleOf returns the live root's subsystem of type T.
func ModuleOf[T module.Module]() (T, bool) {
	g, _ := game.Current()
	return game.ModuleOf[T](g)
}

// Mount attaches b to host and returns b with its concrete type.
func Mount[T behavior.Behavior](host behavior.Host, b T) T {
	host.Mount(b)
	return b
}
