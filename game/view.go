package game

import "github.com/hupe1980/stagekit/node"

// View is the display boundary. Attach receives the stage once, when the
// game is mounted.
type View interface {
	Attach(stage *node.Node) error
}

// ViewFunc adapts a function to View.
type ViewFunc func(stage *node.Node) error

// Attach calls f.
func (f ViewFunc) Attach(stage *node.Node) error { return f(stage) }

// HeadlessView records the stage without rendering it.
type HeadlessView struct {
	stage *node.Node
}

// NewHeadlessView creates an unattached headless view.
func NewHeadlessView() *HeadlessView { return &HeadlessView{} }

// Attach records stage.
func (v *HeadlessView) Attach(stage *node.Node) error {
	v.stage = stage
	return nil
}

// Stage returns the attached stage, or nil.
func (v *HeadlessView) Stage() *node.Node { return v.stage }
