// Package game provides the application root.
//
// The root is a process-wide singleton built with New. Construction installs
// the root as the behavior runtime, so every behavior created afterwards is
// offered to each registered subsystem and to the root itself, and it
// instantiates the module registry, which locks it. A second New fails with
// core.ErrAlreadyConstructed until Reset is called.
//
//	if err := module.Register(scenes.Definition); err != nil {
//	    log.Fatal(err)
//	}
//	g, err := game.New(func(o *game.Options) {
//	    o.Logger = logging.NewSlogLogger(logging.LogLevelInfo, "text", false)
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	_ = g.MountView(game.NewHeadlessView())
//	g.Start()
package game
