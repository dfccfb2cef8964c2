// Package scenes provides the SceneManager subsystem.
//
// Register Definition before building the game, then load and open scenes:
//
//	_ = module.Register(scenes.Definition, map[string]any{"max_cached": 4})
//	g, _ := game.New()
//	sm, _ := game.ModuleOf[*scenes.Manager](g)
//	menu := sm.Load(newMenu, "menu")
//	_ = sm.Open(menu)
//
// Behaviors that extend the SceneManager receive OnSceneOpen and
// OnSceneClose.
package scenes
