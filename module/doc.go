// Package module implements the subsystem registry.
//
// Subsystems are declared with Define, naming their parent definition. The
// outermost ancestor below Root is the family; a registry holds at most one
// definition per family, so a specialization replaces its base instead of
// running next to it:
//
//	var Audio = module.Define("Audio", module.Root, newAudio)
//	var MutedAudio = module.Define("MutedAudio", Audio, newMutedAudio)
//
//	_ = module.Register(MutedAudio)
//	err := module.Register(Audio) // core.ErrDuplicateFamily
//
// The application root instantiates the registry once, which locks it, and
// looks modules up by definition or name through the resulting Set.
package module
