// Package config loads run settings from a TOML file and STAGEKIT_*
// environment variables, builds the configured logger and registers the
// configured modules.
//
// A file looks like:
//
//	width = 1280
//	height = 720
//
//	[log]
//	level = "debug"
//	format = "console"
//
//	[[modules]]
//	name = "SceneManager"
//	options = { cache = true, max_cached = 4 }
package config
