// Package config loads the layout and run configuration.
//
// Sources are layered with koanf, later wins: the embedded defaults, then
// .relink.toml or relink.toml at the repository root, then RELINK_* variables.
package config
