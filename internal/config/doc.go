// Package config loads trapmeta's TOML configuration.
//
// # Resolution
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/trapmeta/config.toml
//  3. A missing file yields Default()
//  4. Blank or absent keys keep their defaults
//  5. TRAPMETA_SERVER, when set, replaces the server URL
//
// # TOML Format
//
//	server = "http://127.0.0.1:5000"
//	log_file = "~/.local/state/trapmeta/trapmeta.log"
//	log_level = "info"
//	request_timeout = "2m"
//
//	[fields]
//	common = ["Species", "Count", "Behavior", "Weather", "Temperature_C",
//	          "Temperature_F", "Location", "Camera_ID", "Researcher", "Notes"]
//	readonly = ["filename", "size_mb", "dimensions"]
//
//	[selection]
//	min_size = 20
//
//	[debug]
//	max_chars = 500
//
// The field lists are injected into the metadata form rather than hardcoded
// there, so a deployment can offer a different set of always-present fields.
package config
