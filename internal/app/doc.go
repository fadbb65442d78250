// Package app is the composition root of trapmeta.
//
// # Overview
//
// Setup loads the TOML configuration, opens the rotating log file and builds
// the HTTP client for the metadata server. Run adds the editor controller and
// its state store, then hands both to the TUI and blocks until the user quits
// or the context is cancelled. Export reuses the same environment for the
// headless YAML dump of a folder.
//
// # Startup
//
//  1. Load ~/.config/trapmeta/config.toml (TRAPMETA_SERVER and --server override the server)
//  2. Open the log file with the configured level
//  3. Load preferences for the theme and the last confirmed folder
//  4. Seed the state store with the configured field lists and that folder
//  5. Start the TUI
//
// # Data Flow
//
//	┌──────────────┐    intents    ┌──────────────┐   HTTP   ┌────────┐
//	│   ui.Model   │ ────────────▶ │  Controller  │ ───────▶ │ server │
//	└──────┬───────┘               └──────┬───────┘          └────────┘
//	       │ Snapshot()                   │ Apply()
//	       ▼                              ▼
//	┌──────────────────────────────────────────────┐
//	│                 state.Store                  │
//	└──────────────────────────────────────────────┘
//
// Confirmed folders are written back to the preferences file so the next
// session can load them with a single key.
package app
