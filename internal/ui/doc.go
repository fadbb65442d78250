// Package ui provides the terminal interface of trapmeta, built on Bubble Tea.
//
// # Architecture Overview
//
// The Model never changes editor state itself. Key presses and mouse events
// become editor intents which the controller applies to its store; the
// Model re-reads the resulting snapshot and renders it. Local intents run
// inline on the event loop. Remote intents run as tea.Cmd closures so the
// screen keeps drawing while the server works, and their Outcome returns as
// an outcomeMsg. Follow-up intents listed in an Outcome, such as the silent
// footer extraction after an image load, are dispatched the same way.
//
// # Layout
//
//   - Header: logo, picture details, position, and a spinner while remote
//     work is in flight
//   - Command bar: key hints for the current state, disabled hints faint
//   - Preview pane: the image rendered in half blocks, with the selection
//     box drawn while dragging
//   - Metadata pane: one row per field with an inline value editor
//   - Debug pane: the controller's debug log in a viewport
//
// Overlays replace the screen in this order: alerts, help, modal dialogs
// (add field, footer text), then the folder browser.
//
// # Region Selection
//
// The program runs with mouse cell motion. A cell covers two display pixels
// vertically, so screen cells map to pane pixels as (x, 2y) relative to the
// preview interior. While a gesture is active Escape is the only key that
// responds.
//
// # Themes
//
// Three palettes (Nightfox, Kanagawa, Slate) cycle with T. The choice is
// saved to the preferences file.
package ui
