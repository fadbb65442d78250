// Package editor is the application controller.
//
// The UI turns key presses and mouse events into Intent values and hands them
// to Controller.Dispatch. Local intents (field edits, selector gestures,
// browser highlights) only transition the state.Store and return at once.
// Remote intents call the server through trapapi and must run off the UI
// goroutine; the UI learns about their effects by re-reading the snapshot
// when Dispatch returns.
//
// Results of image loads, footer extraction and identification carry the
// session generation they were started under. A result whose generation or
// index no longer matches is logged and dropped, so a slow response for one
// image never writes into the form of another.
//
// Every failure becomes an Outcome.Alert except automatic footer extraction,
// which only writes to the debug buffer.
package editor
