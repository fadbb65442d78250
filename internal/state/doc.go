// Package state holds the editor's state as immutable snapshot values.
//
// Each workflow has its own value type with transition methods that return a
// new value instead of mutating the receiver:
//
//   - Session: loaded folder, current index, total, metadata and picture
//   - Form: rendered metadata rows, payload collection, footer and
//     identification merges
//   - Selector: the Idle, Selecting, Dragging region selector
//   - Browser: folder picker with pending and committed selections
//   - DebugLog: the rolling diagnostic buffer
//
// Snapshot groups them, and Store serializes transitions with Apply so the
// controller's request goroutines and the UI never observe a torn state.
// Snapshot copies returned by the Store share no slices with the stored value.
package state
