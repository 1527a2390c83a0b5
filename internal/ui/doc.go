// Package ui contains the Bubble Tea program that drives the image sorter.
// The Model focuses on message orchestration while dedicated helpers own
// input, forms, rendering and host/backend plumbing.
//
// Message flow:
//   - Bubble Tea invokes Model.Update with incoming messages.
//   - Key presses go to the active form (class label or directory prompt)
//     first. When no form is active the message is routed through a typed
//     handler registry so each tea.Msg is handled by a focused function.
//   - Browse keys call into the session through the command bus, which runs
//     the action synchronously and traces its outcome. Errors land on the
//     status line.
//
// State ownership:
//   - session.Session owns directories, the file list, the current index and
//     the class roster. The model never mutates those fields directly.
//   - Directory suggestions for the path prompt live in ui/state.Picker.
//
// Host interactions:
//   - Update notifications arrive on the host's event channel and are waited
//     for with waitForHostNote; they drive the banner shown under the header.
//   - A backend.Watcher streams directory changes; each one re-lists the
//     source directory through Session.Refresh.
//   - The first WindowSizeMsg marks the UI ready and tells the host, which
//     then starts the update check.
package ui
