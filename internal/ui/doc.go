// Package ui contains the Bubble Tea program of the remote desktop launcher.
// The Model type focuses on message orchestration while helpers own the
// menus, actions, prompt and rendering.
//
// Message flow:
//   - Bubble Tea invokes Model.Update with incoming messages. While the
//     connect prompt is open it receives every key press; otherwise each
//     tea.Msg is routed through a typed handler registry.
//   - Mouse messages go to the termhost.Host first, which turns them into
//     pointer calls on the menu bar or the context menu. Activating an item
//     queues a command; finishUpdate returns those commands together with
//     the dismiss timer ticks the menus armed during the update.
//   - Timer ticks come back as termhost.TimerMsg and are fired on the host,
//     so menu callbacks always run on the event loop.
//
// Actions:
//   - Blocking work (launching or stopping the viewer, writing the settings
//     file) runs through the internal/ui/command bus and reports back with
//     an actionResultMsg.
//   - A session.Session streams connection events; Update waits for them
//     and shows connects, disconnects and lost connections in the status
//     line.
package ui
