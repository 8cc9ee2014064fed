// Package ui contains the Bubble Tea program that presents a page of
// searchable selectors in a terminal popup.
//
// Message flow:
//   - Bubble Tea invokes Model.Update with incoming messages, which are routed
//     through a typed handler registry so each tea.Msg is handled by a focused
//     function (keys, mouse, window size, values watcher events).
//   - Key and mouse handlers translate terminal input into page events:
//     focus moves, clicks on element IDs, key presses and text edits. The
//     page forwards them to the selector that owns the element and to the
//     page-wide dismiss coordinator.
//   - After every message finishUpdate projects selector state back onto the
//     per-field textinput models and listbox viewports.
//
// State ownership:
//   - Selection state lives in internal/combobox; the UI only keeps the
//     textinput models that draw each search field and a scroll offset per
//     listbox (internal/ui/state.Viewport).
//   - View records which element each screen row shows so a left click can be
//     delivered to the page as a click on that element.
//
// Backend interactions:
//   - An optional backend.Watcher streams values file events; the dispatcher
//     applies them as external changes on the controls, which the selectors
//     observe like any other change notification.
package ui
