// Package flatmenu implements flat-style menus drawn entirely by the
// application: a horizontal Bar and cascading Popup menus sharing one state
// machine.
//
// Menus do not own a window. A Host places them, routes pointer input to
// the menu under the pointer (PointerEnter, PointerLeave, PointerMove,
// PointerDown, PointerUp) and calls Paint with a Canvas when a menu is
// invalidated. Hosts also run the dismiss timer: when the pointer stays
// outside a menu and its open popups for DismissInterval, the chain closes.
//
// Every menu of a tree lives in an arena keyed by ID. Cascaded popups are
// created lazily the first time a submenu opens and are reused afterwards;
// Close releases a menu and its popup chain.
package flatmenu
