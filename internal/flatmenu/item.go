package flatmenu

import "strings"

// Style selects how an item is drawn and whether it can be activated.
type Style int

const (
	StyleRegular Style = iota
	StyleSeparator
	StyleCheck
	StyleRadio
)

func (s Style) String() string {
	switch s {
	case StyleSeparator:
		return "separator"
	case StyleCheck:
		return "check"
	case StyleRadio:
		return "radio"
	default:
		return "regular"
	}
}

// MaxItems is the capacity of an ItemList.
const MaxItems = 30

// ActivateFunc is invoked when the pointer is released over a leaf item.
type ActivateFunc func(item *Item)

// Item is a single menu entry. Checked and Radio are plain state: the menu
// never toggles them, callers do so from their activation callback.
type Item struct {
	Enabled bool
	Checked bool
	Radio   bool
	Text    string

	// Tag carries caller data, typically an action identifier.
	Tag interface{}

	style      Style
	selectable bool
	bounds     Rect
	children   *ItemList
	onActivate []ActivateFunc
}

// NewItem returns an enabled, selectable regular item. Empty text falls
// back to "Item".
func NewItem(text string) *Item {
	if text == "" {
		text = "Item"
	}
	return &Item{
		Enabled:    true,
		Text:       text,
		style:      StyleRegular,
		selectable: true,
		children:   NewItemList(),
	}
}

// NewSeparator returns a separator item.
func NewSeparator() *Item {
	item := NewItem("")
	item.Text = ""
	item.SetStyle(StyleSeparator)
	return item
}

func (it *Item) Style() Style { return it.style }

// SetStyle changes the item style. Switching to StyleSeparator makes the
// item unselectable and drops any activation callbacks.
func (it *Item) SetStyle(s Style) {
	it.style = s
	if s == StyleSeparator {
		it.selectable = false
		it.onActivate = nil
	}
}

func (it *Item) Selectable() bool { return it.selectable }

// SetSelectable is ignored for separators, which are never selectable.
func (it *Item) SetSelectable(v bool) {
	if it.style == StyleSeparator {
		return
	}
	it.selectable = v
}

// Bounds is the menu-local rectangle assigned by the last layout pass.
func (it *Item) Bounds() Rect { return it.bounds }

// Children is the submenu of this item. It is never nil.
func (it *Item) Children() *ItemList {
	if it.children == nil {
		it.children = NewItemList()
	}
	return it.children
}

// HasChildren reports whether the item opens a submenu.
func (it *Item) HasChildren() bool {
	return it.children != nil && it.children.Len() > 0
}

// OnActivate registers fn to run when the item is activated. Separators
// ignore registrations.
func (it *Item) OnActivate(fn ActivateFunc) {
	if fn == nil || it.style == StyleSeparator {
		return
	}
	it.onActivate = append(it.onActivate, fn)
}

// HasActivate reports whether any activation callback is registered.
func (it *Item) HasActivate() bool {
	return len(it.onActivate) > 0
}

// Activate runs the activation callbacks. Disabled, unselectable and
// submenu-owning items are never activated.
func (it *Item) Activate() bool {
	if !it.Enabled || !it.selectable || it.HasChildren() || len(it.onActivate) == 0 {
		return false
	}
	for _, fn := range it.onActivate {
		fn(it)
	}
	return true
}

func (it *Item) isSeparator() bool { return it.style == StyleSeparator }

func (it *Item) String() string {
	if it.style == StyleSeparator {
		return "Separator"
	}
	return it.Text
}

// ItemList is an ordered collection of at most MaxItems items.
type ItemList struct {
	items []*Item
}

func NewItemList() *ItemList {
	return &ItemList{}
}

// Add appends item. It returns false for a nil item or a full list.
func (l *ItemList) Add(item *Item) bool {
	if item == nil || len(l.items) >= MaxItems {
		return false
	}
	l.items = append(l.items, item)
	return true
}

// AddText creates and appends a regular item labelled text as given. It
// returns nil when the list is full.
func (l *ItemList) AddText(text string, fn ActivateFunc) *Item {
	if len(l.items) >= MaxItems {
		return nil
	}
	item := NewItem(text)
	item.Text = text
	item.OnActivate(fn)
	l.items = append(l.items, item)
	return item
}

// AddSeparator appends a separator.
func (l *ItemList) AddSeparator() bool {
	return l.Add(NewSeparator())
}

// Remove deletes the first occurrence of item.
func (l *ItemList) Remove(item *Item) bool {
	for i, candidate := range l.items {
		if candidate == item {
			return l.RemoveAt(i)
		}
	}
	return false
}

// RemoveAt deletes the item at index i.
func (l *ItemList) RemoveAt(i int) bool {
	if i < 0 || i >= len(l.items) {
		return false
	}
	l.items = append(l.items[:i], l.items[i+1:]...)
	return true
}

func (l *ItemList) Clear() {
	l.items = nil
}

// At returns the item at index i, or nil when i is out of range.
func (l *ItemList) At(i int) *Item {
	if i < 0 || i >= len(l.items) {
		return nil
	}
	return l.items[i]
}

func (l *ItemList) Len() int {
	if l == nil {
		return 0
	}
	return len(l.items)
}

// Items returns a copy of the list contents.
func (l *ItemList) Items() []*Item {
	return append([]*Item(nil), l.items...)
}

// IndexOf returns the position of item, or -1.
func (l *ItemList) IndexOf(item *Item) int {
	for i, candidate := range l.items {
		if candidate == item {
			return i
		}
	}
	return -1
}

func (l *ItemList) hasCheckOrRadio() bool {
	for _, item := range l.items {
		if item.style == StyleCheck || item.style == StyleRadio {
			return true
		}
	}
	return false
}

func (l *ItemList) String() string {
	if len(l.items) == 0 {
		return "ItemList: empty"
	}
	var b strings.Builder
	b.WriteString("ItemList:")
	for _, item := range l.items {
		b.WriteString("\n  ")
		b.WriteString(item.String())
	}
	return b.String()
}
