package flatmenu_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atomicstack/vnc-launcher/internal/flatmenu"
)

func TestNewItemDefaults(t *testing.T) {
	item := flatmenu.NewItem("")
	assert.Equal(t, "Item", item.Text)
	assert.Equal(t, flatmenu.StyleRegular, item.Style())
	assert.True(t, item.Enabled)
	assert.True(t, item.Selectable())
	assert.False(t, item.HasChildren())
	assert.Equal(t, "Item", item.String())
}

func TestAddTextKeepsTextAsGiven(t *testing.T) {
	list := flatmenu.NewItemList()
	item := list.AddText("", nil)
	require.NotNil(t, item)
	assert.Equal(t, "", item.Text)
	assert.Equal(t, "Open", list.AddText("Open", nil).Text)
}

func TestItemListCapacity(t *testing.T) {
	list := flatmenu.NewItemList()
	for i := 0; i < flatmenu.MaxItems; i++ {
		require.True(t, list.Add(flatmenu.NewItem("entry")), "add %d", i)
	}
	assert.False(t, list.Add(flatmenu.NewItem("overflow")))
	assert.Nil(t, list.AddText("overflow", nil))
	assert.False(t, list.AddSeparator())
	assert.Equal(t, flatmenu.MaxItems, list.Len())
}

func TestItemListRemoveAndLookup(t *testing.T) {
	list := flatmenu.NewItemList()
	a := list.AddText("a", nil)
	b := list.AddText("b", nil)
	require.NotNil(t, a)
	require.NotNil(t, b)

	assert.Nil(t, list.At(-1))
	assert.Nil(t, list.At(2))
	assert.Same(t, b, list.At(1))

	assert.False(t, list.Add(nil))
	assert.False(t, list.Remove(flatmenu.NewItem("stranger")))
	assert.False(t, list.RemoveAt(5))
	assert.True(t, list.Remove(a))
	assert.Equal(t, 0, list.IndexOf(b))

	list.Clear()
	assert.Equal(t, 0, list.Len())
	assert.Equal(t, "ItemList: empty", list.String())
}

func TestItemListString(t *testing.T) {
	list := flatmenu.NewItemList()
	list.AddText("Open", nil)
	list.AddSeparator()
	assert.Equal(t, "ItemList:\n  Open\n  Separator", list.String())
}

func TestSeparatorIsNeverSelectableOrActivated(t *testing.T) {
	sep := flatmenu.NewSeparator()
	fired := false
	sep.OnActivate(func(*flatmenu.Item) { fired = true })
	sep.SetSelectable(true)

	assert.False(t, sep.Selectable())
	assert.False(t, sep.HasActivate())
	assert.False(t, sep.Activate())
	assert.False(t, fired)
	assert.Equal(t, "Separator", sep.String())
}

func TestSetStyleSeparatorDropsCallbacks(t *testing.T) {
	item := flatmenu.NewItem("Exit")
	item.OnActivate(func(*flatmenu.Item) {})
	require.True(t, item.HasActivate())

	item.SetStyle(flatmenu.StyleSeparator)
	assert.False(t, item.Selectable())
	assert.False(t, item.HasActivate())
}

func TestActivateRequiresEnabledLeaf(t *testing.T) {
	count := 0
	item := flatmenu.NewItem("Connect")
	item.OnActivate(func(*flatmenu.Item) { count++ })

	assert.True(t, item.Activate())
	assert.Equal(t, 1, count)

	item.Enabled = false
	assert.False(t, item.Activate())

	item.Enabled = true
	item.Children().AddText("child", nil)
	assert.False(t, item.Activate())
	assert.Equal(t, 1, count)
}

func TestCheckedIsNeverToggledByActivation(t *testing.T) {
	item := flatmenu.NewItem("View only")
	item.SetStyle(flatmenu.StyleCheck)
	item.OnActivate(func(*flatmenu.Item) {})
	item.Activate()
	assert.False(t, item.Checked)
}
