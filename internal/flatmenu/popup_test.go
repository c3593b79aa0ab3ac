package flatmenu_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atomicstack/vnc-launcher/internal/flatmenu"
	"github.com/atomicstack/vnc-launcher/internal/testutil"
)

func newContextPopup(activated *[]string) *flatmenu.Popup {
	p := flatmenu.NewPopup()
	record := func(item *flatmenu.Item) { *activated = append(*activated, item.Text) }
	p.Items().AddText("Cut", record)
	p.Items().AddText("Copy", record)
	p.Items().AddSeparator()
	p.Items().AddText("Paste", record)
	return p
}

func TestNewPopupDefaults(t *testing.T) {
	p := flatmenu.NewPopup()
	assert.True(t, p.IsPopup())
	assert.False(t, p.Visible())
	assert.Equal(t, flatmenu.Rect{W: 80, H: 10}, p.Bounds())
	assert.Equal(t, 300, int(p.DismissInterval().Milliseconds()))
	assert.True(t, p.HoverBackDrawing())
	assert.False(t, p.HoverBorderDrawing())
	assert.False(t, p.BorderDrawing())
}

func TestTrackAlignments(t *testing.T) {
	cases := []struct {
		name string
		h    flatmenu.HAlign
		v    flatmenu.VAlign
	}{
		{name: "left top", h: flatmenu.AlignLeft, v: flatmenu.AlignTop},
		{name: "right bottom", h: flatmenu.AlignRight, v: flatmenu.AlignBottom},
		{name: "center middle", h: flatmenu.AlignCenter, v: flatmenu.AlignMiddle},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var activated []string
			host := testutil.NewHost()
			p := newContextPopup(&activated)
			p.TrackAligned(host, tc.h, tc.v, 100, 100)
			require.True(t, p.Visible())
			b := p.Bounds()
			switch tc.h {
			case flatmenu.AlignLeft:
				assert.Equal(t, 99, b.X)
			case flatmenu.AlignRight:
				assert.Equal(t, 101, b.Right())
			case flatmenu.AlignCenter:
				assert.Equal(t, 100-b.W/2, b.X)
			}
			switch tc.v {
			case flatmenu.AlignTop:
				assert.Equal(t, 99, b.Y)
			case flatmenu.AlignBottom:
				assert.Equal(t, 101, b.Bottom())
			case flatmenu.AlignMiddle:
				assert.Equal(t, 100-b.H/2, b.Y)
			}
			assert.Same(t, p.Menu, host.Top())
		})
	}
}

func TestTrackUsesLaidOutSize(t *testing.T) {
	var activated []string
	host := testutil.NewHost()
	p := newContextPopup(&activated)
	p.TrackAligned(host, flatmenu.AlignRight, flatmenu.AlignBottom, 100, 100)
	assert.Equal(t, 80, p.Bounds().W)
	assert.Greater(t, p.Bounds().H, 10)
}

func TestTrackNoOps(t *testing.T) {
	host := testutil.NewHost()
	empty := flatmenu.NewPopup()
	empty.Track(host, 10, 10)
	assert.False(t, empty.Visible())
	assert.Empty(t, host.Menus())

	var activated []string
	p := newContextPopup(&activated)
	p.Track(nil, 10, 10)
	assert.False(t, p.Visible())
}

func TestStandalonePopupClosesOnClick(t *testing.T) {
	var activated []string
	var highlights []string
	host := testutil.NewHost()
	p := newContextPopup(&activated)
	p.OnHighlight(func(item *flatmenu.Item) {
		if item != nil {
			highlights = append(highlights, item.Text)
		}
	})
	p.Track(host, 20, 20)
	p.PointerEnter()
	click(p.Menu, p.Items().At(1))

	assert.Equal(t, []string{"Copy"}, activated)
	assert.Equal(t, []string{"Copy"}, highlights)
	assert.False(t, p.Visible())
}

func TestStandalonePopupDismissesItselfOnTimer(t *testing.T) {
	var activated []string
	host := testutil.NewHost()
	p := newContextPopup(&activated)
	p.Track(host, 20, 20)
	p.PointerEnter()
	move(p.Menu, p.Items().At(0))
	p.PointerLeave()

	host.Advance(p.DismissInterval())
	assert.False(t, p.Visible())
	assert.Empty(t, activated)
}

func TestSeparatorIsSkippedByHitTesting(t *testing.T) {
	var activated []string
	host := testutil.NewHost()
	p := newContextPopup(&activated)
	p.Track(host, 20, 20)
	move(p.Menu, p.Items().At(0))
	move(p.Menu, p.Items().At(2))
	assert.Same(t, p.Items().At(0), p.Highlighted())
}

func TestCheckGlyphFollowsCheckedState(t *testing.T) {
	host := testutil.NewHost()
	p := flatmenu.NewPopup()
	viewOnly := p.Items().AddText("View only", func(*flatmenu.Item) {})
	viewOnly.SetStyle(flatmenu.StyleCheck)
	p.Track(host, 0, 0)

	mt := p.Metrics()
	r := viewOnly.Bounds()
	x := r.X - mt.CheckArea - mt.GutterGap
	y := r.Y + r.H/2 - 11/2

	c := testutil.NewCanvas()
	p.Paint(c)
	assert.False(t, c.HasLine(x+2, y+7, x+4, y+9))

	viewOnly.Checked = true
	c.Reset()
	p.Paint(c)
	assert.True(t, c.HasLine(x+2, y+7, x+4, y+9))
	assert.True(t, c.HasLine(x+4, y+9, x+9, y+4))
	assert.Equal(t, r, viewOnly.Bounds(), "toggling Checked does not move the item")
}

func TestCheckItemsReserveGutter(t *testing.T) {
	host := testutil.NewHost()
	p := flatmenu.NewPopup()
	plain := p.Items().AddText("Plain", nil)
	p.Track(host, 0, 0)
	withoutGutter := plain.Bounds().X

	radio := p.Items().AddText("Display 0", nil)
	radio.SetStyle(flatmenu.StyleRadio)
	radio.Radio = true
	p.Layout(nil)
	mt := p.Metrics()
	assert.Equal(t, withoutGutter+mt.CheckArea+mt.GutterGap, plain.Bounds().X)

	c := testutil.NewCanvas()
	p.Paint(c)
	rr := radio.Bounds()
	var dot bool
	for _, op := range c.Filter("fill") {
		if op.Rect.W == 5 && op.Rect.H == 5 && op.Rect.Y == rr.Y+rr.H/2-2 {
			dot = true
		}
	}
	assert.True(t, dot, "radio mark is painted")
}

func TestHoverStylingUsesHoverColors(t *testing.T) {
	host := testutil.NewHost()
	var activated []string
	p := newContextPopup(&activated)
	pal := p.Palette()
	pal.HoverText = flatmenu.DefaultPalette().HoverBack
	p.SetPalette(pal)
	p.SetHoverBorderDrawing(true)
	p.Track(host, 0, 0)
	move(p.Menu, p.Items().At(0))

	c := testutil.NewCanvas()
	p.Paint(c)
	op, ok := c.TextOp("Cut")
	require.True(t, ok)
	assert.Equal(t, pal.HoverText, op.Color)

	var stroked bool
	for _, s := range c.Filter("stroke") {
		if s.Rect == p.Items().At(0).Bounds() {
			stroked = true
		}
	}
	assert.True(t, stroked)
}
