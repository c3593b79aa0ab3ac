package settings_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atomicstack/vnc-launcher/internal/settings"
)

func TestLoadViewerDefaults(t *testing.T) {
	s, _ := openTemp(t)
	v := settings.LoadViewer(s)
	assert.Equal(t, "", v.Host)
	assert.Equal(t, 5900, v.Port)
	assert.Zero(t, v.ProxyID)
	assert.False(t, v.ViewOnly)
	assert.Empty(t, v.Recent)
}

func TestSaveViewerRoundTrip(t *testing.T) {
	s, path := openTemp(t)
	v := settings.Viewer{
		Host:     "desk.example",
		Port:     5901,
		ProxyID:  1234,
		Display:  1,
		ViewOnly: true,
		Scaled:   true,
		Recent:   []string{"desk.example::5901", "other:2"},
	}
	require.NoError(t, settings.SaveViewer(s, v))

	reopened, err := settings.Open(path)
	require.NoError(t, err)
	assert.Equal(t, v, settings.LoadViewer(reopened))
}

func TestSaveViewerReplacesRecentSection(t *testing.T) {
	s, _ := openTemp(t)
	require.NoError(t, settings.SaveViewer(s, settings.Viewer{Recent: []string{"a", "b", "c"}}))
	require.NoError(t, settings.SaveViewer(s, settings.Viewer{Recent: []string{"z"}}))
	assert.Equal(t, []string{"z"}, settings.LoadViewer(s).Recent)
}

func TestRememberDeduplicatesAndCaps(t *testing.T) {
	var v settings.Viewer
	for i := 0; i < settings.MaxRecent+3; i++ {
		v.Remember(fmt.Sprintf("host%d", i))
	}
	require.Len(t, v.Recent, settings.MaxRecent)
	assert.Equal(t, "host12", v.Recent[0])

	v.Remember(" host5 ")
	assert.Equal(t, "host5", v.Recent[0])
	assert.Len(t, v.Recent, settings.MaxRecent)
	assert.Equal(t, 1, countOf(v.Recent, "host5"))

	v.Remember("  ")
	assert.Equal(t, "host5", v.Recent[0])

	v.Forget("host5")
	assert.NotContains(t, v.Recent, "host5")
}

func countOf(list []string, s string) int {
	n := 0
	for _, item := range list {
		if item == s {
			n++
		}
	}
	return n
}
