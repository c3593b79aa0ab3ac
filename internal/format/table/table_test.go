package table

import (
	"reflect"
	"testing"
)

func TestFormatAlignsColumns(t *testing.T) {
	rows := [][]string{
		{"desk", "5900", "display 0"},
		{"build-server", "5901", "display 1"},
	}
	got := Format(rows, []Alignment{AlignLeft, AlignRight})
	want := []string{
		"desk          5900  display 0",
		"build-server  5901  display 1",
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected layout:\n%q\nwant\n%q", got, want)
	}
}

func TestFormatMeasuresWideRunes(t *testing.T) {
	got := Format([][]string{{"日本", "x"}, {"abcd", "y"}}, nil)
	want := []string{"日本  x", "abcd  y"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected wide runes to count two cells, got %q", got)
	}
}

func TestFormatPadsShortRows(t *testing.T) {
	got := Format([][]string{{"a", "b", "c"}, {"dd"}}, nil)
	want := []string{"a   b  c", "dd"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected layout %q", got)
	}
}

func TestFormatEmpty(t *testing.T) {
	if got := Format(nil, nil); got != nil {
		t.Fatalf("expected nil for no rows, got %q", got)
	}
}
