package table

import (
	"strings"
	"testing"
)

func TestFormatPadsColumns(t *testing.T) {
	rows := [][]string{
		{"1", "cats", "12"},
		{"2", "dogs and more", "3"},
	}
	got := Format(rows, []Alignment{AlignLeft, AlignLeft, AlignRight})
	want := []string{
		"1  cats           12",
		"2  dogs and more   3",
	}
	if strings.Join(got, "\n") != strings.Join(want, "\n") {
		t.Fatalf("unexpected table:\n%s", strings.Join(got, "\n"))
	}
}

func TestFormatIgnoresANSIWidth(t *testing.T) {
	rows := [][]string{
		{"\x1b[1m1\x1b[0m", "x"},
		{"22", "y"},
	}
	got := Format(rows, nil)
	if got[0] != "\x1b[1m1\x1b[0m   x" {
		t.Fatalf("expected styled cell padded by visible width, got %q", got[0])
	}
}

func TestFormatRaggedRows(t *testing.T) {
	got := Format([][]string{{"a"}, {"b", "c"}}, nil)
	if got[0] != "a" || got[1] != "b  c" {
		t.Fatalf("unexpected ragged output %q", got)
	}
	if Format(nil, nil) != nil {
		t.Fatalf("expected nil for no rows")
	}
}
