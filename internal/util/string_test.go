// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package util

import (
	"testing"

	"github.com/mattn/go-runewidth"
)

func TestTruncateString(t *testing.T) {
	cases := []struct {
		name     string
		input    string
		maxWidth int
		want     string
	}{
		{"fits", "hello", 10, "hello"},
		{"exact", "hello", 5, "hello"},
		{"truncated", "hello world", 8, "hello w…"},
		{"zero width", "hello", 0, ""},
		{"width one", "hello", 1, "h"},
		{"empty", "", 5, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := TruncateString(tc.input, tc.maxWidth); got != tc.want {
				t.Errorf("TruncateString(%q, %d) = %q, want %q", tc.input, tc.maxWidth, got, tc.want)
			}
		})
	}
}

func TestTruncateStringWideRunes(t *testing.T) {
	// CJK runes are two cells wide; truncation must count cells, not runes.
	got := TruncateString("日本語テスト", 7)
	if w := runewidth.StringWidth(got); w > 7 {
		t.Errorf("truncated width %d exceeds limit: %q", w, got)
	}
}

func TestPadString(t *testing.T) {
	if got := PadString("ab", 5); got != "ab   " {
		t.Errorf("PadString(ab, 5) = %q", got)
	}
	if got := PadString("abcdef", 4); runewidth.StringWidth(got) != 4 {
		t.Errorf("PadString should truncate to width, got %q", got)
	}
	if got := PadString("ab", 0); got != "" {
		t.Errorf("PadString(ab, 0) = %q, want empty", got)
	}
	if got := PadString("ab", -3); got != "" {
		t.Errorf("PadString(ab, -3) = %q, want empty", got)
	}
}

func TestSanitizeLine(t *testing.T) {
	if got := SanitizeLine("  one\r\ntwo\nthree  "); got != "one two three" {
		t.Errorf("SanitizeLine = %q", got)
	}
}
