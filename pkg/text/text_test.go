package text

import (
	"reflect"
	"testing"
)

func TestWrap_ShortLabel(t *testing.T) {
	got := Wrap("Hello", 20)
	if !reflect.DeepEqual(got, []string{"Hello"}) {
		t.Errorf("Wrap() = %v, want [Hello]", got)
	}
}

func TestWrap_ExactFit(t *testing.T) {
	got := Wrap("Hello", 5)
	if !reflect.DeepEqual(got, []string{"Hello"}) {
		t.Errorf("Wrap() = %v, want [Hello]", got)
	}
}

func TestWrap_LongLabel(t *testing.T) {
	got := Wrap("This is a long label", 10)
	want := []string{"This is a", "long label"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Wrap() = %v, want %v", got, want)
	}
}

func TestWrap_ZeroWidthDisables(t *testing.T) {
	got := Wrap("Hello World", 0)
	if !reflect.DeepEqual(got, []string{"Hello World"}) {
		t.Errorf("Wrap() = %v, want [Hello World]", got)
	}
}

func TestWrap_EmptyLabel(t *testing.T) {
	got := Wrap("", 10)
	if !reflect.DeepEqual(got, []string{""}) {
		t.Errorf("Wrap() = %v, want one empty line", got)
	}
}

func TestWrap_MultipleLines(t *testing.T) {
	got := Wrap("one two three four five", 8)
	want := []string{"one two", "three", "four", "five"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Wrap() = %v, want %v", got, want)
	}
}

func TestWrap_WideRunes(t *testing.T) {
	// CJK runes are two columns wide; words wrap on whitespace only.
	got := Wrap("日本 語テスト", 6)
	want := []string{"日本", "語テスト"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Wrap() = %v, want %v", got, want)
	}
}

func TestWidth_WideRunes(t *testing.T) {
	if got := Width("日本"); got != 4 {
		t.Errorf("Width(日本) = %d, want 4", got)
	}
	if got := Width("abc"); got != 3 {
		t.Errorf("Width(abc) = %d, want 3", got)
	}
}

func TestMaxLineWidth(t *testing.T) {
	if got := MaxLineWidth([]string{"a", "abc", "ab"}); got != 3 {
		t.Errorf("MaxLineWidth() = %d, want 3", got)
	}
	if got := MaxLineWidth(nil); got != 0 {
		t.Errorf("MaxLineWidth(nil) = %d, want 0", got)
	}
}
