package domain

import (
	"reflect"
	"testing"
)

func TestNormalizeTags(t *testing.T) {
	tests := []struct {
		name     string
		input    []string
		expected StringArray
	}{
		{
			name:     "lowercases and trims",
			input:    []string{"  GoLang ", "Web Dev"},
			expected: StringArray{"golang", "web dev"},
		},
		{
			name:     "deduplicates preserving first occurrence",
			input:    []string{"go", "GO", "rust", "go"},
			expected: StringArray{"go", "rust"},
		},
		{
			name:     "drops empty entries",
			input:    []string{"", "  ", "go"},
			expected: StringArray{"go"},
		},
		{
			name:     "truncates to max tags",
			input:    []string{"a", "b", "c", "d", "e"},
			expected: StringArray{"a", "b", "c"},
		},
		{
			name:     "nil input",
			input:    nil,
			expected: StringArray{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeTags(tt.input)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("NormalizeTags(%v) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestNormalizeTags_Idempotent(t *testing.T) {
	input := []string{"  Learning ", "GO", "go", "extra", "more"}
	once := NormalizeTags(input)
	twice := NormalizeTags(once)
	if !reflect.DeepEqual(once, twice) {
		t.Errorf("normalization not idempotent: %v != %v", once, twice)
	}
}

func TestStringArray_ContainsRemove(t *testing.T) {
	arr := StringArray{"a", "b", "c"}

	if !arr.Contains("b") {
		t.Error("expected Contains(b) to be true")
	}
	if arr.Contains("z") {
		t.Error("expected Contains(z) to be false")
	}

	removed := arr.Remove("b")
	if !reflect.DeepEqual(removed, StringArray{"a", "c"}) {
		t.Errorf("Remove(b) = %v, want [a c]", removed)
	}
	// Original untouched
	if !reflect.DeepEqual(arr, StringArray{"a", "b", "c"}) {
		t.Errorf("Remove mutated the receiver: %v", arr)
	}
}

func TestClip_Title(t *testing.T) {
	tests := []struct {
		name     string
		clip     Clip
		expected string
	}{
		{
			name:     "custom title wins",
			clip:     Clip{CustomTitle: "My Clip", WatchURL: "https://youtube.com/watch?v=x"},
			expected: "My Clip",
		},
		{
			name:     "whitespace title falls back to watch url",
			clip:     Clip{CustomTitle: "   ", WatchURL: "https://youtube.com/watch?v=x"},
			expected: "https://youtube.com/watch?v=x",
		},
		{
			name:     "falls back to original url last",
			clip:     Clip{OriginalURL: "https://example.com/v.mp4"},
			expected: "https://example.com/v.mp4",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.clip.Title(); got != tt.expected {
				t.Errorf("Title() = %q, want %q", got, tt.expected)
			}
		})
	}
}
