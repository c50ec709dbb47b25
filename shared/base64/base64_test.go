package base64_test

import (
	"testing"

	"quiethours/shared/base64"
)

func TestGetContentType(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "png data uri",
			input:    "data:image/png;base64,iVBORw0KGgo=",
			expected: "image/png",
		},
		{
			name:     "jpeg data uri",
			input:    "data:image/jpeg;base64,/9j/4AAQ",
			expected: "image/jpeg",
		},
		{
			name:     "missing marker",
			input:    "data:image/png",
			expected: "",
		},
		{
			name:     "plain base64",
			input:    "iVBORw0KGgo=",
			expected: "",
		},
		{
			name:     "empty string",
			input:    "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := base64.GetContentType(tt.input); result != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, result)
			}
		})
	}
}

func TestDecode(t *testing.T) {
	t.Run("valid data uri", func(t *testing.T) {
		data, err := base64.Decode("data:text/plain;base64,aGVsbG8=")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if string(data) != "hello" {
			t.Errorf("expected 'hello', got %q", string(data))
		}
	})

	t.Run("missing marker", func(t *testing.T) {
		if _, err := base64.Decode("aGVsbG8="); err == nil {
			t.Error("expected error for missing data URI marker")
		}
	})

	t.Run("invalid payload", func(t *testing.T) {
		if _, err := base64.Decode("data:text/plain;base64,%%%"); err == nil {
			t.Error("expected error for invalid base64 payload")
		}
	})
}
