package blogapi_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/netdepviet/blogadmin/pkg/blogapi"
)

func TestSlugify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"ascii title", "Hello World", "hello-world"},
		{"vietnamese diacritics", "Bài viết mới", "bai-viet-moi"},
		{"d with stroke", "Đà Nẵng đẹp", "da-nang-dep"},
		{"punctuation stripped", "What's new? (2026 edition!)", "whats-new-2026-edition"},
		{"whitespace runs collapse", "  too   many    spaces  ", "too-many-spaces"},
		{"existing hyphens kept", "pre-built parts", "pre-built-parts"},
		{"empty input", "", ""},
	}

	for _, testCase := range tests {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, testCase.expected, blogapi.Slugify(testCase.input))
		})
	}
}
