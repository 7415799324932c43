package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseTags(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want []string
	}{
		{"nil", nil, []string{}},
		{"slice", []string{"go", " web ", ""}, []string{"go", "web"}},
		{"any slice", []any{"go", 3, "sql"}, []string{"go", "sql"}},
		{"csv", "go, web,  ,sql", []string{"go", "web", "sql"}},
		{"json string", `["go","web"]`, []string{"go", "web"}},
		{"postgres literal", `{go,"web dev"}`, []string{"go", "web dev"}},
		{"duplicates keep first order", "web,go,web", []string{"web", "go"}},
		{"blank string", "   ", []string{}},
		{"unsupported type", 42, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseTags(tt.in))
		})
	}
}
