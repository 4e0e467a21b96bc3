package naming

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromSource(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   string
	}{
		{"strips dir and extension", "./schemas/Pet.yaml", "Pet"},
		{"replaces unsafe characters", "my schema!.json", "my_schema"},
		{"substitutes Schema when empty", "...", "Schema"},
		{"prefixes digit-leading names", "123Pet.yaml", "Schema_123Pet"},
		{"windows-style separators", `schemas\Owner.yaml`, "Owner"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FromSource(tt.source))
		})
	}
}
