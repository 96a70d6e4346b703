package slug

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerate(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Marvel Comics", "marvel-comics"},
		{"DC Comics", "dc-comics"},
		{"Science Fiction", "science-fiction"},
		{"  Image  ", "image"},
		{"Hello   World!", "hello-world"},
		{"2000 AD", "2000-ad"},
		{"Élan Vital", "elan-vital"},
		{"Über-Comics", "uber-comics"},
		{"---", ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, Generate(tt.input))
		})
	}
}

func TestGenerate_Idempotent(t *testing.T) {
	s := Generate("Dark Horse Comics")
	assert.Equal(t, s, Generate(s))
}
