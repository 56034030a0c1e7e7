package normalize_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/autobooks/autobooks_app/internal/utils/normalize"
)

func TestDescription(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"office rent", "OFFICE RENT"},
		{"  Office   Rent  March ", "OFFICE RENT MARCH"},
		{"POS\tSALE\n4411", "POS SALE 4411"},
		{"", ""},
		{"   ", ""},
		{"ALREADY NORMAL", "ALREADY NORMAL"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, normalize.Description(tt.in), "input %q", tt.in)
	}
}
