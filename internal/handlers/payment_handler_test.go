package handlers

import (
	"testing"

	"github.com/divan/num2words"
	"github.com/stretchr/testify/assert"
)

func TestAmountInWordsCarriesCents(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want string
	}{
		{"whole amount", 1250, num2words.Convert(1250) + " con 00/100"},
		{"fifty cents", 980.50, num2words.Convert(980) + " con 50/100"},
		{"odd cents survive", 1234.56, num2words.Convert(1234) + " con 56/100"},
		{"rounding carries into the whole part", 99.999, num2words.Convert(100) + " con 00/100"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, amountInWords(tt.in))
		})
	}
}
