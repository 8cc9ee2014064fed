package table

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatAlignsColumns(t *testing.T) {
	got := Format([][]string{
		{"ID", "VALUE", "LABEL"},
		{"origin", "agp", "Málaga"},
		{"destination", "mad", "Madrid"},
	}, nil)
	assert.Equal(t, []string{
		"ID           VALUE  LABEL",
		"origin       agp    Málaga",
		"destination  mad    Madrid",
	}, got)
}

func TestFormatRightAlignment(t *testing.T) {
	got := Format([][]string{{"a", "1"}, {"bb", "100"}}, []Alignment{AlignLeft, AlignRight})
	assert.Equal(t, []string{"a     1", "bb  100"}, got)
}

func TestFormatRaggedRows(t *testing.T) {
	got := Format([][]string{{"a"}, {"b", "c"}}, nil)
	assert.Equal(t, []string{"a", "b  c"}, got)
	assert.Nil(t, Format(nil, nil))
}
