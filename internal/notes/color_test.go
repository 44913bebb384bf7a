package notes

import (
	"bytes"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		want    color.NRGBA
		wantErr bool
	}{
		{in: "#FFB3BA", want: color.NRGBA{R: 0xff, G: 0xb3, B: 0xba, A: 0xff}},
		{in: "ffd700", want: color.NRGBA{R: 0xff, G: 0xd7, B: 0x00, A: 0xff}},
		{in: "#abc", want: color.NRGBA{R: 0xaa, G: 0xbb, B: 0xcc, A: 0xff}},
		{in: "#12345", wantErr: true},
		{in: "#GGGGGG", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		got, err := ParseColor(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestNormalizeColor(t *testing.T) {
	got, err := NormalizeColor(" #bfffbf ")
	require.NoError(t, err)
	assert.Equal(t, "#BFFFBF", got)
}

func TestSwatch(t *testing.T) {
	data, err := Swatch("#BAFFFF", 20)
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 20, img.Bounds().Dx())
	assert.Equal(t, 20, img.Bounds().Dy())
	assert.Equal(t, "#BAFFFF", FormatColor(img.At(10, 10)))

	_, err = Swatch("bogus", 20)
	assert.Error(t, err)
}
