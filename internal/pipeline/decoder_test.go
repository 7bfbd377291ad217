package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCommand = `>temp>:72.5,>hum>:45.0,>deglat>:1,>minlat>:45,>n_s>:>N>,>deglong>:36,>minlong>:49,>e_w>:>E>`

func TestDecodeCommand(t *testing.T) {
	r, err := DecodeCommand(sampleCommand)
	require.NoError(t, err)

	assert.Equal(t, 72.5, r.Temp)
	assert.Equal(t, 45.0, r.Hum)
	assert.Equal(t, 1.0, r.DegLat)
	assert.Equal(t, 45.0, r.MinLat)
	assert.Equal(t, 36.0, r.DegLong)
	assert.Equal(t, 49.0, r.MinLong)
	assert.Equal(t, North, r.NS)
	assert.Equal(t, East, r.EW)
}

func TestDecodeCommandWithBraces(t *testing.T) {
	r, err := DecodeCommand("{" + sampleCommand + "}")
	require.NoError(t, err)
	assert.Equal(t, 72.5, r.Temp)
}

func TestDecodeCommandMixedDelimiters(t *testing.T) {
	// Firmware may use '>' and '<' interchangeably for the same quote.
	cmd := `<temp<:10.0,>hum<:20.0,<deglat>:0,>minlat>:0,>n_s>:>S>,>deglong>:0,>minlong>:0,>e_w>:<W<`
	r, err := DecodeCommand(cmd)
	require.NoError(t, err)
	assert.Equal(t, South, r.NS)
	assert.Equal(t, West, r.EW)
}

func TestDecodeCommandRewriteIdempotent(t *testing.T) {
	// A command that already went through the quote rewrite decodes to the
	// same reading: the substitution leaves nothing left to rewrite.
	rewritten := quoteRewriter.Replace(sampleCommand)

	a, err := DecodeCommand(sampleCommand)
	require.NoError(t, err)
	b, err := DecodeCommand(rewritten)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestDecodeCommandErrors(t *testing.T) {
	cases := map[string]string{
		"not structured data": `garbage`,
		"missing temp":        `>hum>:45.0,>deglat>:1,>minlat>:45,>n_s>:>N>,>deglong>:36,>minlong>:49,>e_w>:>E>`,
		"missing hum":         `>temp>:72.5,>deglat>:1,>minlat>:45,>n_s>:>N>,>deglong>:36,>minlong>:49,>e_w>:>E>`,
		"missing n_s":         `>temp>:72.5,>hum>:45.0,>deglat>:1,>minlat>:45,>deglong>:36,>minlong>:49,>e_w>:>E>`,
		"missing e_w":         `>temp>:72.5,>hum>:45.0,>deglat>:1,>minlat>:45,>n_s>:>N>,>deglong>:36,>minlong>:49`,
		"non-numeric temp":    `>temp>:>hot>,>hum>:45.0,>deglat>:1,>minlat>:45,>n_s>:>N>,>deglong>:36,>minlong>:49,>e_w>:>E>`,
		"bad n_s enum":        `>temp>:72.5,>hum>:45.0,>deglat>:1,>minlat>:45,>n_s>:>X>,>deglong>:36,>minlong>:49,>e_w>:>E>`,
		"e_w on n_s axis":     `>temp>:72.5,>hum>:45.0,>deglat>:1,>minlat>:45,>n_s>:>E>,>deglong>:36,>minlong>:49,>e_w>:>E>`,
	}
	for name, cmd := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := DecodeCommand(cmd)
			require.ErrorIs(t, err, ErrDecode)
		})
	}
}
