package input

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// feedFrame pushes a full NEC data frame for code through the decoder and
// returns the result emitted at the stop mark, if any.
func feedFrame(d *Decoder, code uint32) (Result, bool) {
	d.Pulse(true, necLeaderMark)
	d.Pulse(false, necLeaderSpace)
	for i := 31; i >= 0; i-- {
		d.Pulse(true, necBitMark)
		if code&(1<<uint(i)) != 0 {
			d.Pulse(false, necOneSpace)
		} else {
			d.Pulse(false, necZeroSpace)
		}
	}
	return d.Pulse(true, necBitMark) // stop mark
}

func TestDecodeDataFrame(t *testing.T) {
	var d Decoder
	res, ok := feedFrame(&d, 0x20DF10EF)
	require.True(t, ok)
	assert.Equal(t, uint64(0x20DF10EF), res.Code)
	assert.False(t, res.Repeat)
}

func TestDecodeBackToBackFrames(t *testing.T) {
	var d Decoder
	_, ok := feedFrame(&d, 0x20DF10EF)
	require.True(t, ok)
	res, ok := feedFrame(&d, 0x20DF807F)
	require.True(t, ok)
	assert.Equal(t, uint64(0x20DF807F), res.Code)
}

func TestDecodeRepeatFrame(t *testing.T) {
	var d Decoder
	d.Pulse(true, necLeaderMark)
	d.Pulse(false, necRepeatSpace)
	res, ok := d.Pulse(true, necBitMark)
	require.True(t, ok)
	assert.True(t, res.Repeat)
	assert.Equal(t, uint64(0), res.Code)
}

func TestDecodeToleratesJitter(t *testing.T) {
	var d Decoder
	d.Pulse(true, necLeaderMark+2*time.Millisecond)
	d.Pulse(false, necLeaderSpace-time.Millisecond)
	d.Pulse(true, necBitMark+100*time.Microsecond)
	d.Pulse(false, necOneSpace-200*time.Microsecond)
	for i := 0; i < 31; i++ {
		d.Pulse(true, necBitMark)
		d.Pulse(false, necZeroSpace)
	}
	res, ok := d.Pulse(true, necBitMark)
	require.True(t, ok)
	assert.Equal(t, uint64(1)<<31, res.Code)
}

func TestDecodeRejectsBadLeader(t *testing.T) {
	var d Decoder
	d.Pulse(true, 3*time.Millisecond)
	for i := 0; i < 70; i++ {
		if _, ok := d.Pulse(i%2 == 1, necBitMark); ok {
			t.Fatal("noise must not decode")
		}
	}
}

func TestDecodeDropsTruncatedFrame(t *testing.T) {
	var d Decoder
	d.Pulse(true, necLeaderMark)
	d.Pulse(false, necLeaderSpace)
	for i := 0; i < 10; i++ {
		d.Pulse(true, necBitMark)
		d.Pulse(false, necOneSpace)
	}
	// Line goes quiet mid-frame; an out-of-tolerance gap resets the decoder.
	d.Pulse(false, 50*time.Millisecond)

	res, ok := feedFrame(&d, 0x20DFAE51)
	require.True(t, ok, "decoder recovers for the next frame")
	assert.Equal(t, uint64(0x20DFAE51), res.Code)
}

func TestDecodeRejectsHalfToleranceViolations(t *testing.T) {
	var d Decoder
	d.Pulse(true, necLeaderMark)
	d.Pulse(false, necLeaderSpace)
	d.Pulse(true, necBitMark)
	_, ok := d.Pulse(false, 3500*time.Microsecond) // neither one nor zero
	assert.False(t, ok)

	// Back at idle; a clean frame still decodes.
	_, ok = feedFrame(&d, 0x20DF10EF)
	assert.True(t, ok)
}

func TestNoReceiverIsSilent(t *testing.T) {
	var r NoReceiver
	_, _, ok := r.Read()
	assert.False(t, ok)
}
