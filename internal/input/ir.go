package input

import (
	"sync"
	"time"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
)

// CodeSource yields decoded remote codes. Read consumes a pending result;
// Resume re-arms capture for the next transmission.
type CodeSource interface {
	Read() (code uint64, repeat bool, ok bool)
	Resume()
}

// Result is one decoded IR transmission. Repeat marks the NEC repeat frame
// sent while a remote button is held; Code is zero in that case.
type Result struct {
	Code   uint64
	Repeat bool
}

// NEC protocol nominal timings.
const (
	necLeaderMark  = 9000 * time.Microsecond
	necLeaderSpace = 4500 * time.Microsecond
	necRepeatSpace = 2250 * time.Microsecond
	necBitMark     = 562 * time.Microsecond
	necZeroSpace   = 562 * time.Microsecond
	necOneSpace    = 1687 * time.Microsecond

	necFrameBits = 32
)

// within reports whether d is inside ±30% of nominal. Cheap demodulator
// receivers jitter a lot.
func within(d, nominal time.Duration) bool {
	lo := nominal - nominal*3/10
	hi := nominal + nominal*3/10
	return d >= lo && d <= hi
}

const (
	decIdle = iota
	decLeader
	decRepeat
	decMark
	decSpace
)

// Decoder is a pure NEC pulse-train state machine. Feed it completed pulses
// (mark = demodulator active) in order; it emits a Result when a full data
// or repeat frame has been seen. Any out-of-tolerance pulse drops the frame
// and returns the decoder to idle, so malformed transmissions degrade to
// nothing rather than a bogus code.
type Decoder struct {
	state int
	bits  uint
	code  uint64
}

func (d *Decoder) Reset() {
	d.state = decIdle
	d.bits = 0
	d.code = 0
}

func (d *Decoder) Pulse(mark bool, dur time.Duration) (Result, bool) {
	switch d.state {
	case decIdle:
		if mark && within(dur, necLeaderMark) {
			d.state = decLeader
		}

	case decLeader:
		switch {
		case !mark && within(dur, necLeaderSpace):
			d.bits = 0
			d.code = 0
			d.state = decMark
		case !mark && within(dur, necRepeatSpace):
			d.state = decRepeat
		default:
			d.Reset()
		}

	case decRepeat:
		d.Reset()
		if mark && within(dur, necBitMark) {
			return Result{Repeat: true}, true
		}

	case decMark:
		if !mark || !within(dur, necBitMark) {
			d.Reset()
			break
		}
		if d.bits == necFrameBits {
			// stop mark
			code := d.code
			d.Reset()
			return Result{Code: code}, true
		}
		d.state = decSpace

	case decSpace:
		switch {
		case !mark && within(dur, necOneSpace):
			d.code = d.code<<1 | 1
		case !mark && within(dur, necZeroSpace):
			d.code = d.code << 1
		default:
			d.Reset()
			return Result{}, false
		}
		d.bits++
		d.state = decMark
	}
	return Result{}, false
}

// Receiver times GPIO edges from a demodulating IR receiver on its own
// goroutine and holds at most one decoded result for the tick loop to poll.
// The demodulator idles high and pulls the line low during a mark.
type Receiver struct {
	pin gpio.PinIn
	dec Decoder

	mu    sync.Mutex
	res   Result
	ready bool
	armed bool
	done  chan struct{}
}

// OpenReceiver looks the pin up by name and starts the edge-timing loop.
func OpenReceiver(name string) (*Receiver, error) {
	pin := gpioreg.ByName(name)
	if pin == nil {
		return nil, errUnknownPin(name)
	}
	if err := pin.In(gpio.PullUp, gpio.BothEdges); err != nil {
		return nil, err
	}
	r := &Receiver{pin: pin, armed: true, done: make(chan struct{})}
	go r.loop()
	return r, nil
}

func (r *Receiver) loop() {
	last := time.Now()
	level := r.pin.Read()
	for {
		select {
		case <-r.done:
			return
		default:
		}
		if !r.pin.WaitForEdge(120 * time.Millisecond) {
			r.dec.Reset()
			last = time.Now()
			level = r.pin.Read()
			continue
		}
		now := time.Now()
		prev := level
		level = r.pin.Read()
		res, ok := r.dec.Pulse(prev == gpio.Low, now.Sub(last))
		last = now
		if ok {
			r.deliver(res)
		}
	}
}

func (r *Receiver) deliver(res Result) {
	r.mu.Lock()
	if r.armed {
		r.res = res
		r.ready = true
		r.armed = false
	}
	r.mu.Unlock()
}

func (r *Receiver) Read() (uint64, bool, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.ready {
		return 0, false, false
	}
	r.ready = false
	return r.res.Code, r.res.Repeat, true
}

func (r *Receiver) Resume() {
	r.mu.Lock()
	r.armed = true
	r.mu.Unlock()
}

func (r *Receiver) Close() {
	close(r.done)
}

// NoReceiver is the stand-in when no IR receiver is wired (simulation).
type NoReceiver struct{}

func (NoReceiver) Read() (uint64, bool, bool) { return 0, false, false }
func (NoReceiver) Resume()                    {}
