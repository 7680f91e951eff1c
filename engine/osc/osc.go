// Package osc implements the OSC network listener (§1, §5, §6.4): a
// background UDP listener that decodes standard Open Sound Control 1.0
// packets and delivers (name, float) updates through a queue the frame
// scheduler drains once per frame (§4.7 step 2). No OSC parsing library was
// found anywhere in the retrieved corpus, so the wire format is decoded by
// hand over the standard library's net package, matching the scope of a
// single, well-documented binary format rather than a general dependency.
package osc

import (
	"encoding/binary"
	"fmt"
	"math"
	"net"
	"strconv"
	"strings"
	"sync"

	"github.com/nullrefgames/wgslhost/internal/hostlog"
)

var log = hostlog.With("osc")

// Update is one decoded (address, value) pair destined for a named OSC
// parameter slot or a direct numeric slot.
type Update struct {
	Name  string // "" if addressed by numeric index
	Index int    // valid only when Name == ""
	Value float32
}

// Listener owns a UDP socket and an unbounded queue of pending updates,
// mirroring §5's "delivers (name, value) messages through a ... queue
// drained by the scheduler".
type Listener struct {
	conn *net.UDPConn

	mu    sync.Mutex
	queue []Update
}

// Listen opens a UDP socket at addr (e.g. ":9000") and starts a background
// goroutine reading OSC packets until Close is called.
func Listen(addr string) (*Listener, error) {
	udpAddr, err := net.ResolveUDPAddr("udp", addr)
	if err != nil {
		return nil, err
	}
	conn, err := net.ListenUDP("udp", udpAddr)
	if err != nil {
		return nil, err
	}

	l := &Listener{conn: conn}
	go l.readLoop()
	return l, nil
}

// Close stops the listener and releases its socket.
func (l *Listener) Close() error {
	return l.conn.Close()
}

func (l *Listener) readLoop() {
	buf := make([]byte, 4096)
	for {
		n, _, err := l.conn.ReadFromUDP(buf)
		if err != nil {
			// Close() unblocks ReadFromUDP with a "use of closed network
			// connection" error; that's the normal shutdown path.
			return
		}
		upd, err := decodePacket(buf[:n])
		if err != nil {
			log.Warn().Err(err).Msg("dropping malformed OSC packet")
			continue
		}
		if upd == nil {
			continue // unmatched address or argument type, silently dropped (§6.4)
		}
		l.mu.Lock()
		l.queue = append(l.queue, *upd)
		l.mu.Unlock()
	}
}

// Drain removes and returns every update queued since the last Drain call,
// the operation the scheduler performs at §4.7 step 2.
func (l *Listener) Drain() []Update {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.queue) == 0 {
		return nil
	}
	out := l.queue
	l.queue = nil
	return out
}

// decodePacket decodes one OSC 1.0 message of the form "/u/<name-or-index>"
// with a single float32 or int32 argument (an int32 is converted to
// float32). Bundles and any other address pattern are
// ignored per §6.4's "unmatched names are silently dropped" (returns nil,
// nil rather than an error).
func decodePacket(data []byte) (*Update, error) {
	address, rest, err := readOSCString(data)
	if err != nil {
		return nil, fmt.Errorf("reading address: %w", err)
	}
	if strings.HasPrefix(address, "#bundle") {
		return nil, nil
	}
	if !strings.HasPrefix(address, "/u/") {
		return nil, nil
	}
	target := strings.TrimPrefix(address, "/u/")

	tags, rest, err := readOSCString(rest)
	if err != nil {
		return nil, fmt.Errorf("reading type tags: %w", err)
	}
	if !strings.HasPrefix(tags, ",") || len(tags) < 2 {
		return nil, fmt.Errorf("missing type tag string")
	}

	var value float32
	switch tags[1] {
	case 'f':
		if len(rest) < 4 {
			return nil, fmt.Errorf("truncated float argument")
		}
		value = math.Float32frombits(binary.BigEndian.Uint32(rest))
	case 'i':
		if len(rest) < 4 {
			return nil, fmt.Errorf("truncated int argument")
		}
		value = float32(int32(binary.BigEndian.Uint32(rest)))
	default:
		// Only numeric single-argument messages drive OSC slots; anything
		// else is outside this host's addressing scheme.
		return nil, nil
	}

	if n, err := strconv.Atoi(target); err == nil {
		if n < 0 || n >= 64 {
			return nil, nil
		}
		return &Update{Index: n, Value: value}, nil
	}
	return &Update{Name: target, Value: value}, nil
}

// readOSCString reads a null-terminated string padded to a 4-byte boundary
// and returns it along with the remaining, unconsumed bytes.
func readOSCString(data []byte) (string, []byte, error) {
	end := -1
	for i, b := range data {
		if b == 0 {
			end = i
			break
		}
	}
	if end < 0 {
		return "", nil, fmt.Errorf("unterminated OSC string")
	}
	s := string(data[:end])
	padded := ((end + 1 + 3) / 4) * 4
	if padded > len(data) {
		return "", nil, fmt.Errorf("OSC string padding overruns packet")
	}
	return s, data[padded:], nil
}
