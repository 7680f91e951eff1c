package osc

import "testing"

func oscPad(s string) []byte {
	b := append([]byte(s), 0)
	for len(b)%4 != 0 {
		b = append(b, 0)
	}
	return b
}

func buildPacket(address string, tags string, argBytes []byte) []byte {
	out := append([]byte{}, oscPad(address)...)
	out = append(out, oscPad(tags)...)
	out = append(out, argBytes...)
	return out
}

func TestDecodePacketNamedFloat(t *testing.T) {
	pkt := buildPacket("/u/bass", ",f", []byte{0x3F, 0x40, 0x00, 0x00}) // 0.75
	upd, err := decodePacket(pkt)
	if err != nil {
		t.Fatalf("decodePacket: %v", err)
	}
	if upd == nil || upd.Name != "bass" {
		t.Fatalf("got %+v, want name=bass", upd)
	}
	if upd.Value != 0.75 {
		t.Errorf("value = %v, want 0.75", upd.Value)
	}
}

func TestDecodePacketNumericIndex(t *testing.T) {
	pkt := buildPacket("/u/3", ",f", []byte{0x3F, 0x00, 0x00, 0x00}) // 0.5
	upd, err := decodePacket(pkt)
	if err != nil {
		t.Fatalf("decodePacket: %v", err)
	}
	if upd == nil || upd.Name != "" || upd.Index != 3 {
		t.Fatalf("got %+v, want index=3", upd)
	}
}

func TestDecodePacketOutOfRangeIndexDropped(t *testing.T) {
	pkt := buildPacket("/u/99", ",f", []byte{0, 0, 0, 0})
	upd, err := decodePacket(pkt)
	if err != nil {
		t.Fatalf("decodePacket: %v", err)
	}
	if upd != nil {
		t.Fatalf("got %+v, want nil for out-of-range index", upd)
	}
}

func TestDecodePacketUnmatchedAddressDropped(t *testing.T) {
	pkt := buildPacket("/other/thing", ",f", []byte{0, 0, 0, 0})
	upd, err := decodePacket(pkt)
	if err != nil {
		t.Fatalf("decodePacket: %v", err)
	}
	if upd != nil {
		t.Fatalf("got %+v, want nil for unmatched address", upd)
	}
}

func TestListenerDrainEmptiesQueue(t *testing.T) {
	l := &Listener{}
	l.queue = []Update{{Name: "a", Value: 1}, {Name: "b", Value: 2}}
	got := l.Drain()
	if len(got) != 2 {
		t.Fatalf("drained %d updates, want 2", len(got))
	}
	if more := l.Drain(); more != nil {
		t.Fatalf("second drain returned %v, want nil", more)
	}
}
