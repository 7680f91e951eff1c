package audio

import (
	"bytes"
	"encoding/binary"
	"testing"
)

func makeTestWAV(samples []int16, rate uint32) []byte {
	var buf bytes.Buffer
	dataSize := uint32(len(samples) * 2)
	hdr := wavHeader{
		RiffID:      [4]byte{'R', 'I', 'F', 'F'},
		FileSize:    36 + dataSize,
		WaveID:      [4]byte{'W', 'A', 'V', 'E'},
		Fmt:         [4]byte{'f', 'm', 't', ' '},
		FmtSize:     16,
		AudioFormat: 1,
		Channels:    1,
		Frequency:   rate,
		ByteRate:    rate * 2,
		BlockAlign:  2,
		SampleBits:  16,
		DataID:      [4]byte{'d', 'a', 't', 'a'},
		DataSize:    dataSize,
	}
	binary.Write(&buf, binary.LittleEndian, hdr)
	for _, s := range samples {
		binary.Write(&buf, binary.LittleEndian, s)
	}
	return buf.Bytes()
}

func TestDecodeWAVRoundTrip(t *testing.T) {
	data := makeTestWAV([]int16{0, 16384, -16384, 32767}, outputSampleRate)
	clip, err := Decode("tone.wav", data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if clip.Channels != 1 {
		t.Fatalf("channels = %d, want 1", clip.Channels)
	}
	if len(clip.Samples) != 4 {
		t.Fatalf("samples len = %d, want 4 (same rate, no resample)", len(clip.Samples))
	}
	if clip.Samples[1] <= 0 {
		t.Errorf("samples[1] = %v, want positive", clip.Samples[1])
	}
}

func TestDecodeRejectsUnknownContainer(t *testing.T) {
	if _, err := Decode("junk.bin", []byte{0, 1, 2, 3, 4, 5, 6, 7}); err == nil {
		t.Fatal("expected error for unrecognized container")
	}
}

func TestResampleToPreservesFrameCountRatio(t *testing.T) {
	clip := &Clip{Samples: []float32{0, 0.5, 1, -0.5, 0, 0.25}, Channels: 1}
	out := resampleTo(clip, 22050, 44100)
	if len(out.Samples) < len(clip.Samples) {
		t.Errorf("upsampled length %d should exceed source length %d", len(out.Samples), len(clip.Samples))
	}
}

func TestMixVoiceSumsMonoIntoStereo(t *testing.T) {
	clip := &Clip{Samples: []float32{1, 1}, Channels: 1}
	v := &voice{clip: clip, volume: 1}
	out := make([]float32, 4)
	mixVoice(out, v)
	if out[0] != 1 || out[1] != 1 {
		t.Fatalf("first frame = %v, want [1 1]", out[:2])
	}
	if v.frame != 2 {
		t.Errorf("frame = %d, want 2 after consuming both samples", v.frame)
	}
}
