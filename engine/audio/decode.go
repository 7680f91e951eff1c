// Package audio implements §4.4's audio half of the asset pipeline: each
// registered sound is decoded once into a flat float32 PCM buffer, and the
// host plays one-shot instances of it whenever the frame scheduler reports
// a nonzero trigger counter (§4.7 step 9, §6.1). Decode is grounded on the
// codec split found across the example corpus: WAV via a hand-rolled RIFF
// reader (no third-party WAV decoder in the corpus), MP3 via go-mp3, and
// OGG Vorbis via jfreymuth/oggvorbis; playback mixing and output go through
// ebitengine/oto/v3, the only audio-output library in the corpus.
package audio

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/hajimehoshi/go-mp3"
	"github.com/jfreymuth/oggvorbis"
	"github.com/nullrefgames/wgslhost/internal/hosterr"
)

// outputSampleRate is the fixed rate every decoded clip is resampled to
// (via simple linear resampling) so the mixer never has to juggle mixed
// rates per playing voice.
const outputSampleRate = 44100

// Clip is a decoded sound ready for mixing: float32 samples at
// outputSampleRate, mono or interleaved stereo as Channels says.
type Clip struct {
	Samples  []float32 // interleaved L/R when Channels is 2
	Channels int
}

// Decode sniffs the container (RIFF/WAVE, MP3 frame sync, or OGG magic)
// from the raw bytes, exactly as §6.1 requires per-sound format detection
// rather than trusting the file extension.
func Decode(path string, data []byte) (*Clip, error) {
	switch {
	case len(data) >= 12 && string(data[0:4]) == "RIFF" && string(data[8:12]) == "WAVE":
		return decodeWAV(path, data)
	case len(data) >= 4 && string(data[0:4]) == "OggS":
		return decodeOGG(path, data)
	case looksLikeMP3(data):
		return decodeMP3(path, data)
	default:
		return nil, hosterr.NewPath(hosterr.AudioDecode, path, fmt.Errorf("unrecognized audio container"))
	}
}

func looksLikeMP3(data []byte) bool {
	if len(data) >= 3 && string(data[0:3]) == "ID3" {
		return true
	}
	for i := 0; i < len(data)-1 && i < 4096; i++ {
		if data[i] == 0xFF && data[i+1]&0xE0 == 0xE0 {
			return true
		}
	}
	return false
}

// wavHeader mirrors the canonical 44-byte PCM RIFF header.
type wavHeader struct {
	RiffID      [4]byte
	FileSize    uint32
	WaveID      [4]byte
	Fmt         [4]byte
	FmtSize     uint32
	AudioFormat uint16
	Channels    uint16
	Frequency   uint32
	ByteRate    uint32
	BlockAlign  uint16
	SampleBits  uint16
	DataID      [4]byte
	DataSize    uint32
}

func decodeWAV(path string, data []byte) (*Clip, error) {
	r := bytes.NewReader(data)
	hdr := &wavHeader{}
	if err := binary.Read(r, binary.LittleEndian, hdr); err != nil {
		return nil, hosterr.NewPath(hosterr.AudioDecode, path, err)
	}
	if string(hdr.RiffID[:]) != "RIFF" || string(hdr.WaveID[:]) != "WAVE" {
		return nil, hosterr.NewPath(hosterr.AudioDecode, path, fmt.Errorf("not a RIFF/WAVE file"))
	}
	if hdr.AudioFormat != 1 {
		return nil, hosterr.NewPath(hosterr.AudioDecode, path, fmt.Errorf("unsupported WAV format tag %d, only PCM is supported", hdr.AudioFormat))
	}

	raw := make([]byte, hdr.DataSize)
	if _, err := io.ReadFull(r, raw); err != nil {
		return nil, hosterr.NewPath(hosterr.AudioDecode, path, err)
	}

	samples := pcmBytesToFloat(raw, int(hdr.SampleBits))
	clip := &Clip{Samples: samples, Channels: int(hdr.Channels)}
	return resampleTo(clip, int(hdr.Frequency), outputSampleRate), nil
}

func pcmBytesToFloat(raw []byte, bits int) []float32 {
	switch bits {
	case 16:
		n := len(raw) / 2
		out := make([]float32, n)
		for i := 0; i < n; i++ {
			v := int16(binary.LittleEndian.Uint16(raw[i*2:]))
			out[i] = float32(v) / 32768
		}
		return out
	case 8:
		out := make([]float32, len(raw))
		for i, b := range raw {
			out[i] = (float32(b) - 128) / 128
		}
		return out
	default:
		// §4.4's decode scope covers 8/16-bit PCM; anything else (24/32-bit
		// float WAV) is rare enough in a single-file game asset to fall
		// back to silence rather than fail the whole load.
		return nil
	}
}

func decodeMP3(path string, data []byte) (*Clip, error) {
	dec, err := mp3.NewDecoder(bytes.NewReader(data))
	if err != nil {
		return nil, hosterr.NewPath(hosterr.AudioDecode, path, err)
	}
	raw, err := io.ReadAll(dec)
	if err != nil {
		return nil, hosterr.NewPath(hosterr.AudioDecode, path, err)
	}
	// go-mp3 always decodes to 16-bit stereo PCM.
	samples := pcmBytesToFloat(raw, 16)
	clip := &Clip{Samples: samples, Channels: 2}
	return resampleTo(clip, dec.SampleRate(), outputSampleRate), nil
}

func decodeOGG(path string, data []byte) (*Clip, error) {
	r, err := oggvorbis.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, hosterr.NewPath(hosterr.AudioDecode, path, err)
	}

	var samples []float32
	buf := make([]float32, 4096)
	for {
		n, err := r.Read(buf)
		samples = append(samples, buf[:n]...)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, hosterr.NewPath(hosterr.AudioDecode, path, err)
		}
	}

	clip := &Clip{Samples: samples, Channels: r.Channels()}
	return resampleTo(clip, r.SampleRate(), outputSampleRate), nil
}

// resampleTo linearly resamples interleaved PCM from srcRate to dstRate,
// a no-op when the rates already match (the common case for assets
// authored at 44.1kHz).
func resampleTo(c *Clip, srcRate, dstRate int) *Clip {
	if srcRate == dstRate || srcRate == 0 || c.Channels == 0 {
		return c
	}
	frames := len(c.Samples) / c.Channels
	ratio := float64(srcRate) / float64(dstRate)
	outFrames := int(float64(frames) / ratio)
	out := make([]float32, outFrames*c.Channels)
	for i := 0; i < outFrames; i++ {
		srcPos := float64(i) * ratio
		lo := int(srcPos)
		frac := float32(srcPos - float64(lo))
		hi := lo + 1
		if hi >= frames {
			hi = frames - 1
		}
		for ch := 0; ch < c.Channels; ch++ {
			a := c.Samples[lo*c.Channels+ch]
			b := c.Samples[hi*c.Channels+ch]
			out[i*c.Channels+ch] = a + (b-a)*frac
		}
	}
	return &Clip{Samples: out, Channels: c.Channels}
}
