// Package audio converts the raw PCM fragments delivered by the realtime
// endpoint into playable WAV buffers.
//
// Everything here is stateless and performs no I/O; apart from base64 decoding
// nothing in this package can fail on valid input.
package audio

import (
	"encoding/base64"
	"encoding/binary"
	"fmt"
	"strconv"
	"strings"
)

// Default PCM parameters for the realtime endpoint (mono, 16-bit, 24kHz).
const (
	DefaultChannels      = 1
	DefaultSampleRate    = 24000
	DefaultBitsPerSample = 16
)

// wavHeaderSize is the canonical RIFF/WAVE header length.
const wavHeaderSize = 44

// Format describes an uncompressed PCM stream.
type Format struct {
	Channels      int
	SampleRate    int
	BitsPerSample int
}

// DefaultFormat returns the endpoint's fixed output format.
func DefaultFormat() Format {
	return Format{
		Channels:      DefaultChannels,
		SampleRate:    DefaultSampleRate,
		BitsPerSample: DefaultBitsPerSample,
	}
}

// ParseFormat decodes a MIME-like audio descriptor such as
// "audio/L16;rate=24000" into PCM parameters.
//
// The subtype after "/" is inspected: "L<digits>" sets the bit depth, and a
// "rate=<int>" parameter overrides the sample rate. Anything unrecognized
// keeps the defaults; lenient on purpose, this is not an error path.
func ParseFormat(descriptor string) Format {
	f := DefaultFormat()

	parts := strings.Split(descriptor, ";")
	if slash := strings.Index(parts[0], "/"); slash >= 0 {
		subtype := strings.TrimSpace(parts[0][slash+1:])
		if strings.HasPrefix(subtype, "L") {
			if bits, err := strconv.Atoi(subtype[1:]); err == nil {
				f.BitsPerSample = bits
			}
		}
	}

	for _, param := range parts[1:] {
		param = strings.TrimSpace(param)
		if rest, ok := strings.CutPrefix(param, "rate="); ok {
			if rate, err := strconv.Atoi(rest); err == nil {
				f.SampleRate = rate
			}
		}
	}

	return f
}

// WAVHeader builds the 44-byte RIFF/WAVE header for an uncompressed PCM
// payload of the given length. The layout is bit-exact so the result is
// playable by any standard media element.
func WAVHeader(payloadLen int, f Format) []byte {
	byteRate := f.SampleRate * f.Channels * f.BitsPerSample / 8
	blockAlign := f.Channels * f.BitsPerSample / 8

	header := make([]byte, wavHeaderSize)

	// RIFF chunk descriptor
	copy(header[0:4], "RIFF")
	binary.LittleEndian.PutUint32(header[4:8], uint32(36+payloadLen))
	copy(header[8:12], "WAVE")

	// fmt sub-chunk
	copy(header[12:16], "fmt ")
	binary.LittleEndian.PutUint32(header[16:20], 16)                      // sub-chunk size (16 for PCM)
	binary.LittleEndian.PutUint16(header[20:22], 1)                       // audio format (1 = PCM)
	binary.LittleEndian.PutUint16(header[22:24], uint16(f.Channels))      // number of channels
	binary.LittleEndian.PutUint32(header[24:28], uint32(f.SampleRate))    // sample rate
	binary.LittleEndian.PutUint32(header[28:32], uint32(byteRate))        // byte rate
	binary.LittleEndian.PutUint16(header[32:34], uint16(blockAlign))      // block align
	binary.LittleEndian.PutUint16(header[34:36], uint16(f.BitsPerSample)) // bits per sample

	// data sub-chunk
	copy(header[36:40], "data")
	binary.LittleEndian.PutUint32(header[40:44], uint32(payloadLen))

	return header
}

// AssembleWAV concatenates PCM fragments in order and prepends the WAV
// header. Fragment boundaries carry no meaning; only the ordered
// concatenation within one turn does.
func AssembleWAV(fragments [][]byte, f Format) []byte {
	total := 0
	for _, frag := range fragments {
		total += len(frag)
	}

	out := make([]byte, 0, wavHeaderSize+total)
	out = append(out, WAVHeader(total, f)...)
	for _, frag := range fragments {
		out = append(out, frag...)
	}
	return out
}

// DecodeError reports malformed base64 input. It is local and non-fatal: the
// offending turn is dropped and the connection stays open.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("audio: decode base64: %v", e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// DecodeBase64 decodes a transport-layer base64 fragment into raw bytes.
func DecodeBase64(data string) ([]byte, error) {
	raw, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return nil, &DecodeError{Err: err}
	}
	return raw, nil
}

// EncodeBase64 encodes raw bytes for the text transport.
func EncodeBase64(raw []byte) string {
	return base64.StdEncoding.EncodeToString(raw)
}
