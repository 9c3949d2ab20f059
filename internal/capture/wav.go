package capture

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"
)

// Clip is a finalized mono recording.
type Clip struct {
	Samples    []int16
	SampleRate int
}

// Duration reports the clip length.
func (c Clip) Duration() time.Duration {
	if c.SampleRate <= 0 {
		return 0
	}
	return time.Duration(len(c.Samples)) * time.Second / time.Duration(c.SampleRate)
}

// EncodeWAV writes the clip as a 16-bit PCM mono WAV stream.
func (c Clip) EncodeWAV(w io.Writer) error {
	dataLen := uint32(len(c.Samples) * 2)

	var hdr [44]byte
	copy(hdr[0:4], "RIFF")
	binary.LittleEndian.PutUint32(hdr[4:8], 36+dataLen)
	copy(hdr[8:12], "WAVE")
	copy(hdr[12:16], "fmt ")
	binary.LittleEndian.PutUint32(hdr[16:20], 16)                       // fmt chunk size
	binary.LittleEndian.PutUint16(hdr[20:22], 1)                        // PCM
	binary.LittleEndian.PutUint16(hdr[22:24], 1)                        // mono
	binary.LittleEndian.PutUint32(hdr[24:28], uint32(c.SampleRate))     // sample rate
	binary.LittleEndian.PutUint32(hdr[28:32], uint32(c.SampleRate)*2)   // byte rate
	binary.LittleEndian.PutUint16(hdr[32:34], 2)                        // block align
	binary.LittleEndian.PutUint16(hdr[34:36], 16)                       // bits per sample
	copy(hdr[36:40], "data")
	binary.LittleEndian.PutUint32(hdr[40:44], dataLen)

	if _, err := w.Write(hdr[:]); err != nil {
		return err
	}
	return binary.Write(w, binary.LittleEndian, c.Samples)
}

// Save writes the clip into dir under a timestamped name like the recorder
// UI shows ("20250408_153045.wav") and returns the full path.
func (c Clip) Save(dir string) (string, error) {
	name := time.Now().Format("20060102_150405") + ".wav"
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	if err := c.EncodeWAV(f); err != nil {
		f.Close()
		return "", err
	}
	return path, f.Close()
}

// DecodeWAV parses a 16-bit PCM mono WAV stream back into a Clip.
func DecodeWAV(r io.Reader) (Clip, error) {
	var riff [12]byte
	if _, err := io.ReadFull(r, riff[:]); err != nil {
		return Clip{}, fmt.Errorf("reading RIFF header: %w", err)
	}
	if string(riff[0:4]) != "RIFF" || string(riff[8:12]) != "WAVE" {
		return Clip{}, errors.New("not a WAV stream")
	}

	var (
		clip      Clip
		gotFormat bool
	)
	for {
		var chunk [8]byte
		if _, err := io.ReadFull(r, chunk[:]); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return Clip{}, fmt.Errorf("reading chunk header: %w", err)
		}
		id := string(chunk[0:4])
		size := binary.LittleEndian.Uint32(chunk[4:8])

		switch id {
		case "fmt ":
			if size < 16 {
				return Clip{}, fmt.Errorf("fmt chunk too short: %d bytes", size)
			}
			body := make([]byte, size)
			if _, err := io.ReadFull(r, body); err != nil {
				return Clip{}, fmt.Errorf("reading fmt chunk: %w", err)
			}
			format := binary.LittleEndian.Uint16(body[0:2])
			channels := binary.LittleEndian.Uint16(body[2:4])
			bits := binary.LittleEndian.Uint16(body[14:16])
			if format != 1 || bits != 16 {
				return Clip{}, fmt.Errorf("unsupported WAV format %d/%d-bit, want PCM/16-bit", format, bits)
			}
			if channels != 1 {
				return Clip{}, fmt.Errorf("unsupported channel count %d, want mono", channels)
			}
			clip.SampleRate = int(binary.LittleEndian.Uint32(body[4:8]))
			gotFormat = true
		case "data":
			if !gotFormat {
				return Clip{}, errors.New("data chunk before fmt chunk")
			}
			clip.Samples = make([]int16, size/2)
			if err := binary.Read(r, binary.LittleEndian, clip.Samples); err != nil {
				return Clip{}, fmt.Errorf("reading samples: %w", err)
			}
			return clip, nil
		default:
			// Chunks are word-aligned; odd sizes carry a pad byte.
			if _, err := io.CopyN(io.Discard, r, int64(size)+int64(size%2)); err != nil {
				return Clip{}, fmt.Errorf("skipping %q chunk: %w", id, err)
			}
		}
	}
	return Clip{}, errors.New("WAV stream has no data chunk")
}

// LoadWAV reads a clip from a WAV file on disk.
func LoadWAV(path string) (Clip, error) {
	f, err := os.Open(path)
	if err != nil {
		return Clip{}, err
	}
	defer f.Close()
	return DecodeWAV(f)
}
