package capture

import "context"

// frameSize is how many samples a FileSource emits per callback.
const frameSize = 4096

// FileSource replays a WAV file through the capture pipeline, standing in
// for a microphone. After the file is exhausted it blocks until the session
// stops, the way a live input would.
type FileSource struct {
	Path string
}

// Record emits the file's samples in fixed-size frames.
func (f FileSource) Record(ctx context.Context, emit func(frame []int16)) error {
	clip, err := LoadWAV(f.Path)
	if err != nil {
		return err
	}
	for off := 0; off < len(clip.Samples); off += frameSize {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		end := off + frameSize
		if end > len(clip.Samples) {
			end = len(clip.Samples)
		}
		emit(clip.Samples[off:end])
	}
	<-ctx.Done()
	return ctx.Err()
}
