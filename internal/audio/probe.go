package audio

import (
	"fmt"
	"os"
	"time"

	"github.com/go-audio/wav"
)

// Info describes a recorded WAV file
type Info struct {
	SampleRate int
	Channels   int
	BitDepth   int
	Duration   time.Duration
}

// Probe opens the WAV file at path and reports its format and duration.
// It fails on files the recorder never finished writing, or wrote nothing
// to, so callers can flag a suspect recording before transcription.
func Probe(path string) (*Info, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open recording: %w", err)
	}
	defer f.Close()

	d := wav.NewDecoder(f)
	d.ReadInfo()
	if !d.IsValidFile() || d.SampleRate == 0 {
		return nil, fmt.Errorf("not a valid WAV file: %s", path)
	}

	if err := d.FwdToPCM(); err != nil {
		return nil, fmt.Errorf("failed to locate PCM data: %w", err)
	}

	// The container-level duration estimate includes the header bytes;
	// the PCM frame count gives the exact value.
	frames := d.PCMLen() / int64(d.NumChans) / int64(d.BitDepth/8)
	dur := time.Duration(frames) * time.Second / time.Duration(d.SampleRate)

	return &Info{
		SampleRate: int(d.SampleRate),
		Channels:   int(d.NumChans),
		BitDepth:   int(d.BitDepth),
		Duration:   dur,
	}, nil
}
