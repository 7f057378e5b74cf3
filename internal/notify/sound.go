package notify

import (
	"bytes"
	_ "embed"
	"fmt"
	"sync"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"
	"github.com/faiface/beep/speaker"
	"github.com/faiface/beep/wav"
)

//go:embed assets/chime.wav
var chimeWAV []byte

var (
	audioOnce sync.Once
	audioErr  error
	chime     *beep.Buffer
)

// initAudio decodes the embedded chime and opens the speaker once per process.
func initAudio() error {
	audioOnce.Do(func() {
		buf, format, err := decodeChime()
		if err != nil {
			audioErr = err
			return
		}
		if err := speaker.Init(format.SampleRate, format.SampleRate.N(time.Second/10)); err != nil {
			audioErr = fmt.Errorf("init speaker: %w", err)
			return
		}
		chime = buf
	})
	return audioErr
}

func decodeChime() (*beep.Buffer, beep.Format, error) {
	streamer, format, err := wav.Decode(bytes.NewReader(chimeWAV))
	if err != nil {
		return nil, beep.Format{}, fmt.Errorf("decode chime: %w", err)
	}
	defer streamer.Close()
	buf := beep.NewBuffer(format)
	buf.Append(streamer)
	return buf, format, nil
}

// Chime plays the embedded WAV through the system speaker.
type Chime struct {
	// Volume is relative to the recorded level on a base-2 scale; 0 leaves it unchanged.
	Volume float64
}

func (c Chime) Play() error {
	if err := initAudio(); err != nil {
		return err
	}
	speaker.Play(&effects.Volume{
		Streamer: chime.Streamer(0, chime.Len()),
		Base:     2,
		Volume:   c.Volume,
	})
	return nil
}
