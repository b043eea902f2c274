//go:build !headless

package emul8

import (
	"context"
	"sync"
	"time"

	"github.com/go-audio/audio"
	"github.com/go-audio/generator"
	"github.com/gordonklaus/portaudio"
	"golang.org/x/sync/errgroup"
)

const (
	bufferSize int     = 512
	note       float64 = 440.0
)

var (
	format = audio.FormatMono44100
)

// Beep plays a sine tone through the default output device.
type Beep struct {
	duration time.Duration
	play     func(ctx context.Context, stop <-chan struct{}) error

	mu    sync.Mutex // guards tone, last and timer
	tone  *tone      // sounding now, nil when silent
	last  *tone      // most recently started, possibly still closing
	timer *time.Timer
}

// tone is one run of the output device. A tone opens the device only after
// the tone before it has closed it.
type tone struct {
	stop chan struct{}
	g    errgroup.Group
}

func (t *tone) close() error {
	if t == nil {
		return nil
	}
	close(t.stop)
	return t.g.Wait()
}

// NewBeep returns a Beep whose Play holds the tone for d.
func NewBeep(d time.Duration) *Beep {
	return &Beep{duration: d, play: playSine}
}

// Play starts the tone and stops it once the duration has passed. Playing
// again while the tone sounds extends it.
func (b *Beep) Play(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.startLocked(ctx)

	if b.timer != nil {
		b.timer.Stop()
	}
	var timer *time.Timer
	timer = time.AfterFunc(b.duration, func() {
		b.mu.Lock()
		if b.timer != timer {
			// Superseded by a later Play or a Stop.
			b.mu.Unlock()
			return
		}
		b.timer = nil
		t := b.tone
		b.tone = nil
		b.mu.Unlock()

		_ = t.close()
	})
	b.timer = timer
	return nil
}

func (b *Beep) startLocked(ctx context.Context) {
	if b.tone != nil {
		return
	}

	t := &tone{stop: make(chan struct{})}
	prev := b.last
	b.tone, b.last = t, t

	t.g.Go(func() error {
		if prev != nil {
			_ = prev.g.Wait()
		}
		return b.play(ctx, t.stop)
	})
}

// Stop silences the tone and waits for the output device to close.
func (b *Beep) Stop() error {
	b.mu.Lock()
	if b.timer != nil {
		b.timer.Stop()
		b.timer = nil
	}
	t, last := b.tone, b.last
	b.tone = nil
	b.mu.Unlock()

	err := t.close()
	if last != nil {
		// A tone detached by its timer may still be closing.
		_ = last.g.Wait()
	}
	return err
}

// playSine writes a sine wave to the default output until stop is closed or
// ctx is done.
func playSine(ctx context.Context, stop <-chan struct{}) error {
	if err := portaudio.Initialize(); err != nil {
		return err
	}
	defer func() {
		_ = portaudio.Terminate()
	}()

	buffer := &audio.FloatBuffer{
		Data:   make([]float64, bufferSize),
		Format: format,
	}

	osc := generator.NewOsc(generator.WaveSine, note, buffer.Format.SampleRate)
	osc.Amplitude = 1

	out := make([]float32, bufferSize)

	stream, err := portaudio.OpenDefaultStream(0, 1, float64(format.SampleRate), len(out), &out)
	if err != nil {
		return err
	}
	defer func() {
		_ = stream.Close()
	}()

	if err := stream.Start(); err != nil {
		return err
	}
	defer func() {
		_ = stream.Stop()
	}()

	for {
		select {
		case <-stop:
			return nil
		case <-ctx.Done():
			return nil
		default:
		}

		if err := osc.Fill(buffer); err != nil {
			return err
		}

		f64Tof32(out, buffer.Data)

		if err := stream.Write(); err != nil {
			return err
		}
	}
}

func f64Tof32(dst []float32, src []float64) {
	for i := range src {
		dst[i] = float32(src[i])
	}
}
