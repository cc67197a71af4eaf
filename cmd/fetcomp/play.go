package main

import (
	"fmt"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/cwbudde/algo-fetcomp/internal/playback"
	"github.com/cwbudde/algo-fetcomp/internal/ui"
	"github.com/cwbudde/algo-fetcomp/internal/wavio"
)

// playbackChannels is the output layout of the audio device.
const playbackChannels = 2

// PlayCmd plays a file through the compressor in real time.
type PlayCmd struct {
	EngineFlags `embed:""`

	Input string `arg:"" type:"existingfile" help:"Input WAV file."`
	Loop  bool   `help:"Repeat the file until quit."`
}

// Run implements the play command.
func (c *PlayCmd) Run(g *Globals) error {
	comp, err := c.newCompressor()
	if err != nil {
		return err
	}

	in, err := wavio.ReadFile(c.Input)
	if err != nil {
		return err
	}

	if err := comp.Prepare(float64(in.SampleRate), playbackChannels, c.BlockSize); err != nil {
		return err
	}

	g.log("[PLAY] %s: %d Hz, %d ch, %.1f s, latency %d", c.Input, in.SampleRate, len(in.Channels), in.Duration(), comp.LatencySamples())

	source := playback.NewFileSource(in.Channels, comp, c.BlockSize, c.Loop)

	player, err := playback.NewPlayer(in.SampleRate, source)
	if err != nil {
		return err
	}

	model := ui.NewModel("fetcomp", fmt.Sprintf("%s · %s", filepath.Base(c.Input), c.describe()), comp, comp, c.AllButtons)
	p := tea.NewProgram(model, tea.WithAltScreen())

	player.Play()

	// Watch for the end of the file; the model quits on PlaybackDoneMsg.
	stop := make(chan struct{})
	defer close(stop)

	go func() {
		t := time.NewTicker(100 * time.Millisecond)
		defer t.Stop()

		for {
			select {
			case <-stop:
				return
			case <-t.C:
				if source.Finished() {
					g.log("[PLAY] finished after %d frames", source.PlayedFrames())
					p.Send(ui.PlaybackDoneMsg{})

					return
				}
			}
		}
	}()

	_, runErr := p.Run()

	if err := player.Stop(); err != nil {
		g.log("[PLAY] stop: %v", err)
	}

	if runErr != nil {
		return fmt.Errorf("ui: %w", runErr)
	}

	return nil
}
