package ui

import "time"

// tickMsg asks the model to poll the meter.
type tickMsg time.Time

// PlaybackDoneMsg reports that the audio source ran out or failed.
type PlaybackDoneMsg struct {
	Err error
}
