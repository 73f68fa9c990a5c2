package main

import (
	"context"
	"fmt"

	"ledbar/apa102"
	"ledbar/circularbuffer"
)

// RecentFrameCount is how many transmitted frames the server keeps
// around for /api/frames/recent.
const RecentFrameCount = 32

// FrameHistory remembers the most recently transmitted frames.
type FrameHistory struct {
	buffer *circularbuffer.CircularBuffer[apa102.Frame]
}

func NewFrameHistory(size int) *FrameHistory {
	return &FrameHistory{
		buffer: circularbuffer.New[apa102.Frame](size),
	}
}

// Follow records the strip's frames until ctx ends.
func (h *FrameHistory) Follow(ctx context.Context, strip *apa102.Strip) {
	unsub, frames := strip.Subscribe()
	defer unsub()

	for {
		select {
		case <-ctx.Done():
			return
		case frame := <-frames:
			h.buffer.Push(frame)
		}
	}
}

// Recent returns the retained frames, oldest first.
func (h *FrameHistory) Recent() []apa102.Frame {
	frames := make([]apa102.Frame, 0, h.buffer.Len())
	h.buffer.Each(func(f apa102.Frame) {
		frames = append(frames, f)
	})
	return frames
}

// PreviewFrames prints each transmitted frame to the terminal, for
// watching animations when the GPIO backend is simulated.
func PreviewFrames(ctx context.Context, strip *apa102.Strip) {
	unsub, frames := strip.Subscribe()
	defer unsub()

	for {
		select {
		case <-ctx.Done():
			return
		case frame := <-frames:
			printFrame(frame)
		}
	}
}

func printFrame(frame apa102.Frame) {
	str := "strip: "
	for _, px := range frame.Pixels {
		str += string(levelRune(px))
	}
	fmt.Println(str)
}

// levelRune buckets a pixel into a crude intensity ramp.
func levelRune(px apa102.Pixel) rune {
	if px.R == 0 && px.G == 0 && px.B == 0 {
		return ' '
	}
	switch {
	case px.Brightness == 0:
		return ' '
	case px.Brightness <= 10:
		return '.'
	case px.Brightness <= 21:
		return 'o'
	default:
		return '#'
	}
}
