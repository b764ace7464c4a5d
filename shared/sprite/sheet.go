// Package sprite slices character sheets into frames and plays named
// animations over them.
package sprite

import "image"

// Sheet describes a grid of equally sized frames, numbered row-major from the
// top-left.
type Sheet struct {
	FrameW, FrameH int
	Columns, Rows  int
}

// Len is the number of frames on the sheet.
func (s Sheet) Len() int { return s.Columns * s.Rows }

// Index converts a (row, column) pair to a frame index.
func (s Sheet) Index(row, col int) int { return row*s.Columns + col }

// Frame returns the source rectangle of frame i. Out-of-range indices return
// an empty rectangle.
func (s Sheet) Frame(i int) image.Rectangle {
	if i < 0 || i >= s.Len() {
		return image.Rectangle{}
	}
	x := (i % s.Columns) * s.FrameW
	y := (i / s.Columns) * s.FrameH
	return image.Rect(x, y, x+s.FrameW, y+s.FrameH)
}

// SheetFor derives the grid from an image whose size is a whole multiple of
// the frame size.
func SheetFor(bounds image.Rectangle, frameW, frameH int) Sheet {
	if frameW <= 0 || frameH <= 0 {
		return Sheet{}
	}
	return Sheet{
		FrameW:  frameW,
		FrameH:  frameH,
		Columns: bounds.Dx() / frameW,
		Rows:    bounds.Dy() / frameH,
	}
}
