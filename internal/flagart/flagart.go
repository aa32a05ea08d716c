// Package flagart turns flag images into terminal art using half-block
// characters, two pixel rows per text line.
package flagart

import (
	"image"
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"
	"golang.org/x/image/draw"
)

const halfBlock = "▀"

// Render scales img to width columns and returns it as colored half-block
// rows. The aspect ratio is kept.
func Render(img image.Image, width int) string {
	src := img.Bounds()
	if width <= 0 || src.Dx() == 0 || src.Dy() == 0 {
		return ""
	}

	// Terminal cells are about twice as tall as wide, and each cell holds
	// two pixel rows, so pixel height maps 1:1.
	height := width * src.Dy() / src.Dx()
	if height < 2 {
		height = 2
	}
	if height%2 != 0 {
		height++
	}

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, src, draw.Src, nil)

	var b strings.Builder
	for y := 0; y < height; y += 2 {
		for x := 0; x < width; x++ {
			b.WriteString(cell(dst.RGBAAt(x, y), dst.RGBAAt(x, y+1)))
		}
		if y+2 < height {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// cell renders the upper pixel as foreground and the lower as background.
// Mostly transparent pixels take the terminal's own background.
func cell(top, bottom color.RGBA) string {
	topOK, bottomOK := top.A >= 128, bottom.A >= 128
	switch {
	case topOK && bottomOK:
		return lipgloss.NewStyle().Foreground(opaque(top)).Background(opaque(bottom)).Render(halfBlock)
	case topOK:
		return lipgloss.NewStyle().Foreground(opaque(top)).Render(halfBlock)
	case bottomOK:
		return lipgloss.NewStyle().Foreground(opaque(bottom)).Render("▄")
	}
	return " "
}

func opaque(c color.RGBA) color.Color {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xff}
}

// Placeholder draws a bordered box of the given size with label centered.
func Placeholder(width, height int, label string) string {
	if width < 4 {
		width = 4
	}
	if height < 3 {
		height = 3
	}
	return lipgloss.NewStyle().
		Width(width-2).
		Height(height-2).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#6B7280")).
		Foreground(lipgloss.Color("#6B7280")).
		Align(lipgloss.Center, lipgloss.Center).
		Render(label)
}
