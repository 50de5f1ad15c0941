// Package qr renders login URLs as terminal QR codes.
package qr

import (
	"fmt"
	"strings"

	qrcode "github.com/skip2/go-qrcode"
)

const (
	filled = "██"
	empty  = "  "

	// border is the quiet zone width in modules.
	border = 1
)

// Matrix encodes url at the lowest error correction level and returns its
// modules, true for dark, surrounded by a one-module quiet zone.
func Matrix(url string) ([][]bool, error) {
	code, err := qrcode.New(url, qrcode.Low)
	if err != nil {
		return nil, fmt.Errorf("encode qr code: %w", err)
	}
	code.DisableBorder = true
	bitmap := code.Bitmap()

	size := len(bitmap) + 2*border
	grid := make([][]bool, size)
	for y := range grid {
		grid[y] = make([]bool, size)
	}
	for y, row := range bitmap {
		copy(grid[y+border][border:], row)
	}
	return grid, nil
}

// Render draws each module as two block characters or two spaces, one line per row.
func Render(url string) (string, error) {
	grid, err := Matrix(url)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.Grow(len(grid) * (len(grid)*len(filled) + 1))
	for _, row := range grid {
		for _, dark := range row {
			if dark {
				b.WriteString(filled)
			} else {
				b.WriteString(empty)
			}
		}
		b.WriteByte('\n')
	}
	return b.String(), nil
}
