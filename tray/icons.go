package tray

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"math"
)

var (
	iconIdle []byte
	iconBusy []byte
)

func init() {
	blue := color.RGBA{R: 10, G: 132, B: 255, A: 255}
	iconIdle = renderIcon(22, nil, 0)
	iconBusy = renderIcon(22, &blue, 22.0/6.5)
}

func encodePNG(img image.Image) []byte {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		panic("encodePNG: " + err.Error())
	}
	return buf.Bytes()
}

// renderIcon draws a filled disc with an optional colored center dot.
func renderIcon(size int, dot *color.RGBA, dotR float64) []byte {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	cx, cy := float64(size)/2, float64(size)/2
	r := float64(size)/2 - 1
	for y := range size {
		for x := range size {
			d := math.Hypot(float64(x)+0.5-cx, float64(y)+0.5-cy)
			if dot != nil && d <= dotR {
				img.Set(x, y, dot)
			} else if d <= r {
				img.Set(x, y, color.Black)
			}
		}
	}
	return encodePNG(img)
}
