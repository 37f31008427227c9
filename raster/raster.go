// Package raster rasterizes rendered SVG formulas to PNG for previews
// and consumers that cannot embed vector output.
package raster

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"math"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
)

// PNG rasterizes SVG data to an encoded PNG.
//
// Sizing rules:
//   - targetW == 0 && targetH == 0: use the SVG viewBox dimensions
//   - only one of targetW/targetH > 0: scale by it, keeping aspect
//   - both > 0: fit into the box, keeping aspect
func PNG(svgData []byte, targetW, targetH int) ([]byte, error) {
	icon, err := oksvg.ReadIconStream(bytes.NewReader(svgData))
	if err != nil {
		return nil, fmt.Errorf("parse svg: %w", err)
	}

	w, h := fitDimensions(icon.ViewBox.W, icon.ViewBox.H, targetW, targetH)
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("svg has no usable dimensions (viewBox %gx%g)",
			icon.ViewBox.W, icon.ViewBox.H)
	}

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	scanner := rasterx.NewScannerGV(w, h, img, img.Bounds())
	dasher := rasterx.NewDasher(w, h, scanner)
	icon.SetTarget(0, 0, float64(w), float64(h))
	icon.Draw(dasher, 1.0)

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

func fitDimensions(vbW, vbH float64, targetW, targetH int) (int, int) {
	intrW := int(math.Ceil(vbW))
	intrH := int(math.Ceil(vbH))
	switch {
	case targetW <= 0 && targetH <= 0:
		return intrW, intrH
	case targetH <= 0:
		if vbW <= 0 {
			return targetW, targetW
		}
		return targetW, int(math.Ceil(float64(targetW) * vbH / vbW))
	case targetW <= 0:
		if vbH <= 0 {
			return targetH, targetH
		}
		return int(math.Ceil(float64(targetH) * vbW / vbH)), targetH
	default:
		if vbW <= 0 || vbH <= 0 {
			return targetW, targetH
		}
		scale := math.Min(float64(targetW)/vbW, float64(targetH)/vbH)
		return int(math.Ceil(vbW * scale)), int(math.Ceil(vbH * scale))
	}
}
