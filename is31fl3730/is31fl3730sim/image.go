// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package is31fl3730sim

import (
	"fmt"
	"image"

	"github.com/GermanBionicSystems/reboot/sevenseg"
	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font/gofont/goregular"
)

const (
	digitW  = 40.0
	digitH  = 70.0
	margin  = 10.0
	labelH  = 20.0
	segSize = 6.0
)

type rect struct {
	x, y, w, h float64
}

// segments is the geometry of each segment in a digitW x digitH box.
var segments = []struct {
	seg byte
	r   rect
}{
	{sevenseg.SegA, rect{segSize, 0, digitW - 2*segSize, segSize}},
	{sevenseg.SegB, rect{digitW - segSize, segSize - 1, segSize, digitH/2 - segSize}},
	{sevenseg.SegC, rect{digitW - segSize, digitH/2 + 2, segSize, digitH/2 - segSize}},
	{sevenseg.SegD, rect{segSize, digitH - segSize, digitW - 2*segSize, segSize}},
	{sevenseg.SegE, rect{0, digitH/2 + 2, segSize, digitH/2 - segSize}},
	{sevenseg.SegF, rect{0, segSize - 1, segSize, digitH/2 - segSize}},
	{sevenseg.SegG, rect{segSize, (digitH - segSize) / 2, digitW - 2*segSize, segSize}},
}

// Draw renders the visible digits of chips, one display per row, each
// labelled with its address. zoom multiplies every dimension.
func Draw(zoom float64, chips ...*Chip) (image.Image, error) {
	dc, err := draw(zoom, chips)
	if err != nil {
		return nil, err
	}
	return dc.Image(), nil
}

// SavePNG renders chips like Draw does and writes the result to path.
func SavePNG(path string, zoom float64, chips ...*Chip) error {
	dc, err := draw(zoom, chips)
	if err != nil {
		return err
	}
	return dc.SavePNG(path)
}

func draw(zoom float64, chips []*Chip) (*gg.Context, error) {
	if zoom <= 0 {
		zoom = 1
	}
	f, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("is31fl3730sim: %w", err)
	}
	maxDigits := 1
	for _, c := range chips {
		maxDigits = max(maxDigits, c.Digits())
	}
	rowH := labelH + digitH + margin
	w := int(zoom * (margin + float64(maxDigits)*(digitW+margin)))
	h := int(zoom * (margin + float64(len(chips))*rowH))

	dc := gg.NewContext(w, h)
	dc.SetRGB(0, 0, 0)
	dc.Clear()
	dc.SetFontFace(truetype.NewFace(f, &truetype.Options{Size: 12 * zoom}))

	for row, c := range chips {
		top := margin + float64(row)*rowH
		dc.SetRGB(0.7, 0.7, 0.7)
		dc.DrawString(fmt.Sprintf("0x%02x  %s  pwm 0x%02x", c.Addr(), c.Current(), c.PWM()), zoom*margin, zoom*(top+labelH-6))
		on := scale(DefaultTerminalOpts.On, c.Brightness())
		for i, p := range c.Visible() {
			left := margin + float64(i)*(digitW+margin)
			for _, s := range segments {
				if p&s.seg != 0 {
					dc.SetColor(on)
				} else {
					dc.SetColor(DefaultTerminalOpts.Off)
				}
				dc.DrawRoundedRectangle(zoom*(left+s.r.x), zoom*(top+labelH+s.r.y), zoom*s.r.w, zoom*s.r.h, zoom*2)
				dc.Fill()
			}
		}
	}
	return dc, nil
}
