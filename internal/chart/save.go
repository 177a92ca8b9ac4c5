// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package chart

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/petenewcomb/benchbars/internal/cerr"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// Save writes the chart to path, replacing any existing file. The image format
// follows the file extension. The image is encoded into a temporary file next
// to path and renamed into place, so a failed save leaves no partial image.
func (c *Chart) Save(path string) (err error) {
	format := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	if !supportedFormat(format) {
		return fmt.Errorf("%w: unsupported image format %q for %s", cerr.ErrRender, format, path)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("%w: %w", cerr.ErrRender, err)
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
			err = fmt.Errorf("%w: writing %s: %w", cerr.ErrRender, path, err)
		}
	}()

	if err = c.Encode(tmp, format); err != nil {
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	if err = os.Chmod(tmp.Name(), 0o644); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// Encode writes the chart to w in the given format ("png", "svg", ...).
// Raster formats are drawn at the style's DPI.
func (c *Chart) Encode(w io.Writer, format string) error {
	var wt io.WriterTo
	switch format {
	case "png", "jpg", "jpeg", "tif", "tiff":
		canvas := vgimg.NewWith(
			vgimg.UseWH(c.style.Width, c.style.Height),
			vgimg.UseDPI(c.style.DPI),
		)
		c.plot.Draw(draw.New(canvas))
		switch format {
		case "png":
			wt = vgimg.PngCanvas{Canvas: canvas}
		case "jpg", "jpeg":
			wt = vgimg.JpegCanvas{Canvas: canvas}
		default:
			wt = vgimg.TiffCanvas{Canvas: canvas}
		}
	case "svg", "pdf", "eps":
		var err error
		wt, err = c.plot.WriterTo(c.style.Width, c.style.Height, format)
		if err != nil {
			return err
		}
	default:
		return fmt.Errorf("unsupported image format %q", format)
	}
	_, err := wt.WriteTo(w)
	return err
}

func supportedFormat(format string) bool {
	switch format {
	case "png", "jpg", "jpeg", "tif", "tiff", "svg", "pdf", "eps":
		return true
	}
	return false
}
