package docxsign

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"

	"golang.org/x/image/draw"

	"github.com/alnah/go-docxsign/internal/fileutil"
	"github.com/alnah/go-docxsign/internal/pipeline"
)

// bannerSpec describes the image to render.
type bannerSpec struct {
	Width int     // output width in pixels
	Scale float64 // supersampling factor
}

// renderBanner executes the template, loads the page in the browser and
// returns a PNG exactly spec.Width pixels wide.
func renderBanner(ctx context.Context, tmpl pipeline.BannerRenderer, r pngRenderer, data pipeline.BannerData, spec bannerSpec) ([]byte, error) {
	page, err := tmpl.Render(ctx, data)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%w: %v", ErrBannerRender, err)
	}

	path, cleanup, err := fileutil.WriteTempFile(page, "html")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBannerRender, err)
	}
	defer cleanup()

	img, err := r.RenderFromFile(ctx, path, &pngOptions{Width: spec.Width, Scale: spec.Scale})
	if err != nil {
		return nil, err
	}

	if spec.Scale > 1 {
		img, err = downscalePNG(img, spec.Width)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrBannerRender, err)
		}
	}
	return img, nil
}

// downscalePNG resamples a PNG to the given width, keeping the aspect ratio.
// Images already at that width are returned unchanged.
func downscalePNG(data []byte, width int) ([]byte, error) {
	src, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding screenshot: %w", err)
	}
	b := src.Bounds()
	if b.Dx() == width {
		return data, nil
	}

	height := max(1, (b.Dy()*width+b.Dx()/2)/b.Dx())
	dst := image.NewNRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Src, nil)

	var buf bytes.Buffer
	enc := png.Encoder{CompressionLevel: png.BestCompression}
	if err := enc.Encode(&buf, dst); err != nil {
		return nil, fmt.Errorf("encoding banner: %w", err)
	}
	return buf.Bytes(), nil
}

// pngSize returns the pixel dimensions of a PNG.
func pngSize(data []byte) (width, height int, err error) {
	cfg, err := png.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return 0, 0, fmt.Errorf("%w: not a PNG: %v", ErrBannerRender, err)
	}
	if cfg.Width == 0 || cfg.Height == 0 {
		return 0, 0, fmt.Errorf("%w: empty image", ErrBannerRender)
	}
	return cfg.Width, cfg.Height, nil
}
