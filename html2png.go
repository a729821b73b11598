package docxsign

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/alnah/go-docxsign/internal/process"
)

// pngRenderer abstracts HTML to PNG rendering to allow testing without a browser.
type pngRenderer interface {
	RenderFromFile(ctx context.Context, filePath string, opts *pngOptions) ([]byte, error)
	Close() error
}

// pngOptions holds options for a screenshot.
type pngOptions struct {
	Width int     // CSS pixels
	Scale float64 // device scale factor; the PNG is Width*Scale pixels wide
}

// minViewportHeight is the initial viewport height before the content is measured.
const minViewportHeight = 64

// measureHeightJS returns the rendered content height in CSS pixels.
const measureHeightJS = `() => Math.ceil(Math.max(
	document.documentElement.scrollHeight,
	document.body ? document.body.scrollHeight : 0,
	document.documentElement.getBoundingClientRect().height))`

// rodRenderer implements pngRenderer using go-rod.
// Rod downloads Chromium on first run when no browser is found.
type rodRenderer struct {
	launcher *launcher.Launcher
	browser  *rod.Browser
	timeout  time.Duration
}

// newRodRenderer creates a rodRenderer with the given timeout.
func newRodRenderer(timeout time.Duration) *rodRenderer {
	return &rodRenderer{timeout: timeout}
}

// ensureBrowser lazily launches and connects to the browser.
func (r *rodRenderer) ensureBrowser() error {
	if r.browser != nil {
		return nil
	}

	// Banner templates reference images next to them through file:// URLs.
	l := launcher.New().Set("allow-file-access-from-files")

	// Use pre-installed browser if specified (Docker/containerized environments)
	if bin := os.Getenv("ROD_BROWSER_BIN"); bin != "" {
		l = l.Bin(bin)
	}

	// NoSandbox required for CI and containerized environments
	if os.Getenv("CI") == "true" || os.Getenv("ROD_NO_SANDBOX") == "1" || os.Getenv("ROD_BROWSER_BIN") != "" {
		l = l.NoSandbox(true)
	}

	u, err := l.Launch()
	if err != nil {
		l.Kill()
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}
	r.launcher = l

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		r.killLauncher()
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}
	r.browser = browser
	return nil
}

// Close closes the browser and kills its process tree.
func (r *rodRenderer) Close() error {
	var err error
	if r.browser != nil {
		err = r.browser.Close()
		r.browser = nil
	}
	r.killLauncher()
	return err
}

// killLauncher kills the browser process group, then lets the launcher
// clean its own process and user data directory.
func (r *rodRenderer) killLauncher() {
	if r.launcher == nil {
		return
	}
	process.KillProcessGroup(r.launcher.PID())
	r.launcher.Kill()
	r.launcher.Cleanup()
	r.launcher = nil
}

// RenderFromFile loads a local HTML file and screenshots it as a PNG with a
// transparent background, opts.Width CSS pixels wide and as tall as the content.
func (r *rodRenderer) RenderFromFile(ctx context.Context, filePath string, opts *pngOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if opts == nil || opts.Width <= 0 {
		return nil, fmt.Errorf("%w: width must be positive", ErrBannerRender)
	}
	scale := opts.Scale
	if scale <= 0 {
		scale = 1
	}

	if err := r.ensureBrowser(); err != nil {
		return nil, err
	}

	timeout := r.timeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline)
		if timeout <= 0 {
			return nil, context.DeadlineExceeded
		}
	}

	blank, err := r.browser.Page(proto.TargetCreateTarget{URL: "about:blank"})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageCreate, err)
	}
	defer func() { _ = blank.Close() }()
	page := blank.Context(ctx).Timeout(timeout)
	defer page.CancelTimeout()

	if err := setViewport(page, opts.Width, minViewportHeight, scale); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageCreate, err)
	}
	transparent := 0.0
	if err := (proto.EmulationSetDefaultBackgroundColorOverride{
		Color: &proto.DOMRGBA{A: &transparent},
	}).Call(page); err != nil {
		return nil, fmt.Errorf("%w: transparent background: %v", ErrPageCreate, err)
	}

	if err := page.Navigate(fileURL(filePath)); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageLoad, err)
	}
	if err := page.WaitLoad(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageLoad, err)
	}

	res, err := page.Eval(measureHeightJS)
	if err != nil {
		return nil, fmt.Errorf("%w: measuring content: %v", ErrBannerRender, err)
	}
	height := res.Value.Int()
	if height <= 0 {
		return nil, fmt.Errorf("%w: banner has no visible content", ErrBannerRender)
	}

	if err := setViewport(page, opts.Width, height, scale); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBannerRender, err)
	}

	img, err := page.Screenshot(false, &proto.PageCaptureScreenshot{
		Format: proto.PageCaptureScreenshotFormatPng,
		Clip: &proto.PageViewport{
			X:      0,
			Y:      0,
			Width:  float64(opts.Width),
			Height: float64(height),
			Scale:  1,
		},
		CaptureBeyondViewport: true,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBannerRender, err)
	}
	return img, nil
}

func setViewport(page *rod.Page, width, height int, scale float64) error {
	return page.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
		Width:             width,
		Height:            height,
		DeviceScaleFactor: scale,
	})
}

// fileURL converts a local path to a file:// URL, escaping as needed.
func fileURL(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	p := filepath.ToSlash(abs)
	if p[0] != '/' {
		p = "/" + p
	}
	return (&url.URL{Scheme: "file", Path: p}).String()
}
