package automation

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// PDFPrinter turns an HTML document into PDF bytes.
type PDFPrinter interface {
	PrintPDF(ctx context.Context, html string) ([]byte, error)
}

// ChromePrinter prints through a headless Chrome/Chromium started per call.
// BrowserPath may be empty, in which case the launcher looks for or downloads a browser.
type ChromePrinter struct {
	BrowserPath string
	Timeout     time.Duration
}

func (c ChromePrinter) PrintPDF(ctx context.Context, html string) (out []byte, err error) {
	timeout := c.Timeout
	if timeout == 0 {
		timeout = 60 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	// Leakless(false) so antivirus software does not block the helper binary
	l := launcher.New().
		Context(ctx).
		Headless(true).
		Leakless(false)
	if c.BrowserPath != "" {
		l = l.Bin(c.BrowserPath)
	}
	u, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}
	defer l.Cleanup()

	browser := rod.New().Context(ctx).ControlURL(u)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return nil, fmt.Errorf("failed to connect to browser: %w", err)
	}
	defer browser.Close()

	err = rod.Try(func() {
		page := browser.MustPage()
		if err := page.SetDocumentContent(html); err != nil {
			panic(err)
		}
		page.MustWaitLoad()

		r, err := page.PDF(&proto.PagePrintToPDF{
			Landscape:       true,
			PrintBackground: true,
		})
		if err != nil {
			panic(err)
		}
		out, err = io.ReadAll(r)
		if err != nil {
			panic(err)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("failed to print pdf: %w", err)
	}
	return out, nil
}
