// Package pdf converts rendered portfolio HTML into paginated PDF bytes
// using a headless Chromium instance.
package pdf

import (
	"context"
	"strings"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/goliatone/go-folio/folio"
)

// A4 paper in inches; margins are fixed at 20px (96 dpi).
const (
	a4WidthInches  = 8.27
	a4HeightInches = 11.69
	marginInches   = 20.0 / 96.0
)

// DefaultRenderTimeout bounds a single PDF render.
const DefaultRenderTimeout = 30 * time.Second

// ChromiumEngine renders PDF output with a per-request headless Chromium
// instance. The browser is released on every exit path.
type ChromiumEngine struct {
	BrowserPath string
	Headless    bool
	Timeout     time.Duration
	Args        []string
}

// NewChromiumEngine creates a headless engine with the default timeout.
func NewChromiumEngine() *ChromiumEngine {
	return &ChromiumEngine{Headless: true, Timeout: DefaultRenderTimeout}
}

// Render loads the HTML as the document content and prints it to A4 pages
// with background graphics enabled.
func (e *ChromiumEngine) Render(ctx context.Context, html []byte) ([]byte, error) {
	if e == nil {
		return nil, folio.NewError(folio.KindInternal, "chromium engine is nil", nil)
	}
	if len(html) == 0 {
		return nil, folio.NewError(folio.KindValidation, "html input is required", nil)
	}
	if ctx == nil {
		ctx = context.Background()
	}

	timeout := e.Timeout
	if timeout <= 0 {
		timeout = DefaultRenderTimeout
	}
	execCtx, cancelTimeout := context.WithTimeout(ctx, timeout)
	defer cancelTimeout()

	options := append([]chromedp.ExecAllocatorOption{}, chromedp.DefaultExecAllocatorOptions[:]...)
	if e.BrowserPath != "" {
		options = append(options, chromedp.ExecPath(e.BrowserPath))
	}
	options = append(options, chromedp.Flag("headless", e.Headless))
	options = append(options, allocatorOptionsFromArgs(e.Args)...)

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(execCtx, options...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	var pdf []byte
	actions := []chromedp.Action{
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			tree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(tree.Frame.ID, string(html)).Do(ctx)
		}),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			pdf, _, err = printParams().Do(ctx)
			return err
		}),
	}

	if err := chromedp.Run(browserCtx, actions...); err != nil {
		return nil, folio.NewError(folio.KindPDF, "chromium pdf render failed", err)
	}
	return pdf, nil
}

func printParams() *page.PrintToPDFParams {
	return page.PrintToPDF().
		WithPaperWidth(a4WidthInches).
		WithPaperHeight(a4HeightInches).
		WithMarginTop(marginInches).
		WithMarginBottom(marginInches).
		WithMarginLeft(marginInches).
		WithMarginRight(marginInches).
		WithPrintBackground(true)
}

func allocatorOptionsFromArgs(args []string) []chromedp.ExecAllocatorOption {
	options := make([]chromedp.ExecAllocatorOption, 0, len(args))
	for _, arg := range args {
		arg = strings.TrimPrefix(strings.TrimSpace(arg), "--")
		if arg == "" {
			continue
		}
		if name, value, ok := strings.Cut(arg, "="); ok {
			options = append(options, chromedp.Flag(name, value))
			continue
		}
		options = append(options, chromedp.Flag(arg, true))
	}
	return options
}
