package render

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"regularfa/internal/automaton"
)

// Browser rasterises diagram pages with a headless Chrome instance
type Browser struct {
	timeout time.Duration
	width   int64
	height  int64
}

// NewBrowser creates a Browser whose page operations give up after timeout
func NewBrowser(timeout time.Duration) *Browser {
	return &Browser{
		timeout: timeout,
		width:   1024,
		height:  1024,
	}
}

// Screenshot renders doc and returns it as a PNG image
func (b *Browser) Screenshot(ctx context.Context, doc string) ([]byte, error) {
	var buf []byte
	err := b.run(ctx, doc, chromedp.FullScreenshot(&buf, 100))
	if err != nil {
		return nil, fmt.Errorf("failed to capture screenshot: %w", err)
	}
	return buf, nil
}

// PDF renders doc and returns it as a PDF document
func (b *Browser) PDF(ctx context.Context, doc string) ([]byte, error) {
	var buf []byte
	err := b.run(ctx, doc, chromedp.ActionFunc(func(ctx context.Context) error {
		data, _, err := page.PrintToPDF().WithPrintBackground(true).Do(ctx)
		if err != nil {
			return err
		}
		buf = data
		return nil
	}))
	if err != nil {
		return nil, fmt.Errorf("failed to print PDF: %w", err)
	}
	return buf, nil
}

func (b *Browser) run(ctx context.Context, doc string, capture chromedp.Action) error {
	// Create Chrome instance
	ctx, cancel := chromedp.NewContext(ctx)
	defer cancel()

	// Add timeout
	ctx, cancel = context.WithTimeout(ctx, b.timeout)
	defer cancel()

	actions := []chromedp.Action{
		chromedp.EmulateViewport(b.width, b.height),
		chromedp.Navigate("about:blank"),
		setContent(doc),
		chromedp.WaitVisible("svg", chromedp.ByQuery),
		capture,
	}
	return chromedp.Run(ctx, actions...)
}

// setContent replaces the document of the main frame with doc
func setContent(doc string) chromedp.Action {
	return chromedp.ActionFunc(func(ctx context.Context) error {
		tree, err := page.GetFrameTree().Do(ctx)
		if err != nil {
			return err
		}
		return page.SetDocumentContent(tree.Frame.ID, doc).Do(ctx)
	})
}

// ToFile writes the diagram of a to path. The format follows the file
// extension: .html and .htm are written directly, .png and .pdf are
// rendered through b.
func (b *Browser) ToFile(ctx context.Context, a *automaton.Automaton, title, path string) error {
	var doc bytes.Buffer
	if err := WriteHTML(&doc, a, title); err != nil {
		return err
	}

	var out []byte
	var err error
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".html", ".htm":
		out = doc.Bytes()
	case ".png":
		out, err = b.Screenshot(ctx, doc.String())
	case ".pdf":
		out, err = b.PDF(ctx, doc.String())
	default:
		return fmt.Errorf("unsupported diagram format %q", ext)
	}
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, out, 0644); err != nil {
		return fmt.Errorf("failed to write diagram: %w", err)
	}
	return nil
}
