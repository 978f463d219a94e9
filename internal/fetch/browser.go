// Package fetch - browser.go provides headless browser rendering for SPA
// job boards that return an empty shell over plain HTTP.
package fetch

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/chromedp/chromedp"
)

// MinContentLength is the minimum extracted text length to consider an HTTP
// fetch successful; shorter content suggests a JavaScript-rendered page.
const MinContentLength = 500

// browserTimeout bounds a single headless-browser render.
const browserTimeout = 60 * time.Second

// ShouldUseBrowser reports whether the extracted text is too short to be a
// real posting, indicating the page needs browser rendering.
func ShouldUseBrowser(extractedText string) bool {
	return len(strings.TrimSpace(extractedText)) < MinContentLength
}

// WithBrowser renders a page in a headless browser and returns the rendered
// HTML. Requires Chrome/Chromium to be installed on the system.
func WithBrowser(ctx context.Context, url string, verbose bool) (string, error) {
	if verbose {
		log.Printf("[BROWSER] Rendering %s", url)
	}

	allocCtx, cancel := chromedp.NewExecAllocator(ctx,
		append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", true),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("no-sandbox", true),
			chromedp.Flag("disable-dev-shm-usage", true),
		)...,
	)
	defer cancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	browserCtx, cancel = context.WithTimeout(browserCtx, browserTimeout)
	defer cancel()

	var html string
	err := chromedp.Run(browserCtx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body"),
		// Give client-side rendering a moment to fill the page
		chromedp.Sleep(3*time.Second),
		chromedp.OuterHTML("html", &html),
	)
	if err != nil {
		return "", &Error{URL: url, Message: "browser rendering failed", Cause: err}
	}

	if verbose {
		log.Printf("[BROWSER] Rendered %d bytes", len(html))
	}
	return html, nil
}
