package ui

import (
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
)

// CaptionRenderer renders post captions as markdown, one glamour renderer
// per theme and width.
type CaptionRenderer struct {
	mu        sync.Mutex
	renderers map[captionKey]*glamour.TermRenderer
}

type captionKey struct {
	dark  bool
	width int
}

// NewCaptionRenderer creates an empty renderer cache.
func NewCaptionRenderer() *CaptionRenderer {
	return &CaptionRenderer{renderers: make(map[captionKey]*glamour.TermRenderer)}
}

// Render returns caption as styled terminal text. On any glamour error the
// plain caption is returned.
func (c *CaptionRenderer) Render(caption string, dark bool, width int) string {
	if c == nil || strings.TrimSpace(caption) == "" {
		return caption
	}
	r, err := c.renderer(dark, width)
	if err != nil {
		return caption
	}
	out, err := r.Render(caption)
	if err != nil {
		return caption
	}
	return strings.Trim(out, "\n")
}

func (c *CaptionRenderer) renderer(dark bool, width int) (*glamour.TermRenderer, error) {
	if width < 20 {
		width = 20
	}
	key := captionKey{dark: dark, width: width}

	c.mu.Lock()
	defer c.mu.Unlock()
	if r, ok := c.renderers[key]; ok {
		return r, nil
	}

	style := "light"
	if dark {
		style = "dark"
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, err
	}
	c.renderers[key] = r
	return r, nil
}
