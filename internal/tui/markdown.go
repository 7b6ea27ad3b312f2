// SPDX-License-Identifier: MPL-2.0

package tui

import (
	"fmt"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/styles"
)

const (
	// StyleAuto picks dark or light from the terminal background and falls
	// back to StylePlain when stdout is not a terminal.
	StyleAuto Style = styles.AutoStyle
	// StyleDark is glamour's dark style.
	StyleDark Style = styles.DarkStyle
	// StyleLight is glamour's light style.
	StyleLight Style = styles.LightStyle
	// StylePlain renders without colors or escape sequences.
	StylePlain Style = styles.NoTTYStyle

	// DefaultWidth is the word-wrap width used when none is given.
	DefaultWidth = 80
)

type (
	// Style names a glamour standard style.
	Style string

	// MarkdownOptions configures RenderMarkdown.
	MarkdownOptions struct {
		// Style selects the color scheme. Empty means StyleAuto.
		Style Style
		// Width is the word-wrap width. Zero means DefaultWidth and a
		// negative value disables wrapping.
		Width int
	}
)

// StyleFor maps a configured color scheme name ("auto", "dark", "light") to
// a Style. Unknown names fall back to StyleAuto.
func StyleFor(scheme string) Style {
	switch Style(scheme) {
	case StyleDark, StyleLight, StylePlain:
		return Style(scheme)
	default:
		return StyleAuto
	}
}

// RenderMarkdown renders md for display in a terminal.
func RenderMarkdown(md string, opts MarkdownOptions) (string, error) {
	style := opts.Style
	if style == "" {
		style = StyleAuto
	}

	rendererOpts := []glamour.TermRendererOption{glamour.WithEmoji()}
	if style == StyleAuto {
		rendererOpts = append(rendererOpts, glamour.WithAutoStyle())
	} else {
		rendererOpts = append(rendererOpts, glamour.WithStandardStyle(string(style)))
	}

	switch {
	case opts.Width == 0:
		rendererOpts = append(rendererOpts, glamour.WithWordWrap(DefaultWidth))
	case opts.Width > 0:
		rendererOpts = append(rendererOpts, glamour.WithWordWrap(opts.Width))
	default:
		rendererOpts = append(rendererOpts, glamour.WithWordWrap(0))
	}

	renderer, err := glamour.NewTermRenderer(rendererOpts...)
	if err != nil {
		return "", fmt.Errorf("creating markdown renderer: %w", err)
	}
	out, err := renderer.Render(md)
	if err != nil {
		return "", fmt.Errorf("rendering markdown: %w", err)
	}
	return out, nil
}
