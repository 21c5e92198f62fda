package markdown

import (
	"bytes"
	"fmt"
	"html"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// converter is configured once; goldmark converters are safe for
// concurrent use. Raw HTML in the source is escaped (the goldmark
// default), so the output is sanitized.
var converter = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
)

// RenderHTML converts markdown text to sanitized HTML. It is a pure
// function of its input. A conversion failure never propagates: the
// result is a visible inline error block instead.
func RenderHTML(text string) string {
	out, err := renderHTML(text)
	if err != nil {
		return fmt.Sprintf("<pre class=\"render-error\">markdown rendering failed: %s</pre>", html.EscapeString(err.Error()))
	}
	return out
}

func renderHTML(text string) (out string, err error) {
	// goldmark node renderers can panic on pathological input; keep the
	// failure inside the renderer boundary.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%v", r)
		}
	}()

	var buf bytes.Buffer
	if err := converter.Convert([]byte(text), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}
