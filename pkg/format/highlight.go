package format

import (
	"fmt"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

type lang int

const (
	langJSON lang = iota
	langHTML
)

// Lexers, formatter and theme are resolved once at startup. The chroma
// registries are immutable after init, so the values are safe to share.
var (
	jsonLexer = lexerFor("json")
	htmlLexer = lexerFor("html")

	termFormatter = formatters.Get("terminal256")
	termStyle     = styles.Get("monokai")
)

func lexerFor(name string) chroma.Lexer {
	l := lexers.Get(name)
	if l == nil {
		l = lexers.Fallback
	}
	return chroma.Coalesce(l)
}

// highlight renders body with syntax highlighting for the given language.
// With color disabled, or when tokenizing fails, the body is printed as-is.
func (p *Printer) highlight(body string, l lang) error {
	if !p.color {
		_, err := fmt.Fprintln(p.out, body)
		return err
	}

	lexer := jsonLexer
	if l == langHTML {
		lexer = htmlLexer
	}

	it, err := lexer.Tokenise(nil, body)
	if err != nil {
		_, err := fmt.Fprintln(p.out, p.render(stylePlainBody, body))
		return err
	}
	if err := termFormatter.Format(p.out, termStyle, it); err != nil {
		return fmt.Errorf("highlight body: %w", err)
	}
	_, err = fmt.Fprintln(p.out)
	return err
}
