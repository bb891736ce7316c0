package format

import (
	"fmt"
	"io"
	"mime"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/avholst/htty/pkg/request"
)

var styleSuccess = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("#04B575"))

var styleWarning = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("#FF7043"))

var styleHeaderName = lipgloss.NewStyle().
	Foreground(lipgloss.Color("#04B575"))

var stylePlainBody = lipgloss.NewStyle().
	Foreground(lipgloss.Color("#00BCD4"))

// Printer renders a response as a status line, the headers and the body, in
// that order.
type Printer struct {
	out   io.Writer
	color bool
}

type PrinterOption func(*Printer)

// WithColor toggles styled output and syntax highlighting.
func WithColor(enabled bool) PrinterOption {
	return func(p *Printer) {
		p.color = enabled
	}
}

func NewPrinter(out io.Writer, opts ...PrinterOption) *Printer {
	p := &Printer{
		out:   out,
		color: true,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Print renders the full response. Rendering runs top to bottom, so earlier
// stages may already be on screen when a later stage fails.
func (p *Printer) Print(res *request.Response) error {
	if err := p.printStatus(res); err != nil {
		return err
	}
	if err := p.printHeaders(res); err != nil {
		return err
	}
	return p.printBody(res)
}

// printStatus renders client and server errors as a bare warning-styled
// status, and everything else as protocol plus status followed by a blank
// line.
func (p *Printer) printStatus(res *request.Response) error {
	status := strconv.Itoa(res.StatusCode) + " " + res.StatusPhrase
	if res.StatusCode >= 400 {
		_, err := fmt.Fprintln(p.out, p.render(styleWarning, status))
		return err
	}
	if _, err := fmt.Fprintln(p.out, p.render(styleSuccess, res.Proto+" "+status)); err != nil {
		return err
	}
	_, err := fmt.Fprintln(p.out)
	return err
}

func (p *Printer) printHeaders(res *request.Response) error {
	names := make([]string, 0, len(res.Headers))
	for name := range res.Headers {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		for _, value := range res.Headers[name] {
			// A value that is not valid UTF-8 is rendered with
			// replacement runes instead of aborting the print.
			value = strings.ToValidUTF8(value, "�")
			if _, err := fmt.Fprintln(p.out, p.render(styleHeaderName, name)+": "+value); err != nil {
				return err
			}
		}
	}
	_, err := fmt.Fprintln(p.out)
	return err
}

func (p *Printer) printBody(res *request.Response) error {
	body := string(res.Body)
	switch mediaType(res.ContentType()) {
	case "application/json":
		return p.highlight(body, langJSON)
	case "text/html":
		return p.highlight(body, langHTML)
	default:
		_, err := fmt.Fprintln(p.out, p.render(stylePlainBody, body))
		return err
	}
}

// mediaType parses a Content-Type header value. An absent or unparseable
// value yields the empty string, which selects the plain body path.
func mediaType(ct string) string {
	if ct == "" {
		return ""
	}
	mt, _, err := mime.ParseMediaType(ct)
	if err != nil {
		return ""
	}
	return mt
}

func (p *Printer) render(s lipgloss.Style, text string) string {
	if !p.color {
		return text
	}
	return s.Render(text)
}
