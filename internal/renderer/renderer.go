package renderer

import (
	"bytes"
	"fmt"
	htmltpl "html/template"
	"regexp"
	"strings"
	texttpl "text/template"
	"time"
	"unicode/utf8"

	"github.com/janiskrasemann/scryfetch/internal/scryfall"
	"github.com/yuin/goldmark"
)

type DigestData struct {
	Date    string
	Edition int
	Results []scryfall.Result
}

type RenderedEmail struct {
	HTML string
	Text string
}

type Renderer struct {
	htmlTpl *htmltpl.Template
	textTpl *texttpl.Template
	now     func() time.Time
}

func New(htmlTemplate, textTemplate string) (*Renderer, error) {
	funcMap := htmltpl.FuncMap{
		"card":        asCard,
		"names":       asNames,
		"isCatalog":   isCatalog,
		"oracle":      renderOracle,
		"manaSymbols": manaSymbols,
		"price":       price,
		"excerpt":     excerpt,
	}
	textFuncMap := texttpl.FuncMap{
		"card":        asCard,
		"names":       asNames,
		"isCatalog":   isCatalog,
		"manaSymbols": manaSymbols,
		"price":       price,
		"excerpt":     excerpt,
	}

	ht, err := htmltpl.New("digest.html").Funcs(funcMap).Parse(htmlTemplate)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML template: %w", err)
	}

	tt, err := texttpl.New("digest.txt").Funcs(textFuncMap).Parse(textTemplate)
	if err != nil {
		return nil, fmt.Errorf("parsing text template: %w", err)
	}

	return &Renderer{htmlTpl: ht, textTpl: tt, now: time.Now}, nil
}

func (r *Renderer) Render(results []scryfall.Result, edition int) (*RenderedEmail, error) {
	data := DigestData{
		Date:    r.now().Format("Monday, January 2, 2006"),
		Edition: edition,
		Results: results,
	}

	var htmlBuf bytes.Buffer
	if err := r.htmlTpl.Execute(&htmlBuf, data); err != nil {
		return nil, fmt.Errorf("rendering HTML: %w", err)
	}

	var textBuf bytes.Buffer
	if err := r.textTpl.Execute(&textBuf, data); err != nil {
		return nil, fmt.Errorf("rendering text: %w", err)
	}

	return &RenderedEmail{
		HTML: htmlBuf.String(),
		Text: textBuf.String(),
	}, nil
}

func asCard(data any) *scryfall.Card {
	if c, ok := data.(scryfall.Card); ok {
		return &c
	}
	return nil
}

func asNames(data any) []string {
	if names, ok := data.([]string); ok {
		return names
	}
	return nil
}

func isCatalog(data any) bool {
	_, ok := data.([]string)
	return ok
}

var md = goldmark.New()

var symbolRe = regexp.MustCompile(`\{([^}]+)\}`)

// manaSymbols turns "{2}{U}{U}" into "(2)(U)(U)" for plain-text output.
func manaSymbols(s string) string {
	return symbolRe.ReplaceAllString(s, "($1)")
}

// renderOracle converts oracle text to HTML. Each rules paragraph becomes
// its own <p>; reminder text in parentheses is italicised.
func renderOracle(s string) htmltpl.HTML {
	if strings.TrimSpace(s) == "" {
		return ""
	}
	paragraphs := strings.Split(s, "\n")
	for i, p := range paragraphs {
		p = escapeBlockMarkers(escapeMarkdown(strings.TrimLeft(p, " \t")))
		paragraphs[i] = reminderRe.ReplaceAllString(p, "*($1)*")
	}
	var buf bytes.Buffer
	if err := md.Convert([]byte(strings.Join(paragraphs, "\n\n")), &buf); err != nil {
		return htmltpl.HTML(htmltpl.HTMLEscapeString(s))
	}
	return htmltpl.HTML(buf.String())
}

var reminderRe = regexp.MustCompile(`\(([^)]+)\)`)

var markdownEscaper = strings.NewReplacer(
	`\`, `\\`, `*`, `\*`, `_`, `\_`, "`", "\\`", `#`, `\#`, `[`, `\[`, `]`, `\]`, `<`, `&lt;`, `>`, `&gt;`,
)

func escapeMarkdown(s string) string {
	return markdownEscaper.Replace(s)
}

var (
	orderedListRe = regexp.MustCompile(`^(\d+)([.)])(\s)`)
	bulletListRe  = regexp.MustCompile(`^([-+])(\s|$)`)
)

// escapeBlockMarkers keeps a leading "1. ", "- " or "+ " from turning the
// line into a list.
func escapeBlockMarkers(s string) string {
	s = orderedListRe.ReplaceAllString(s, `$1\$2$3`)
	return bulletListRe.ReplaceAllString(s, `\$1$2`)
}

// price returns the USD price, or "n/a" when Scryfall has none.
func price(c *scryfall.Card) string {
	if c == nil || c.Prices["usd"] == "" {
		return "n/a"
	}
	return "$" + c.Prices["usd"]
}

func excerpt(s string, max int) string {
	s = strings.TrimSpace(s)
	if len(s) <= max {
		return s
	}
	cut := strings.LastIndex(s[:max], " ")
	if cut <= 0 {
		cut = max
		for cut > 0 && !utf8.RuneStart(s[cut]) {
			cut--
		}
	}
	return s[:cut] + "..."
}
