package deckfile

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
	"gopkg.in/yaml.v3"

	"github.com/aretw0/matrixdeck/pkg/domain"
)

const separator = "---"

var md = goldmark.New()

// ParseMarkdown reads a markdown deck. Slides are separated by lines holding only "---"
// outside fenced code. When the very first line is "---", everything up to the next
// separator is YAML front matter describing the deck.
func ParseMarkdown(data []byte) (*domain.Deck, error) {
	chunks := splitSlides(data)

	var meta domain.Meta
	if len(chunks) > 0 && chunks[0].frontMatter {
		if err := decodeFrontMatter(chunks[0].body, &meta); err != nil {
			return nil, err
		}
		chunks = chunks[1:]
	}

	slides := make([]*domain.Slide, 0, len(chunks))
	for _, c := range chunks {
		if len(bytes.TrimSpace(c.body)) == 0 {
			continue
		}
		blocks := ParseBlocks(c.body)
		slides = append(slides, domain.NewSlide(slideTitle(blocks, len(slides)+1), blocks))
	}

	deck, err := domain.NewDeck(meta, slides)
	if err != nil {
		return nil, err
	}
	if deck.Meta.Title == "" {
		deck.Meta.Title = deck.Slides[0].Title
	}
	return deck, nil
}

type chunk struct {
	body        []byte
	frontMatter bool
}

func splitSlides(data []byte) []chunk {
	var (
		chunks  []chunk
		current bytes.Buffer
		fence   string
		first   = true
		inFront bool
	)

	flush := func() {
		chunks = append(chunks, chunk{body: bytes.Clone(current.Bytes()), frontMatter: inFront})
		current.Reset()
		inFront = false
	}

	for raw := range bytes.Lines(data) {
		line := strings.TrimSuffix(strings.TrimSuffix(string(raw), "\n"), "\r")
		trimmed := strings.TrimSpace(line)

		if first {
			first = false
			if trimmed == separator {
				inFront = true
				continue
			}
		}

		if fence == "" && trimmed == separator {
			flush()
			continue
		}
		if f := fenceMarker(trimmed); f != "" {
			switch {
			case fence == "":
				fence = f
			case strings.HasPrefix(trimmed, fence) && strings.TrimLeft(trimmed, fence[:1]) == "":
				fence = ""
			}
		}
		current.WriteString(line)
		current.WriteByte('\n')
	}
	if current.Len() > 0 || inFront {
		flush()
	}
	return chunks
}

func fenceMarker(line string) string {
	for _, m := range []string{"```", "~~~"} {
		if strings.HasPrefix(line, m) {
			n := len(line) - len(strings.TrimLeft(line, m[:1]))
			return line[:n]
		}
	}
	return ""
}

func decodeFrontMatter(body []byte, meta *domain.Meta) error {
	var raw map[string]any
	if err := yaml.Unmarshal(body, &raw); err != nil {
		return fmt.Errorf("invalid front matter: %w", err)
	}
	if err := mapstructure.Decode(raw, meta); err != nil {
		return fmt.Errorf("failed to decode front matter: %w", err)
	}
	return nil
}

// ParseBlocks turns a markdown fragment into content blocks.
func ParseBlocks(src []byte) []*domain.Block {
	doc := md.Parser().Parse(text.NewReader(src))

	var blocks []*domain.Block
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		blocks = appendBlocks(blocks, n, src, 1)
	}
	return blocks
}

func appendBlocks(blocks []*domain.Block, n ast.Node, src []byte, depth int) []*domain.Block {
	switch node := n.(type) {
	case *ast.Heading:
		return append(blocks, &domain.Block{Kind: domain.BlockHeading, Level: node.Level, Text: inlineText(node, src)})
	case *ast.Paragraph, *ast.TextBlock:
		if t := inlineText(node, src); t != "" {
			return append(blocks, &domain.Block{Kind: domain.BlockParagraph, Text: t})
		}
	case *ast.List:
		for item := node.FirstChild(); item != nil; item = item.NextSibling() {
			var nested []ast.Node
			var parts []string
			for c := item.FirstChild(); c != nil; c = c.NextSibling() {
				if _, ok := c.(*ast.List); ok {
					nested = append(nested, c)
					continue
				}
				if t := inlineText(c, src); t != "" {
					parts = append(parts, t)
				}
			}
			blocks = append(blocks, &domain.Block{Kind: domain.BlockItem, Level: depth, Text: strings.Join(parts, " ")})
			for _, l := range nested {
				blocks = appendBlocks(blocks, l, src, depth+1)
			}
		}
	case *ast.FencedCodeBlock:
		return append(blocks, &domain.Block{
			Kind:     domain.BlockCode,
			Language: string(node.Language(src)),
			Text:     linesText(node, src),
		})
	case *ast.CodeBlock:
		return append(blocks, &domain.Block{Kind: domain.BlockCode, Text: linesText(node, src)})
	case *ast.Blockquote:
		var parts []string
		for c := node.FirstChild(); c != nil; c = c.NextSibling() {
			if t := inlineText(c, src); t != "" {
				parts = append(parts, t)
			}
		}
		return append(blocks, &domain.Block{Kind: domain.BlockQuote, Text: strings.Join(parts, "\n")})
	}
	return blocks
}

// inlineText flattens the inline content below n.
func inlineText(n ast.Node, src []byte) string {
	var b strings.Builder
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch t := c.(type) {
		case *ast.Text:
			b.Write(t.Segment.Value(src))
			if t.SoftLineBreak() || t.HardLineBreak() {
				b.WriteByte(' ')
			}
		case *ast.String:
			b.Write(t.Value)
		case *ast.AutoLink:
			b.Write(t.URL(src))
		}
		return ast.WalkContinue, nil
	})
	return strings.TrimSpace(b.String())
}

func linesText(n ast.Node, src []byte) string {
	var b strings.Builder
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		b.Write(seg.Value(src))
	}
	return strings.TrimRight(b.String(), "\n")
}

func slideTitle(blocks []*domain.Block, position int) string {
	for _, b := range blocks {
		if b.Kind == domain.BlockHeading && b.Text != "" {
			return b.Text
		}
	}
	return fmt.Sprintf("Slide %d", position)
}
