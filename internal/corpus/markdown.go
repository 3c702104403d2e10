package corpus

import (
	"path/filepath"
	"strings"
	"unicode"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

var markdownParser = goldmark.New()

// MarkdownTitle extracts a display title for a markdown source: the first
// level-1 heading, else the first level-2 heading, else the filename with
// its extension stripped and words capitalized. Attached as point metadata
// so retrieval results can show a human-readable source name.
func MarkdownTitle(content []byte, relPath string) string {
	if len(content) > 0 {
		doc := markdownParser.Parser().Parse(text.NewReader(content))

		var firstH1, firstH2 string
		_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
			if !entering {
				return ast.WalkContinue, nil
			}
			heading, ok := n.(*ast.Heading)
			if !ok {
				return ast.WalkContinue, nil
			}
			headingText := headingPlainText(heading, content)
			switch {
			case heading.Level == 1 && firstH1 == "":
				firstH1 = headingText
				return ast.WalkStop, nil
			case heading.Level == 2 && firstH2 == "":
				firstH2 = headingText
			}
			return ast.WalkContinue, nil
		})

		if firstH1 != "" {
			return firstH1
		}
		if firstH2 != "" {
			return firstH2
		}
	}

	return titleFromFilename(relPath)
}

func headingPlainText(n ast.Node, content []byte) string {
	var b strings.Builder
	_ = ast.Walk(n, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch v := node.(type) {
		case *ast.Text:
			b.Write(v.Segment.Value(content))
		case *ast.String:
			b.Write(v.Value)
		}
		return ast.WalkContinue, nil
	})
	return strings.TrimSpace(b.String())
}

func titleFromFilename(relPath string) string {
	name := filepath.Base(relPath)
	name = strings.TrimSuffix(name, filepath.Ext(name))

	words := strings.Fields(name)
	for i, word := range words {
		runes := []rune(word)
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}
