package hclsource

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"

	"github.com/vk/quizgridgo/internal/fsutil"
	"github.com/vk/quizgridgo/internal/hclutil"
	"github.com/vk/quizgridgo/internal/model"
)

// Deck is the fully-loaded content of a deck path: optional metadata from the
// `deck` block plus the ordered question list.
type Deck struct {
	Title     string
	Questions model.List
}

// deckSchema describes the top-level blocks a deck file may contain.
var deckSchema = &hcl.BodySchema{
	Blocks: []hcl.BlockHeaderSchema{
		{Type: "deck"},
		{Type: "question", LabelNames: []string{"id"}},
	},
}

// deckMeta is the decoded body of the `deck` block.
type deckMeta struct {
	Title string `hcl:"title,optional"`
}

// questionBody is the decoded body of a `question` block. AnswerType and
// Options stay as raw expressions so we can report precise diagnostics while
// translating them.
type questionBody struct {
	Prompt     string         `hcl:"prompt"`
	AnswerType hcl.Expression `hcl:"answer_type,optional"`
	Options    hcl.Expression `hcl:"options,optional"`
}

// Load discovers all .hcl files under path (or parses path itself when it is
// a file) and consolidates them into a single Deck. At most one `deck` block
// is allowed across the whole path; questions keep file order.
func Load(path string) (*Deck, error) {
	files, err := fsutil.FindFilesByExtension(path, ".hcl")
	if err != nil {
		return nil, fmt.Errorf("failed to find deck files in %s: %w", path, err)
	}

	deck := &Deck{}
	parser := hclparse.NewParser()
	seenDeckBlock := false

	for _, file := range files {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse deck file %s: %w", file, diags)
		}

		content, diags := hclFile.Body.Content(deckSchema)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode deck file %s: %w", file, diags)
		}

		deckBlock, diags := hclutil.FindUniqueBlock(content.Blocks, "deck")
		if diags.HasErrors() {
			return nil, fmt.Errorf("invalid deck block in %s: %w", file, diags)
		}
		if deckBlock != nil {
			if seenDeckBlock {
				return nil, fmt.Errorf("duplicate deck block in %s: only one deck block is allowed per deck path", file)
			}
			seenDeckBlock = true

			var meta deckMeta
			if diags := gohcl.DecodeBody(deckBlock.Body, nil, &meta); diags.HasErrors() {
				return nil, fmt.Errorf("failed to decode deck block in %s: %w", file, diags)
			}
			deck.Title = meta.Title
		}

		for _, block := range content.Blocks {
			if block.Type != "question" {
				continue
			}
			question, err := translateQuestion(block)
			if err != nil {
				return nil, fmt.Errorf("invalid question in %s: %w", file, err)
			}
			deck.Questions = append(deck.Questions, question)
		}
	}

	return deck, nil
}

// translateQuestion converts one `question` block into the model type,
// resolving the answer-type keyword and evaluating the options expression.
func translateQuestion(block *hcl.Block) (model.Question, error) {
	var body questionBody
	if diags := gohcl.DecodeBody(block.Body, nil, &body); diags.HasErrors() {
		return model.Question{}, fmt.Errorf("question %q: %w", block.Labels[0], diags)
	}

	question := model.Question{
		ID:         block.Labels[0],
		Prompt:     body.Prompt,
		AnswerType: "string",
	}

	// gohcl fills absent optional expression fields with a synthesized
	// expression that evaluates to null, rather than leaving them nil.
	if v, _ := body.AnswerType.Value(nil); !v.IsNull() {
		ctyType, diags := hclutil.AnswerTypeToCty(body.AnswerType)
		if diags.HasErrors() {
			return model.Question{}, fmt.Errorf("question %q: %w", question.ID, diags)
		}
		question.AnswerType = ctyType.FriendlyName()
	}

	if body.Options != nil {
		options, err := translateOptions(body.Options)
		if err != nil {
			return model.Question{}, fmt.Errorf("question %q: %w", question.ID, err)
		}
		question.Options = options
	}

	return question, nil
}

// translateOptions evaluates the options expression and converts it to a list
// of strings, so `options = [1, 2, 3]` works the same as string literals.
func translateOptions(expr hcl.Expression) ([]string, error) {
	value, diags := expr.Value(nil)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to evaluate options: %w", diags)
	}
	if value.IsNull() {
		return nil, nil
	}

	converted, err := convert.Convert(value, cty.List(cty.String))
	if err != nil {
		return nil, fmt.Errorf("options must be a list of strings: %w", err)
	}

	var options []string
	for it := converted.ElementIterator(); it.Next(); {
		_, element := it.Element()
		options = append(options, element.AsString())
	}
	return options, nil
}
