package export

import (
	"strings"

	"sopwriter/models"
)

// BlockKind tells a renderer how to style a block.
type BlockKind int

const (
	BlockHeading BlockKind = iota
	BlockParagraph
)

// Block is one renderable unit of an assembled statement.
type Block struct {
	Kind BlockKind
	Text string
}

// Layout splits an assembled statement into heading and paragraph blocks.
// Segments alternate heading/body by position; a trailing segment without a
// partner is treated as body. Bodies split into one paragraph per line.
func Layout(content string) []Block {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	parts := strings.Split(content, models.SectionSeparator)

	blocks := make([]Block, 0, len(parts))
	for i, part := range parts {
		if i%2 == 0 && i+1 < len(parts) {
			blocks = append(blocks, Block{Kind: BlockHeading, Text: part})
			continue
		}
		for _, para := range strings.Split(part, "\n") {
			blocks = append(blocks, Block{Kind: BlockParagraph, Text: para})
		}
	}
	return blocks
}
