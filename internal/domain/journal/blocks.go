package journal

import "github.com/google/uuid"

const (
	// DefaultBlockID identifies the block synthesized from legacy PMNotes.
	DefaultBlockID = "default"

	defaultBlockTitle = "Notas"
)

// BlockField names a mutable NoteBlock field for UpdateBlock.
type BlockField string

const (
	BlockTitle   BlockField = "title"
	BlockContent BlockField = "content"
)

// Blocks returns the project's note blocks. When the project has none it
// synthesizes the legacy view: a single block carrying PMNotes. Pure; the
// input is never mutated.
func Blocks(pe ProjectEntry) []NoteBlock {
	if len(pe.Blocks) > 0 {
		return pe.Blocks
	}
	return []NoteBlock{{
		ID:      DefaultBlockID,
		Title:   defaultBlockTitle,
		Content: pe.PMNotes,
	}}
}

// UpdateBlock returns a copy of pe with the matching block's field set.
// An unmatched blockID is a no-op, not an error. The legacy PMNotes field
// is resynchronized from the first block after the update.
func UpdateBlock(pe ProjectEntry, blockID string, field BlockField, value string) ProjectEntry {
	blocks := cloneBlocks(Blocks(pe))
	for i := range blocks {
		if blocks[i].ID != blockID {
			continue
		}
		switch field {
		case BlockTitle:
			blocks[i].Title = value
		case BlockContent:
			blocks[i].Content = value
		}
		break
	}
	pe.Blocks = blocks
	return syncPMNotes(pe)
}

// AddBlock returns a copy of pe with a new empty block appended. PMNotes is
// untouched because the first block does not change.
func AddBlock(pe ProjectEntry) ProjectEntry {
	blocks := cloneBlocks(Blocks(pe))
	blocks = append(blocks, NoteBlock{
		ID:    uuid.NewString(),
		Title: defaultBlockTitle,
	})
	pe.Blocks = blocks
	return pe
}

// RemoveBlock returns a copy of pe without the matching block. Removing the
// last block is allowed and collapses to the empty legacy state.
func RemoveBlock(pe ProjectEntry, blockID string) ProjectEntry {
	existing := Blocks(pe)
	blocks := make([]NoteBlock, 0, len(existing))
	for _, b := range existing {
		if b.ID != blockID {
			blocks = append(blocks, b)
		}
	}
	pe.Blocks = blocks
	return syncPMNotes(pe)
}

// syncPMNotes re-derives the legacy single-string view from the block list.
func syncPMNotes(pe ProjectEntry) ProjectEntry {
	if len(pe.Blocks) == 0 {
		pe.PMNotes = ""
		return pe
	}
	pe.PMNotes = pe.Blocks[0].Content
	return pe
}

func cloneBlocks(blocks []NoteBlock) []NoteBlock {
	out := make([]NoteBlock, len(blocks))
	copy(out, blocks)
	return out
}
