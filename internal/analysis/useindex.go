package analysis

import "movefix/internal/source"

// UsePosition locates one textual use of a variable within a function's
// CFG: which block, which element within that block (in element-index
// order), and the source span of the reference itself.
type UsePosition struct {
	Block   BlockID
	Element int
	Pos     source.Span
}

// UseIndex maps every variable appearing in a function body to every
// position it is referenced from: one CFG walk in block-then-element
// order, recording a UsePosition for each reference it finds.
type UseIndex struct {
	uses map[Decl][]UsePosition
}

// BuildUseIndex walks cfg once, in block-identifier then element-index
// order, and indexes every VarRef the frontend attached to each element.
func BuildUseIndex(cfg *CFG) *UseIndex {
	idx := &UseIndex{uses: make(map[Decl][]UsePosition)}
	for _, block := range cfg.Blocks {
		for elementIndex, elem := range block.Elements {
			for _, ref := range elem.Refs {
				idx.uses[ref.Var] = append(idx.uses[ref.Var], UsePosition{
					Block:   block.ID,
					Element: elementIndex,
					Pos:     ref.Pos,
				})
			}
		}
	}
	return idx
}

// UsesOf returns every recorded use of v, in the order BuildUseIndex
// encountered them.
func (idx *UseIndex) UsesOf(v Decl) []UsePosition {
	return idx.uses[v]
}

// Lookup finds the UsePosition whose span starts at the same file
// offset as pos. It mirrors findUsePosition's use of the expansion-
// normalized start offset only (not the full span) as the identity key,
// so that a use reached through a macro expansion still matches the
// position the classifier observed.
func (idx *UseIndex) Lookup(v Decl, pos source.Span) (UsePosition, bool) {
	for _, use := range idx.uses[v] {
		if use.Pos.File == pos.File && use.Pos.Start == pos.Start {
			return use, true
		}
	}
	return UsePosition{}, false
}
