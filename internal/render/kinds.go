package render

// Kinds the renderers paint differently. Any other kind, including the
// empty one, gets the plain look.
const (
	// Port kinds.
	KindDiamond = "diamond"
	KindSquare  = "square"
	// Node kinds.
	KindDouble = "double"
	// Connection kinds.
	KindDashed = "dashed"
)

var portGlyphs = map[string]rune{
	KindDiamond: '◆',
	KindSquare:  '■',
}

func portGlyph(kind string) rune {
	if r, ok := portGlyphs[kind]; ok {
		return r
	}
	return 'o'
}

var wireGlyphs = map[string]rune{
	KindDashed: '-',
}

func wireGlyph(kind string) rune {
	if r, ok := wireGlyphs[kind]; ok {
		return r
	}
	return '·'
}

var nodeBorders = map[string]border{
	KindDouble: {'╔', '╗', '╚', '╝', '═', '║', '╠', '╣'},
}
