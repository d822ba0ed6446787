package mathsym

// Font styles select a plane of the Mathematical Alphanumeric Symbols
// block for letters and digits. A style is a family plus weight bits.

// Family is a font family for math alphanumerics.
type Family int8

// Families recognized by the styling commands.
const (
	Normal Family = iota // upright text face becomes math italic
	Roman                // upright, no substitution
	Script
	Fraktur
	SansSerif
	Blackboard
	Monospace
)

// Weight is a font weight/shape for math alphanumerics.
type Weight int8

// Weights recognized by the styling commands.
const (
	Regular Weight = iota
	Italic
	Bold
	BoldItalic
)

// FontStyle is the styling state of a sub-formula, as set up by
// commands like \mathbf or \mathfrak.
type FontStyle struct {
	Family Family
	Weight Weight
}

// WithBold returns the style with a bold weight added.
func (s FontStyle) WithBold() FontStyle {
	switch s.Weight {
	case Italic, BoldItalic:
		s.Weight = BoldItalic
	default:
		s.Weight = Bold
	}
	return s
}

// WithItalic returns the style with an italic shape added.
func (s FontStyle) WithItalic() FontStyle {
	switch s.Weight {
	case Bold, BoldItalic:
		s.Weight = BoldItalic
	default:
		s.Weight = Italic
	}
	return s
}

// WithFamily returns the style with the family replaced.
func (s FontStyle) WithFamily(fam Family) FontStyle {
	s.Family = fam
	return s
}

// Alphanumeric base offsets. Each table entry is the codepoint of the
// styled 'A', 'a', '0', 'Α' and 'α' respectively; zero means the
// input codepoint is kept.
type alphaPlane struct {
	ucLatin, lcLatin, digit, ucGreek, lcGreek rune
}

var planes = map[FontStyle]alphaPlane{
	{Normal, Italic}:         {0x1D434, 0x1D44E, 0, 0x1D6E2, 0x1D6FC},
	{Normal, Bold}:           {0x1D400, 0x1D41A, 0x1D7CE, 0x1D6A8, 0x1D6C2},
	{Normal, BoldItalic}:     {0x1D468, 0x1D482, 0x1D7CE, 0x1D71C, 0x1D736},
	{Script, Regular}:        {0x1D49C, 0x1D4B6, 0, 0, 0},
	{Script, Italic}:         {0x1D49C, 0x1D4B6, 0, 0, 0},
	{Script, Bold}:           {0x1D4D0, 0x1D4EA, 0, 0, 0},
	{Script, BoldItalic}:     {0x1D4D0, 0x1D4EA, 0, 0, 0},
	{Fraktur, Regular}:       {0x1D504, 0x1D51E, 0, 0, 0},
	{Fraktur, Italic}:        {0x1D504, 0x1D51E, 0, 0, 0},
	{Fraktur, Bold}:          {0x1D56C, 0x1D586, 0, 0, 0},
	{Fraktur, BoldItalic}:    {0x1D56C, 0x1D586, 0, 0, 0},
	{Blackboard, Regular}:    {0x1D538, 0x1D552, 0x1D7D8, 0, 0},
	{Blackboard, Italic}:     {0x1D538, 0x1D552, 0x1D7D8, 0, 0},
	{Blackboard, Bold}:       {0x1D538, 0x1D552, 0x1D7D8, 0, 0},
	{Blackboard, BoldItalic}: {0x1D538, 0x1D552, 0x1D7D8, 0, 0},
	{SansSerif, Regular}:     {0x1D5A0, 0x1D5BA, 0x1D7E2, 0, 0},
	{SansSerif, Italic}:      {0x1D608, 0x1D622, 0x1D7E2, 0, 0},
	{SansSerif, Bold}:        {0x1D5D4, 0x1D5EE, 0x1D7EC, 0x1D756, 0x1D770},
	{SansSerif, BoldItalic}:  {0x1D63C, 0x1D656, 0x1D7EC, 0x1D756, 0x1D770},
	{Monospace, Regular}:     {0x1D670, 0x1D68A, 0x1D7F6, 0, 0},
	{Monospace, Italic}:      {0x1D670, 0x1D68A, 0x1D7F6, 0, 0},
	{Monospace, Bold}:        {0x1D670, 0x1D68A, 0x1D7F6, 0, 0},
	{Monospace, BoldItalic}:  {0x1D670, 0x1D68A, 0x1D7F6, 0, 0},
}

// The Unicode letterlike-symbols block predates the math alphanumeric
// planes; these codepoints are holes in the planes and must be mapped
// individually.
var alphaExceptions = map[rune]rune{
	0x1D455: 'ℎ', // italic h
	0x1D49D: 'ℬ',
	0x1D4A0: 'ℰ',
	0x1D4A1: 'ℱ',
	0x1D4A3: 'ℋ',
	0x1D4A4: 'ℐ',
	0x1D4A7: 'ℒ',
	0x1D4A8: 'ℳ',
	0x1D4AD: 'ℛ',
	0x1D4BA: 'ℯ',
	0x1D4BC: 'ℊ',
	0x1D4C4: 'ℴ',
	0x1D506: 'ℭ',
	0x1D50B: 'ℌ',
	0x1D50C: 'ℑ',
	0x1D515: 'ℜ',
	0x1D51D: 'ℨ',
	0x1D53A: 'ℂ',
	0x1D53F: 'ℍ',
	0x1D545: 'ℕ',
	0x1D547: 'ℙ',
	0x1D548: 'ℚ',
	0x1D549: 'ℝ',
	0x1D551: 'ℤ',
}

// StyleChar maps a codepoint through the Mathematical Alphanumeric
// Symbols table for the given style. Codepoints without a mapping are
// returned unchanged; in particular \mathrm suppresses the default
// math-italic rendition of letters.
func StyleChar(r rune, style FontStyle) rune {
	if style.Family == Normal && style.Weight == Regular {
		// default math rendition of letters is italic
		if r >= '0' && r <= '9' {
			return r
		}
		style.Weight = Italic
	}
	if style.Family == Roman {
		// upright; bold and italic requests still substitute
		switch style.Weight {
		case Bold:
			style = FontStyle{Normal, Bold}
		case Italic:
			style = FontStyle{Normal, Italic}
		case BoldItalic:
			style = FontStyle{Normal, BoldItalic}
		default:
			return r
		}
	}
	plane, ok := planes[style]
	if !ok {
		return r
	}
	var styled rune
	switch {
	case r >= 'A' && r <= 'Z':
		if plane.ucLatin == 0 {
			return r
		}
		styled = plane.ucLatin + (r - 'A')
	case r >= 'a' && r <= 'z':
		if plane.lcLatin == 0 {
			return r
		}
		styled = plane.lcLatin + (r - 'a')
	case r >= '0' && r <= '9':
		if plane.digit == 0 {
			return r
		}
		styled = plane.digit + (r - '0')
	case r >= 'Α' && r <= 'Ω':
		if plane.ucGreek == 0 {
			return r
		}
		styled = plane.ucGreek + (r - 'Α')
	case r >= 'α' && r <= 'ω':
		if plane.lcGreek == 0 {
			return r
		}
		styled = plane.lcGreek + (r - 'α')
	default:
		return r
	}
	if repl, isHole := alphaExceptions[styled]; isHole {
		return repl
	}
	return styled
}

// IsItalicized tells whether styling maps r onto a slanted glyph, in
// which case italics correction handling applies.
func IsItalicized(r rune, style FontStyle) bool {
	styled := StyleChar(r, style)
	if styled >= 0x1D434 && styled < 0x1D49C { // italic and bold-italic Latin
		return true
	}
	if styled >= 0x1D608 && styled < 0x1D670 { // sans italic planes
		return true
	}
	if styled >= 0x1D6E2 && styled < 0x1D756 { // italic Greek planes
		return true
	}
	return styled == 'ℎ'
}
