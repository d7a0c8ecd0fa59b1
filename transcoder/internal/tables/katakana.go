package tables

// halfToFullKatakana maps U+FF61..U+FF9F to the fullwidth forms the
// ISO-2022-JP encoder substitutes before the JIS X 0208 lookup.
var halfToFullKatakana = [63]rune{
	'。', '「', '」', '、', '・', 'ヲ', 'ァ', 'ィ', 'ゥ', 'ェ',
	'ォ', 'ャ', 'ュ', 'ョ', 'ッ', 'ー', 'ア', 'イ', 'ウ', 'エ',
	'オ', 'カ', 'キ', 'ク', 'ケ', 'コ', 'サ', 'シ', 'ス', 'セ',
	'ソ', 'タ', 'チ', 'ツ', 'テ', 'ト', 'ナ', 'ニ', 'ヌ', 'ネ',
	'ノ', 'ハ', 'ヒ', 'フ', 'ヘ', 'ホ', 'マ', 'ミ', 'ム', 'メ',
	'モ', 'ヤ', 'ユ', 'ヨ', 'ラ', 'リ', 'ル', 'レ', 'ロ', 'ワ',
	'ン', '゛', '゜',
}

// FullwidthKatakana returns the fullwidth equivalent of a halfwidth katakana
// scalar value, or r unchanged when r is outside U+FF61..U+FF9F.
func FullwidthKatakana(r rune) rune {
	if r >= 0xFF61 && r <= 0xFF9F {
		return halfToFullKatakana[r-0xFF61]
	}
	return r
}
