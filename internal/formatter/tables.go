package formatter

// correction is one garbled-form → canonical-form pair. Pairs are held in a
// slice, not a map, because the lookup pass must run in a fixed order (a
// later pair may match the residue of an earlier partial correction).
type correction struct {
	garbled   string
	canonical string
}

// wordCorrections repairs known OCR-plus-transliteration garblings of common
// words. Trigger is case-insensitive, replacement is an exact-case substring
// replace.
var wordCorrections = []correction{
	{"dIpòvaLi", "Deepavali"},
	{"dīpòvaḻi", "Deepavali"},
	{"dIpAvalI", "Deepavali"},
	{"dīpāvalī", "Deepavali"},
	{"dIpAvaLi", "Deepavali"},
	{"dīpāvaḻi", "Deepavali"},
	{"avItAlat", "Aveetalat"},
	{"avītālat", "Aveetalat"},
	{"dipavaLi", "Deepavali"}, // residue of a partial correction
}

// characterReplacements folds diacritic and non-standard Latin letters to
// plain ASCII. Retroflex and nasal diacritics collapse to the nearest plain
// consonant; ṅ and ṣ have no single-letter equivalent and expand to digraphs.
// The uppercase vowels repair mixed-case conversion artifacts.
var characterReplacements = map[rune]string{
	'ò': "o",
	'ḻ': "l",
	'ṅ': "ng",
	'ṇ': "n",
	'ṭ': "t",
	'ḍ': "d",
	'ṣ': "sh",
	'ṃ': "m",
	'ḥ': "h",
	'ṁ': "m",

	'ḷ': "l",
	'ṛ': "r",
	'ṝ': "r",

	'I': "i",
	'A': "a",
	'U': "u",
	'E': "e",
	'O': "o",
}

// vowelLengthMappings replaces long-vowel diacritics with doubled-letter
// equivalents for Roman output. Runs after characterReplacements, so ṛ/ṝ
// normally arrive here already folded to plain r.
var vowelLengthMappings = map[rune]string{
	'ī': "ee",
	'ā': "aa",
	'ū': "uu",
	'ē': "ee",
	'ō': "oo",
	'ṛ': "ri",
	'ṝ': "ri",
}

// englishToIndicWords substitutes common English words that survive inside
// otherwise-Indic conversion output. Exact-case substring match.
var englishToIndicWords = []correction{
	{"Changes", "चेंजेस"},
	{"Bhatta", "भट्टा"},
	{"Fall", "फॉल"},
	{"Hello", "हेलो"},
	{"India", "इंडिया"},
	{"Welcome", "वेलकम"},
}

// pronunciationHints annotates long-vowel digraphs with a spoken English
// equivalent.
var pronunciationHints = []correction{
	{"aa", "aa (as in car)"},
	{"ee", "ee (as in see)"},
	{"ii", "ii (as in ski)"},
	{"oo", "oo (as in too)"},
	{"uu", "uu (as in blue)"},
}
