package script

import "strings"

// Kind is the closed formatting class of an output target. The formatter
// dispatches on Kind instead of re-matching display names at each call site.
type Kind int

const (
	// KindOther covers Indic-script targets: generic cleanup only.
	KindOther Kind = iota
	// KindRoman covers Roman/English/ITRANS/Latin targets, which get the
	// additional English formatting pass.
	KindRoman
	// KindIAST covers IAST targets, where diacritics are significant and the
	// English pass must not run.
	KindIAST
)

var romanNames = []string{"roman", "english", "itrans", "latin"}

// KindOf classifies an output display name once, before dispatch.
func KindOf(displayName string) Kind {
	name := strings.ToLower(displayName)
	for _, kw := range romanNames {
		if strings.Contains(name, kw) {
			return KindRoman
		}
	}
	if strings.Contains(name, "iast") {
		return KindIAST
	}
	return KindOther
}

// KindOfScript classifies a target script directly, for call sites that
// resolve the script before formatting.
func KindOfScript(s Script) Kind {
	switch s {
	case Latin:
		return KindRoman
	case IAST:
		return KindIAST
	default:
		return KindOther
	}
}
