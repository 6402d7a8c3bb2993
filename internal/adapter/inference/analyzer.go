package inference

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// analyzer splits a document into the terms counted by the vectorizer
type analyzer struct {
	lowercase    bool
	stripAccents string
	token        *regexp.Regexp
	stopWords    map[string]struct{}
	minN, maxN   int
}

func newAnalyzer(spec *VectorizerSpec) (*analyzer, error) {
	re, err := regexp.Compile(spec.tokenPattern())
	if err != nil {
		return nil, invalid("token_pattern: %v", err)
	}

	stop := make(map[string]struct{}, len(spec.StopWords))
	for _, w := range spec.StopWords {
		stop[w] = struct{}{}
	}

	minN, maxN := spec.ngramRange()
	return &analyzer{
		lowercase:    spec.lowercase(),
		stripAccents: spec.StripAccents,
		token:        re,
		stopWords:    stop,
		minN:         minN,
		maxN:         maxN,
	}, nil
}

// terms returns the n-gram terms of doc in emission order
func (a *analyzer) terms(doc string) []string {
	return a.ngrams(a.tokenize(a.preprocess(doc)))
}

// preprocess lowercases before stripping accents, in that order.
func (a *analyzer) preprocess(doc string) string {
	if a.lowercase {
		doc = strings.ToLower(doc)
	}
	switch a.stripAccents {
	case AccentsUnicode:
		doc = stripUnicodeAccents(doc)
	case AccentsASCII:
		doc = stripNonASCII(doc)
	}
	return doc
}

// tokenize applies the token pattern. A pattern with one capture group yields
// the group instead of the whole match.
func (a *analyzer) tokenize(doc string) []string {
	if a.token.NumSubexp() == 1 {
		matches := a.token.FindAllStringSubmatch(doc, -1)
		tokens := make([]string, 0, len(matches))
		for _, m := range matches {
			tokens = append(tokens, m[1])
		}
		return tokens
	}
	return a.token.FindAllString(doc, -1)
}

// ngrams drops stop words, then emits every n-gram from minN to maxN
func (a *analyzer) ngrams(tokens []string) []string {
	if len(a.stopWords) > 0 {
		kept := make([]string, 0, len(tokens))
		for _, t := range tokens {
			if _, stop := a.stopWords[t]; !stop {
				kept = append(kept, t)
			}
		}
		tokens = kept
	}

	if a.maxN == 1 {
		return tokens
	}

	var out []string
	minN := a.minN
	if minN == 1 {
		out = append(out, tokens...)
		minN = 2
	}
	for n := minN; n <= a.maxN; n++ {
		for i := 0; i+n <= len(tokens); i++ {
			out = append(out, strings.Join(tokens[i:i+n], " "))
		}
	}
	return out
}

func stripUnicodeAccents(s string) string {
	decomposed := norm.NFKD.String(s)
	if decomposed == s {
		return s
	}
	t := runes.Remove(runes.In(unicode.Mn))
	out, _, err := transform.String(t, decomposed)
	if err != nil {
		return s
	}
	return out
}

func stripNonASCII(s string) string {
	t := transform.Chain(norm.NFKD, runes.Remove(runes.Predicate(func(r rune) bool {
		return r > unicode.MaxASCII
	})))
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}
