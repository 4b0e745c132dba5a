package forge

import (
	"strings"
	"unicode"
)

// maxChunkWords caps noun-phrase candidates; longer runs are split.
const maxChunkWords = 4

// pronounStoplist is the fixed set of personal pronouns that are never
// valid concept terms, even when they survive chunking.
var pronounStoplist = map[string]struct{}{
	"i": {}, "you": {}, "he": {}, "she": {}, "it": {}, "we": {}, "they": {},
	"me": {}, "him": {}, "her": {}, "us": {}, "them": {},
}

// chunkBreakers are function words that terminate a noun-phrase
// candidate. The closed list covers determiners, prepositions,
// conjunctions, pronouns, auxiliaries and a handful of high-frequency
// adverbs; runs of tokens between breakers approximate noun chunks.
var chunkBreakers = map[string]struct{}{
	// determiners and quantifiers
	"a": {}, "an": {}, "the": {}, "this": {}, "these": {}, "those": {},
	"all": {}, "any": {}, "both": {}, "each": {}, "every": {}, "few": {},
	"more": {}, "most": {}, "much": {}, "many": {}, "some": {}, "such": {},
	"no": {}, "other": {}, "own": {}, "same": {},
	// prepositions
	"of": {}, "in": {}, "on": {}, "at": {}, "by": {}, "for": {}, "with": {},
	"about": {}, "against": {}, "between": {}, "into": {}, "through": {},
	"during": {}, "before": {}, "after": {}, "above": {}, "below": {},
	"to": {}, "from": {}, "up": {}, "down": {}, "out": {}, "off": {},
	"over": {}, "under": {}, "without": {}, "within": {}, "towards": {},
	// conjunctions and relativizers
	"and": {}, "or": {}, "but": {}, "nor": {}, "so": {}, "yet": {},
	"if": {}, "because": {}, "as": {}, "until": {}, "while": {},
	"when": {}, "where": {}, "than": {}, "that": {}, "which": {},
	"who": {}, "whom": {}, "whose": {}, "whether": {}, "what": {},
	"why": {}, "how": {},
	// pronouns and possessives
	"i": {}, "you": {}, "he": {}, "she": {}, "it": {}, "we": {}, "they": {},
	"me": {}, "him": {}, "her": {}, "us": {}, "them": {},
	"my": {}, "your": {}, "his": {}, "its": {}, "our": {}, "their": {},
	"mine": {}, "yours": {}, "hers": {}, "ours": {}, "theirs": {},
	// auxiliaries and copulas
	"am": {}, "is": {}, "are": {}, "was": {}, "were": {}, "be": {},
	"been": {}, "being": {}, "do": {}, "does": {}, "did": {},
	"have": {}, "has": {}, "had": {}, "having": {},
	"will": {}, "would": {}, "shall": {}, "should": {}, "may": {},
	"might": {}, "must": {}, "can": {}, "could": {},
	// common contractions
	"it's": {}, "don't": {}, "doesn't": {}, "didn't": {}, "isn't": {},
	"aren't": {}, "wasn't": {}, "weren't": {}, "can't": {}, "won't": {},
	"shouldn't": {}, "couldn't": {}, "wouldn't": {}, "there's": {},
	"let's": {}, "i'm": {}, "you're": {}, "we're": {}, "they're": {},
	// high-frequency adverbs and fillers
	"not": {}, "very": {}, "too": {}, "also": {}, "just": {}, "only": {},
	"then": {}, "there": {}, "here": {}, "again": {}, "once": {},
	"really": {}, "quite": {}, "even": {}, "still": {}, "always": {},
	"never": {}, "often": {},
}

// ExtractTerms pulls candidate concept terms out of raw text. The text
// is chunked into noun-phrase approximations (token runs between
// function words and punctuation), lower-cased and trimmed; chunks of
// two characters or fewer, personal pronouns and duplicates are
// dropped.
//
// The result preserves first-occurrence order, so the first element is
// stable for a given input and can be treated as the main concept
// downstream. An empty result means no concepts, not an error.
func ExtractTerms(text string) []string {
	var (
		terms   []string
		current []string
	)
	seen := make(map[string]struct{})

	flush := func() {
		if len(current) == 0 {
			return
		}
		term := strings.Join(current, " ")
		current = current[:0]
		if len(term) <= 2 {
			return
		}
		if _, drop := pronounStoplist[term]; drop {
			return
		}
		if _, dup := seen[term]; dup {
			return
		}
		seen[term] = struct{}{}
		terms = append(terms, term)
	}

	for _, token := range tokenizeWords(strings.ToLower(text)) {
		if token == "" {
			flush()
			continue
		}
		if _, breaker := chunkBreakers[token]; breaker {
			flush()
			continue
		}
		if len(current) == maxChunkWords {
			flush()
		}
		current = append(current, token)
	}
	flush()

	return terms
}

// tokenizeWords splits text into word tokens; every run of
// non-word runes is collapsed into a single empty-string marker so the
// caller can detect chunk boundaries at punctuation.
func tokenizeWords(text string) []string {
	isWordRune := func(r rune) bool {
		return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '\''
	}

	var tokens []string
	var word strings.Builder
	lastWasBreak := false

	flushWord := func() {
		if word.Len() == 0 {
			return
		}
		trimmed := strings.Trim(word.String(), "-'")
		word.Reset()
		if trimmed == "" {
			return
		}
		tokens = append(tokens, trimmed)
		lastWasBreak = false
	}

	for _, r := range text {
		if isWordRune(r) {
			word.WriteRune(r)
			continue
		}
		flushWord()
		if unicode.IsSpace(r) {
			continue
		}
		if !lastWasBreak {
			tokens = append(tokens, "")
			lastWasBreak = true
		}
	}
	flushWord()

	return tokens
}
