// Package search provides a small, deterministic, concurrency-safe keyword
// index over priority titles and descriptions.
//
//   - No logging in the library (callers decide how/what to log)
//   - Functional options (Option pattern)
//   - Unicode-aware tokenization with optional stop-word removal
//   - Immutable after construction, so safe for concurrent readers
//   - Deterministic ordering for equal scores
//
// Scoring uses Jaccard similarity between the query token set and each
// document's token set: score = |Q ∩ D| / |Q ∪ D|.
package search

import (
	"regexp"
	"sort"
	"strings"
)

// Doc is one searchable record. ID identifies the source row.
type Doc struct {
	ID   uint
	Text string
}

// Result is a ranked match with its similarity score.
type Result struct {
	ID      uint    `json:"id"`
	Snippet string  `json:"snippet"`
	Score   float64 `json:"score"`
}

// Index is the minimal interface implemented by all search indices.
type Index interface {
	TopK(query string, k int) []Result
}

// Option configures an index.
type Option func(*config)

type config struct {
	stopwords map[string]struct{}
	minScore  float64
}

// DefaultStopwords are dropped from documents and queries unless
// WithStopwords overrides them.
var DefaultStopwords = []string{
	"a", "an", "and", "for", "in", "of", "on", "the", "to", "with",
}

func defaultConfig() config {
	c := config{}
	WithStopwords(DefaultStopwords)(&c)
	return c
}

// WithStopwords replaces the stop-word list. An empty list disables removal.
func WithStopwords(words []string) Option {
	return func(c *config) {
		m := make(map[string]struct{}, len(words))
		for _, w := range words {
			w = strings.ToLower(strings.TrimSpace(w))
			if w != "" {
				m[w] = struct{}{}
			}
		}
		c.stopwords = m
	}
}

// WithMinScore drops results scoring below s.
func WithMinScore(s float64) Option {
	return func(c *config) {
		if s >= 0 {
			c.minScore = s
		}
	}
}

type doc struct {
	id     uint
	text   string
	tokens map[string]struct{}
}

type index struct {
	cfg  config
	docs []doc
}

// New builds an Index over docs. Documents with no indexable token are
// skipped.
func New(docs []Doc, opts ...Option) Index {
	cfg := defaultConfig()
	for _, o := range opts {
		o(&cfg)
	}
	out := make([]doc, 0, len(docs))
	for _, d := range docs {
		t := normalizeWhitespace(d.Text)
		toks := tokenize(t, cfg.stopwords)
		if len(toks) == 0 {
			continue
		}
		out = append(out, doc{id: d.ID, text: t, tokens: toks})
	}
	return &index{cfg: cfg, docs: out}
}

// TopK returns up to k best-matching documents. A non-positive k means 10.
func (i *index) TopK(q string, k int) []Result {
	if len(i.docs) == 0 || strings.TrimSpace(q) == "" {
		return nil
	}
	if k <= 0 {
		k = 10
	}
	qTokens := tokenize(q, i.cfg.stopwords)
	if len(qTokens) == 0 {
		return nil
	}

	var out []Result
	for _, d := range i.docs {
		over := overlap(qTokens, d.tokens)
		if over == 0 {
			continue
		}
		score := float64(over) / float64(len(qTokens)+len(d.tokens)-over)
		if score < i.cfg.minScore {
			continue
		}
		out = append(out, Result{ID: d.id, Snippet: d.text, Score: score})
	}

	// Ties go to the older (lower id) document.
	sort.SliceStable(out, func(a, b int) bool {
		if out[a].Score != out[b].Score {
			return out[a].Score > out[b].Score
		}
		return out[a].ID < out[b].ID
	})
	if k < len(out) {
		out = out[:k]
	}
	return out
}

var wordRE = regexp.MustCompile(`[\p{L}\p{N}]+`)

func tokenize(s string, stop map[string]struct{}) map[string]struct{} {
	words := wordRE.FindAllString(strings.ToLower(s), -1)
	if len(words) == 0 {
		return nil
	}
	out := make(map[string]struct{}, len(words))
	for _, w := range words {
		if _, skip := stop[w]; skip {
			continue
		}
		out[w] = struct{}{}
	}
	return out
}

func overlap(a, b map[string]struct{}) int {
	if len(a) > len(b) {
		a, b = b, a
	}
	n := 0
	for k := range a {
		if _, ok := b[k]; ok {
			n++
		}
	}
	return n
}

func normalizeWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
