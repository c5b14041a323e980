package domain

import (
	"strings"
	"time"
	"unicode"
)

// Item is one normalized intelligence record as delivered by a collector.
// Items are immutable for the duration of an orchestration call; missing
// fields are treated as empty, never as errors.
type Item struct {
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Source    string    `json:"source"`
	Timestamp Timestamp `json:"timestamp,omitempty"`
	Tags      []string  `json:"tags,omitempty"`
}

// Text returns the lowercased title+content concatenation used by every
// text-matching component.
func (it Item) Text() string {
	return strings.ToLower(strings.TrimSpace(it.Title + " " + it.Content))
}

// Timestamp wraps time.Time with tolerant JSON decoding. Collectors emit
// ISO-8601 strings when they have one; anything malformed or absent decodes
// to the zero value instead of failing the batch.
type Timestamp struct {
	time.Time
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// NewTimestamp builds a Timestamp from a concrete time.
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t}
}

// Valid reports whether a usable instant was supplied.
func (t Timestamp) Valid() bool {
	return !t.IsZero()
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		t.Time = time.Time{}
		return nil
	}
	for _, layout := range timestampLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			t.Time = parsed
			return nil
		}
	}
	// Unparseable timestamps degrade to "no timestamp".
	t.Time = time.Time{}
	return nil
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + t.Format(time.RFC3339) + `"`), nil
}

// EntityCategory classifies a gazetteer term.
type EntityCategory string

const (
	CategoryPerson       EntityCategory = "person"
	CategoryLocation     EntityCategory = "location"
	CategoryOrganization EntityCategory = "organization"
	CategoryTopic        EntityCategory = "topic"
)

// Entity is a typed term recognized by gazetteer membership. Entities are
// never inferred; the gazetteer is the only producer.
type Entity struct {
	Category EntityCategory `json:"category"`
	Term     string         `json:"term"`
}

// Key returns the canonical "category:term" identifier used for graph nodes
// and content signatures.
func (e Entity) Key() string {
	return string(e.Category) + ":" + e.Term
}

// Tokenize splits text into lowercase word tokens, the same segmentation
// every text-scoring component shares. Non-alphanumeric runes separate
// tokens.
func Tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}
