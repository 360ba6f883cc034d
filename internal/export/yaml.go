package export

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/javiermolinar/gigbook/internal/gig"
)

// Document is the YAML form of a gig book.
type Document struct {
	Upcoming []gig.Gig    `yaml:"upcoming"`
	Past     []gig.Gig    `yaml:"past"`
	Income   IncomeFields `yaml:"income"`
}

// IncomeFields carries income totals as decimal strings.
type IncomeFields struct {
	Past   string `yaml:"past"`
	Future string `yaml:"future"`
	Total  string `yaml:"total"`
}

// NewDocument builds the YAML document for a book's current buckets.
func NewDocument(upcoming, past []gig.Gig) Document {
	income := gig.Income{
		Past:   gig.TotalIncome(past),
		Future: gig.TotalIncome(upcoming),
	}
	return Document{
		Upcoming: nonNil(upcoming),
		Past:     nonNil(past),
		Income: IncomeFields{
			Past:   income.Past.String(),
			Future: income.Future.String(),
			Total:  income.Total().String(),
		},
	}
}

// WriteYAML encodes the book as YAML.
func WriteYAML(w io.Writer, upcoming, past []gig.Gig) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(NewDocument(upcoming, past)); err != nil {
		return fmt.Errorf("encoding yaml: %w", err)
	}
	return enc.Close()
}

// ReadYAML decodes a document written by WriteYAML.
func ReadYAML(r io.Reader) (Document, error) {
	var doc Document
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return Document{}, fmt.Errorf("decoding yaml: %w", err)
	}
	return doc, nil
}

func nonNil(gigs []gig.Gig) []gig.Gig {
	if gigs == nil {
		return []gig.Gig{}
	}
	return gigs
}
