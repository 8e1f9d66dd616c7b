package app

import (
	"regexp"
	"strings"

	"github.com/aradsms/phonebook/internal/phonebook_service/domain"
)

// Field selects what a search query is matched against.
type Field int

const (
	FieldName Field = iota
	FieldPhone
)

func (f Field) String() string {
	if f == FieldPhone {
		return "phone"
	}
	return "name"
}

// ParseField maps "name" or "phone" (any case) to a Field. Anything else is
// FieldName.
func ParseField(s string) Field {
	if strings.EqualFold(strings.TrimSpace(s), "phone") {
		return FieldPhone
	}
	return FieldName
}

// Filter returns the indices of contacts matching query in field, in their
// original order. The query is a literal, case-insensitive substring; an
// empty query matches every contact.
func Filter(contacts []domain.Contact, query string, field Field) []int {
	out := make([]int, 0, len(contacts))
	if query == "" {
		for i := range contacts {
			out = append(out, i)
		}
		return out
	}

	re := regexp.MustCompile("(?i)" + regexp.QuoteMeta(query))
	for i, c := range contacts {
		if re.MatchString(fieldText(c, field)) {
			out = append(out, i)
		}
	}
	return out
}

// FilterContacts is Filter returning the matching contacts themselves.
func FilterContacts(contacts []domain.Contact, query string, field Field) []domain.Contact {
	idx := Filter(contacts, query, field)
	out := make([]domain.Contact, len(idx))
	for i, j := range idx {
		out[i] = contacts[j]
	}
	return out
}

func fieldText(c domain.Contact, field Field) string {
	if field == FieldPhone {
		return c.PhonesAsString()
	}
	return c.FullName
}
