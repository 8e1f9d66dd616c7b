package domain

import (
	"strings"

	"gopkg.in/yaml.v3"
)

// PhoneType classifies a phone number. The zero value is PhoneTypeOther.
type PhoneType int

const (
	PhoneTypeOther PhoneType = iota
	PhoneTypeMobile
	PhoneTypeHome
	PhoneTypeWork
	PhoneTypeFax
)

// phoneTypeLabels holds the display text of one variant.
type phoneTypeLabels struct {
	name    string // symbolic name, also the persisted form
	native  string
	english string
}

var labelTable = map[PhoneType]phoneTypeLabels{
	PhoneTypeMobile: {name: "MOBILE", native: "Сотовый", english: "Mobile"},
	PhoneTypeHome:   {name: "HOME", native: "Домашний", english: "Home"},
	PhoneTypeWork:   {name: "WORK", native: "Рабочий", english: "Work"},
	PhoneTypeFax:    {name: "FAX", native: "Факс", english: "Fax"},
	PhoneTypeOther:  {name: "OTHER", native: "Другое", english: "Other"},
}

var parseIndex = func() map[string]PhoneType {
	idx := make(map[string]PhoneType, len(labelTable)*3)
	for t, l := range labelTable {
		idx[strings.ToLower(l.name)] = t
		idx[strings.ToLower(l.native)] = t
		idx[strings.ToLower(l.english)] = t
	}
	return idx
}()

// PhoneTypes returns every phone type in display order.
func PhoneTypes() []PhoneType {
	return []PhoneType{PhoneTypeMobile, PhoneTypeHome, PhoneTypeWork, PhoneTypeFax, PhoneTypeOther}
}

func (t PhoneType) labels() phoneTypeLabels {
	l, ok := labelTable[t]
	if !ok {
		return labelTable[PhoneTypeOther]
	}
	return l
}

// Label returns the canonical (native language) display label.
func (t PhoneType) Label() string {
	return t.labels().native
}

// EnglishLabel returns the English display label.
func (t PhoneType) EnglishLabel() string {
	return t.labels().english
}

// String returns the symbolic name, e.g. "MOBILE".
func (t PhoneType) String() string {
	return t.labels().name
}

// ParsePhoneType maps a native label, an English label or a symbolic name to
// its PhoneType, ignoring case. Anything else yields PhoneTypeOther.
func ParsePhoneType(s string) PhoneType {
	if s == "" {
		return PhoneTypeOther
	}
	if t, ok := parseIndex[strings.ToLower(s)]; ok {
		return t
	}
	return PhoneTypeOther
}

// MarshalYAML encodes the type as its symbolic name.
func (t PhoneType) MarshalYAML() (interface{}, error) {
	return t.String(), nil
}

// UnmarshalYAML accepts any scalar and classifies it with ParsePhoneType.
func (t *PhoneType) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	*t = ParsePhoneType(s)
	return nil
}
