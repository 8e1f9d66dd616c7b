package domain

import "strings"

// Contact is a named entry in the phonebook.
// FullName is stored verbatim; callers validate it before adding.
type Contact struct {
	FullName string        `yaml:"full_name"`
	Phones   []PhoneNumber `yaml:"phones"`
	Note     string        `yaml:"note"`
}

// NewContact creates a contact with no phones and an empty note.
func NewContact(fullName string) Contact {
	return Contact{FullName: fullName}
}

// AddPhone appends a phone number, keeping insertion order.
func (c *Contact) AddPhone(number string, phoneType PhoneType) {
	c.Phones = append(c.Phones, NewPhoneNumber(number, phoneType))
}

// SetPhone replaces the phone at index i. It reports whether i was in range.
func (c *Contact) SetPhone(i int, p PhoneNumber) bool {
	if i < 0 || i >= len(c.Phones) {
		return false
	}
	c.Phones[i] = p
	return true
}

// RemovePhone drops the phone at index i. It reports whether i was in range.
func (c *Contact) RemovePhone(i int) bool {
	if i < 0 || i >= len(c.Phones) {
		return false
	}
	c.Phones = append(c.Phones[:i:i], c.Phones[i+1:]...)
	if len(c.Phones) == 0 {
		c.Phones = nil
	}
	return true
}

// PhonesAsString joins the display form of every phone with "; ".
func (c Contact) PhonesAsString() string {
	parts := make([]string, len(c.Phones))
	for i, p := range c.Phones {
		parts[i] = p.Display()
	}
	return strings.Join(parts, "; ")
}

// Columns returns the contact's table row: name, phones, note.
func (c Contact) Columns() []string {
	return []string{c.FullName, c.PhonesAsString(), c.Note}
}

// Clone returns a deep copy that shares no slices with c.
// An empty phone list is cloned as nil.
func (c Contact) Clone() Contact {
	out := c
	out.Phones = nil
	if len(c.Phones) > 0 {
		out.Phones = make([]PhoneNumber, len(c.Phones))
		copy(out.Phones, c.Phones)
	}
	return out
}
