package domain

// PhoneNumber is a single number of a contact. Treat it as a value: edits
// replace the whole PhoneNumber.
type PhoneNumber struct {
	Number string    `yaml:"number"`
	Type   PhoneType `yaml:"type"`
}

// NewPhoneNumber builds a PhoneNumber. The number is stored as given.
func NewPhoneNumber(number string, phoneType PhoneType) PhoneNumber {
	return PhoneNumber{Number: number, Type: phoneType}
}

// Display renders the number as "<number> (<label>)".
func (p PhoneNumber) Display() string {
	return p.Number + " (" + p.Type.Label() + ")"
}

func (p PhoneNumber) String() string {
	return p.Display()
}
