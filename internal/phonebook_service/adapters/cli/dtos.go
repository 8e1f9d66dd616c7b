package cli

// Requests are validated with go-playground/validator before they reach the
// store. String fields are trimmed by the command parser first.

// PhoneRequest is one phone entered on the command line.
type PhoneRequest struct {
	Number string `validate:"required,max=64"`
	Type   string `validate:"max=32"`
}

// AddContactRequest creates a new contact.
type AddContactRequest struct {
	FullName string         `validate:"required,max=255"`
	Phones   []PhoneRequest `validate:"dive"`
	Note     string         `validate:"max=1000"`
}

// RemoveContactRequest removes the contact at Index after confirmation.
type RemoveContactRequest struct {
	Index     int  `validate:"gte=0"`
	Confirmed bool `validate:"eq=true"`
}

// SetNoteRequest replaces the note of the contact at Index.
type SetNoteRequest struct {
	Index int    `validate:"gte=0"`
	Text  string `validate:"max=1000"`
}

// RenameContactRequest replaces the full name of the contact at Index.
type RenameContactRequest struct {
	Index    int    `validate:"gte=0"`
	FullName string `validate:"required,max=255"`
}

// AddPhoneRequest appends a phone to the contact at Index, or replaces the
// phone at At when At is not negative.
type AddPhoneRequest struct {
	Index int `validate:"gte=0"`
	At    int `validate:"gte=-1"`
	Phone PhoneRequest
}

// RemovePhoneRequest drops the phone at At from the contact at Index.
type RemovePhoneRequest struct {
	Index int `validate:"gte=0"`
	At    int `validate:"gte=0"`
}

// SearchRequest filters contacts by name or phone.
type SearchRequest struct {
	Field string `validate:"omitempty,oneof=name phone"`
	Query string
}
