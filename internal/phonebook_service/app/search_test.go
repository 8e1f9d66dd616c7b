package app

import (
	"testing"

	"github.com/aradsms/phonebook/internal/phonebook_service/domain"
	"github.com/stretchr/testify/assert"
)

func TestFilter(t *testing.T) {
	contacts := sampleContacts()

	tests := []struct {
		name  string
		query string
		field Field
		want  []int
	}{
		{name: "empty query matches all", query: "", field: FieldName, want: []int{0, 1}},
		{name: "empty query on phone matches all", query: "", field: FieldPhone, want: []int{0, 1}},
		{name: "name is case-insensitive", query: "ivanov", field: FieldName, want: []int{0}},
		{name: "name substring in the middle", query: "OV P", field: FieldName, want: []int{1}},
		{name: "phone digits", query: "111", field: FieldPhone, want: []int{1}},
		{name: "phone field includes the type label", query: "сотовый", field: FieldPhone, want: []int{0}},
		{name: "name query does not search phones", query: "111", field: FieldName, want: []int{}},
		{name: "no match", query: "Sidorov", field: FieldName, want: []int{}},
		{name: "shared substring keeps order", query: "v", field: FieldName, want: []int{0, 1}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Filter(contacts, tc.query, tc.field))
		})
	}
}

func TestFilter_MetacharactersAreLiteral(t *testing.T) {
	plus := domain.NewContact("Plus")
	plus.AddPhone("+7 (495) 123-45-67", domain.PhoneTypeWork)
	dotted := domain.NewContact("A.B. Smith")
	plain := domain.NewContact("AxBx Smith")
	contacts := []domain.Contact{plus, dotted, plain}

	assert.Equal(t, []int{0}, Filter(contacts, "+7 (495)", FieldPhone))
	assert.Equal(t, []int{1}, Filter(contacts, "a.b.", FieldName))
	assert.Equal(t, []int{}, Filter(contacts, ".*", FieldName))
	assert.Equal(t, []int{}, Filter(contacts, "[", FieldName))
}

func TestFilter_CyrillicIgnoresCase(t *testing.T) {
	contacts := []domain.Contact{domain.NewContact("Иванов Иван"), domain.NewContact("Петров Пётр")}
	assert.Equal(t, []int{0}, Filter(contacts, "ИВАНОВ", FieldName))
	assert.Equal(t, []int{1}, Filter(contacts, "пётр", FieldName))
}

func TestFilterContacts(t *testing.T) {
	contacts := sampleContacts()

	assert.Equal(t, contacts, FilterContacts(contacts, "", FieldName))
	assert.Equal(t, []domain.Contact{contacts[0]}, FilterContacts(contacts, "ivanov", FieldName))
	assert.Equal(t, []domain.Contact{contacts[1]}, FilterContacts(contacts, "111", FieldPhone))
	assert.Empty(t, FilterContacts(nil, "x", FieldName))
}

func TestParseField(t *testing.T) {
	assert.Equal(t, FieldPhone, ParseField("phone"))
	assert.Equal(t, FieldPhone, ParseField(" PHONE "))
	assert.Equal(t, FieldName, ParseField("name"))
	assert.Equal(t, FieldName, ParseField(""))
	assert.Equal(t, FieldName, ParseField("email"))
	assert.Equal(t, "phone", FieldPhone.String())
	assert.Equal(t, "name", FieldName.String())
}
