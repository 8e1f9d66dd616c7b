package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestParsePhoneType(t *testing.T) {
	tests := map[string]PhoneType{
		"сотовый":  PhoneTypeMobile,
		"Сотовый":  PhoneTypeMobile,
		"СОТОВЫЙ":  PhoneTypeMobile,
		"mobile":   PhoneTypeMobile,
		"MOBILE":   PhoneTypeMobile,
		"home":     PhoneTypeHome,
		"Домашний": PhoneTypeHome,
		"рабочий":  PhoneTypeWork,
		"Work":     PhoneTypeWork,
		"fax":      PhoneTypeFax,
		"ФАКС":     PhoneTypeFax,
		"другое":   PhoneTypeOther,
		"other":    PhoneTypeOther,
		"unknown":  PhoneTypeOther,
		"":         PhoneTypeOther,
		" home":    PhoneTypeOther,
		"pager":    PhoneTypeOther,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParsePhoneType(in), "input %q", in)
	}
}

func TestPhoneType_Labels(t *testing.T) {
	assert.Equal(t, "Сотовый", PhoneTypeMobile.Label())
	assert.Equal(t, "Домашний", PhoneTypeHome.Label())
	assert.Equal(t, "Рабочий", PhoneTypeWork.Label())
	assert.Equal(t, "Факс", PhoneTypeFax.Label())
	assert.Equal(t, "Другое", PhoneTypeOther.Label())

	assert.Equal(t, "Mobile", PhoneTypeMobile.EnglishLabel())
	assert.Equal(t, "Fax", PhoneTypeFax.EnglishLabel())
	assert.Equal(t, "WORK", PhoneTypeWork.String())

	// Values outside the closed set render as Other.
	assert.Equal(t, "Другое", PhoneType(42).Label())
}

func TestPhoneType_LabelsParseBack(t *testing.T) {
	for _, pt := range PhoneTypes() {
		assert.Equal(t, pt, ParsePhoneType(pt.Label()))
		assert.Equal(t, pt, ParsePhoneType(pt.EnglishLabel()))
		assert.Equal(t, pt, ParsePhoneType(pt.String()))
	}
	assert.Len(t, PhoneTypes(), 5)
}

func TestPhoneType_YAML(t *testing.T) {
	out, err := yaml.Marshal(PhoneNumber{Number: "111", Type: PhoneTypeHome})
	require.NoError(t, err)
	assert.Equal(t, "number: \"111\"\ntype: HOME\n", string(out))

	var pn PhoneNumber
	require.NoError(t, yaml.Unmarshal([]byte("number: \"5\"\ntype: рабочий\n"), &pn))
	assert.Equal(t, NewPhoneNumber("5", PhoneTypeWork), pn)

	require.NoError(t, yaml.Unmarshal([]byte("number: \"5\"\ntype: satellite\n"), &pn))
	assert.Equal(t, PhoneTypeOther, pn.Type)
}
