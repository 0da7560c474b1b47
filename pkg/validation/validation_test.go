package validation_test

import (
	"testing"

	"github.com/abaasith/unibank/pkg/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validInput() validation.ProfileInput {
	return validation.ProfileInput{
		Name:    "Nuwan Perera",
		NIC:     "800121234V",
		Phone:   "0771234567",
		Email:   "nuwan@example.com",
		Address: "12 Galle Road, Colombo",
	}
}

func TestProfileInputUppercasesName(t *testing.T) {
	va := validation.New()
	in := validInput()
	require.NoError(t, va.ProfileInput(&in))
	assert.Equal(t, "NUWAN PERERA", in.Name)
}

func TestProfileInputRejectsBadFields(t *testing.T) {
	va := validation.New()

	tests := []struct {
		name   string
		mutate func(*validation.ProfileInput)
	}{
		{"empty name", func(in *validation.ProfileInput) { in.Name = "  " }},
		{"bad nic", func(in *validation.ProfileInput) { in.NIC = "12345" }},
		{"short phone", func(in *validation.ProfileInput) { in.Phone = "07712345" }},
		{"alpha phone", func(in *validation.ProfileInput) { in.Phone = "07712345ab" }},
		{"bad email", func(in *validation.ProfileInput) { in.Email = "not-an-email" }},
		{"empty address", func(in *validation.ProfileInput) { in.Address = "" }},
		// The record separator would corrupt the persisted line format.
		{"separator in name", func(in *validation.ProfileInput) { in.Name = "Nuwan|Perera" }},
		{"separator in address", func(in *validation.ProfileInput) { in.Address = "12|Galle Road" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput()
			tt.mutate(&in)
			err := va.ProfileInput(&in)
			require.ErrorIs(t, err, validation.ErrInvalidField)
		})
	}
}

func TestNormalize(t *testing.T) {
	va := validation.New()

	got, err := va.Normalize(validation.FieldName, " saman silva ")
	require.NoError(t, err)
	assert.Equal(t, "SAMAN SILVA", got)

	got, err = va.Normalize(validation.FieldPhone, "0719876543")
	require.NoError(t, err)
	assert.Equal(t, "0719876543", got)

	_, err = va.Normalize(validation.FieldPhone, "123")
	require.ErrorIs(t, err, validation.ErrInvalidField)

	_, err = va.Normalize(validation.FieldNIC, "nope")
	require.ErrorIs(t, err, validation.ErrInvalidField)

	_, err = va.Normalize(validation.FieldName, "Nuwan|Perera")
	require.ErrorIs(t, err, validation.ErrInvalidField)

	_, err = va.Normalize(validation.FieldAddress, "12|Galle Road")
	require.ErrorIs(t, err, validation.ErrInvalidField)

	_, err = va.Normalize(validation.Field("unknown"), "x")
	require.ErrorIs(t, err, validation.ErrInvalidField)
}
