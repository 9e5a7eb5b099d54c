package phonebook

import (
	"testing"

	"github.com/stretchr/testify/assert"

	ds "github.com/oaiiae/huma-phonebook/datastores"
)

func TestValidate(t *testing.T) {
	phone := func(n string) ds.PhoneNumber { return ds.PhoneNumber{Label: ds.LabelMobile, Number: n} }

	tests := []struct {
		name  string
		draft Draft
		want  Errors
	}{
		{
			name:  "valid",
			draft: Draft{FirstName: "John", LastName: "Doe", PhoneNumbers: []ds.PhoneNumber{phone("1")}},
			want:  Errors{},
		},
		{
			name:  "whitespace is present",
			draft: Draft{FirstName: " ", LastName: " ", PhoneNumbers: []ds.PhoneNumber{phone(" ")}},
			want:  Errors{},
		},
		{
			name:  "empty names",
			draft: Draft{PhoneNumbers: []ds.PhoneNumber{phone("1")}},
			want: Errors{
				PathFirstName: MsgFirstNameRequired,
				PathLastName:  MsgLastNameRequired,
			},
		},
		{
			name:  "no phone numbers",
			draft: Draft{FirstName: "John", LastName: "Doe"},
			want:  Errors{PathPhoneNumbers: MsgPhoneNumbersMin},
		},
		{
			name:  "all rules at once",
			draft: Draft{PhoneNumbers: []ds.PhoneNumber{phone("1"), phone(""), phone("")}},
			want: Errors{
				PathFirstName:            MsgFirstNameRequired,
				PathLastName:             MsgLastNameRequired,
				"phoneNumbers[1].number": MsgPhoneNumberRequired,
				"phoneNumbers[2].number": MsgPhoneNumberRequired,
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Validate(&tt.draft)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, len(tt.want) == 0, got.Valid())
		})
	}
}

func TestErrorsPaths(t *testing.T) {
	errs := Errors{PathLastName: "x", PathFirstName: "x", PhoneNumberPath(0): "x"}
	assert.Equal(t, []string{"firstName", "lastName", "phoneNumbers[0].number"}, errs.Paths())
}
