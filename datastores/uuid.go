package datastores

import (
	"encoding/base64"
	"errors"

	"github.com/google/uuid"
)

// UUID is a [uuid.UUID] that uses [base64.RawURLEncoding]
// to marshal to and from text.
type UUID uuid.UUID

// NewUUID returns a time-ordered (version 7) [UUID].
func NewUUID() UUID { return UUID(uuid.Must(uuid.NewV7())) }

func (UUID) encoding() *base64.Encoding { return base64.RawURLEncoding }

func (id UUID) encodedLen() int {
	return id.encoding().EncodedLen(len(id))
}

// IsZero reports whether id was never assigned.
func (id UUID) IsZero() bool { return id == UUID{} }

// String returns the text form of id.
func (id UUID) String() string {
	b, _ := id.AppendText(nil)
	return string(b)
}

// AppendText implements [encoding.TextAppender].
func (id UUID) AppendText(b []byte) ([]byte, error) {
	return id.encoding().AppendEncode(b, id[:]), nil
}

// MarshalText implements [encoding.TextMarshaler].
func (id UUID) MarshalText() ([]byte, error) {
	return id.AppendText(nil)
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (id *UUID) UnmarshalText(b []byte) error {
	if len(b) != id.encodedLen() {
		return errors.New("invalid length")
	}
	_, err := id.encoding().Decode(id[:], b)
	return err
}

// ParseUUID decodes the text form produced by [UUID.MarshalText].
func ParseUUID(s string) (UUID, error) {
	var id UUID
	return id, id.UnmarshalText([]byte(s))
}
