package snapshot

import (
	"encoding/hex"
	"fmt"
)

const (
	// KeySize for the blake2b-256 digest
	KeySize = 32

	// KeySizeHex for the hex representation of a key
	KeySizeHex = 2 * KeySize
)

// Key is a snapshot content digest
type Key [KeySize]byte

// NewKey creates a key from raw digest bytes
func NewKey(data []byte) (Key, error) {
	var k Key
	if copy(k[:], data) != KeySize || len(data) != KeySize {
		return Key{}, &BadKeySize{Key: data}
	}
	return k, nil
}

// KeyFromString creates a key from its hex representation
func KeyFromString(s string) (Key, error) {
	if len(s) != KeySizeHex {
		return Key{}, &BadKeySize{Key: []byte(s)}
	}
	data, err := hex.DecodeString(s)
	if err != nil {
		return Key{}, err
	}
	return NewKey(data)
}

func (k Key) String() string {
	return hex.EncodeToString(k[:])
}

// BadKeySize is an error that's returned when the key to create has an invalid size.
type BadKeySize struct {
	Key []byte
}

func (b *BadKeySize) Error() string {
	return fmt.Sprintf("%x has invalid size of %d, expected %d", b.Key, len(b.Key), KeySize)
}
