package pkg

import (
	"crypto/rand"
	"encoding/hex"
	"unsafe"
)

// BytesToString converts bytes slice to a string without extra allocation
func BytesToString(buf []byte) string {
	return *(*string)(unsafe.Pointer(&buf))
}

// GenerateRandomBytes returns securely generated random bytes.
// It will return an error if the system's secure random
// number generator fails to function correctly, in which
// case the caller should not continue
func GenerateRandomBytes(n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return nil, err
	}
	return b, nil
}

// GenerateRandomString returns a hex encoded, securely generated random
// string, made of n random bytes (i.e. the result is 2*n chars long)
func GenerateRandomString(n int) (string, error) {
	b, err := GenerateRandomBytes(n)
	return hex.EncodeToString(b), err
}
