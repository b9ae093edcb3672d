package utils

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"math/big"
	"strconv"
)

const charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

func GenerateRandomString(length int) string {
	b := make([]byte, length)
	for i := range b {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(charset))))
		if err != nil {
			panic(err)
		}
		b[i] = charset[n.Int64()]
	}
	return string(b)
}

// EncodeUID turns a user id into the url-safe form carried in emailed links.
func EncodeUID(id uint) string {
	return base64.RawURLEncoding.EncodeToString([]byte(strconv.FormatUint(uint64(id), 10)))
}

func DecodeUID(uidb64 string) (uint, error) {
	raw, err := base64.RawURLEncoding.DecodeString(uidb64)
	if err != nil {
		return 0, errors.New("malformed user reference")
	}
	id, err := strconv.ParseUint(string(raw), 10, 64)
	if err != nil || id == 0 {
		return 0, errors.New("malformed user reference")
	}
	return uint(id), nil
}
