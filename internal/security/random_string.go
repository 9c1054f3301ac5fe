package security

import (
	"crypto/rand"
	"errors"
	"io"
	"math/big"
)

var (
	errNegativeLength = errors.New("length must be non-negative")
	errEmptyAlphabet  = errors.New("alphabet must not be empty")
)

// RandomString draws length characters uniformly from alphabet using crypto/rand.
func RandomString(length int, alphabet string) (string, error) {
	return randomStringFrom(rand.Reader, length, alphabet)
}

func randomStringFrom(source io.Reader, length int, alphabet string) (string, error) {
	switch {
	case length < 0:
		return "", errNegativeLength
	case length == 0:
		return "", nil
	case alphabet == "":
		return "", errEmptyAlphabet
	}

	symbols := []rune(alphabet)
	limit := big.NewInt(int64(len(symbols)))
	value := make([]rune, length)
	for index := range value {
		position, err := rand.Int(source, limit)
		if err != nil {
			return "", err
		}
		value[index] = symbols[position.Int64()]
	}
	return string(value), nil
}
