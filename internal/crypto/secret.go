package crypto

import (
	"crypto/rand"
	"errors"
	"math/big"
)

// secretAlphabet avoids characters that need quoting in .env files and shells.
const secretAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-_"

const (
	MinSecretLength     = 32
	MaxSecretLength     = 128
	DefaultSecretLength = 48
)

var ErrSecretLength = errors.New("secret length must be between 32 and 128")

// GenerateSecret returns a random signing secret of length characters drawn
// uniformly from secretAlphabet.
func GenerateSecret(length int) (string, error) {
	if length < MinSecretLength || length > MaxSecretLength {
		return "", ErrSecretLength
	}

	out := make([]byte, length)
	for i := range out {
		ch, err := randChar(secretAlphabet)
		if err != nil {
			return "", err
		}
		out[i] = ch
	}
	return string(out), nil
}

// randChar picks a random character from charset using crypto/rand.
func randChar(charset string) (byte, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(int64(len(charset))))
	if err != nil {
		return 0, err
	}
	return charset[n.Int64()], nil
}
