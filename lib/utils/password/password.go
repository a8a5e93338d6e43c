package password

import (
	"crypto/rand"
	"math/big"

	"github.com/pkg/errors"
)

const (
	Length   = 8
	lower    = "abcdefghijklmnopqrstuvwxyz"
	upper    = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	digits   = "0123456789"
	specials = "!@#$%^&*()_-+="
	Charset  = lower + upper + digits + specials
)

var classes = []string{lower, upper, digits, specials}

// Generate пароль длины Length из Charset, в котором есть символ каждого класса
func Generate() (string, error) {
	result := make([]byte, 0, Length)
	for _, class := range classes {
		c, err := pick(class)
		if err != nil {
			return "", err
		}
		result = append(result, c)
	}
	for len(result) < Length {
		c, err := pick(Charset)
		if err != nil {
			return "", err
		}
		result = append(result, c)
	}
	for i := len(result) - 1; i > 0; i-- {
		j, err := randInt(i + 1)
		if err != nil {
			return "", err
		}
		result[i], result[j] = result[j], result[i]
	}
	return string(result), nil
}

func pick(set string) (byte, error) {
	idx, err := randInt(len(set))
	if err != nil {
		return 0, err
	}
	return set[idx], nil
}

func randInt(max int) (int, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(int64(max)))
	if err != nil {
		return 0, errors.Wrap(err, "ошибка генерации пароля")
	}
	return int(n.Int64()), nil
}
