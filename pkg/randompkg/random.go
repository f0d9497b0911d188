// Package randompkg provides functionality gor generating random applications common items.
package randompkg

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
)

const (
	alphabet = "abcdefghijklmnopqrstuvwxyz"
	digits   = "0123456789"
)

// Intn is a shortcut for generating a random integer between 0 and max using crypto/rand.
func Intn(max int) int64 {
	nBig, err := rand.Int(rand.Reader, big.NewInt(int64(max)))
	if err != nil {
		panic(err)
	}

	return nBig.Int64()
}

// IntBetween generates a random integer between min and max.
func IntBetween(min, max int) int64 {
	return int64(min) + Intn(max-min+1)
}

func fromSet(set string, n int) string {
	var sb strings.Builder

	k := len(set)

	for i := 0; i < n; i++ {
		c := set[Intn(k)]

		_ = sb.WriteByte(c) // The returned err is always nil.
	}

	return sb.String()
}

// String generates a random string of length n.
func String(n int) string {
	return fromSet(alphabet, n)
}

// Name generates a random "First Last" name.
func Name() string {
	return capitalize(String(6)) + " " + capitalize(String(8))
}

func capitalize(s string) string {
	return strings.ToUpper(s[:1]) + s[1:]
}

// Email generates a random email.
func Email() string {
	return fmt.Sprintf("%s@email.com", String(10))
}

// Phone generates a random phone number formatted as 555-123-4567.
func Phone() string {
	return fmt.Sprintf("%s-%s-%s", fromSet(digits, 3), fromSet(digits, 3), fromSet(digits, 4))
}
