package orders

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

const (
	codePrefix     = "S00"
	codeDigits     = 5
	codeRetryLimit = 25
)

var codeSpace = big.NewInt(100000)

// newCode draws one candidate public order code: the fixed prefix plus five
// random digits. Uniqueness is enforced by the caller against the orders
// table, retrying on collision.
func newCode() (string, error) {
	n, err := rand.Int(rand.Reader, codeSpace)
	if err != nil {
		return "", fmt.Errorf("drawing order code: %w", err)
	}
	return fmt.Sprintf("%s%0*d", codePrefix, codeDigits, n.Int64()), nil
}
