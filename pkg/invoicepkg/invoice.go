// Package invoicepkg generates invoice numbers for ledger transactions.
package invoicepkg

import (
	"fmt"
	"time"

	"github.com/go-ppob/wallet/pkg/randompkg"
)

// Generate returns an invoice number in the form INV{DD}{MM}{YYYY}-{NNN}
// where NNN is a zero padded random integer in [1, 9999].
//
// Numbers are not guaranteed unique within a day.
func Generate(now time.Time) string {
	n := randompkg.Int64Between(1, 10000)
	return fmt.Sprintf("INV%02d%02d%d-%03d", now.Day(), int(now.Month()), now.Year(), n)
}
