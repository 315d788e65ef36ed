package assemble

import (
	"fmt"
	"strings"

	"sellsheet_api/internal/sellsheet/models"
)

// BuildSKU composes "<O> <AUT> SP_<shipment> <eur> <thumbnail stem> <directory>".
func BuildSKU(owner, author models.User, shipment, priceEUR float64, thumbnail, directory string) string {
	stem := strings.SplitN(thumbnail, ".", 2)[0]
	return fmt.Sprintf("%s %s SP_%d %d %s %s",
		prefix(owner.Username, 1), prefix(author.Username, 3),
		int(shipment), int(priceEUR), stem, directory)
}

func prefix(s string, n int) string {
	r := []rune(strings.ToUpper(s))
	if len(r) > n {
		r = r[:n]
	}
	return string(r)
}
