// Package report turns an estimate into the documents handed to clients:
// the emailed PDF summary and the plain-text table printed by the CLI.
package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"

	"github.com/ndewijer/Closing-Costs-Estimator-Backend/internal/model"
)

const (
	DefaultOrganization = "Exilex Legal Professional Corporation"
	DefaultTitle        = "Closing Costs Estimate"
	DefaultDisclaimer   = "This is an estimate for informational purposes only."
)

// Document is everything printed on an estimate summary.
type Document struct {
	Organization    string
	Title           string
	TransactionType model.TransactionType
	PropertyType    model.PropertyType
	Price           decimal.Decimal
	Reference       string
	GeneratedAt     time.Time
	Entries         []model.LineItem
	Disclaimer      string
}

// NewDocument builds the summary document for an estimate using the default
// firm name, title and disclaimer.
func NewDocument(e model.Estimate) Document {
	propertyType := e.Input.PropertyType
	if propertyType == "" {
		propertyType = model.PropertyResale
	}

	return Document{
		Organization:    DefaultOrganization,
		Title:           DefaultTitle,
		TransactionType: e.Input.Type,
		PropertyType:    propertyType,
		Price:           e.Input.Price,
		Reference:       e.ID,
		GeneratedAt:     e.CalculatedAt,
		Entries:         e.Entries(),
		Disclaimer:      DefaultDisclaimer,
	}
}

// FormatCurrency formats whole dollars with thousands separators,
// e.g. 1234 -> "$1,234" and -1234 -> "-$1,234".
func FormatCurrency(amount int64) string {
	s := humanize.Comma(amount)
	if digits, ok := strings.CutPrefix(s, "-"); ok {
		return "-$" + digits
	}
	return "$" + s
}

// FormatPrice formats a decimal purchase or sale price rounded to whole dollars.
func FormatPrice(price decimal.Decimal) string {
	return FormatCurrency(price.Round(0).IntPart())
}

// summaryLines returns the header facts printed above the details.
func (d Document) summaryLines() []string {
	lines := []string{
		fmt.Sprintf("Transaction type: %s", d.TransactionType.Label()),
		fmt.Sprintf("Property type: %s", d.PropertyType.Label()),
		fmt.Sprintf("Price: %s", FormatPrice(d.Price)),
	}
	if d.Reference != "" {
		lines = append(lines, fmt.Sprintf("Reference: %s", d.Reference))
	}
	if !d.GeneratedAt.IsZero() {
		lines = append(lines, fmt.Sprintf("Prepared: %s", d.GeneratedAt.UTC().Format("January 2, 2006 15:04 MST")))
	}
	return lines
}

func entryLine(item model.LineItem) string {
	return fmt.Sprintf("%s: %s", strings.TrimSpace(item.Label), FormatCurrency(item.Amount))
}
