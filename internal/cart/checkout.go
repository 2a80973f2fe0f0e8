package cart

import (
	"fmt"
	"strings"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// maxDecimals keeps 10^decimals within int64
const maxDecimals = 18

// ErrEmptyCart is returned when checking out a cart without items
var ErrEmptyCart = errors.New("cart is empty")

// Receipt is the snapshot taken at checkout, before the cart is cleared
type Receipt struct {
	Items        []LineItem `json:"items"`
	TotalPrice   int64      `json:"totalPrice"`
	TotalCount   int        `json:"totalCount"`
	CheckedOutAt time.Time  `json:"checkedOutAt"`
}

// Checkout snapshots the cart into a receipt and clears it.
// An empty cart is left untouched.
func Checkout(c *Cart, now time.Time) (*Receipt, error) {
	if c.IsEmpty() {
		return nil, ErrEmptyCart
	}
	r := &Receipt{
		Items:        c.Items(),
		TotalPrice:   c.TotalPrice(),
		TotalCount:   c.TotalCount(),
		CheckedOutAt: now,
	}
	c.Clear()
	return r, nil
}

// Formatter renders amounts and checkout summaries for one locale
type Formatter struct {
	printer  *message.Printer
	symbol   string
	decimals int
	unit     int64  // 10^decimals
	point    string // locale decimal separator
}

// NewFormatter builds a formatter. Amounts are integers in the smallest
// currency unit; decimals says how many of their digits are fractional.
func NewFormatter(locale, symbol string, decimals int) *Formatter {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.English
	}
	if decimals < 0 {
		decimals = 0
	}
	if decimals > maxDecimals {
		decimals = maxDecimals
	}
	unit := int64(1)
	for i := 0; i < decimals; i++ {
		unit *= 10
	}
	printer := message.NewPrinter(tag)
	return &Formatter{
		printer:  printer,
		symbol:   symbol,
		decimals: decimals,
		unit:     unit,
		point:    decimalPoint(printer),
	}
}

// decimalPoint extracts the separator the locale puts between 1 and 5
func decimalPoint(p *message.Printer) string {
	s := p.Sprintf("%.1f", 1.5)
	if len(s) < 3 {
		return "."
	}
	return s[1 : len(s)-1]
}

// Amount formats a minor-unit amount with grouping and the currency symbol
func (f *Formatter) Amount(v int64) string {
	if f.decimals == 0 {
		return f.symbol + f.printer.Sprintf("%d", v)
	}
	sign := ""
	whole, frac := v/f.unit, v%f.unit
	if v < 0 {
		sign = "-"
		whole, frac = -whole, -frac
	}
	return f.symbol + sign + f.printer.Sprintf("%d", whole) + f.point + fmt.Sprintf("%0*d", f.decimals, frac)
}

// Summary renders the order confirmation text for a receipt
func (f *Formatter) Summary(r *Receipt) string {
	var sb strings.Builder
	sb.WriteString("Order placed!\n\nItems:\n")
	for _, item := range r.Items {
		sb.WriteString(f.printer.Sprintf("%s x %d = %s\n", item.Name, item.Quantity, f.Amount(item.Subtotal())))
	}
	sb.WriteString("\nTotal: ")
	sb.WriteString(f.Amount(r.TotalPrice))
	sb.WriteString("\n\nThank you for your purchase!")
	return sb.String()
}
