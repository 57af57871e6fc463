package parsing

import "strings"

// Header is the extracted receipt identity. Date is YYYYMMDD ("00000000"
// unknown), Time is HHMM ("0000" unknown), StoreName is the uppercase
// canonical name or "UNKNOWN", TotalSum is a decimal string fixed to two
// places.
type Header struct {
	ReceiptID string `json:"receipt_id"`
	Date      string `json:"date"`
	Time      string `json:"time"`
	StoreName string `json:"store_name"`
	TotalSum  string `json:"total_sum"`
}

// Item is one purchased line item of a receipt.
type Item struct {
	ReceiptID string  `json:"receipt_id"`
	Name      string  `json:"item_name"`
	UnitPrice float64 `json:"unit_price"`
	Quantity  int     `json:"quantity"`
	Category  string  `json:"category"`
}

// Receipt is the structured result of one document parse.
type Receipt struct {
	Header Header `json:"header"`
	Items  []Item `json:"items"`
}

// Parser turns OCR page texts into a structured receipt. It is stateless and
// safe for concurrent use; each Parse call owns its own scan state.
type Parser struct {
	rules *Rules
}

// NewParser creates a Parser. A nil rules argument selects DefaultRules.
func NewParser(rules *Rules) *Parser {
	if rules == nil {
		rules = DefaultRules()
	}
	return &Parser{rules: rules}
}

// Parse concatenates the page texts with newline separators, extracts the
// header from the full text, then walks the line stream. A single-slot
// pending-name buffer carries the most recent fragment so item names split
// across two physical lines can be rejoined; the buffer is cleared on blank
// lines, junk lines and every emitted row.
func (p *Parser) Parse(pages []string) *Receipt {
	var b strings.Builder
	for _, page := range pages {
		if page != "" {
			b.WriteString(page)
			b.WriteString("\n")
		}
	}
	fullText := b.String()

	header := ExtractHeader(fullText, p.rules)
	items := []Item{}
	pending := ""

	for _, raw := range strings.Split(fullText, "\n") {
		line := NormalizeLine(raw)

		switch ClassifyLine(line, p.rules) {
		case LineBlank:
			pending = ""

		case LineTotal:
			// Last total-sum line wins when several match.
			if prices := priceRe.FindAllString(line, -1); len(prices) > 0 {
				header.TotalSum = prices[len(prices)-1]
			}
			pending = ""

		case LineItem:
			if parsed, ok := ParseItemLine(line, pending); ok {
				items = append(items, Item{
					ReceiptID: header.ReceiptID,
					Name:      parsed.Name,
					UnitPrice: parsed.UnitPrice,
					Quantity:  int(parsed.Quantity),
				})
				pending = ""
				break
			}
			// Tax marker but no price: re-evaluate as an ordinary text line.
			if IsJunkLine(line, p.rules) {
				pending = ""
			} else {
				pending = line
			}

		case LineJunk:
			pending = ""

		case LineFragment:
			pending = line
		}
	}

	return &Receipt{Header: header, Items: items}
}
