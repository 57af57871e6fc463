package parsing

// Rules holds the static configuration driving line classification and header
// extraction. A rule set is loaded once and treated as read-only for the life
// of the process.
type Rules struct {
	// Stores is the ordered list of known store names. List order is the
	// tie-break priority during header extraction: the first match wins.
	Stores []string

	// JunkKeywords mark boilerplate lines (addresses, tax IDs, payment
	// words) that must never become item names.
	JunkKeywords []string

	// StoreShortNames are compared against the whole line, exact match only.
	StoreShortNames []string

	// TotalKeywords mark total-sum lines.
	TotalKeywords []string
}

// DefaultRules returns the built-in rule set for German supermarket receipts.
func DefaultRules() *Rules {
	return &Rules{
		Stores: []string{
			"Lidl", "Aldi", "Rewe", "Edeka", "Kaufland",
			"Netto", "Penny", "Norma", "Metro",
		},
		JunkKeywords: []string{
			"tel.", "telefon", "fax", "steuernummer", "uid", "ust-id", "st-nr",
			"straße", "str.", "platz", "weg", "damm", "allee",
			"gmbh", "kundenhotline", "markt", "summe", "betrag", "gegeben",
			"rückgeld", "ec-karte", "bar", "eur", "quittung", "beleg", "datum",
		},
		StoreShortNames: []string{
			"edeka", "lidl", "aldi", "rewe", "kaufland", "netto", "penny",
		},
		TotalKeywords: []string{
			"summe", "gesamt", "total", "zu zahlen",
		},
	}
}
