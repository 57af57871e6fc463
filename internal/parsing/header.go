package parsing

import (
	"fmt"
	"regexp"
	"strings"
)

// Sentinel header values for fields the scan did not yield.
const (
	UnknownDate  = "00000000"
	UnknownTime  = "0000"
	UnknownStore = "UNKNOWN"
)

var (
	dateRe = regexp.MustCompile(`\d{2}\.\d{2}\.(?:\d{4}|\d{2})`)
	timeRe = regexp.MustCompile(`\d{2}:\d{2}`)
)

// ExtractHeader scans the full document text for store identity, transaction
// date and time. Missing fields fall back to sentinel values ("00000000",
// "0000", "UNKNOWN") so callers can detect an unusable scan. The receipt ID
// is the natural key date_time_store; two scans of the same physical receipt
// collide on purpose and are treated as duplicates downstream.
func ExtractHeader(fullText string, rules *Rules) Header {
	store := UnknownStore
	lowerText := strings.ToLower(fullText)
	for _, s := range rules.Stores {
		if strings.Contains(lowerText, strings.ToLower(s)) {
			store = strings.ToUpper(s)
			break
		}
	}

	date := UnknownDate
	if m := dateRe.FindString(fullText); m != "" {
		parts := strings.Split(m, ".")
		year := parts[2]
		if len(year) != 4 {
			year = "20" + year
		}
		date = year + parts[1] + parts[0]
	}

	tm := UnknownTime
	if m := timeRe.FindString(fullText); m != "" {
		tm = strings.ReplaceAll(m, ":", "")
	}

	return Header{
		ReceiptID: fmt.Sprintf("%s_%s_%s", date, tm, store),
		Date:      date,
		Time:      tm,
		StoreName: store,
		TotalSum:  "0.00",
	}
}
