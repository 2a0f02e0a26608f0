package lifecycle

import (
	"fmt"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// NoDateText is rendered when a timestamp is missing or unparsable.
const NoDateText = "날짜 정보 없음"

// Accepted timestamp layouts. The gateway normally emits RFC 3339, but
// records that crossed the event bus before normalization carry a zoneless
// LocalDateTime or a space-separated variant.
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

var amountPrinter = message.NewPrinter(language.Korean)

// FormatTimestamp renders raw in ko-KR style: numeric year, 2-digit month,
// day, hour, minute and second with an 오전/오후 marker. Missing or
// unparsable input degrades to NoDateText; parse errors never escape.
func FormatTimestamp(raw string) string {
	if raw == "" {
		return NoDateText
	}
	var t time.Time
	var err error
	for _, layout := range timestampLayouts {
		if t, err = time.Parse(layout, raw); err == nil {
			break
		}
	}
	if err != nil {
		return NoDateText
	}

	meridiem := "오전"
	hour := t.Hour()
	if hour >= 12 {
		meridiem = "오후"
	}
	hour12 := hour % 12
	if hour12 == 0 {
		hour12 = 12
	}
	return fmt.Sprintf("%d. %02d. %02d. %s %02d:%02d:%02d",
		t.Year(), int(t.Month()), t.Day(), meridiem, hour12, t.Minute(), t.Second())
}

// FormatAmount renders an amount with grouping separators followed by the
// currency code, e.g. 50000/"KRW" -> "50,000 KRW". Amounts are whole units;
// no currency-specific decimals.
func FormatAmount(amount int64, currency string) string {
	return amountPrinter.Sprintf("%d", amount) + " " + currency
}

// FormatCount renders a bare number with grouping separators, for counters
// like the analytics event total.
func FormatCount(n int64) string {
	return amountPrinter.Sprintf("%d", n)
}
