package spreadsheet

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/twmlab/probenplan-go/internal/models"
)

var (
	weekListPattern = regexp.MustCompile(`KW[\s:]*([\d;]+)`)
	dayListPattern  = regexp.MustCompile(`T(\d+)`)
	countedToken    = regexp.MustCompile(`T?(\d+)`)
	anyDigits       = regexp.MustCompile(`\d+`)
)

// ParsePlanned parses a planned-count cell into its tagged variant.
// The grammar, in match order: plain number | "m" | "KW: n;n;..." week list |
// "Tn;Tn;..." day list | free text with a digit fallback. Malformed cells
// degrade to the most permissive reading; this never fails.
func ParsePlanned(raw string) models.PlannedCell {
	cell := models.PlannedCell{Raw: strings.TrimSpace(raw)}
	trimmed := cell.Raw
	if trimmed == "" {
		cell.Kind = models.PlannedEmpty
		return cell
	}

	if n, ok := parseNumber(trimmed); ok {
		cell.Kind = models.PlannedCount
		cell.Count = n
		return cell
	}

	lower := strings.ToLower(trimmed)
	if lower == "m" {
		cell.Kind = models.PlannedEveryMonth
		cell.Count = 1
		return cell
	}

	if strings.Contains(lower, "kw") {
		if m := weekListPattern.FindStringSubmatch(trimmed); m != nil {
			for _, tok := range strings.Split(m[1], ";") {
				tok = strings.TrimSpace(tok)
				if tok != "" && isDigits(tok) {
					cell.Weeks = append(cell.Weeks, tok)
				}
			}
		}
		cell.Kind = models.PlannedWeekList
		cell.Count = len(cell.Weeks)
		if cell.Count == 0 {
			cell.Count = 1
		}
		return cell
	}

	if strings.Contains(lower, "t") {
		if m := dayListPattern.FindAllStringSubmatch(trimmed, -1); m != nil {
			for _, d := range m {
				cell.Days = append(cell.Days, d[1])
			}
			cell.Kind = models.PlannedDayList
			cell.Count = len(cell.Days)
			return cell
		}
	}

	// Free text: a single embedded number is the count, a semicolon list
	// counts its entries, anything else defaults to one required sample.
	cell.Kind = models.PlannedFallback
	cell.Count = 1
	digits := anyDigits.FindAllString(trimmed, -1)
	if len(digits) == 1 {
		if n, err := strconv.Atoi(digits[0]); err == nil {
			cell.Count = n
		}
	} else if len(digits) > 1 && strings.Contains(trimmed, ";") {
		cell.Count = len(digits)
	}
	return cell
}

// ActualCount derives the taken-sample count from an "Ist" cell: a numeric
// value truncated to int, otherwise the number of "T"-prefixed (or bare)
// numeric tokens. Non-parseable cells count as zero.
func ActualCount(raw string) int {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return 0
	}
	if n, ok := parseNumber(trimmed); ok {
		return n
	}
	return len(countedToken.FindAllString(trimmed, -1))
}

// TotalCount reads a "Proben Gesamt" / "Aktuell Gesamt" style total cell:
// a numeric value truncated to int, otherwise the first embedded digit run,
// otherwise zero.
func TotalCount(raw string) int {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return 0
	}
	if n, ok := parseNumber(trimmed); ok {
		return n
	}
	if m := anyDigits.FindString(trimmed); m != "" {
		if n, err := strconv.Atoi(m); err == nil {
			return n
		}
	}
	return 0
}

var dateLayouts = []string{
	"02.01.2006",
	"2.1.2006",
	"02.01.06",
	"2006-01-02",
	"02/01/2006",
	"2/1/2006",
	"01-02-06",
	"2006-01-02 15:04:05",
}

// ParseDates splits a semicolon-separated date cell and formats every entry
// as dd.mm.yyyy. Entries that fail to parse are kept verbatim rather than
// dropped, matching the permissive cell policy.
func ParseDates(raw string) []string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil
	}
	var dates []string
	for _, part := range strings.Split(trimmed, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		dates = append(dates, FormatDate(part))
	}
	return dates
}

// FormatDate normalizes a single date string to dd.mm.yyyy, returning the
// input unchanged when no known layout matches.
func FormatDate(raw string) string {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format("02.01.2006")
		}
	}
	return raw
}

func parseNumber(s string) (int, bool) {
	if n, err := strconv.Atoi(s); err == nil {
		return n, true
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return int(f), true
	}
	return 0, false
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}
