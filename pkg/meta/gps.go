package meta

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	dmsRe = regexp.MustCompile(`([\d.]+)\s*deg\s*([\d.]+)'\s*([\d.]+)"`)
	numRe = regexp.MustCompile(`[\d.]+`)
)

// FormatCoordinate renders a latitude or longitude as decimal degrees with its
// hemisphere reference. It accepts a number or a `D deg M' S"` string; anything
// else is returned as-is with the reference appended.
func FormatCoordinate(v any, ref string) string {
	if f, ok := v.(float64); ok {
		return fmt.Sprintf("%.6f° %s", f, ref)
	}

	s := display(v)
	m := dmsRe.FindStringSubmatch(s)
	if m == nil {
		return fmt.Sprintf("%s %s", s, ref)
	}

	deg, err1 := strconv.ParseFloat(m[1], 64)
	mins, err2 := strconv.ParseFloat(m[2], 64)
	sec, err3 := strconv.ParseFloat(m[3], 64)
	if err1 != nil || err2 != nil || err3 != nil {
		return fmt.Sprintf("%s %s", s, ref)
	}

	return fmt.Sprintf("%.6f° %s", deg+mins/60+sec/3600, ref)
}

// FormatAltitude renders an altitude in metres from a number or a unit-suffixed string.
func FormatAltitude(v any) string {
	if f, ok := v.(float64); ok {
		return strconv.FormatFloat(f, 'f', -1, 64) + " m"
	}

	s := strings.TrimSpace(display(v))
	if m := numRe.FindString(s); m != "" {
		if f, err := strconv.ParseFloat(m, 64); err == nil {
			return strconv.FormatFloat(f, 'f', -1, 64) + " m"
		}
	}
	return s + " m"
}
