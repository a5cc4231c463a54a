package dashboard

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Epoch is returned by ParseDate for anything it cannot read. It sorts after
// every real timestamp in descending order.
var Epoch = time.Unix(0, 0)

// ParseDate reads a "dd/mm/yyyy[ hh:mm[:ss]]" timestamp in the local time zone.
// Malformed input yields Epoch instead of an error.
func ParseDate(s string) time.Time {
	fields := strings.Fields(s)
	if len(fields) == 0 || len(fields) > 2 || !strings.Contains(fields[0], "/") {
		return Epoch
	}

	dmy := strings.Split(fields[0], "/")
	if len(dmy) != 3 {
		return Epoch
	}
	var date [3]int
	for i, part := range dmy {
		v, err := strconv.Atoi(part)
		if err != nil {
			return Epoch
		}
		date[i] = v
	}
	day, month, year := date[0], date[1], date[2]

	var clock [3]int
	if len(fields) == 2 {
		parts := strings.Split(fields[1], ":")
		if len(parts) > 3 {
			return Epoch
		}
		for i, part := range parts {
			v, err := strconv.Atoi(part)
			if err != nil {
				return Epoch
			}
			clock[i] = v
		}
	}
	hour, minute, second := clock[0], clock[1], clock[2]

	if year < 1 || year > 9999 || month < 1 || month > 12 || day < 1 || day > 31 ||
		hour < 0 || hour > 23 || minute < 0 || minute > 59 || second < 0 || second > 59 {
		return Epoch
	}

	t := time.Date(year, time.Month(month), day, hour, minute, second, 0, time.Local)
	// 31/02 and friends normalize into the next month.
	if t.Day() != day || int(t.Month()) != month {
		return Epoch
	}
	return t
}

var monthNames = [...]string{
	"janeiro", "fevereiro", "março", "abril", "maio", "junho",
	"julho", "agosto", "setembro", "outubro", "novembro", "dezembro",
}

// UnknownDate is displayed for timestamps that could not be parsed.
const UnknownDate = "Data indisponível"

// FormatDisplayDate renders t the way the dashboard shows dates, e.g.
// "31 de dezembro de 2023 às 10:00".
func FormatDisplayDate(t time.Time) string {
	if t.Equal(Epoch) {
		return UnknownDate
	}
	return fmt.Sprintf("%d de %s de %d às %02d:%02d",
		t.Day(), monthNames[t.Month()-1], t.Year(), t.Hour(), t.Minute())
}
