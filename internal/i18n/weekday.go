package i18n

import (
	"strings"
	"time"

	"golang.org/x/text/cases"
)

var weekdayNames = map[Language][7]string{
	English: {"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"},
	Arabic:  {"الأحد", "الاثنين", "الثلاثاء", "الأربعاء", "الخميس", "الجمعة", "السبت"},
}

// Weekday returns the full weekday name of t in the current language.
func (tr *Translator) Weekday(t time.Time) string {
	names, ok := weekdayNames[tr.lang]
	if !ok {
		names = weekdayNames[English]
	}
	return names[t.Weekday()]
}

// IsWeekday reports whether day names the weekday of t, ignoring case and
// surrounding spaces. Both languages are accepted so a plan generated in
// Arabic still matches after switching to English.
func (tr *Translator) IsWeekday(day string, t time.Time) bool {
	fold := cases.Fold()
	got := fold.String(strings.TrimSpace(day))
	for _, names := range weekdayNames {
		if got == fold.String(names[t.Weekday()]) {
			return true
		}
	}
	return false
}
