package govtrack

import (
	"fmt"
	"strings"
)

// Legislators renders as a markdown table.
type Legislators []Legislator

// Bills renders as a markdown table.
type Bills []Bill

func (ls Legislators) Markdown() string {
	var b strings.Builder
	b.WriteString("Name | Title | State | District | Leadership | Term | Website\n")
	b.WriteString("-----|-------|-------|----------|------------|------|--------\n")
	for _, l := range ls {
		fmt.Fprintf(&b, "%s | %s | %s | %s | %s | %s - %s | %s\n",
			l.Name, l.Title, l.State, dash(l.District), dash(l.LeadershipTitle),
			l.StartDate, l.EndDate, l.Website)
	}
	return b.String()
}

func (bs Bills) Markdown() string {
	var b strings.Builder
	b.WriteString("Congress | Number | Title | Introduced | Status | Alive | Current\n")
	b.WriteString("---------|--------|-------|------------|--------|-------|--------\n")
	for _, bill := range bs {
		fmt.Fprintf(&b, "%d | %d | %s | %s | %s | %s | %s\n",
			bill.CongressSession, bill.Number, bill.Title, bill.IntroducedDate,
			bill.Description, yesNo(bill.IsAlive), yesNo(bill.IsCurrent))
	}
	return b.String()
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}
