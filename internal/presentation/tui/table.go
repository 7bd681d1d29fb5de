package tui

import (
	"fmt"
	"strings"

	"github.com/aretw0/phonebook/pkg/domain"
)

// EntriesMarkdown formats entries as a markdown table, preserving their order.
func EntriesMarkdown(entries []domain.Entry) string {
	var sb strings.Builder
	sb.WriteString("| ID | Last Name | First Name | Phone |\n")
	sb.WriteString("|---:|---|---|---|\n")
	for _, e := range entries {
		fmt.Fprintf(&sb, "| %d | %s | %s | %s |\n",
			e.ID, escapeCell(e.LastName), escapeCell(e.FirstName), escapeCell(e.PhoneNumber))
	}
	if len(entries) == 0 {
		sb.WriteString("\n_No entries._\n")
	}
	return sb.String()
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
