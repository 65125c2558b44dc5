package common

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	// MaxListedBets is the number of open bets shown by /bet list
	MaxListedBets = 20
	// MaxListedEntries is the number of entries shown by /bet status
	MaxListedEntries = 25
)

// FormatBalance formats a balance amount with thousand separators
func FormatBalance(balance int64) string {
	if balance < 0 {
		return "-" + FormatBalance(-balance)
	}

	str := strconv.FormatInt(balance, 10)
	n := len(str)
	if n <= 3 {
		return str
	}

	var result strings.Builder
	for i, digit := range str {
		if i > 0 && (n-i)%3 == 0 {
			result.WriteRune(',')
		}
		result.WriteRune(digit)
	}

	return result.String()
}

// FormatChange formats a balance change with an explicit sign
func FormatChange(amount int64) string {
	if amount >= 0 {
		return "+" + FormatBalance(amount)
	}
	return FormatBalance(amount)
}

// Mention renders a user mention
func Mention(userID int64) string {
	return fmt.Sprintf("<@%d>", userID)
}

// Mentions renders user mentions separated by commas
func Mentions(userIDs []int64) string {
	parts := make([]string, len(userIDs))
	for i, id := range userIDs {
		parts[i] = Mention(id)
	}
	return strings.Join(parts, ", ")
}

// JoinLines joins non-empty lines with newlines
func JoinLines(lines ...string) string {
	kept := make([]string, 0, len(lines))
	for _, line := range lines {
		if line != "" {
			kept = append(kept, line)
		}
	}
	return strings.Join(kept, "\n")
}
