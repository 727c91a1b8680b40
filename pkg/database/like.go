package database

import "strings"

var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

// ContainsPattern returns a lower-cased LIKE pattern that matches s anywhere
// in a value, with LIKE wildcards in s treated literally. Pair it with
// `LIKE ? ESCAPE '!'`.
func ContainsPattern(s string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(s)) + "%"
}
