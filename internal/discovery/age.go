package discovery

import "time"

// AgeAt returns the whole calendar years between birthdate and now: a person
// turns N the moment their birthday occurs that year, not N*365 days after
// birth.
func AgeAt(birthdate, now time.Time) int {
	age := now.Year() - birthdate.Year()

	if now.Month() < birthdate.Month() ||
		(now.Month() == birthdate.Month() && now.Day() < birthdate.Day()) {
		age--
	}

	return age
}
