package dateutil

// Ages and years in a projection are whole numbers: a person of currentAge in
// currentYear is treated as having their birthday on January 1.

// BirthYear derives the birth year from an age observed in a given year
func BirthYear(currentYear, currentAge int) int {
	return currentYear - currentAge
}

// HorizonYears returns how many calendar years a projection spans, counting both endpoints.
// An age already past endAge yields zero.
func HorizonYears(currentAge, endAge int) int {
	if currentAge > endAge {
		return 0
	}
	return endAge - currentAge + 1
}

// GetRMDAge returns the age when RMDs start for a given birth year
func GetRMDAge(birthYear int) int {
	switch {
	case birthYear <= 1950:
		return 72
	case birthYear >= 1951 && birthYear <= 1959:
		return 73
	default: // 1960 and later
		return 75
	}
}

// IsRMDYear checks if required minimum distributions apply at age
func IsRMDYear(birthYear, age int) bool {
	return age >= GetRMDAge(birthYear)
}
