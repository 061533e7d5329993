package utils

import (
	"fmt"
	"math/rand"
	"strings"
)

var digits = "0123456789"

func GenerateRandomOTP() string {
	return fmt.Sprintf("%06d", rand.Intn(1000000))
}

var letters = []rune("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!@#$%^&*")

func GenerateRandomPassword(length int) string {
	password := make([]rune, length)
	for i := range password {
		password[i] = letters[rand.Intn(len(letters))]
	}
	return string(password)
}

var givenNames = []string{
	"Alex", "Billie", "Casey", "Dana", "Eli", "Frankie", "Georgie", "Harley",
	"Izzy", "Jamie", "Kim", "Lou", "Morgan", "Nicky", "Ollie", "Pat",
	"Quinn", "Robin", "Sam", "Toni",
}
var familyNames = []string{
	"Andersson", "Berg", "Carlsson", "Dahl", "Ek", "Fors", "Gran", "Holm",
	"Isaksson", "Johansson", "Karlsson", "Lind", "Moberg", "Nilsson",
	"Olsson", "Persson", "Qvist", "Ruud", "Strand", "Tall",
}

func GenerateRandomFullName() string {
	return givenNames[rand.Intn(len(givenNames))] + " " + familyNames[rand.Intn(len(familyNames))]
}

// GenerateUsernameFromFullName derives a lowercase username plus a short
// numeric suffix, the way onboarding does it for seeded accounts.
func GenerateUsernameFromFullName(fullName string) string {
	username := strings.ToLower(strings.ReplaceAll(fullName, " ", "."))

	digitsLength := rand.Intn(3) + 1
	for i := 0; i < digitsLength; i++ {
		username += string(digits[rand.Intn(len(digits))])
	}

	return username
}

// GenerateEmployeeCode produces codes in the shape assignment rows use,
// e.g. "EMP-04217".
func GenerateEmployeeCode() string {
	return fmt.Sprintf("EMP-%05d", rand.Intn(100000))
}
