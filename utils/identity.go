package utils

import (
	"strings"
	"time"
	"unicode"

	"PalmCare/models"
)

var rolePrefixes = map[string]string{
	"dr":         models.RoleDoctor,
	"doc":        models.RoleDoctor,
	"doctor":     models.RoleDoctor,
	"nurse":      models.RoleNurse,
	"lab":        models.RoleLabTechnician,
	"pharm":      models.RolePharmacist,
	"pharmacist": models.RolePharmacist,
	"admin":      models.RoleAdministrator,
	"reception":  models.RoleReceptionist,
	"front":      models.RoleReceptionist,
	"cashier":    models.RoleCashier,
}

// DeriveIdentity guesses a display name and role from a login username, e.g.
// "dr.jane_doe" gives ("Jane Doe", "Doctor").
func DeriveIdentity(username string) (displayName, role string) {
	local := strings.TrimSpace(username)
	if at := strings.Index(local, "@"); at >= 0 {
		local = local[:at]
	}
	tokens := strings.FieldsFunc(local, func(r rune) bool {
		return r == '.' || r == '_' || r == '-' || unicode.IsSpace(r)
	})

	role = models.RoleStaff
	if len(tokens) > 1 {
		if mapped, ok := rolePrefixes[strings.ToLower(tokens[0])]; ok {
			role = mapped
			tokens = tokens[1:]
		}
	}
	return titleCase(tokens), role
}

func titleCase(tokens []string) string {
	words := make([]string, 0, len(tokens))
	for _, token := range tokens {
		runes := []rune(strings.ToLower(token))
		runes[0] = unicode.ToUpper(runes[0])
		words = append(words, string(runes))
	}
	return strings.Join(words, " ")
}

// Greeting picks the salutation by the hour of at.
func Greeting(displayName string, at time.Time) string {
	salutation := "Good evening"
	switch hour := at.Hour(); {
	case hour < 12:
		salutation = "Good morning"
	case hour < 17:
		salutation = "Good afternoon"
	}
	if displayName == "" {
		return salutation
	}
	return salutation + ", " + displayName
}
