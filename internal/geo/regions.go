package geo

import "strings"

var States = []string{
	"Andhra Pradesh", "Arunachal Pradesh", "Assam", "Bihar", "Chhattisgarh",
	"Delhi", "Goa", "Gujarat", "Haryana", "Himachal Pradesh", "Jharkhand",
	"Karnataka", "Kerala", "Madhya Pradesh", "Maharashtra", "Manipur",
	"Meghalaya", "Mizoram", "Nagaland", "Odisha", "Punjab", "Rajasthan",
	"Sikkim", "Tamil Nadu", "Telangana", "Tripura", "Uttar Pradesh",
	"Uttarakhand", "West Bengal",
}

var citiesByState = map[string][]string{
	"Maharashtra":   {"Mumbai", "Pune", "Nagpur", "Nashik", "Aurangabad", "Solapur", "Thane", "Navi Mumbai"},
	"Delhi":         {"New Delhi", "North Delhi", "South Delhi", "East Delhi", "West Delhi", "Central Delhi"},
	"Karnataka":     {"Bangalore", "Mysore", "Hubli", "Mangalore", "Belgaum", "Gulbarga", "Dharwad"},
	"Tamil Nadu":    {"Chennai", "Coimbatore", "Madurai", "Salem", "Tiruchirappalli", "Tiruppur", "Vellore"},
	"West Bengal":   {"Kolkata", "Howrah", "Durgapur", "Asansol", "Siliguri", "Bardhaman", "Malda"},
	"Gujarat":       {"Ahmedabad", "Surat", "Vadodara", "Rajkot", "Bhavnagar", "Jamnagar", "Gandhinagar"},
	"Uttar Pradesh": {"Lucknow", "Kanpur", "Varanasi", "Agra", "Prayagraj", "Meerut", "Noida", "Ghaziabad"},
}

// CanonicalState returns the listed spelling of name, matched case-insensitively.
func CanonicalState(name string) (string, bool) {
	for _, s := range States {
		if strings.EqualFold(s, strings.TrimSpace(name)) {
			return s, true
		}
	}
	return "", false
}

// Cities returns the known cities of a state. States without a city list yield an empty slice.
func Cities(state string) []string {
	canonical, ok := CanonicalState(state)
	if !ok {
		return nil
	}
	cities := citiesByState[canonical]
	out := make([]string, len(cities))
	copy(out, cities)
	return out
}
