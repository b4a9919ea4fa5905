package settings

// CurrencyProfile is the locale/currency triple swapped atomically when the
// store country changes. The three fields never change independently.
type CurrencyProfile struct {
	Country        string `json:"country"`
	CurrencyCode   string `json:"currency_code"`
	CurrencySymbol string `json:"currency_symbol"`
	Locale         string `json:"locale"`
}

// DefaultCountry is the profile applied when no settings row exists yet.
const DefaultCountry = "Perú"

var countryProfiles = []CurrencyProfile{
	{Country: "Perú", CurrencyCode: "PEN", CurrencySymbol: "S/", Locale: "es-PE"},
	{Country: "Chile", CurrencyCode: "CLP", CurrencySymbol: "$", Locale: "es-CL"},
	{Country: "Colombia", CurrencyCode: "COP", CurrencySymbol: "$", Locale: "es-CO"},
	{Country: "México", CurrencyCode: "MXN", CurrencySymbol: "$", Locale: "es-MX"},
	{Country: "Argentina", CurrencyCode: "ARS", CurrencySymbol: "$", Locale: "es-AR"},
	{Country: "Ecuador", CurrencyCode: "USD", CurrencySymbol: "$", Locale: "es-EC"},
	{Country: "Bolivia", CurrencyCode: "BOB", CurrencySymbol: "Bs", Locale: "es-BO"},
}

// ProfileFor looks up the currency profile for a country name.
func ProfileFor(country string) (CurrencyProfile, bool) {
	for _, profile := range countryProfiles {
		if profile.Country == country {
			return profile, true
		}
	}
	return CurrencyProfile{}, false
}

// Countries lists the supported country profiles for the admin dropdown.
func Countries() []CurrencyProfile {
	out := make([]CurrencyProfile, len(countryProfiles))
	copy(out, countryProfiles)
	return out
}
