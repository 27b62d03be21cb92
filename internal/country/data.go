// Package country resolves free-text country names and fixed per-country
// table identifiers to stable CID reference codes. Incoming workbooks spell
// countries every way imaginable (local-language names like "Hrvatska",
// abbreviations like "BH", ISO codes, adjectival forms like "Kosovar"), so
// resolution walks a ladder of matching strategies and reports which one
// hit for auditability.
package country

// countries is the static name→region source of truth. Focused on the
// countries that appear in the project data; extend as new ones show up.
var countries = map[string]string{
	"Afghanistan":            "South & Central Asia",
	"Albania":                "Europe & Eurasia",
	"Algeria":                "Middle East & North Africa",
	"Andorra":                "Europe & Eurasia",
	"Argentina":              "Western Hemisphere",
	"Armenia":                "Europe & Eurasia",
	"Australia":              "East Asia & the Pacific",
	"Austria":                "Europe & Eurasia",
	"Azerbaijan":             "Europe & Eurasia",
	"Belarus":                "Europe & Eurasia",
	"Belgium":                "Europe & Eurasia",
	"Bosnia and Herzegovina": "Europe & Eurasia",
	"Bulgaria":               "Europe & Eurasia",
	"Canada":                 "Western Hemisphere",
	"China":                  "East Asia & the Pacific",
	"Croatia":                "Europe & Eurasia",
	"Cyprus":                 "Europe & Eurasia",
	"Czech Republic":         "Europe & Eurasia",
	"Denmark":                "Europe & Eurasia",
	"Estonia":                "Europe & Eurasia",
	"Finland":                "Europe & Eurasia",
	"France":                 "Europe & Eurasia",
	"Georgia":                "Europe & Eurasia",
	"Germany":                "Europe & Eurasia",
	"Greece":                 "Europe & Eurasia",
	"Hungary":                "Europe & Eurasia",
	"Iceland":                "Europe & Eurasia",
	"India":                  "South & Central Asia",
	"Ireland":                "Europe & Eurasia",
	"Italy":                  "Europe & Eurasia",
	"Japan":                  "East Asia & the Pacific",
	"Kosovo":                 "Europe & Eurasia",
	"Latvia":                 "Europe & Eurasia",
	"Lithuania":              "Europe & Eurasia",
	"Luxembourg":             "Europe & Eurasia",
	"Malta":                  "Europe & Eurasia",
	"Mexico":                 "Western Hemisphere",
	"Montenegro":             "Europe & Eurasia",
	"Netherlands":            "Europe & Eurasia",
	"North Macedonia":        "Europe & Eurasia",
	"Norway":                 "Europe & Eurasia",
	"Poland":                 "Europe & Eurasia",
	"Portugal":               "Europe & Eurasia",
	"Romania":                "Europe & Eurasia",
	"Serbia":                 "Europe & Eurasia",
	"Slovakia":               "Europe & Eurasia",
	"Slovenia":               "Europe & Eurasia",
	"Spain":                  "Europe & Eurasia",
	"Sweden":                 "Europe & Eurasia",
	"Switzerland":            "Europe & Eurasia",
	"Turkey":                 "Europe & Eurasia",
	"Ukraine":                "Europe & Eurasia",
	"United Kingdom":         "Europe & Eurasia",
	"United States":          "Western Hemisphere",
}

// TableMap fixes the per-country roster table identifiers to their
// canonical "Country, Region, World" labels. This is a static contract
// with the workbook template, not something inferred from data.
var TableMap = map[string]string{
	"tableAlb": "Albania, Europe & Eurasia",
	"tableBih": "Bosnia and Herzegovina, Europe & Eurasia",
	"tableCro": "Croatia, Europe & Eurasia",
	"tableKos": "Kosovo, Europe & Eurasia",
	"tableMne": "Montenegro, Europe & Eurasia",
	"tableNmk": "North Macedonia, Europe & Eurasia",
	"tableSer": "Serbia, Europe & Eurasia",
}

// aliases covers local-language variants, historical spellings, and common
// abbreviations. Keys are pre-normalized (lowercase, accent-free).
var aliases = map[string]string{
	// Bosnia and Herzegovina
	"bih": "Bosnia and Herzegovina", "bh": "Bosnia and Herzegovina",
	"bosnia i hercegovina": "Bosnia and Herzegovina",
	"bosna i hercegovina":  "Bosnia and Herzegovina",
	"bosna":                "Bosnia and Herzegovina",
	"bosnia":               "Bosnia and Herzegovina",
	"bosnian":              "Bosnia and Herzegovina",
	"b i h":                "Bosnia and Herzegovina",
	// Croatia
	"rh": "Croatia", "hr": "Croatia",
	"republika hrvatska": "Croatia", "hrvatska": "Croatia",
	"cro": "Croatia", "croatian": "Croatia", "h r": "Croatia",
	// Serbia
	"srbija": "Serbia", "r srbija": "Serbia", "republika srbija": "Serbia",
	"rs": "Serbia", "srb": "Serbia", "ser": "Serbia",
	"serbia": "Serbia", "serbian": "Serbia",
	// Montenegro
	"cg": "Montenegro", "mne": "Montenegro", "crna gora": "Montenegro",
	"montenegro": "Montenegro", "montenegrin": "Montenegro", "mon": "Montenegro",
	// North Macedonia
	"mk": "North Macedonia", "mkd": "North Macedonia", "nm": "North Macedonia",
	"n mk": "North Macedonia", "north macedonia": "North Macedonia",
	"macedonia": "North Macedonia", "mac": "North Macedonia",
	"mak": "North Macedonia", "makedonija": "North Macedonia",
	"macedonian": "North Macedonia",
	// Slovenia
	"slo": "Slovenia", "svn": "Slovenia", "slovenija": "Slovenia",
	"slovene": "Slovenia", "slovenian": "Slovenia",
	// Albania
	"alb": "Albania", "shqiperi": "Albania", "shqiperia": "Albania",
	"albania": "Albania", "albanian": "Albania",
	// Kosovo
	"kos": "Kosovo", "kosovo": "Kosovo", "kosovar": "Kosovo",
	"rks": "Kosovo", "kosovo*": "Kosovo",
	// Austria
	"aut": "Austria", "oe": "Austria", "austria": "Austria", "austrian": "Austria",
	// Italy
	"ita": "Italy", "it": "Italy", "italy": "Italy", "italian": "Italy",
	// Germany
	"ger": "Germany", "de": "Germany", "deu": "Germany",
	"germany": "Germany", "german": "Germany",
	// United States
	"usa": "United States", "u s a": "United States", "us": "United States",
	"united states": "United States", "american": "United States",
	// United Kingdom
	"uk": "United Kingdom", "gb": "United Kingdom", "gbr": "United Kingdom",
	"great britain": "United Kingdom", "britain": "United Kingdom",
	"british": "United Kingdom",
}

// isoCodes maps ISO 3166 alpha-2 and alpha-3 codes to canonical names.
var isoCodes = map[string]string{
	"ba": "Bosnia and Herzegovina", "bih": "Bosnia and Herzegovina",
	"hr": "Croatia", "hrv": "Croatia",
	"rs": "Serbia", "srb": "Serbia",
	"me": "Montenegro", "mne": "Montenegro",
	"mk": "North Macedonia", "mkd": "North Macedonia",
	"si": "Slovenia", "svn": "Slovenia",
	"al": "Albania", "alb": "Albania",
	"xk": "Kosovo",
	"at": "Austria", "aut": "Austria",
	"de": "Germany", "deu": "Germany",
	"it": "Italy", "ita": "Italy",
	"us": "United States", "usa": "United States",
	"gb": "United Kingdom", "gbr": "United Kingdom",
}

// prefixShortcuts handles adjectival and longer forms not worth an alias
// entry. Keys are the first three characters of the normalized first token.
var prefixShortcuts = map[string]string{
	"alb": "Albania",
	"aus": "Austria",
	"bos": "Bosnia and Herzegovina",
	"cro": "Croatia",
	"ger": "Germany",
	"hun": "Hungary",
	"ita": "Italy",
	"kos": "Kosovo",
	"mac": "North Macedonia",
	"mak": "North Macedonia",
	"mon": "Montenegro",
	"pol": "Poland",
	"ser": "Serbia",
	"slo": "Slovenia",
	"spa": "Spain",
	"swe": "Sweden",
	"ukr": "Ukraine",
	"uni": "United Kingdom",
	"usa": "United States",
}

// stopwords are dropped during normalization so that "Republic of Serbia"
// and "Republika Srbija" reduce to the same key.
var stopwords = map[string]bool{
	"republika": true, "republik": true, "republic": true,
	"and": true, "i": true, "of": true, "the": true, "r": true,
}
