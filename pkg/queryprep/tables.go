package queryprep

// defaultCorrections covers the typos customers actually type into
// support widgets.
var defaultCorrections = map[string]string{
	"buisnus":   "business",
	"buisness":  "business",
	"busines":   "business",
	"bussiness": "business",
	"tme":       "time",
	"tym":       "time",
	"wrking":    "working",
	"workin":    "working",
	"hrs":       "hours",
	"hr":        "hour",
	"prcng":     "pricing",
	"prcing":    "pricing",
	"prce":      "price",
	"cntact":    "contact",
	"questn":    "question",
	"questin":   "question",
}

// defaultExpansions widens common phrasings so lexical matching catches
// knowledge base items written with different wording. Order matters:
// more specific phrases come first.
var defaultExpansions = []Expansion{
	{"business time", "business hours working hours schedule"},
	{"business hours", "business hours working hours schedule office hours"},
	{"working time", "working hours business hours schedule"},
	{"office time", "office hours business hours working hours"},
	{"price", "pricing cost price fees"},
	{"cost", "pricing cost price fees"},
	{"contact info", "contact information email phone address"},
	{"reach you", "contact information email phone"},
	{"location", "address location where find"},
}
