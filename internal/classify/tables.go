// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package classify

// Rule pairs a label with the keywords that trigger it. Rules are held in
// slices, not maps: tie-breaks depend on iteration order, so order must
// survive loading and must not be sorted.
type Rule struct {
	Label    string   `yaml:"label"`
	Keywords []string `yaml:"keywords"`
}

// Tables holds the three curated rule sets driving inference.
type Tables struct {
	Cuisines   []Rule `yaml:"cuisines"`
	Dietary    []Rule `yaml:"dietary"`
	Categories []Rule `yaml:"categories"`
}

// defaultTables are the built-in rule sets, used unless a YAML override is
// supplied. Keyword hits are case-insensitive substring tests against the
// venue's combined name, type tags, and summary.
var defaultTables = Tables{
	Cuisines: []Rule{
		{"indian", []string{"indian", "curry", "tandoori", "balti", "biryani", "dosa", "punjabi", "bengali", "masala"}},
		{"pakistani", []string{"pakistani", "karahi", "lahori", "nihari"}},
		{"bangladeshi", []string{"bangladeshi", "bangla"}},
		{"sri_lankan", []string{"sri lankan", "hopper", "kothu"}},
		{"nepalese", []string{"nepalese", "nepali", "momo", "gurkha"}},
		{"chinese", []string{"chinese", "szechuan", "sichuan", "cantonese", "dim sum", "dumpling", "hotpot", "noodle house", "wok"}},
		{"japanese", []string{"japanese", "sushi", "ramen", "izakaya", "yakitori", "katsu", "teppanyaki", "bento"}},
		{"korean", []string{"korean", "bibimbap", "kimchi", "bulgogi", "k-bbq"}},
		{"thai", []string{"thai", "pad thai", "som tam", "isaan"}},
		{"vietnamese", []string{"vietnamese", "pho", "banh mi", "viet"}},
		{"malaysian", []string{"malaysian", "laksa", "nasi", "satay"}},
		{"indonesian", []string{"indonesian", "rendang", "padang"}},
		{"filipino", []string{"filipino", "adobo", "lechon"}},
		{"italian", []string{"italian", "pizza", "pizzeria", "pasta", "trattoria", "osteria", "risotto"}},
		{"french", []string{"french", "bistro", "brasserie", "crepe", "crêpe", "patisserie"}},
		{"spanish", []string{"spanish", "tapas", "paella", "iberic"}},
		{"portuguese", []string{"portuguese", "piri piri", "peri peri", "nando"}},
		{"greek", []string{"greek", "gyros", "souvlaki", "taverna", "meze"}},
		{"turkish", []string{"turkish", "kebab", "ocakbasi", "mangal", "doner", "döner", "lahmacun"}},
		{"lebanese", []string{"lebanese", "shawarma", "mezze", "beirut"}},
		{"persian", []string{"persian", "iranian", "kabab"}},
		{"middle_eastern", []string{"middle eastern", "falafel", "hummus", "levant", "syrian", "israeli"}},
		{"moroccan", []string{"moroccan", "tagine", "couscous"}},
		{"ethiopian", []string{"ethiopian", "eritrean", "injera"}},
		{"nigerian", []string{"nigerian", "jollof", "suya"}},
		{"caribbean", []string{"caribbean", "jamaican", "jerk", "roti shop", "trini"}},
		{"mexican", []string{"mexican", "taco", "burrito", "taqueria", "quesadilla", "cantina"}},
		{"peruvian", []string{"peruvian", "ceviche", "nikkei"}},
		{"brazilian", []string{"brazilian", "churrasco", "rodizio"}},
		{"argentinian", []string{"argentinian", "argentine", "asado", "parrilla"}},
		{"american", []string{"american", "burger", "bbq", "barbecue", "smokehouse", "diner", "wings", "fried chicken"}},
		{"british", []string{"british", "fish and chips", "fish & chips", "sunday roast", "pie and mash", "gastropub"}},
		{"polish", []string{"polish", "pierogi"}},
		{"german", []string{"german", "schnitzel", "bratwurst"}},
		{"vegetarian_cuisine", []string{"vegetarian restaurant", "plant-based kitchen"}},
		{"seafood", []string{"seafood", "oyster", "fish market", "lobster", "crab shack"}},
		{"steakhouse", []string{"steakhouse", "steak house", "chophouse", "grill house"}},
	},
	Dietary: []Rule{
		{"halal", []string{"halal"}},
		{"vegan", []string{"vegan", "plant-based", "plant based"}},
		{"vegetarian", []string{"vegetarian", "veggie", "meat-free", "meat free"}},
		{"gluten_free", []string{"gluten-free", "gluten free"}},
	},
	Categories: []Rule{
		{"fine_dining", []string{"fine dining", "michelin", "tasting menu"}},
		{"cafe", []string{"cafe", "café", "coffee", "espresso", "brunch spot"}},
		{"bakery", []string{"bakery", "patisserie", "baker"}},
		{"dessert", []string{"dessert", "ice cream", "gelato", "waffle", "milkshake", "bubble tea", "boba"}},
		{"takeaway", []string{"takeaway", "take away", "meal_takeaway", "meal_delivery", "fast food", "chicken shop"}},
		{"pub", []string{"pub", "tavern", "alehouse", "inn"}},
		{"bar", []string{"bar", "cocktail", "wine bar", "taproom"}},
		{"street_food", []string{"street food", "food truck", "market stall", "food hall"}},
		{"buffet", []string{"buffet", "all you can eat"}},
		{"supper_club", []string{"supper club"}},
	},
}

// DefaultTables returns the built-in rule sets.
func DefaultTables() Tables {
	return defaultTables
}
