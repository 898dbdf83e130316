package verbhash

// Forms lists the inflections of one base verb.
type Forms struct {
	Third      string
	Gerund     string
	Past       string
	Participle string
}

// Irregular maps base verbs to their inflections.
type Irregular map[string]Forms

// DefaultIrregular covers the irregular motion verbs templates commonly
// anchor on.
func DefaultIrregular() Irregular {
	return Irregular{
		"be":     {"is", "being", "was", "been"},
		"bend":   {"bends", "bending", "bent", "bent"},
		"bite":   {"bites", "biting", "bit", "bitten"},
		"blow":   {"blows", "blowing", "blew", "blown"},
		"come":   {"comes", "coming", "came", "come"},
		"creep":  {"creeps", "creeping", "crept", "crept"},
		"dig":    {"digs", "digging", "dug", "dug"},
		"dive":   {"dives", "diving", "dove", "dived"},
		"do":     {"does", "doing", "did", "done"},
		"drive":  {"drives", "driving", "drove", "driven"},
		"eat":    {"eats", "eating", "ate", "eaten"},
		"fall":   {"falls", "falling", "fell", "fallen"},
		"fight":  {"fights", "fighting", "fought", "fought"},
		"flee":   {"flees", "fleeing", "fled", "fled"},
		"fling":  {"flings", "flinging", "flung", "flung"},
		"fly":    {"flies", "flying", "flew", "flown"},
		"freeze": {"freezes", "freezing", "froze", "frozen"},
		"get":    {"gets", "getting", "got", "gotten"},
		"go":     {"goes", "going", "went", "gone"},
		"hang":   {"hangs", "hanging", "hung", "hung"},
		"hide":   {"hides", "hiding", "hid", "hidden"},
		"hit":    {"hits", "hitting", "hit", "hit"},
		"hold":   {"holds", "holding", "held", "held"},
		"kneel":  {"kneels", "kneeling", "knelt", "knelt"},
		"lead":   {"leads", "leading", "led", "led"},
		"leap":   {"leaps", "leaping", "leapt", "leapt"},
		"lie":    {"lies", "lying", "lay", "lain"},
		"ride":   {"rides", "riding", "rode", "ridden"},
		"rise":   {"rises", "rising", "rose", "risen"},
		"run":    {"runs", "running", "ran", "run"},
		"shake":  {"shakes", "shaking", "shook", "shaken"},
		"shoot":  {"shoots", "shooting", "shot", "shot"},
		"shrink": {"shrinks", "shrinking", "shrank", "shrunk"},
		"sing":   {"sings", "singing", "sang", "sung"},
		"sink":   {"sinks", "sinking", "sank", "sunk"},
		"sit":    {"sits", "sitting", "sat", "sat"},
		"sleep":  {"sleeps", "sleeping", "slept", "slept"},
		"slide":  {"slides", "sliding", "slid", "slid"},
		"sling":  {"slings", "slinging", "slung", "slung"},
		"spin":   {"spins", "spinning", "spun", "spun"},
		"spring": {"springs", "springing", "sprang", "sprung"},
		"stand":  {"stands", "standing", "stood", "stood"},
		"sting":  {"stings", "stinging", "stung", "stung"},
		"stride": {"strides", "striding", "strode", "stridden"},
		"strike": {"strikes", "striking", "struck", "struck"},
		"swim":   {"swims", "swimming", "swam", "swum"},
		"swing":  {"swings", "swinging", "swung", "swung"},
		"take":   {"takes", "taking", "took", "taken"},
		"throw":  {"throws", "throwing", "threw", "thrown"},
		"wake":   {"wakes", "waking", "woke", "woken"},
		"wind":   {"winds", "winding", "wound", "wound"},
	}
}
