package confusion

// Default returns the built-in curated tables. The entries come from
// observed learner confusions, not from phonological or glyph-distance
// rules; edits belong in curation review, not in code.
func Default() *Tables {
	return &Tables{
		Version: 1,
		Onsets: map[string][]string{
			// Retroflex vs. alveolar sibilants.
			"zh": {"z", "ch", "j"},
			"ch": {"c", "zh", "q"},
			"sh": {"s", "x"},
			"z":  {"zh", "c"},
			"c":  {"ch", "z"},
			"s":  {"sh", "c"},
			// Palatals heard as retroflexes.
			"j": {"q", "zh"},
			"q": {"j", "ch"},
			"x": {"sh", "s"},
			// Aspirated/unaspirated stops.
			"b": {"p", "d"},
			"p": {"b", "t"},
			"d": {"t", "b"},
			"t": {"d", "p"},
			"g": {"k", "h"},
			"k": {"g", "h"},
			// Common southern-speaker confusions.
			"n": {"l"},
			"l": {"n", "r"},
			"r": {"l"},
			"f": {"h"},
			"h": {"f", "k"},
			"m": {"n"},
			"y": {"w"},
			"w": {"y"},
		},
		Rimes: map[string][]string{
			// Nasal-coda pairs.
			"an":   {"ang", "en"},
			"ang":  {"an", "eng"},
			"en":   {"eng", "an"},
			"eng":  {"en", "ong"},
			"in":   {"ing", "en"},
			"ing":  {"in", "eng"},
			"ong":  {"eng", "uang"},
			"ian":  {"iang", "in"},
			"iang": {"ian", "ang"},
			"uan":  {"uang", "un"},
			"uang": {"uan", "ang"},
			"un":   {"uan", "ong"},
			// Similar vowel nuclei.
			"ai": {"ei", "an"},
			"ei": {"ai", "en"},
			"ao": {"ou", "o"},
			"ou": {"ao", "u"},
			"e":  {"o", "a"},
			"o":  {"e", "uo"},
			"uo": {"o", "ou"},
			"a":  {"e", "ai"},
			"i":  {"v", "ei"},
			"v":  {"i", "u"},
			"u":  {"v", "ou"},
			"ie": {"ia", "ei"},
			"ia": {"ie", "a"},
			"ue": {"ie", "uo"},
			"er": {"e"},
		},
		Characters: map[string][]string{
			// One stroke apart.
			"人": {"入", "八"},
			"入": {"人", "八"},
			"八": {"人", "入"},
			"大": {"太", "犬", "天"},
			"太": {"大", "犬"},
			"天": {"夭", "大", "无"},
			"日": {"曰", "目", "白"},
			"目": {"日", "自", "月"},
			"未": {"末", "木"},
			"末": {"未", "木"},
			"土": {"士", "工"},
			"士": {"土", "干"},
			"己": {"已", "巳"},
			"已": {"己", "巳"},
			"巳": {"己", "已"},
			"千": {"干", "十"},
			"王": {"玉", "主"},
			"玉": {"王", "主"},
			// Shared components, traditional forms.
			"長": {"辰", "镸"},
			"門": {"鬥", "閂"},
			"車": {"東", "軍"},
			"東": {"車", "束"},
			"馬": {"鳥", "焉"},
			"鳥": {"馬", "烏"},
			"貝": {"見", "具"},
			"見": {"貝", "頁"},
			"書": {"晝", "畫"},
			"晝": {"書", "畫"},
			"愛": {"受", "憂"},
			"風": {"鳳", "凨"},
			"買": {"賣", "貫"},
			"賣": {"買", "讀"},
			"發": {"髮", "廢"},
			"髮": {"發", "鬆"},
			"樂": {"藥", "爍"},
			"語": {"話", "悟"},
			"請": {"情", "清"},
			"清": {"請", "情"},
			"情": {"清", "請"},
		},
	}
}
