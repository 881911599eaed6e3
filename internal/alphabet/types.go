package alphabet

// LetterEntry is a single letter of the Nepali or English alphabet
type LetterEntry struct {
	ID      string `json:"id"`
	Letter  string `json:"letter"`
	Lower   string `json:"lower,omitempty"` // English only
	Latin   string `json:"latin"`
	Sound   string `json:"sound"`
	Example string `json:"example,omitempty"`
	Word    string `json:"word,omitempty"`
	Image   string `json:"image,omitempty"`
	Audio   string `json:"audio,omitempty"`
	SVG     string `json:"svg,omitempty"`
}

// VowelEntry is one column of the barakhari grid. A nil Matra marks the
// inherent vowel, which leaves the consonant unchanged.
type VowelEntry struct {
	Key   string  `json:"key"`
	Label string  `json:"label"`
	Matra *string `json:"matra,omitempty"`
	Latin string  `json:"latin"`
	Sound string  `json:"sound"`
}

// HasMatra reports whether the vowel carries a dependent vowel sign
func (v VowelEntry) HasMatra() bool {
	return v.Matra != nil
}

// BaseConsonantEntry is one row of the barakhari grid
type BaseConsonantEntry struct {
	ID     string `json:"id"`
	Letter string `json:"letter"`
	Latin  string `json:"latin"`
}

// NumberEntry is a digit with its spoken word
type NumberEntry struct {
	Digit string `json:"digit"`
	Word  string `json:"word"`
	Audio string `json:"audio,omitempty"`
}

// Nepali groups the Nepali vowel and consonant letters
type Nepali struct {
	Swar    []LetterEntry `json:"swar"`
	Byanjan []LetterEntry `json:"byanjan"`
}

// English groups the English letters
type English struct {
	AZ []LetterEntry `json:"az"`
}

// Barakhari is the consonant × vowel grid definition
type Barakhari struct {
	BaseConsonants []BaseConsonantEntry `json:"baseConsonants"`
	Vowels         []VowelEntry         `json:"vowels"`
	ExampleHint    string               `json:"exampleHint,omitempty"`
}

// Numbers groups the Nepali and English number lists
type Numbers struct {
	Nepali  []NumberEntry `json:"nepali"`
	English []NumberEntry `json:"english"`
}

// Dataset is the whole reference document. It is loaded once and never
// mutated afterwards.
type Dataset struct {
	Nepali    Nepali     `json:"nepali"`
	English   English    `json:"english"`
	Barakhari *Barakhari `json:"barakhari,omitempty"`
	Numbers   *Numbers   `json:"numbers,omitempty"`
}

// HasBarakhari reports whether the grid can be built
func (d *Dataset) HasBarakhari() bool {
	return d.Barakhari != nil && len(d.Barakhari.BaseConsonants) > 0 && len(d.Barakhari.Vowels) > 0
}

// NepaliNumbers returns the Nepali number list, or nil
func (d *Dataset) NepaliNumbers() []NumberEntry {
	if d.Numbers == nil {
		return nil
	}
	return d.Numbers.Nepali
}

// EnglishNumbers returns the English number list, or nil
func (d *Dataset) EnglishNumbers() []NumberEntry {
	if d.Numbers == nil {
		return nil
	}
	return d.Numbers.English
}

// ExampleHint returns the barakhari detail hint with its default
func (d *Dataset) ExampleHint() string {
	if d.Barakhari != nil && d.Barakhari.ExampleHint != "" {
		return d.Barakhari.ExampleHint
	}
	return "Tap variations below"
}
