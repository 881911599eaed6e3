// Package alphabet holds the read-only reference data for the Nepali and
// English alphabets, the barakhari grid and numbers. It loads the dataset
// from JSON, derives combined glyphs and asset paths, and applies the vowel
// exclusion rule used everywhere vowels are enumerated.
package alphabet
