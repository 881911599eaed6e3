// Package anki exports the alphabet, the barakhari grid and the numbers as
// Anki flashcards, either as an .apkg package with the pre-fetched audio
// embedded or as a plain CSV import file.
package anki
