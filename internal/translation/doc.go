// Package translation turns the Nepali example words of the alphabet into
// short English search terms using the OpenAI API. Results are kept in a
// glossary file so later runs do not ask again.
package translation
