// Package image fills in the example pictures of the letter detail view.
//
// Each letter entry names an image path under assets/images. fetch-images
// looks up the entry's example word in English, searches Pixabay or
// Unsplash for it (or has an OpenAI image model draw it), and writes the
// picture to exactly that path, scaled down and re-encoded to match the
// file extension. Providers that require credit get an _attribution.txt
// file next to the picture.
package image
