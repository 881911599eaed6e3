// Package prefetch pre-generates pronunciation audio for every letter and
// barakhari combination in the dataset. Targets are synthesized strictly one
// after another; files that already exist are never requested again, and a
// primary-language failure is retried once in the fallback language when one
// is configured. The first unrecoverable failure stops the run.
package prefetch
