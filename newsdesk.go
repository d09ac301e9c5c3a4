// Package newsdesk turns raw journalistic source material (a news URL, a
// press draft, an interview transcript, a social-media post or a video's
// captions) into a rewritten article plus a set of candidate headlines.
//
// This package contains domain types, interfaces and the deterministic text
// transforms of the pipeline: scrubbing, title synthesis, generator output
// parsing and proofread markup. Implementations of the external
// capabilities live in subdirectories named after their primary
// dependency (e.g., goquery/, gemini/, rod/).
package newsdesk
