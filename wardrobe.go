// Package wardrobe turns product pages and garment photos into normalized
// clothing metadata records. Semantic understanding is delegated to a
// generative model; the record is then recovered deterministically from the
// model's free-form reply.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., gemini/, sqlite/, goquery/).
package wardrobe
