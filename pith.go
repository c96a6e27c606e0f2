// Package pith turns raw web pages into translation-ready content blocks.
// It segments reader-cleaned HTML into an ordered sequence of typed blocks
// (headings, paragraphs, lists, quotes, code, images), derives document
// metadata (author, dates, article classification, tags, pull quotes,
// heading hierarchy, reference links) from the original markup, and fronts
// the pipeline with a compressing TTL+LRU cache keyed by source locator.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, sqlite/, readability/).
package pith
