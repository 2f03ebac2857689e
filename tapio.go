// Package tapio provides a site-configuration-driven documentation pipeline.
// It crawls configured websites, extracts the main content of each page using
// per-site selector rules, converts it to Markdown, indexes it for semantic
// search, and answers natural language questions over the indexed content.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, goquery/, gemini/).
package tapio
