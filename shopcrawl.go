// Package shopcrawl discovers product pages on e-commerce websites.
// It crawls site structure breadth-first within a single origin,
// classifies pages as products via URL-shape and content heuristics,
// and optionally enriches discovery through site-specific structured
// APIs.
//
// This package contains domain types and interfaces following Ben
// Johnson's Standard Package Layout. Implementations live in
// subdirectories named after their primary dependency (e.g., goquery/,
// rod/, sqlite/).
package shopcrawl
