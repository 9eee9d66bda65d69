// Package extractors turns source locators into normalised metadata
// records.
//
// The Router inspects a locator and dispatches to one provider extractor
// through an ordered rule table; unmatched locators fall through to the
// generic webpage extractor. Every provider branch is failure-proof: a
// network or parse error inside an extractor is recovered into a fallback
// record synthesised from the locator text alone. The only error the
// package surfaces is domain.ErrInvalidLocator for input that cannot be
// parsed at all.
package extractors
