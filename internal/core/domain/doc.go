// Package domain defines the core business entities for Paperdock.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Document: A canonical library record
//   - ExtractedMetadata: A provider extractor's normalised output
//   - Category: The fixed topic enumeration, with Classify
//   - DriveFile: A remote drive entry (consumed, not owned)
//   - SyncSummary / SyncProgress: Recursive sync reporting
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
