// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// LibraryService owns the canonical document collection and is its only
// writer; DriveSyncService feeds it from a remote drive account.
package services
