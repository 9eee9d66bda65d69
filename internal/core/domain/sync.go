package domain

// SyncPhase is the recursive sync engine's state.
type SyncPhase string

// Recursive sync moves Idle -> Traversing -> Importing -> Done. A run
// triggered while the phase is Traversing or Importing is rejected.
const (
	SyncIdle       SyncPhase = "idle"
	SyncTraversing SyncPhase = "traversing"
	SyncImporting  SyncPhase = "importing"
	SyncDone       SyncPhase = "done"
)

// SyncSummary is the final report of a recursive sync run. It is retained
// until the next run clears it.
type SyncSummary struct {
	// Imported counts documents newly added to the library.
	Imported int

	// Skipped counts candidates rejected by the duplicate check.
	Skipped int

	// Total counts all candidate files discovered by traversal.
	Total int
}

// SyncProgress is a point-in-time snapshot of the engine's state, safe to
// hand to callers while a run is in flight.
type SyncProgress struct {
	// Phase is the current engine state.
	Phase SyncPhase

	// Percent is the progress indicator, 0-100. Traversal advances it
	// up to a fixed cap; import carries it from the cap to 100.
	Percent int

	// Summary is the last completed run's report, nil if none.
	Summary *SyncSummary
}
