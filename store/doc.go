// Package store persists sampling runs in SQLite.
//
// A run records everything needed to audit or replay a stratified draw: the
// grid shape and content fingerprint, the no-data mask, the allocation policy
// and total, the per-class statistics and allocation, the draw strategy, the
// resolved seed and every drawn (class, row, col) triple.
//
// The schema is embedded and applied with golang-migrate on Open; the driver
// is the pure-Go modernc.org/sqlite.
//
//	db, err := store.Open("runs.db")
//	runs := store.NewRunStore(db)
//	run, _ := store.NewRun(d) // d is a sampled *design.Design
//	err = runs.InsertRun(ctx, run)
//
// Every RunStore call takes a context.Context.
package store
