package utils

import "runtime"

// MeasureMemory runs build and reports the heap delta it caused.
// Spec.md §5 notes that peak usage is dominated by the deep copies of
// the word-rank table made at each recursion level; this lets a caller
// observe that cost directly rather than taking the spec's word for
// it, whether build runs one hkt.Build call or fans many out through
// a worker pool.
func MeasureMemory(build func()) runtime.MemStats {
	runtime.GC()
	runtime.GC()

	var before, after runtime.MemStats
	runtime.ReadMemStats(&before)

	build()

	runtime.GC()
	runtime.GC()
	runtime.ReadMemStats(&after)

	after.HeapAlloc -= before.HeapAlloc
	after.TotalAlloc -= before.TotalAlloc
	after.HeapObjects -= before.HeapObjects

	return after
}
