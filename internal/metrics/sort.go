package metrics

import "sort"

// SortProcesses orders procs in place by the given key. CPU and memory
// sort descending, PID ascending. Ties always break by ascending PID so
// rows with equal values keep a stable position across refreshes.
func SortProcesses(procs []ProcessInfo, key SortKey) {
	sort.SliceStable(procs, func(i, j int) bool {
		a, b := procs[i], procs[j]
		switch key {
		case SortMemory:
			if a.RSS != b.RSS {
				return a.RSS > b.RSS
			}
		case SortPID:
			return a.PID < b.PID
		default: // SortCPU
			if a.CPUPercent != b.CPUPercent {
				return a.CPUPercent > b.CPUPercent
			}
		}
		return a.PID < b.PID
	})
}
