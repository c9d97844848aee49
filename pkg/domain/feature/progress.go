package feature

// CompletionPct returns the percentage of the feature's tasks that are done.
// A feature with no tasks is 0% complete, not a division error.
func (f Feature) CompletionPct() float64 {
	return TaskCompletionPct(f.Tasks)
}

// TotalEffort returns the sum of task efforts, counting a missing effort as
// zero.
func (f Feature) TotalEffort() int {
	return TaskEffort(f.Tasks)
}

// TaskCompletionPct computes done-tasks / total-tasks * 100 over a task set.
func TaskCompletionPct(tasks []Task) float64 {
	if len(tasks) == 0 {
		return 0
	}
	done := 0
	for _, t := range tasks {
		if t.Status == StatusDone {
			done++
		}
	}
	return float64(done) / float64(len(tasks)) * 100
}

// TaskEffort sums the effort points of a task set, treating missing effort
// as zero.
func TaskEffort(tasks []Task) int {
	total := 0
	for _, t := range tasks {
		if t.Effort != nil {
			total += *t.Effort
		}
	}
	return total
}
