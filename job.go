package qtwirl

// Job is one error model queued for batch twirling. Index is its position
// in the caller's input and in the returned results.
type Job struct {
	Index int
	Model *ErrorModel
}
