package qtwirl

import (
	"strconv"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"
)

// Operators pairs the Pauli algebra and basis states for one qubit count.
type Operators struct {
	Algebra *PauliAlgebra
	Basis   *BasisStates
}

/*
AlgebraSpace hands out Operators keyed by qubit count. Built entries are
immutable and kept in a small LRU, so concurrent twirls over the same n
share one copy; concurrent misses for the same n build it once. With a
size of zero nothing is retained and every call builds afresh.
*/
type AlgebraSpace struct {
	entries *lru.Cache[int, *Operators]
	group   singleflight.Group
	metrics *Metrics
}

func NewAlgebraSpace(size int, metrics *Metrics) (*AlgebraSpace, error) {
	if metrics == nil {
		metrics = NewMetrics()
	}

	space := &AlgebraSpace{metrics: metrics}
	if size <= 0 {
		return space, nil
	}

	entries, err := lru.New[int, *Operators](size)
	if err != nil {
		return nil, err
	}
	space.entries = entries

	return space, nil
}

// Acquire returns the operators for n qubits, building them on a miss.
func (s *AlgebraSpace) Acquire(n int) (*Operators, error) {
	if s.entries == nil {
		s.metrics.recordCache(false)
		return buildOperators(n)
	}

	if ops, ok := s.entries.Get(n); ok {
		s.metrics.recordCache(true)
		return ops, nil
	}
	s.metrics.recordCache(false)

	v, err, _ := s.group.Do(strconv.Itoa(n), func() (interface{}, error) {
		if ops, ok := s.entries.Get(n); ok {
			return ops, nil
		}

		ops, err := buildOperators(n)
		if err != nil {
			return nil, err
		}

		s.entries.Add(n, ops)
		return ops, nil
	})
	if err != nil {
		return nil, err
	}

	return v.(*Operators), nil
}

// Len is the number of cached qubit counts.
func (s *AlgebraSpace) Len() int {
	if s.entries == nil {
		return 0
	}
	return s.entries.Len()
}

func buildOperators(n int) (*Operators, error) {
	algebra, err := NewPauliAlgebra(n)
	if err != nil {
		return nil, err
	}

	basis, err := NewBasisStates(n)
	if err != nil {
		return nil, err
	}

	return &Operators{Algebra: algebra, Basis: basis}, nil
}
