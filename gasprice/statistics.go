package gasprice

import "github.com/holiman/uint256"

// Statistics keeps the most recent gas price samples.
type Statistics struct {
	samples []uint256.Int
	next    int
	full    bool
}

func NewStatistics(capacity int) *Statistics {
	if capacity < 1 {
		capacity = 1
	}
	return &Statistics{samples: make([]uint256.Int, capacity)}
}

// Add records a sample, evicting the oldest one once the capacity is reached.
func (s *Statistics) Add(price uint256.Int) {
	s.samples[s.next] = price
	s.next++
	if s.next == len(s.samples) {
		s.next = 0
		s.full = true
	}
}

func (s *Statistics) Len() int {
	if s.full {
		return len(s.samples)
	}
	return s.next
}

// Average returns the mean of the recorded samples, or false if there are none.
func (s *Statistics) Average() (uint256.Int, bool) {
	n := s.Len()
	if n == 0 {
		return uint256.Int{}, false
	}

	var sum uint256.Int
	for i := range n {
		sum.Add(&sum, &s.samples[i])
	}
	return *sum.Div(&sum, uint256.NewInt(uint64(n))), true
}
