package todo

import "time"

// IDSource issues task ids derived from the wall clock in milliseconds.
// Ids are strictly increasing: two tasks created in the same millisecond
// get consecutive values instead of colliding.
type IDSource struct {
	now  func() time.Time
	last int64
}

// NewIDSource returns a source using now, or time.Now when nil.
func NewIDSource(now func() time.Time) *IDSource {
	if now == nil {
		now = time.Now
	}
	return &IDSource{now: now}
}

// Observe raises the floor so later ids are greater than id. Ids above
// maxID are ignored.
func (s *IDSource) Observe(id int64) {
	if id > s.last && id <= maxID {
		s.last = id
	}
}

// Next returns a fresh id.
func (s *IDSource) Next() int64 {
	id := s.now().UnixMilli()
	if id <= s.last {
		id = s.last + 1
	}
	s.last = id
	return id
}
