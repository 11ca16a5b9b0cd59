package entity

import "exam-proctor-be/internal/constant"

// CounterSnapshot is a read-consistent copy of the per-category counters.
// The integrity score is always derived from a snapshot, never from a
// previously stored score.
type CounterSnapshot struct {
	FocusLost      int
	MultipleFaces  int
	NoFace         int
	PhoneDetected  int
	BooksDetected  int
	DeviceDetected int
	TotalEvents    int
}

// ByCategory returns the counter value for a recognized category.
// Unrecognized categories count as zero.
func (c CounterSnapshot) ByCategory(category string) int {
	switch category {
	case constant.CategoryFocusLost:
		return c.FocusLost
	case constant.CategoryMultipleFaces:
		return c.MultipleFaces
	case constant.CategoryNoFace:
		return c.NoFace
	case constant.CategoryPhoneDetected:
		return c.PhoneDetected
	case constant.CategoryBooksDetected:
		return c.BooksDetected
	case constant.CategoryDeviceDetected:
		return c.DeviceDetected
	}
	return 0
}
