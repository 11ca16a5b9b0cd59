package constant

// Detection event categories recognized by the scoring rules.
// Any other event_type is accepted into the audit log but never scored.
const (
	CategoryFocusLost      = "focus_lost"
	CategoryMultipleFaces  = "multiple_faces"
	CategoryNoFace         = "no_face"
	CategoryPhoneDetected  = "phone_detected"
	CategoryBooksDetected  = "books_detected"
	CategoryDeviceDetected = "device_detected"
)

// Categories lists the recognized set in reporting order.
var Categories = []string{
	CategoryFocusLost,
	CategoryMultipleFaces,
	CategoryNoFace,
	CategoryPhoneDetected,
	CategoryBooksDetected,
	CategoryDeviceDetected,
}

// IsRecognizedCategory reports whether the category participates in scoring.
func IsRecognizedCategory(category string) bool {
	switch category {
	case CategoryFocusLost,
		CategoryMultipleFaces,
		CategoryNoFace,
		CategoryPhoneDetected,
		CategoryBooksDetected,
		CategoryDeviceDetected:
		return true
	}
	return false
}
