package constant

// DetectionAcceptedTopic is the in-process topic carrying accepted
// detection events from the request path to the monitor consumer.
const DetectionAcceptedTopic = "detection_accepted"
