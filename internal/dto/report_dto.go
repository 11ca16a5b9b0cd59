package dto

type ReportResponse struct {
	Session          SessionResponse                      `json:"session"`
	EventsByCategory map[string][]*DetectionEventResponse `json:"logs"`
}

// MonitorStateResponse is the live view pushed over the websocket feed and
// returned by the monitor endpoint.
type MonitorStateResponse struct {
	SessionId      string `json:"session_id"`
	CandidateName  string `json:"candidate_name"`
	IntegrityScore int    `json:"integrity_score"`
	TotalEvents    int    `json:"total_events"`
	LastEventType  string `json:"last_event_type,omitempty"`
	LastEventAt    string `json:"last_event_at,omitempty"`
}
