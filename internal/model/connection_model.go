package model

// ConnectionsKey is the well-known key holding the connection log.
const ConnectionsKey = "fairfound_connections"

// Connection is one entry of the append-only mentor connection log.
type Connection struct {
	MentorID   string `json:"mentorId"`
	MenteeName string `json:"menteeName"`
	Date       string `json:"date"`
	Status     string `json:"status"`
}
