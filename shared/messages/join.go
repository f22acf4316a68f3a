package messages

import "github.com/leap-fish/necs/esync"

// JoinRequest is sent by a client after connecting to request a seat.
type JoinRequest struct {
	Version    string
	PlayerName string
	Character  string
}

// JoinAccepted is sent by the server when a client's join request is accepted.
type JoinAccepted struct {
	NetworkID  esync.NetworkId
	FighterID  uint64
	ServerName string
	TickRate   int
	Arena      string
	Characters []string
}

// JoinRejected is sent by the server when a client's join request is rejected.
type JoinRejected struct {
	Reason string
}
