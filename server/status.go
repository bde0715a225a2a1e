package server

import (
	"crypto/md5"
	"encoding/json"

	"github.com/google/uuid"

	"github.com/gstoney/mcwire/packet"
)

// Status is the server list document sent in a StatusResponse.
type Status struct {
	Version     StatusVersion   `json:"version"`
	Players     StatusPlayers   `json:"players"`
	Description json.RawMessage `json:"description"`
	Favicon     string          `json:"favicon,omitempty"`
}

type StatusVersion struct {
	Name     string `json:"name"`
	Protocol int32  `json:"protocol"`
}

type StatusPlayers struct {
	Max    int            `json:"max"`
	Online int            `json:"online"`
	Sample []PlayerSample `json:"sample,omitempty"`
}

type PlayerSample struct {
	Name string    `json:"name"`
	ID   uuid.UUID `json:"id"`
}

// NewStatus describes a server speaking format f.
func NewStatus(f *packet.Format, motd packet.Chat, online, max int) Status {
	return Status{
		Version:     StatusVersion{Name: f.Name, Protocol: f.Protocol},
		Players:     StatusPlayers{Max: max, Online: online},
		Description: json.RawMessage(motd),
	}
}

// MOTD returns the description as a chat component.
func (s Status) MOTD() packet.Chat {
	return packet.Chat(s.Description)
}

func (s Status) Response() (*packet.StatusResponse, error) {
	b, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return &packet.StatusResponse{Response: string(b)}, nil
}

func ParseStatus(p *packet.StatusResponse) (Status, error) {
	var s Status
	err := json.Unmarshal([]byte(p.Response), &s)
	return s, err
}

// OfflineUUID returns the UUID an offline-mode server assigns to name: a
// version 3 UUID of "OfflinePlayer:<name>" with no namespace.
func OfflineUUID(name string) uuid.UUID {
	h := md5.Sum([]byte("OfflinePlayer:" + name))
	h[6] = h[6]&0x0f | 0x30
	h[8] = h[8]&0x3f | 0x80
	return uuid.UUID(h)
}
