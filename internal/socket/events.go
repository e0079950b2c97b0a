package socket

import (
	"github.com/goccy/go-json"
)

// Message is the wire envelope for both directions. Data is absent on
// keep-alive frames and a JSON object everywhere else.
type Message struct {
	MessageType string          `json:"MessageType"`
	Data        json.RawMessage `json:"Data,omitempty"`
}

// Event is the closed set of server-pushed events. Exactly one variant is
// produced per recognized inbound frame.
type Event interface {
	eventType() string
}

// KeepAlive is the server's liveness probe. It is answered on the wire and
// never published to subscribers.
type KeepAlive struct{}

// PlaystateCommand instructs the client to alter playback
// (Stop, Pause, Unpause, Seek, NextTrack, PreviousTrack)
type PlaystateCommand struct {
	Command           string
	SeekPositionTicks int64
}

// PlayCommand instructs the client to start playing specific items
type PlayCommand struct {
	ItemIDs            []string
	Command            string // PlayNow, PlayNext, PlayLast
	StartPositionTicks int64
}

// GeneralCommand carries remote-control commands that are not playback
// transport (DisplayMessage, SetVolume, navigation, ...)
type GeneralCommand struct {
	Name      string
	Arguments map[string]string
}

// LibraryChanged notifies that catalog content was added, updated or removed
type LibraryChanged struct {
	ItemsAdded   []string
	ItemsUpdated []string
	ItemsRemoved []string
}

// UserDataChanged notifies that per-user state (watch progress, favorites)
// changed for the listed items
type UserDataChanged struct {
	UserID  string
	ItemIDs []string
}

func (KeepAlive) eventType() string        { return "KeepAlive" }
func (PlaystateCommand) eventType() string { return "Playstate" }
func (PlayCommand) eventType() string      { return "Play" }
func (GeneralCommand) eventType() string   { return "GeneralCommand" }
func (LibraryChanged) eventType() string   { return "LibraryChanged" }
func (UserDataChanged) eventType() string  { return "UserDataChanged" }

// Wire payload shapes, one per discriminator
type playstateData struct {
	Command           string `json:"Command"`
	SeekPositionTicks int64  `json:"SeekPositionTicks"`
}

type playData struct {
	ItemIDs            []string `json:"ItemIds"`
	PlayCommand        string   `json:"PlayCommand"`
	StartPositionTicks int64    `json:"StartPositionTicks"`
}

type generalCommandData struct {
	Name      string            `json:"Name"`
	Arguments map[string]string `json:"Arguments"`
}

type libraryUpdateData struct {
	ItemsAdded   []string `json:"ItemsAdded"`
	ItemsUpdated []string `json:"ItemsUpdated"`
	ItemsRemoved []string `json:"ItemsRemoved"`
}

type userDataChangedData struct {
	UserID       string `json:"UserId"`
	UserDataList []struct {
		ItemID string `json:"ItemId"`
	} `json:"UserDataList"`
}

// Parse translates one raw inbound frame into a typed event. Unknown
// discriminators and malformed payloads yield nil so the server can ship
// new message types without breaking older clients; the read loop drops
// nil frames.
func Parse(raw []byte) Event {
	var msg Message
	if err := json.Unmarshal(raw, &msg); err != nil {
		return nil
	}

	// Keep-alive first: its Data is a bare duration, not an object, so it
	// must never reach the payload decoders below.
	switch msg.MessageType {
	case "KeepAlive", "ForceKeepAlive":
		return KeepAlive{}
	}

	switch msg.MessageType {
	case "Playstate":
		var data playstateData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			return nil
		}
		return PlaystateCommand{
			Command:           data.Command,
			SeekPositionTicks: data.SeekPositionTicks,
		}

	case "Play":
		var data playData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			return nil
		}
		return PlayCommand{
			ItemIDs:            data.ItemIDs,
			Command:            data.PlayCommand,
			StartPositionTicks: data.StartPositionTicks,
		}

	case "GeneralCommand":
		var data generalCommandData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			return nil
		}
		return GeneralCommand{
			Name:      data.Name,
			Arguments: data.Arguments,
		}

	case "LibraryChanged":
		var data libraryUpdateData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			return nil
		}
		return LibraryChanged{
			ItemsAdded:   data.ItemsAdded,
			ItemsUpdated: data.ItemsUpdated,
			ItemsRemoved: data.ItemsRemoved,
		}

	case "UserDataChanged":
		var data userDataChangedData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			return nil
		}
		ev := UserDataChanged{UserID: data.UserID}
		for _, entry := range data.UserDataList {
			ev.ItemIDs = append(ev.ItemIDs, entry.ItemID)
		}
		return ev

	default:
		return nil
	}
}
