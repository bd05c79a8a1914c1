// Package content holds the read-only invitation snapshot consumed by the
// choreography components, its loader, and path-based editing helpers.
package content

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// Person is one half of the couple.
type Person struct {
	Name   string `yaml:"name" json:"name"`
	Father string `yaml:"father,omitempty" json:"father,omitempty"`
	Mother string `yaml:"mother,omitempty" json:"mother,omitempty"`
	Phone  string `yaml:"phone,omitempty" json:"phone,omitempty"`
}

// Wedding describes the ceremony.
type Wedding struct {
	Date    time.Time `yaml:"date" json:"date"`
	Venue   string    `yaml:"venue" json:"venue"`
	Hall    string    `yaml:"hall,omitempty" json:"hall,omitempty"`
	Address string    `yaml:"address,omitempty" json:"address,omitempty"`
}

// Section is a scroll region of the main page.
type Section struct {
	ID    string `yaml:"id" json:"id"`
	Title string `yaml:"title,omitempty" json:"title,omitempty"`
}

// Message is a guestbook entry. ID is stable across reloads so renderers can
// key card animations on it.
type Message struct {
	ID        string    `yaml:"id" json:"id"`
	Author    string    `yaml:"author" json:"author"`
	Text      string    `yaml:"text" json:"text"`
	Question  string    `yaml:"question,omitempty" json:"question,omitempty"`
	CreatedAt time.Time `yaml:"createdAt" json:"createdAt"`
}

// Invitation is the content snapshot. Every field is optional.
type Invitation struct {
	Theme     string    `yaml:"theme,omitempty" json:"theme,omitempty"`
	Groom     Person    `yaml:"groom" json:"groom"`
	Bride     Person    `yaml:"bride" json:"bride"`
	Wedding   Wedding   `yaml:"wedding" json:"wedding"`
	Greeting  string    `yaml:"greeting,omitempty" json:"greeting,omitempty"`
	Gallery   []string  `yaml:"gallery" json:"gallery"`
	Guestbook []Message `yaml:"guestbook" json:"guestbook"`
	Sections  []Section `yaml:"sections" json:"sections"`
}

// SectionIDs returns the section ids in document order.
func (inv *Invitation) SectionIDs() []string {
	ids := make([]string, len(inv.Sections))
	for i, s := range inv.Sections {
		ids[i] = s.ID
	}
	return ids
}

// Load parses an invitation from YAML or JSON. Messages without an id get a
// deterministic one derived from their content and position.
func Load(data []byte) (*Invitation, error) {
	var inv Invitation
	if trimmed := bytes.TrimSpace(data); len(trimmed) > 0 && trimmed[0] == '{' {
		if err := json.Unmarshal(trimmed, &inv); err != nil {
			return nil, fmt.Errorf("parse invitation: %w", err)
		}
	} else if err := yaml.Unmarshal(data, &inv); err != nil {
		return nil, fmt.Errorf("parse invitation: %w", err)
	}
	for i := range inv.Guestbook {
		if inv.Guestbook[i].ID == "" {
			inv.Guestbook[i].ID = messageID(i, inv.Guestbook[i])
		}
	}
	return &inv, nil
}

//go:embed sample.yaml
var sampleInvitation []byte

// Sample returns a fully populated demo invitation.
func Sample() (*Invitation, error) {
	return Load(sampleInvitation)
}

// NewMessage creates a guestbook entry with a fresh random id.
func NewMessage(author, text string, createdAt time.Time) Message {
	return Message{ID: uuid.NewString(), Author: author, Text: text, CreatedAt: createdAt}
}

func messageID(i int, m Message) string {
	key := "msg:" + strconv.Itoa(i) + ":" + m.Author + ":" + m.Text + ":" + m.CreatedAt.UTC().Format(time.RFC3339)
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(key)).String()
}
