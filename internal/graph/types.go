package graph

import "time"

// User is a directory user.
type User struct {
	ID                string `json:"id"`
	DisplayName       string `json:"displayName,omitempty"`
	UserPrincipalName string `json:"userPrincipalName,omitempty"`
	Mail              string `json:"mail,omitempty"`
	JobTitle          string `json:"jobTitle,omitempty"`
	Department        string `json:"department,omitempty"`
	OfficeLocation    string `json:"officeLocation,omitempty"`
}

// Team is a Microsoft Teams team.
type Team struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName,omitempty"`
	Description string `json:"description,omitempty"`
	IsArchived  bool   `json:"isArchived,omitempty"`
}

// Channel is a team channel.
type Channel struct {
	ID             string `json:"id"`
	DisplayName    string `json:"displayName,omitempty"`
	Description    string `json:"description,omitempty"`
	MembershipType string `json:"membershipType,omitempty"`
	WebURL         string `json:"webUrl,omitempty"`
}

// Member is a team or chat member.
type Member struct {
	ID          string   `json:"id"`
	DisplayName string   `json:"displayName,omitempty"`
	Email       string   `json:"email,omitempty"`
	UserID      string   `json:"userId,omitempty"`
	Roles       []string `json:"roles,omitempty"`
}

// Chat is a one-on-one, group or meeting chat.
type Chat struct {
	ID                  string     `json:"id"`
	Topic               string     `json:"topic,omitempty"`
	ChatType            string     `json:"chatType,omitempty"`
	CreatedDateTime     *time.Time `json:"createdDateTime,omitempty"`
	LastUpdatedDateTime *time.Time `json:"lastUpdatedDateTime,omitempty"`
	WebURL              string     `json:"webUrl,omitempty"`
	Members             []Member   `json:"members,omitempty"`
}

// Content types of ItemBody.
const (
	ContentText = "text"
	ContentHTML = "html"
)

// ItemBody is a message body.
type ItemBody struct {
	ContentType string `json:"contentType"`
	Content     string `json:"content"`
}

// Identity is a user or application identity.
type Identity struct {
	ID          string `json:"id,omitempty"`
	DisplayName string `json:"displayName,omitempty"`
}

// IdentitySet identifies the sender of a message.
type IdentitySet struct {
	User        *Identity `json:"user,omitempty"`
	Application *Identity `json:"application,omitempty"`
}

// Name returns the display name of whoever is set.
func (s *IdentitySet) Name() string {
	switch {
	case s == nil:
		return ""
	case s.User != nil:
		return s.User.DisplayName
	case s.Application != nil:
		return s.Application.DisplayName
	}
	return ""
}

// ChatMessage is a message in a channel or chat.
type ChatMessage struct {
	ID                   string       `json:"id"`
	ReplyToID            string       `json:"replyToId,omitempty"`
	MessageType          string       `json:"messageType,omitempty"`
	CreatedDateTime      *time.Time   `json:"createdDateTime,omitempty"`
	LastModifiedDateTime *time.Time   `json:"lastModifiedDateTime,omitempty"`
	Subject              string       `json:"subject,omitempty"`
	Importance           string       `json:"importance,omitempty"`
	From                 *IdentitySet `json:"from,omitempty"`
	Body                 ItemBody     `json:"body"`
	ChatID               string       `json:"chatId,omitempty"`
	WebURL               string       `json:"webUrl,omitempty"`
}

// SearchHit is a single search result.
type SearchHit struct {
	HitID    string      `json:"hitId"`
	Rank     int         `json:"rank"`
	Summary  string      `json:"summary,omitempty"`
	Resource ChatMessage `json:"resource"`
}

// Importance values of a channel message.
const (
	ImportanceNormal = "normal"
	ImportanceHigh   = "high"
	ImportanceUrgent = "urgent"
)
