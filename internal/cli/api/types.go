package api

import "time"

// Disclosure mirrors the disclosure object of every list response
type Disclosure struct {
	Visible       int  `json:"visible"`
	Initial       int  `json:"initial"`
	Increment     int  `json:"increment"`
	Shown         int  `json:"shown"`
	Remaining     int  `json:"remaining"`
	Total         int  `json:"total"`
	CanRevealMore bool `json:"can_reveal_more"`
	CanReset      bool `json:"can_reset"`
}

type User struct {
	ID          string    `json:"id"`
	Email       string    `json:"email,omitempty"`
	Username    string    `json:"username"`
	DisplayName string    `json:"display_name"`
	Bio         string    `json:"bio"`
	Location    string    `json:"location"`
	Interests   []string  `json:"interests"`
	IsAdmin     bool      `json:"is_admin"`
	EventCount  int       `json:"event_count"`
	GroupCount  int       `json:"group_count"`
	PostCount   int       `json:"post_count"`
	CreatedAt   time.Time `json:"created_at"`
}

type Event struct {
	ID            string     `json:"id"`
	OrganizerID   string     `json:"organizer_id"`
	Organizer     *User      `json:"organizer,omitempty"`
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	Location      string     `json:"location"`
	Category      string     `json:"category"`
	Tags          []string   `json:"tags"`
	StartsAt      time.Time  `json:"starts_at"`
	EndsAt        *time.Time `json:"ends_at,omitempty"`
	Capacity      int        `json:"capacity"`
	AttendeeCount int        `json:"attendee_count"`
	CreatedAt     time.Time  `json:"created_at"`
}

type Group struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"owner_id"`
	Owner       *User     `json:"owner,omitempty"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Tags        []string  `json:"tags"`
	IsPrivate   bool      `json:"is_private"`
	MemberCount int       `json:"member_count"`
	CreatedAt   time.Time `json:"created_at"`
}

type Post struct {
	ID           string    `json:"id"`
	AuthorID     string    `json:"author_id"`
	Author       *User     `json:"author,omitempty"`
	GroupID      *string   `json:"group_id,omitempty"`
	EventID      *string   `json:"event_id,omitempty"`
	Content      string    `json:"content"`
	LikeCount    int       `json:"like_count"`
	CommentCount int       `json:"comment_count"`
	CreatedAt    time.Time `json:"created_at"`
}

type Report struct {
	ID         string     `json:"id"`
	ReporterID string     `json:"reporter_id"`
	TargetType string     `json:"target_type"`
	TargetID   string     `json:"target_id"`
	Reason     string     `json:"reason"`
	Details    string     `json:"details,omitempty"`
	Status     string     `json:"status"`
	ReviewedBy *string    `json:"reviewed_by,omitempty"`
	ReviewedAt *time.Time `json:"reviewed_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

// AuthResponse is returned by login and register
type AuthResponse struct {
	Token     string    `json:"token"`
	User      *User     `json:"user"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Section is one disclosed list of the dashboard
type Section[T any] struct {
	Items      []T        `json:"items"`
	Disclosure Disclosure `json:"disclosure"`
	Total      int        `json:"total"`
}

type Dashboard struct {
	Posts          Section[Post]  `json:"posts"`
	UpcomingEvents Section[Event] `json:"upcoming_events"`
	Groups         Section[Group] `json:"groups"`
	GeneratedAt    time.Time      `json:"generated_at"`
}
