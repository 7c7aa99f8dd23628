// Package models holds the gorm models shared by the repositories and handlers.
package models

// All returns every model for auto-migration, in dependency order
func All() []interface{} {
	return []interface{}{
		&User{},
		&Event{},
		&EventAttendee{},
		&Group{},
		&GroupMember{},
		&Post{},
		&PostLike{},
		&Comment{},
		&Report{},
	}
}
