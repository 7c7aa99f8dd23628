// Package repository is the data access layer: one interface per collection,
// each backed by gorm.
package repository

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

var (
	ErrNotFound         = errors.New("record not found")
	ErrInvalidInput     = errors.New("invalid input")
	ErrAlreadyMember    = errors.New("already a member")
	ErrNotMember        = errors.New("not a member")
	ErrEventFull        = errors.New("event is full")
	ErrOwnerCannotLeave = errors.New("owner cannot leave the group")
	ErrPrivateGroup     = errors.New("group is private")
	ErrAlreadyLiked     = errors.New("post already liked")
	ErrNotLiked         = errors.New("post not liked")
	ErrDuplicateReport  = errors.New("an open report already exists for this target")
)

// MaxListSize bounds every list query. Lists are windowed after fetching,
// so this is the longest sequence a client can ever page through.
const MaxListSize = 500

// Repositories groups every repository over one connection
type Repositories struct {
	Users   UserRepository
	Events  EventRepository
	Groups  GroupRepository
	Posts   PostRepository
	Reports ReportRepository
}

// New builds all repositories over db
func New(db *gorm.DB) *Repositories {
	return &Repositories{
		Users:   NewUserRepository(db),
		Events:  NewEventRepository(db),
		Groups:  NewGroupRepository(db),
		Posts:   NewPostRepository(db),
		Reports: NewReportRepository(db),
	}
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

func listLimit(limit int) int {
	if limit <= 0 || limit > MaxListSize {
		return MaxListSize
	}
	return limit
}

func likePattern(q string) string {
	return "%" + strings.ToLower(strings.TrimSpace(q)) + "%"
}

// whereTag restricts a query to rows whose array column contains tag.
// SQLite keeps the array literal written by pq in a text column, where every
// element is double-quoted ({"surf","food"}), so it is matched textually.
func whereTag(db *gorm.DB, column, tag string) *gorm.DB {
	if db.Dialector.Name() == "postgres" {
		return db.Where("? = ANY("+column+")", tag)
	}
	return db.Where("(',' || TRIM("+column+", '{}') || ',') LIKE ? ESCAPE '!'", "%,"+escapeLike(quoteArrayElement(tag))+",%")
}

// quoteArrayElement renders s the way pq writes one element of a text[] literal
func quoteArrayElement(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	return `"` + s + `"`
}

var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
