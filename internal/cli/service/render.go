package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/o6b7/travelbond/internal/cli/api"
)

const timeLayout = "Mon 02 Jan 2006 15:04"

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Local().Format(timeLayout)
}

// joinNonEmpty joins the non-empty parts with a middle dot
func joinNonEmpty(parts ...string) string {
	kept := parts[:0]
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, " · ")
}

func truncate(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	if len([]rune(s)) <= n {
		return s
	}
	return string([]rune(s)[:n-1]) + "…"
}

func displayName(u *api.User) string {
	if u == nil {
		return ""
	}
	if u.DisplayName != "" {
		return fmt.Sprintf("%s (@%s)", u.DisplayName, u.Username)
	}
	return "@" + u.Username
}

func eventLines(e api.Event) []string {
	spots := fmt.Sprintf("%d going", e.AttendeeCount)
	if e.Capacity > 0 {
		spots = fmt.Sprintf("%d/%d going", e.AttendeeCount, e.Capacity)
	}
	return []string{
		e.Title,
		joinNonEmpty(formatTime(e.StartsAt), e.Location, e.Category, spots),
		"id " + e.ID,
	}
}

func groupLines(g api.Group) []string {
	name := g.Name
	if g.IsPrivate {
		name += " [private]"
	}
	return []string{
		name,
		joinNonEmpty(g.Category, fmt.Sprintf("%d members", g.MemberCount), strings.Join(g.Tags, ", ")),
		"id " + g.ID,
	}
}

func userLines(u api.User) []string {
	lines := []string{displayName(&u)}
	if meta := joinNonEmpty(u.Location, strings.Join(u.Interests, ", ")); meta != "" {
		lines = append(lines, meta)
	}
	return append(lines, "id "+u.ID)
}

func postLines(p api.Post) []string {
	author := displayName(p.Author)
	if author == "" {
		author = p.AuthorID
	}
	return []string{
		truncate(p.Content, 72),
		joinNonEmpty(author, formatTime(p.CreatedAt), fmt.Sprintf("%d likes", p.LikeCount), fmt.Sprintf("%d comments", p.CommentCount)),
		"id " + p.ID,
	}
}

func reportLines(r api.Report) []string {
	lines := []string{fmt.Sprintf("%s %s: %s", r.TargetType, r.TargetID, r.Reason)}
	if r.Details != "" {
		lines = append(lines, truncate(r.Details, 72))
	}
	return append(lines, joinNonEmpty(r.Status, formatTime(r.CreatedAt), "id "+r.ID))
}
