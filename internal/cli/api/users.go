package api

import "github.com/o6b7/travelbond/internal/cli/logger"

// ListUsers fetches every traveller matching the query and interest
func ListUsers(query, interest, sort string) ([]User, error) {
	logger.Debug("Fetching users", "query", query, "interest", interest)

	return fetchAll[User]("/api/v1/users", "users", map[string]string{
		"q":        query,
		"interest": interest,
		"sort":     sort,
	})
}
