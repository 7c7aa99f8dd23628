package api

import "net/http"

// GetDashboard fetches the caller's dashboard with every section in full
func GetDashboard() (*Dashboard, error) {
	var dash Dashboard
	if err := send(http.MethodGet, "/api/v1/dashboard?all=true", nil, &dash); err != nil {
		return nil, err
	}
	return &dash, nil
}
