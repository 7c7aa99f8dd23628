package client

import (
	"time"

	"github.com/go-resty/resty/v2"
	json "github.com/json-iterator/go"
	"github.com/o6b7/travelbond/internal/cli/config"
	"github.com/o6b7/travelbond/internal/cli/logger"
)

const userAgent = "TravelBond-CLI/0.1.0"

var httpClient *resty.Client

// Init builds the HTTP client from config, attaching the saved token if there is one
func Init() {
	httpClient = newClient()
	if token := config.GetString("auth.token"); token != "" {
		httpClient.SetAuthToken(token)
	}
}

func newClient() *resty.Client {
	c := resty.New()
	c.SetBaseURL(config.GetString("api.base_url"))
	c.SetTimeout(time.Duration(config.GetInt("api.timeout")) * time.Second)
	c.SetHeader("User-Agent", userAgent)
	c.JSONMarshal = json.Marshal
	c.JSONUnmarshal = json.Unmarshal

	c.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
		logger.Debug("HTTP Request", "method", req.Method, "url", req.URL)
		return nil
	})
	c.OnAfterResponse(func(_ *resty.Client, resp *resty.Response) error {
		logger.Debug("HTTP Response", "status", resp.StatusCode(), "elapsed", resp.Time())
		return nil
	})
	return c
}

// GetClient returns the HTTP client
func GetClient() *resty.Client {
	if httpClient == nil {
		Init()
	}
	return httpClient
}

// SetAuthToken sends token as a Bearer credential on every request
func SetAuthToken(token string) {
	GetClient().SetAuthToken(token)
}

// ClearAuthToken drops the Bearer credential
func ClearAuthToken() {
	httpClient = newClient()
}
