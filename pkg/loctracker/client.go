package loctracker

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/fleetsync/fleetsync/pkg/util"
)

const defaultBaseURL = "https://locator.lt/LoctrackerFieldService/REST/v1"
const requestTimeout = 30 * time.Second

// Client talks to the LocTracker field service REST API. Authentication
// is the username in the path and the password as a query parameter
type Client struct {
	Username string
	Password string
	BaseURL  string

	httpClient *http.Client
}

func NewClient() *Client {
	baseURL := defaultBaseURL

	env := util.GetEnvironmentVariables()

	if env["FLEETSYNC_LOCTRACKER_API_URL"] != "" {
		baseURL = env["FLEETSYNC_LOCTRACKER_API_URL"]
	}

	return &Client{
		Username: env["FLEETSYNC_LOCTRACKER_USERNAME"],
		Password: env["FLEETSYNC_LOCTRACKER_PASSWORD"],
		BaseURL:  baseURL,

		httpClient: &http.Client{Timeout: requestTimeout},
	}
}

func (c *Client) get(path string, query url.Values) ([]byte, error) {
	if query == nil {
		query = url.Values{}
	}
	query.Set("password", c.Password)

	requestURL := fmt.Sprintf("%s/%s/%s?%s", c.BaseURL, c.Username, path, query.Encode())
	req, err := http.NewRequest("GET", requestURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("loctracker %s returned %s", path, resp.Status)
	}

	return io.ReadAll(resp.Body)
}

// unwrapList handles the two response shapes the API produces - either an
// object wrapping a named array or the bare array itself
func unwrapList(jsonBytes []byte, key string) []byte {
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(jsonBytes, &envelope); err != nil {
		// Not an object so must already be the bare array
		return jsonBytes
	}

	if inner, exists := envelope[key]; exists {
		return inner
	}

	return jsonBytes
}

func (c *Client) GetDevices() ([]Device, error) {
	jsonBytes, err := c.get("devices", nil)
	if err != nil {
		return nil, err
	}

	var devices []Device
	if err := json.Unmarshal(unwrapList(jsonBytes, "devices"), &devices); err != nil {
		return nil, err
	}

	return devices, nil
}

func (c *Client) GetPositions() ([]Position, error) {
	jsonBytes, err := c.get("positions", nil)
	if err != nil {
		return nil, err
	}

	var positions []Position
	if err := json.Unmarshal(unwrapList(jsonBytes, "positions"), &positions); err != nil {
		return nil, err
	}

	return positions, nil
}

func (c *Client) GetTachographState() ([]TachographState, error) {
	jsonBytes, err := c.get("tachographs/state", nil)
	if err != nil {
		return nil, err
	}

	var tachographs []TachographState
	if err := json.Unmarshal(unwrapList(jsonBytes, "tachographsState"), &tachographs); err != nil {
		return nil, err
	}

	return tachographs, nil
}

func (c *Client) GetFleetState() (*FleetState, error) {
	jsonBytes, err := c.get("fleet/state", nil)
	if err != nil {
		return nil, err
	}

	var fleetState FleetState
	if err := json.Unmarshal(jsonBytes, &fleetState); err != nil {
		return nil, err
	}

	return &fleetState, nil
}

func (c *Client) GetDeviceTasks(deviceNumber string) ([]Task, error) {
	jsonBytes, err := c.get(fmt.Sprintf("tasks/%s/trip", deviceNumber), nil)
	if err != nil {
		return nil, err
	}

	var tasks []Task
	if err := json.Unmarshal(unwrapList(jsonBytes, "tasks"), &tasks); err != nil {
		return nil, err
	}

	return tasks, nil
}

func (c *Client) GetActiveTask(deviceNumber string) (*Task, error) {
	jsonBytes, err := c.get(fmt.Sprintf("tasks/%s/active", deviceNumber), nil)
	if err != nil {
		return nil, err
	}

	var task Task
	if err := json.Unmarshal(unwrapList(jsonBytes, "task"), &task); err != nil {
		return nil, err
	}

	return &task, nil
}

// GetVehicleReport fetches the per-device historical report. Zero times
// select the default window of the last 24 hours
func (c *Client) GetVehicleReport(deviceNumber string, dateFrom time.Time, dateTo time.Time) (*VehicleReport, error) {
	if dateFrom.IsZero() {
		dateFrom = time.Now().AddDate(0, 0, -1)
	}
	if dateTo.IsZero() {
		dateTo = time.Now()
	}

	query := url.Values{}
	query.Set("deviceNumber", deviceNumber)
	query.Set("dateFrom", dateFrom.Format("2006-01-02"))
	query.Set("dateTo", dateTo.Format("2006-01-02"))

	jsonBytes, err := c.get("reports/vehicle", query)
	if err != nil {
		return nil, err
	}

	var report VehicleReport
	if err := json.Unmarshal(jsonBytes, &report); err != nil {
		return nil, err
	}

	return &report, nil
}

func (c *Client) GetActivities(deviceNumber string) ([]Activity, error) {
	jsonBytes, err := c.get(fmt.Sprintf("activities/%s", deviceNumber), nil)
	if err != nil {
		return nil, err
	}

	var activities []Activity
	if err := json.Unmarshal(unwrapList(jsonBytes, "activities"), &activities); err != nil {
		return nil, err
	}

	return activities, nil
}

func (c *Client) GetFuelData(deviceNumber string) (*FuelData, error) {
	jsonBytes, err := c.get(fmt.Sprintf("fuel/%s", deviceNumber), nil)
	if err != nil {
		return nil, err
	}

	var fuelData FuelData
	if err := json.Unmarshal(jsonBytes, &fuelData); err != nil {
		return nil, err
	}

	return &fuelData, nil
}
