package gateway

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/unihub/admin-console/internal/models"
)

// CreateUserPayload is the create_user request body, field names per the
// upstream contract.
type CreateUserPayload struct {
	FirstName   string `json:"f_name"`
	LastName    string `json:"l_name"`
	Email       string `json:"email"`
	NationalID  string `json:"NIC"`
	Address     string `json:"address"`
	Contact     string `json:"contact"`
	DateOfBirth string `json:"DOB"`
	Role        string `json:"role"`
}

// FetchUsers lists every account regardless of role.
func (c *Client) FetchUsers(ctx context.Context) ([]models.UserRecord, error) {
	raw, err := c.do(ctx, "fetch_users", http.MethodGet, "/get_users", nil)
	if err != nil {
		return nil, err
	}
	return parseRoster(raw)
}

// FetchRoster lists accounts of a single role.
func (c *Client) FetchRoster(ctx context.Context, role models.Role) ([]models.UserRecord, error) {
	path := "/view_students"
	op := "fetch_students"
	if role == models.RoleLecturer {
		path = "/view_lecturers"
		op = "fetch_lecturers"
	}
	raw, err := c.do(ctx, op, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	return parseRoster(raw)
}

// CreateUser registers a new account and returns whatever record the server
// echoes back, if any.
func (c *Client) CreateUser(ctx context.Context, payload CreateUserPayload) (*models.UserRecord, error) {
	raw, err := c.do(ctx, "create_user", http.MethodPost, "/create_user", payload)
	if err != nil {
		return nil, err
	}
	var created models.UserRecord
	if err := json.Unmarshal(raw, &created); err != nil || created.UserID == "" {
		// some deployments reply with a bare ack
		return nil, nil
	}
	return &created, nil
}

// SetActiveState activates or deactivates an account.
func (c *Client) SetActiveState(ctx context.Context, userID string, active bool) error {
	path := "/deactivate_user"
	op := "deactivate_user"
	if active {
		path = "/reactivate_user"
		op = "reactivate_user"
	}
	body := map[string]string{"user_Id": userID}
	_, err := c.do(ctx, op, http.MethodPut, path, body)
	return err
}

// parseRoster decodes a roster body. A valid JSON payload that is not an
// array (null, an object) is tolerated as an empty roster; invalid JSON is a
// decode error.
func parseRoster(raw []byte) ([]models.UserRecord, error) {
	var records []models.UserRecord
	if err := json.Unmarshal(raw, &records); err == nil {
		return records, nil
	}
	var anyPayload interface{}
	if err := json.Unmarshal(raw, &anyPayload); err != nil {
		return nil, decode(raw, &records)
	}
	return nil, nil
}
