package crm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/devinschumacher/devinschumacher.com/internal/logging"
)

const defaultAPIVersion = "2021-07-28"

// Config holds the CRM connection settings.
type Config struct {
	BaseURL    string
	Token      string
	LocationID string
	APIVersion string
}

// CustomField is one id/value pair on a contact. Field ids are
// account-specific, configured out of band.
type CustomField struct {
	ID    string `json:"id"`
	Value string `json:"value"`
}

// Contact is the upsert payload. LocationID is only sent on create; the CRM
// rejects updates that carry it.
type Contact struct {
	LocationID   string        `json:"locationId,omitempty"`
	FirstName    string        `json:"firstName"`
	LastName     string        `json:"lastName"`
	Email        string        `json:"email"`
	Phone        string        `json:"phone,omitempty"`
	Tags         []string      `json:"tags"`
	Source       string        `json:"source"`
	CustomFields []CustomField `json:"customFields"`
	Address1     string        `json:"address1,omitempty"`
	City         string        `json:"city,omitempty"`
	State        string        `json:"state,omitempty"`
	PostalCode   string        `json:"postalCode,omitempty"`
	Country      string        `json:"country,omitempty"`
}

// Client talks to the CRM contacts API.
type Client struct {
	config Config
	http   *http.Client
	logger logging.Logger
}

// NewClient builds a CRM client. A nil httpClient gets a 30s-timeout default.
func NewClient(config Config, httpClient *http.Client, logger logging.Logger) *Client {
	if config.APIVersion == "" {
		config.APIVersion = defaultAPIVersion
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	if logger == nil {
		logger = logging.NoOp()
	}
	return &Client{config: config, http: httpClient, logger: logger}
}

type lookupResponse struct {
	Contact *struct {
		ID string `json:"id"`
	} `json:"contact"`
}

type contactResponse struct {
	Contact *struct {
		ID string `json:"id"`
	} `json:"contact"`
	Meta *struct {
		ContactID string `json:"contactId"`
	} `json:"meta"`
}

// LookupByEmail finds an existing contact id. A lookup the CRM rejects is
// reported as not-found, not as an error; the caller falls through to create.
func (c *Client) LookupByEmail(ctx context.Context, email string) (string, bool, error) {
	endpoint := c.config.BaseURL + "/contacts/lookup?email=" + url.QueryEscape(email)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", false, fmt.Errorf("crm: build lookup request: %w", err)
	}
	c.setHeaders(req, false)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", false, fmt.Errorf("crm: lookup contact: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Debug("contact lookup miss", "status", resp.StatusCode, "email", email)
		return "", false, nil
	}

	var payload lookupResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", false, fmt.Errorf("crm: decode lookup response: %w", err)
	}
	if payload.Contact == nil || payload.Contact.ID == "" {
		return "", false, nil
	}
	return payload.Contact.ID, true, nil
}

// Create adds a contact at the configured location. A duplicate is returned
// as *DuplicateContactError carrying the existing id.
func (c *Client) Create(ctx context.Context, contact Contact) (string, error) {
	contact.LocationID = c.config.LocationID

	body, status, err := c.send(ctx, http.MethodPost, c.config.BaseURL+"/contacts/", contact)
	if err != nil {
		return "", err
	}

	var payload contactResponse
	if decodeErr := json.Unmarshal(body, &payload); decodeErr == nil {
		if status >= 200 && status < 300 {
			if payload.Contact != nil {
				return payload.Contact.ID, nil
			}
			return "", nil
		}
		if payload.Meta != nil && payload.Meta.ContactID != "" {
			return "", &DuplicateContactError{ContactID: payload.Meta.ContactID}
		}
	}
	if status >= 200 && status < 300 {
		return "", nil
	}
	return "", &APIError{StatusCode: status, Body: string(body)}
}

// Update overwrites an existing contact. The location id is stripped from
// the payload.
func (c *Client) Update(ctx context.Context, contactID string, contact Contact) error {
	contact.LocationID = ""

	body, status, err := c.send(ctx, http.MethodPut, c.config.BaseURL+"/contacts/"+contactID, contact)
	if err != nil {
		return err
	}
	if status < 200 || status >= 300 {
		return &APIError{StatusCode: status, Body: string(body)}
	}
	return nil
}

// Upsert finds a contact by email and updates it, creating it when no match
// exists. A create rejected as a duplicate recovers into an update of the
// reported contact. Returns the contact id and whether it was created.
func (c *Client) Upsert(ctx context.Context, contact Contact) (string, bool, error) {
	contactID, found, err := c.LookupByEmail(ctx, contact.Email)
	if err != nil {
		return "", false, err
	}
	if found {
		if err := c.Update(ctx, contactID, contact); err != nil {
			return "", false, err
		}
		return contactID, false, nil
	}

	contactID, err = c.Create(ctx, contact)
	if err == nil {
		return contactID, true, nil
	}

	var dup *DuplicateContactError
	if errors.As(err, &dup) {
		c.logger.Info("duplicate contact, updating instead", "contact_id", dup.ContactID)
		if err := c.Update(ctx, dup.ContactID, contact); err != nil {
			return "", false, err
		}
		return dup.ContactID, false, nil
	}
	return "", false, err
}

func (c *Client) send(ctx context.Context, method, endpoint string, contact Contact) ([]byte, int, error) {
	payload, err := json.Marshal(contact)
	if err != nil {
		return nil, 0, fmt.Errorf("crm: encode contact: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, 0, fmt.Errorf("crm: build %s request: %w", method, err)
	}
	c.setHeaders(req, true)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("crm: %s contact: %w", method, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("crm: read response: %w", err)
	}
	return body, resp.StatusCode, nil
}

func (c *Client) setHeaders(req *http.Request, hasBody bool) {
	req.Header.Set("Authorization", "Bearer "+c.config.Token)
	req.Header.Set("Version", c.config.APIVersion)
	if hasBody {
		req.Header.Set("Content-Type", "application/json")
	}
}
