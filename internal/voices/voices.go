// Package voices fetches and filters the catalogue of voices offered by a
// speech endpoint.
package voices

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const listPath = "/cognitiveservices/voices/list"

// Voice is one entry of the service's voice list.
type Voice struct {
	Name            string   `json:"Name"`
	DisplayName     string   `json:"DisplayName"`
	LocalName       string   `json:"LocalName"`
	ShortName       string   `json:"ShortName"`
	Gender          string   `json:"Gender"`
	Locale          string   `json:"Locale"`
	LocaleName      string   `json:"LocaleName"`
	StyleList       []string `json:"StyleList,omitempty"`
	RolePlayList    []string `json:"RolePlayList,omitempty"`
	SampleRateHertz string   `json:"SampleRateHertz"`
	VoiceType       string   `json:"VoiceType"`
	Status          string   `json:"Status"`
	WordsPerMinute  string   `json:"WordsPerMinute,omitempty"`
}

func (v Voice) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", v.Name)
	fmt.Fprintf(&b, "Display Name: %s\n", v.DisplayName)
	fmt.Fprintf(&b, "Local Name: %s @ %s\n", v.LocalName, v.Locale)
	fmt.Fprintf(&b, "Locale: %s\n", v.LocaleName)
	fmt.Fprintf(&b, "Gender: %s\n", v.Gender)
	fmt.Fprintf(&b, "ID: %s\n", v.ShortName)
	fmt.Fprintf(&b, "Voice Type: %s\n", v.VoiceType)
	fmt.Fprintf(&b, "Status: %s\n", v.Status)
	if len(v.StyleList) > 0 {
		fmt.Fprintf(&b, "Styles: %s\n", strings.Join(v.StyleList, ", "))
	}
	if len(v.RolePlayList) > 0 {
		fmt.Fprintf(&b, "Roles: %s\n", strings.Join(v.RolePlayList, ", "))
	}
	return b.String()
}

// Client lists voices from one endpoint.
type Client struct {
	Endpoint string
	Key      string
	Origin   string
	HTTP     *http.Client
}

// URL is the list endpoint. Endpoint may be a bare host or a full
// http(s) base URL.
func (c *Client) URL() string {
	base := strings.TrimSuffix(c.Endpoint, "/")
	if !strings.Contains(base, "://") {
		base = "https://" + base
	}
	return base + listPath
}

// List fetches every voice.
func (c *Client) List(ctx context.Context) ([]Voice, error) {
	if strings.TrimSpace(c.Endpoint) == "" {
		return nil, fmt.Errorf("no endpoint configured: pass --endpoint or set SPEAK_ENDPOINT")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URL(), nil)
	if err != nil {
		return nil, fmt.Errorf("build voice list request: %w", err)
	}
	if c.Origin != "" {
		req.Header.Set("Origin", c.Origin)
	}
	if c.Key != "" {
		req.Header.Set("Ocp-Apim-Subscription-Key", c.Key)
	}

	client := c.HTTP
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch voice list: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("fetch voice list: HTTP %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var voices []Voice
	if err := json.NewDecoder(resp.Body).Decode(&voices); err != nil {
		return nil, fmt.Errorf("decode voice list: %w", err)
	}
	return voices, nil
}

// Filter keeps voices matching locale, or voice by short name when locale
// is empty. With neither set every voice is kept.
func Filter(all []Voice, locale, voice string) []Voice {
	if locale == "" && voice == "" {
		return all
	}
	var out []Voice
	for _, v := range all {
		switch {
		case locale != "":
			if strings.EqualFold(v.Locale, locale) {
				out = append(out, v)
			}
		case strings.EqualFold(v.ShortName, voice):
			out = append(out, v)
		}
	}
	return out
}
