// Package maps talks to a Google-Maps-compatible HTTP API for geocoding and
// road travel estimates, and builds shareable navigation links.
package maps

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/ports"
)

const (
	statusOK          = "OK"
	statusZeroResults = "ZERO_RESULTS"
)

// Client implements ports.Geocoder and ports.RoutePlanner over the provider's
// JSON endpoints.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a maps client. baseURL points at the provider root, e.g.
// "https://maps.googleapis.com".
func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

type geocodeResponse struct {
	Status  string `json:"status"`
	Results []struct {
		Geometry struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
}

// Geocode resolves an address to coordinates. A provider answer with no
// match maps to ports.ErrAddressNotFound.
func (c *Client) Geocode(ctx context.Context, address string) (kernel.GeoPoint, error) {
	query := url.Values{}
	query.Set("address", address)
	query.Set("key", c.apiKey)

	var parsed geocodeResponse
	if err := c.getJSON(ctx, "/maps/api/geocode/json", query, &parsed); err != nil {
		return kernel.GeoPoint{}, err
	}

	if parsed.Status == statusZeroResults || len(parsed.Results) == 0 {
		return kernel.GeoPoint{}, ports.ErrAddressNotFound
	}
	if parsed.Status != statusOK {
		return kernel.GeoPoint{}, fmt.Errorf("geocode api status %s", parsed.Status)
	}

	location := parsed.Results[0].Geometry.Location
	return kernel.NewGeoPoint(location.Lat, location.Lng)
}

type distanceMatrixResponse struct {
	Status string `json:"status"`
	Rows   []struct {
		Elements []struct {
			Status   string `json:"status"`
			Distance struct {
				Text  string `json:"text"`
				Value int    `json:"value"`
			} `json:"distance"`
			Duration struct {
				Text  string `json:"text"`
				Value int    `json:"value"`
			} `json:"duration"`
		} `json:"elements"`
	} `json:"rows"`
}

// EstimateRoute asks the distance-matrix endpoint for road distance and
// travel time between the two points.
func (c *Client) EstimateRoute(ctx context.Context, origin, destination kernel.GeoPoint) (ports.RouteEstimate, error) {
	query := url.Values{}
	query.Set("origins", formatPoint(origin))
	query.Set("destinations", formatPoint(destination))
	query.Set("key", c.apiKey)

	var parsed distanceMatrixResponse
	if err := c.getJSON(ctx, "/maps/api/distancematrix/json", query, &parsed); err != nil {
		return ports.RouteEstimate{}, err
	}

	if parsed.Status != statusOK || len(parsed.Rows) == 0 || len(parsed.Rows[0].Elements) == 0 {
		return ports.RouteEstimate{}, ports.ErrRouteUnavailable
	}

	element := parsed.Rows[0].Elements[0]
	if element.Status != statusOK {
		return ports.RouteEstimate{}, ports.ErrRouteUnavailable
	}

	return ports.RouteEstimate{
		DistanceKm:      float64(element.Distance.Value) / 1000.0,
		DurationMinutes: float64(element.Duration.Value) / 60.0,
		DistanceText:    element.Distance.Text,
		DurationText:    element.Duration.Text,
	}, nil
}

// DirectionsLink builds a turn-by-turn navigation URL from origin to
// destination.
func (c *Client) DirectionsLink(origin, destination kernel.GeoPoint) string {
	return fmt.Sprintf("https://www.google.com/maps/dir/?api=1&origin=%s&destination=%s",
		formatPoint(origin), formatPoint(destination))
}

func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	endpoint := fmt.Sprintf("%s%s?%s", c.baseURL, path, query.Encode())
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}

	response, err := c.httpClient.Do(request)
	if err != nil {
		return err
	}
	defer response.Body.Close()

	if response.StatusCode < 200 || response.StatusCode >= 300 {
		return fmt.Errorf("maps api returned %d", response.StatusCode)
	}

	return json.NewDecoder(response.Body).Decode(out)
}

func formatPoint(p kernel.GeoPoint) string {
	return strconv.FormatFloat(p.Lat(), 'f', -1, 64) + "," +
		strconv.FormatFloat(p.Lng(), 'f', -1, 64)
}
