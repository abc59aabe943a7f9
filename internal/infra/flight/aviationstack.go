package flight

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"time"

	"ladx/config"
	"ladx/internal/domain/service"

	"github.com/pkg/errors"
)

const defaultTimeout = 10 * time.Second

// aviationstackVerifier looks flight numbers up against the aviationstack
// flights API.
type aviationstackVerifier struct {
	client  *http.Client
	baseURL string
	apiKey  string
}

// NewAviationstackVerifier creates a live flight verifier.
func NewAviationstackVerifier(cfg *config.Config) (service.FlightVerifier, error) {
	if cfg.Flight == nil || cfg.Flight.APIKey == "" {
		return nil, errors.New("aviationstack api key must be provided")
	}

	timeout := defaultTimeout
	if cfg.Flight.Timeout > 0 {
		timeout = cfg.Flight.Timeout
	}

	return &aviationstackVerifier{
		client:  &http.Client{Timeout: timeout},
		baseURL: cfg.Flight.BaseURL,
		apiKey:  cfg.Flight.APIKey,
	}, nil
}

type flightsResponse struct {
	Data []struct {
		Airline struct {
			Name string `json:"name"`
		} `json:"airline"`
		Flight struct {
			IATA string `json:"iata"`
		} `json:"flight"`
		Departure struct {
			Scheduled time.Time `json:"scheduled"`
		} `json:"departure"`
		Arrival struct {
			Scheduled time.Time `json:"scheduled"`
		} `json:"arrival"`
	} `json:"data"`
}

// Verify looks the flight number up. An unknown flight returns (nil, nil);
// transport and decoding failures return an error.
func (v *aviationstackVerifier) Verify(ctx context.Context, flightNumber string) (*service.FlightInfo, error) {
	endpoint, err := url.Parse(v.baseURL + "/flights")
	if err != nil {
		return nil, errors.Wrap(err, "parse aviationstack url")
	}

	query := endpoint.Query()
	query.Set("access_key", v.apiKey)
	query.Set("flight_iata", flightNumber)
	endpoint.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, errors.Wrap(err, "build aviationstack request")
	}

	resp, err := v.client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "call aviationstack")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("aviationstack returned status %d", resp.StatusCode)
	}

	var body flightsResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, errors.Wrap(err, "decode aviationstack response")
	}

	if len(body.Data) == 0 {
		return nil, nil
	}

	first := body.Data[0]

	return &service.FlightInfo{
		FlightNumber:  first.Flight.IATA,
		AirlineName:   first.Airline.Name,
		DepartureTime: first.Departure.Scheduled,
		ArrivalTime:   first.Arrival.Scheduled,
	}, nil
}
