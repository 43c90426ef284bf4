// SPDX-License-Identifier: Apache-2.0

// Package data contains thin clients for vendor market-data APIs. They
// are glue over the cached HTTP session and the credentials file; all
// interesting logic lives in the config engine they read settings from.
package data

import (
	"context"
	"fmt"

	"github.com/go-resty/resty/v2"

	"github.com/LukeTonin/finance/internal/config"
	"github.com/LukeTonin/finance/internal/logger"
	"github.com/LukeTonin/finance/internal/requestcache"
)

const (
	eodVendorName = "eodhistoricaldata"
	eodBaseURL    = "https://eodhistoricaldata.com"
)

// micCodeToExchangeName maps MIC codes to the exchange names used by
// eodhistoricaldata.com. The vendor only allows downloading all US
// tickers at once, so tickers are filtered afterwards by the exchange
// name tied to each MIC.
var micCodeToExchangeName = map[string]string{
	"XNYS": "NYSE",
	"XNAS": "NASDAQ",
}

// Exchange is one entry of the vendor's exchanges list.
type Exchange struct {
	Name         string `json:"Name"`
	Code         string `json:"Code"`
	OperatingMIC string `json:"OperatingMIC"`
	Country      string `json:"Country"`
	Currency     string `json:"Currency"`
}

// Ticker is one entry of the vendor's symbol list for an exchange.
type Ticker struct {
	Code     string `json:"Code"`
	Name     string `json:"Name"`
	Country  string `json:"Country"`
	Exchange string `json:"Exchange"`
	Currency string `json:"Currency"`
	Type     string `json:"Type"`
}

// EODClient downloads exchange and ticker data from
// eodhistoricaldata.com through a cached HTTP session.
type EODClient struct {
	http     *resty.Client
	baseURL  string
	apiToken string
}

// NewEODClient builds a client using the cache named after the vendor
// and the vendor's api_token from the credentials file.
func NewEODClient(log *logger.Logger) (*EODClient, error) {
	session, err := requestcache.NewSession(eodVendorName, log)
	if err != nil {
		return nil, fmt.Errorf("error creating a cached session: %w", err)
	}

	credentials, err := config.GetCredentials()
	if err != nil {
		return nil, err
	}
	vendor, ok := credentials[eodVendorName]
	if !ok {
		return nil, fmt.Errorf("no credentials found for vendor %q", eodVendorName)
	}

	return newEODClient(session, eodBaseURL, vendor["api_token"]), nil
}

func newEODClient(http *resty.Client, baseURL, apiToken string) *EODClient {
	return &EODClient{http: http, baseURL: baseURL, apiToken: apiToken}
}

// Exchanges downloads the vendor's list of exchanges.
func (c *EODClient) Exchanges(ctx context.Context) ([]Exchange, error) {
	var exchanges []Exchange
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("api_token", c.apiToken).
		SetQueryParam("fmt", "json").
		SetResult(&exchanges).
		Get(c.baseURL + "/api/exchanges-list/")
	if err != nil {
		return nil, fmt.Errorf("exchanges request: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("exchanges request failed with status %s", resp.Status())
	}

	return exchanges, nil
}

// Tickers downloads the symbol list of one exchange, identified by the
// vendor's exchange code.
func (c *EODClient) Tickers(ctx context.Context, exchangeCode string) ([]Ticker, error) {
	var tickers []Ticker
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("api_token", c.apiToken).
		SetQueryParam("fmt", "json").
		SetResult(&tickers).
		Get(c.baseURL + "/api/exchange-symbol-list/" + exchangeCode)
	if err != nil {
		return nil, fmt.Errorf("tickers request: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("tickers request failed with status %s", resp.Status())
	}

	return tickers, nil
}

// ExchangeNameForMIC returns the vendor's exchange name for a MIC code.
func ExchangeNameForMIC(mic string) (string, bool) {
	name, ok := micCodeToExchangeName[mic]
	return name, ok
}
