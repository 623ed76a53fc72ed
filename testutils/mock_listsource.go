/*
 * Dummy sanctioned-address list source.
 * Serves the list document JSON that the tests and the mock source binary need.
 */
package testutils

import (
	"encoding/json"
	"log"
	"net/http"
	"time"
)

var MockListAddresses = []MockListAddress{
	{Chain: "ETH", Address: "0x7f367cc41522ce07553e823bf3be79a889debe1b"},
	{Chain: "BTC", Address: "bc1qxy2kgdygjrsqtzq2n0yrf2493p83kkfjhx0wlh"},
}

type MockListAddress struct {
	Chain   string `json:"chain"`
	Address string `json:"address"`
}

var MockListSourceLastRequest *http.Request

func MockListSourceReset() {
	MockListSourceLastRequest = nil
}

func ListSourceHandler(w http.ResponseWriter, req *http.Request) {
	defer req.Body.Close()
	MockListSourceLastRequest = req

	log.Printf("%s %s %s\n", req.RemoteAddr, req.Method, req.URL)

	doc := map[string]interface{}{
		"metadata": map[string]interface{}{
			"source":           "MOCK_SOURCE",
			"retrieved_at_utc": time.Now().UTC().Format(time.RFC3339),
		},
		"addresses": MockListAddresses,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(doc); err != nil {
		log.Printf("error writing list document: %v", err)
	}
}
