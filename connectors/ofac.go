package connectors

import (
	"encoding/xml"
	"strings"

	"github.com/pkg/errors"

	"github.com/sanctionwatch/screening-endpoint/screening"
)

// OFAC tags crypto addresses as id entries whose type starts with this
// prefix, e.g. "Digital Currency Address - XBT".
const digitalCurrencyPrefix = "Digital Currency Address"

// DigitalCurrencyAddress is one crypto address attached to an SDN entry.
// Chain is the ticker folded through the same alias table used at screening
// time; Ticker keeps the raw OFAC value for traceability.
type DigitalCurrencyAddress struct {
	UID        string
	Ticker     string
	Chain      string
	Address    string
	EntityName string
}

// Subset of the SDN XML we consume.
type sdnList struct {
	Entries []sdnEntry `xml:"sdnEntry"`
}

type sdnEntry struct {
	UID       string  `xml:"uid"`
	FirstName string  `xml:"firstName"`
	LastName  string  `xml:"lastName"`
	IDs       []sdnID `xml:"idList>id"`
}

type sdnID struct {
	IDType   string `xml:"idType"`
	IDNumber string `xml:"idNumber"`
}

// ParseSDNXML extracts the digital currency addresses from an OFAC SDN XML
// document. Entries without any digital-currency id are skipped entirely.
func ParseSDNXML(data []byte) ([]DigitalCurrencyAddress, error) {
	var list sdnList
	if err := xml.Unmarshal(data, &list); err != nil {
		return nil, errors.Wrap(err, "parse SDN XML")
	}

	var addresses []DigitalCurrencyAddress
	for _, entry := range list.Entries {
		name := entityName(entry)
		for _, id := range entry.IDs {
			if !strings.HasPrefix(id.IDType, digitalCurrencyPrefix) {
				continue
			}
			address := strings.TrimSpace(id.IDNumber)
			if address == "" {
				continue
			}
			ticker := "UNKNOWN"
			if parts := strings.SplitN(id.IDType, " - ", 2); len(parts) == 2 {
				ticker = strings.TrimSpace(parts[1])
			}
			addresses = append(addresses, DigitalCurrencyAddress{
				UID:        entry.UID,
				Ticker:     ticker,
				Chain:      screening.ResolveChain(ticker),
				Address:    address,
				EntityName: name,
			})
		}
	}
	return addresses, nil
}

func entityName(entry sdnEntry) string {
	if entry.FirstName != "" && entry.LastName != "" {
		return entry.FirstName + " " + entry.LastName
	}
	return entry.LastName
}
