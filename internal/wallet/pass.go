// Package wallet builds and signs Apple Wallet boarding-pass bundles.
//
// A pass is constructed in memory from the submitted flight details, tagged
// with a fresh serial number, and signed with certificate material fetched
// from the secret store. Nothing is persisted: the service holds no record
// of issued passes.
package wallet

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Fixed style constants - not user-configurable.
const (
	passDescription = "Boarding pass"
	foregroundColor = "rgb(255,255,255)"
	backgroundColor = "rgb(0,0,0)"
	labelColor      = "rgb(200,200,200)"
)

const (
	// defaultOrganizationName is cosmetic branding used when ORG_NAME is
	// unset and as the logoText fallback when no flight name is supplied.
	defaultOrganizationName = "Elite Air"

	// fieldPlaceholder renders in place of any blank display value so every
	// field shows something rather than an empty box.
	fieldPlaceholder = "--"

	// barcodePlaceholder is encoded when every barcode input is blank -
	// the barcode message is never an empty string.
	barcodePlaceholder = "BOARDING-PASS"

	barcodeFormatQR = "PKBarcodeFormatQR"
	barcodeEncoding = "iso-8859-1"

	transitTypeAir = "PKTransitTypeAir"
)

// FlightDetails is the client-supplied display data for one boarding pass.
// All fields are optional free text; blank values are substituted with
// placeholders during pass construction.
type FlightDetails struct {
	FlightName      string `json:"flightName"`
	FlightNumber    string `json:"flightNumber"`
	PassengerName   string `json:"passengerName"`
	Departure       string `json:"departure"`
	DepartureCity   string `json:"departureCity"`
	Destination     string `json:"destination"`
	DestinationCity string `json:"destinationCity"`
	TravelDate      string `json:"travelDate"`
	BoardingTime    string `json:"boardingTime"`
	DepartureTime   string `json:"departureTime"`
	ArrivalTime     string `json:"arrivalTime"`
	Gate            string `json:"gate"`
	Seat            string `json:"seat"`
	BoardingGroup   string `json:"boardingGroup"`
	FrequentFlyer   string `json:"frequentFlyer"`
}

// Identity is the server-configured pass identity. It is stamped into every
// pass and is never taken from the request.
type Identity struct {
	PassTypeID       string
	TeamID           string
	OrganizationName string
}

// Field is one labelled display value on the pass.
type Field struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Value string `json:"value"`
}

// Barcode is the pass's scannable code.
type Barcode struct {
	Message         string `json:"message"`
	Format          string `json:"format"`
	MessageEncoding string `json:"messageEncoding"`
}

// BoardingPassFields holds the four display field groups of a boarding pass.
type BoardingPassFields struct {
	TransitType     string  `json:"transitType"`
	PrimaryFields   []Field `json:"primaryFields"`
	SecondaryFields []Field `json:"secondaryFields"`
	AuxiliaryFields []Field `json:"auxiliaryFields"`
	BackFields      []Field `json:"backFields"`
}

// Pass is the in-memory wallet-pass document. Serializing it produces the
// bundle's pass.json.
type Pass struct {
	FormatVersion      int                `json:"formatVersion"`
	PassTypeIdentifier string             `json:"passTypeIdentifier"`
	SerialNumber       string             `json:"serialNumber"`
	TeamIdentifier     string             `json:"teamIdentifier"`
	OrganizationName   string             `json:"organizationName"`
	Description        string             `json:"description"`
	LogoText           string             `json:"logoText"`
	ForegroundColor    string             `json:"foregroundColor"`
	BackgroundColor    string             `json:"backgroundColor"`
	LabelColor         string             `json:"labelColor"`
	Barcodes           []Barcode          `json:"barcodes"`
	BoardingPass       BoardingPassFields `json:"boardingPass"`
}

// safeValue trims the value and substitutes the fallback when nothing is
// left. Non-blank values pass through with their original casing.
func safeValue(value, fallback string) string {
	if trimmed := strings.TrimSpace(value); trimmed != "" {
		return trimmed
	}
	return fallback
}

// BarcodeMessage joins the trimmed, non-empty subset of the eight barcode
// fields with "|" in a fixed order. The order and the separator determine
// what a scanning system can recover, so they must not change.
func BarcodeMessage(d FlightDetails) string {
	ordered := []string{
		d.FlightName,
		d.FlightNumber,
		d.PassengerName,
		d.Departure,
		d.Destination,
		d.DepartureTime,
		d.Seat,
		d.BoardingGroup,
	}

	parts := make([]string, 0, len(ordered))
	for _, value := range ordered {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			parts = append(parts, trimmed)
		}
	}

	if len(parts) == 0 {
		return barcodePlaceholder
	}
	return strings.Join(parts, "|")
}

// Build constructs a pass from the submitted flight details. Every call
// generates a fresh serial number, so identical payloads still produce
// independent passes.
func Build(identity Identity, d FlightDetails) *Pass {
	return &Pass{
		FormatVersion:      1,
		PassTypeIdentifier: identity.PassTypeID,
		SerialNumber:       uuid.NewString(),
		TeamIdentifier:     identity.TeamID,
		OrganizationName:   safeValue(identity.OrganizationName, defaultOrganizationName),
		Description:        passDescription,
		LogoText:           safeValue(d.FlightName, defaultOrganizationName),
		ForegroundColor:    foregroundColor,
		BackgroundColor:    backgroundColor,
		LabelColor:         labelColor,
		Barcodes: []Barcode{
			{
				Message:         BarcodeMessage(d),
				Format:          barcodeFormatQR,
				MessageEncoding: barcodeEncoding,
			},
		},
		BoardingPass: BoardingPassFields{
			TransitType: transitTypeAir,
			PrimaryFields: []Field{
				{Key: "from", Label: "From", Value: safeValue(d.Departure, fieldPlaceholder)},
				{Key: "to", Label: "To", Value: safeValue(d.Destination, fieldPlaceholder)},
			},
			SecondaryFields: []Field{
				{Key: "flight", Label: "Flight", Value: safeValue(d.FlightNumber, fieldPlaceholder)},
				{Key: "date", Label: "Date", Value: safeValue(d.TravelDate, fieldPlaceholder)},
				{Key: "boarding", Label: "Boarding", Value: safeValue(d.BoardingTime, fieldPlaceholder)},
			},
			AuxiliaryFields: []Field{
				{Key: "depart", Label: "Depart", Value: safeValue(d.DepartureTime, fieldPlaceholder)},
				{Key: "arrive", Label: "Arrive", Value: safeValue(d.ArrivalTime, fieldPlaceholder)},
				{Key: "gate", Label: "Gate", Value: safeValue(d.Gate, fieldPlaceholder)},
				{Key: "seat", Label: "Seat", Value: safeValue(d.Seat, fieldPlaceholder)},
				{Key: "group", Label: "Group", Value: safeValue(d.BoardingGroup, fieldPlaceholder)},
				{Key: "ff", Label: "Frequent Flyer", Value: safeValue(d.FrequentFlyer, fieldPlaceholder)},
			},
			BackFields: []Field{
				{Key: "passenger", Label: "Passenger", Value: safeValue(d.PassengerName, fieldPlaceholder)},
				{Key: "route", Label: "Route", Value: fmt.Sprintf("%s → %s",
					safeValue(d.DepartureCity, fieldPlaceholder),
					safeValue(d.DestinationCity, fieldPlaceholder))},
			},
		},
	}
}
