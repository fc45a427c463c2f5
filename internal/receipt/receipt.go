package receipt

import (
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	qrcode "github.com/skip2/go-qrcode"
)

// Payload is the scannable content of a parking receipt.
type Payload struct {
	Type            string    `json:"type"`
	ReservationID   uuid.UUID `json:"reservation_id"`
	TransactionCode string    `json:"transaction_code"`
	Method          string    `json:"method"`
	AmountCents     int64     `json:"amount_cents"`
}

// payloadType marks QR codes produced by this service.
const payloadType = "PARKING_RECEIPT"

// Generator renders receipt payloads as QR codes.
type Generator struct {
	size int
}

// NewGenerator creates a Generator producing QR images of the given
// pixel size.
func NewGenerator(size int) *Generator {
	if size <= 0 {
		size = 256
	}
	return &Generator{size: size}
}

// DataURL encodes the receipt as a PNG QR code and returns it as a
// data URL suitable for direct embedding in an <img> tag.
func (g *Generator) DataURL(reservationID uuid.UUID, transactionCode, method string, amountCents int64) (string, error) {
	payload := Payload{
		Type:            payloadType,
		ReservationID:   reservationID,
		TransactionCode: transactionCode,
		Method:          method,
		AmountCents:     amountCents,
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal receipt payload: %w", err)
	}

	png, err := qrcode.Encode(string(raw), qrcode.Medium, g.size)
	if err != nil {
		return "", fmt.Errorf("failed to encode receipt QR: %w", err)
	}

	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}

// ParsePayload decodes a scanned receipt payload and verifies its type.
func ParsePayload(raw []byte) (*Payload, error) {
	var p Payload
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("failed to parse receipt payload: %w", err)
	}
	if p.Type != payloadType {
		return nil, fmt.Errorf("unexpected payload type %q", p.Type)
	}
	return &p, nil
}
