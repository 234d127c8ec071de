package utils

import (
	"fmt"
	"net/url"

	"github.com/skip2/go-qrcode"
)

// BuildUPILink assembles a upi://pay deep link for collecting an amount.
func BuildUPILink(vpa, payeeName string, amount float64, note string) string {
	params := url.Values{}
	params.Set("pa", vpa)
	if payeeName != "" {
		params.Set("pn", payeeName)
	}
	if amount > 0 {
		params.Set("am", fmt.Sprintf("%.2f", amount))
	}
	params.Set("cu", "INR")
	if note != "" {
		params.Set("tn", note)
	}
	return "upi://pay?" + params.Encode()
}

// GenerateUPIQR renders the UPI deep link as a PNG QR code.
func GenerateUPIQR(vpa, payeeName string, amount float64, note string) ([]byte, error) {
	if vpa == "" {
		return nil, fmt.Errorf("no UPI virtual address configured")
	}
	link := BuildUPILink(vpa, payeeName, amount, note)
	qrBytes, err := qrcode.Encode(link, qrcode.Medium, 256)
	if err != nil {
		return nil, fmt.Errorf("failed to encode UPI QR: %w", err)
	}
	return qrBytes, nil
}
