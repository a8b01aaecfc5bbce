package utils

import (
	"fmt"
	"strings"

	"github.com/skip2/go-qrcode"
)

const ownershipQRSize = 256

// OwnershipLink is the public page a scanned ownership code opens.
func OwnershipLink(publicUrl, apartmentId string) string {
	return fmt.Sprintf("%s/apartment/%s", strings.TrimRight(publicUrl, "/"), apartmentId)
}

// OwnershipQRCode encodes the apartment link as a PNG. High recovery keeps
// the code readable when it is printed small on handover documents.
func OwnershipQRCode(publicUrl, apartmentId string) ([]byte, error) {
	return qrcode.Encode(OwnershipLink(publicUrl, apartmentId), qrcode.High, ownershipQRSize)
}
