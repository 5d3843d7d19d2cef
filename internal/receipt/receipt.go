// Package receipt renders donation receipts as PDF documents.
package receipt

import (
	"bytes"
	"fmt"

	"smilingtears/pkg/types"

	"github.com/go-pdf/fpdf"
)

// Generate renders the receipt for a donation. Organization details come from
// the site content so the receipt matches the rest of the site.
func Generate(donation *types.Donation, org types.SiteInfo) ([]byte, error) {
	pdf := fpdf.New("P", "pt", "Letter", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Text(200, 72, "Donation Receipt")

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("Receipt ID: %s", donation.ID),
		fmt.Sprintf("Transaction ID: %s", donation.TransactionID),
		fmt.Sprintf("Date: %s", donation.CreatedAt.Format("2006-01-02 15:04:05")),
		fmt.Sprintf("Name: %s", donation.DonorName),
		fmt.Sprintf("Email: %s", donation.DonorEmail),
		fmt.Sprintf("Phone: %s", donation.DonorPhone),
		fmt.Sprintf("Program: %s", donation.Program),
		fmt.Sprintf("Amount Donated: Rs %s", FormatAmount(donation.AmountCents)),
	}

	y := 102.0
	for _, line := range lines {
		pdf.Text(50, y, line)
		y += 20
	}

	y += 10
	pdf.Line(50, y, 550, y)
	y += 24

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Text(50, y, "Organization Details:")
	y += 18

	pdf.SetFont("Helvetica", "", 11)
	orgLines := []string{
		org.Name,
		fmt.Sprintf("Reg. No: %s", org.RegNo),
		fmt.Sprintf("Address: %s", org.Address),
		fmt.Sprintf("Contact: %s", org.ContactPhone),
		fmt.Sprintf("Email: %s", org.ContactEmail),
	}
	for _, line := range orgLines {
		pdf.Text(50, y, line)
		y += 15
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render receipt pdf: %w", err)
	}

	return buf.Bytes(), nil
}

// Filename is the download name for a donation receipt.
func Filename(donationID string) string {
	return fmt.Sprintf("Donation_Receipt_%s.pdf", donationID)
}

// FormatAmount renders cents as a whole-rupee figure with Indian digit
// grouping, e.g. 150000 -> "1,500".
func FormatAmount(cents int64) string {
	rupees := cents / 100
	s := fmt.Sprintf("%d", rupees)

	neg := false
	if len(s) > 0 && s[0] == '-' {
		neg = true
		s = s[1:]
	}

	if len(s) <= 3 {
		if neg {
			return "-" + s
		}
		return s
	}

	// Indian grouping: last three digits, then pairs.
	out := s[len(s)-3:]
	rest := s[:len(s)-3]
	for len(rest) > 2 {
		out = rest[len(rest)-2:] + "," + out
		rest = rest[:len(rest)-2]
	}
	if rest != "" {
		out = rest + "," + out
	}
	if neg {
		out = "-" + out
	}

	return out
}

// ArchiveKey is where a receipt copy lands in the archive bucket.
func ArchiveKey(donation *types.Donation) string {
	return fmt.Sprintf("receipts/%s/%s", donation.CreatedAt.Format("2006"), Filename(donation.ID))
}
