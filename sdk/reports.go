package arogo

import (
	"context"
	"net/url"
	"strings"
)

// ReportsService exports platform documents.
type ReportsService struct {
	client *Client
}

// ExportPDF downloads the PDF export for an appointment (prescription and
// visit summary). Returns the raw document bytes.
func (s *ReportsService) ExportPDF(ctx context.Context, appointmentID string) ([]byte, error) {
	if appointmentID == "" {
		return nil, NewInvalidRequestError("appointmentID is required")
	}

	body, contentType, err := s.client.doRaw(ctx, "/v1/appointments/"+url.PathEscape(appointmentID)+"/export.pdf")
	if err != nil {
		return nil, err
	}
	if contentType != "" && !strings.HasPrefix(contentType, "application/pdf") {
		return nil, NewAPIError("unexpected export content type: " + contentType)
	}
	return body, nil
}
