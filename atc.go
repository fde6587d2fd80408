package meteolux

import "context"

// GetATCReport returns data for the ATC dashboard.
//
// GET /atc/report.
func (c *Client) GetATCReport(ctx context.Context) (*ATCReport, error) {
	return do(ctx, c, request{method: "GET", path: "/atc/report"}, atcReportSchema)
}
