package meteolux

import (
	"context"
	"net/url"
)

// GetObservationsHVD returns the latest observation data.
//
// GET /hvd/observations.
func (c *Client) GetObservationsHVD(ctx context.Context) (*ObservationResponse, error) {
	return do(ctx, c, request{method: "GET", path: "/hvd/observations"}, observationResponseSchema)
}

// GetObservationsMetadataHVD returns the observation metadata catalogue.
//
// GET /hvd/observations/metadata.
func (c *Client) GetObservationsMetadataHVD(ctx context.Context) (*ObservationMetadataResponse, error) {
	return do(ctx, c, request{method: "GET", path: "/hvd/observations/metadata"}, observationMetadataResponseSchema)
}

// GetStationInformationHVD returns station information for one station. The
// upstream service does not document a stable shape for this payload, so the
// decoded JSON is returned as is.
//
// GET /hvd/stations/{station_id}.
func (c *Client) GetStationInformationHVD(ctx context.Context, stationID string) (any, error) {
	return doRaw(ctx, c, request{
		method: "GET",
		path:   "/hvd/stations/" + url.PathEscape(stationID),
		op:     "/hvd/stations/{station_id}",
	})
}

// GetAllStationInformationHVD returns information for every station, as
// decoded JSON.
//
// GET /hvd/stations.
func (c *Client) GetAllStationInformationHVD(ctx context.Context) (any, error) {
	return doRaw(ctx, c, request{method: "GET", path: "/hvd/stations"})
}
