package amadeus

import (
	"context"
	"net/url"
	"strconv"
)

// Activities searches tours and activities around a point.
// GET /v1/shopping/activities
func (c *Client) Activities(ctx context.Context, latitude, longitude float64, radius int) (Result, error) {
	params := url.Values{}
	params.Set("latitude", strconv.FormatFloat(latitude, 'f', -1, 64))
	params.Set("longitude", strconv.FormatFloat(longitude, 'f', -1, 64))
	if radius <= 0 {
		radius = 1
	}
	params.Set("radius", strconv.Itoa(radius))
	return c.get(ctx, "/v1/shopping/activities", params)
}

// ActivitiesBySquare searches tours and activities inside a bounding box.
// GET /v1/shopping/activities/by-square
func (c *Client) ActivitiesBySquare(ctx context.Context, north, west, south, east float64) (Result, error) {
	params := url.Values{}
	params.Set("north", strconv.FormatFloat(north, 'f', -1, 64))
	params.Set("west", strconv.FormatFloat(west, 'f', -1, 64))
	params.Set("south", strconv.FormatFloat(south, 'f', -1, 64))
	params.Set("east", strconv.FormatFloat(east, 'f', -1, 64))
	return c.get(ctx, "/v1/shopping/activities/by-square", params)
}

// ActivityByID returns details of a single activity.
// GET /v1/shopping/activities/{id}
func (c *Client) ActivityByID(ctx context.Context, activityID string) (Result, error) {
	return c.get(ctx, "/v1/shopping/activities/"+url.PathEscape(activityID), nil)
}
