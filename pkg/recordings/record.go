// Package recordings defines the converged recording data model and its
// flat CSV row mapping.
package recordings

import "encoding/json"

// ServiceData holds the calling-specific metadata nested under a recording.
type ServiceData struct {
	LocationID    string `json:"locationId"`
	CallSessionID string `json:"callSessionId"`
}

// Recording is one converged recording record as returned by the admin or
// compliance officer listing endpoint. Numeric fields are json.Number so that
// values pass through to the CSV verbatim and absent fields stay empty.
type Recording struct {
	ID              string       `json:"id"`
	Topic           string       `json:"topic"`
	CreateTime      string       `json:"createTime"`
	TimeRecorded    string       `json:"timeRecorded"`
	OwnerID         string       `json:"ownerId"`
	OwnerEmail      string       `json:"ownerEmail"`
	OwnerType       string       `json:"ownerType"`
	Format          string       `json:"format"`
	DurationSeconds json.Number  `json:"durationSeconds"`
	SizeBytes       json.Number  `json:"sizeBytes"`
	ServiceType     string       `json:"serviceType"`
	StorageRegion   string       `json:"storageRegion"`
	Status          string       `json:"status"`
	ServiceData     *ServiceData `json:"serviceData,omitempty"`
}

// columns is the fixed CSV schema: the flat recording fields plus the two
// serviceData fields flattened as locationId and callSessionId.
var columns = []string{
	"id", "topic", "createTime", "timeRecorded", "ownerId", "ownerEmail", "ownerType",
	"format", "durationSeconds", "sizeBytes", "serviceType", "storageRegion", "status",
	"locationId", "callSessionId",
}

// Columns returns the CSV column names in output order.
func Columns() []string {
	out := make([]string, len(columns))
	copy(out, columns)
	return out
}

// Row flattens the recording into CSV column order. Every column is always
// present; missing source values (including a missing serviceData object)
// become empty strings.
func (r Recording) Row() []string {
	locationID, callSessionID := "", ""
	if r.ServiceData != nil {
		locationID = r.ServiceData.LocationID
		callSessionID = r.ServiceData.CallSessionID
	}

	return []string{
		r.ID,
		r.Topic,
		r.CreateTime,
		r.TimeRecorded,
		r.OwnerID,
		r.OwnerEmail,
		r.OwnerType,
		r.Format,
		r.DurationSeconds.String(),
		r.SizeBytes.String(),
		r.ServiceType,
		r.StorageRegion,
		r.Status,
		locationID,
		callSessionID,
	}
}
