// Package export defines the wire format of computed chart layouts.
//
// A [Snapshot] captures everything a renderer needs after a relayout: the
// resolved plot area, every scale with its merged domain, pixel range and
// negotiated padding, and every mark with its stacked groups and color
// tags. Snapshots are written as JSON for files and API responses, BSON
// for document stores, and msgpack for the layout cache:
//
//	data, err := export.Marshal(snap, export.FormatJSON)
//	snap, err := export.Unmarshal(data, export.FormatJSON)
//
// Values that have no number (a NaN raw magnitude, a missing color value)
// are omitted rather than encoded, so every format round-trips.
package export
