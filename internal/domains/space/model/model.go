package model

import (
	"strings"

	"spacebook/shared/model"

	"github.com/lib/pq"
)

const (
	TableName  = "spaces"
	EntityName = "space"

	FieldID           = "id"
	FieldName         = "name"
	FieldType         = "type"
	FieldLocation     = "location"
	FieldCapacity     = "capacity"
	FieldAmenities    = "amenities"
	FieldDescription  = "description"
	FieldPricePerHour = "price_per_hour"
	FieldImages       = "images"
)

const (
	TypeCoworking      = "coworking"
	TypeMeetingRoom    = "meeting room"
	TypeEventVenue     = "event venue"
	TypeConferenceHall = "conference hall"
)

// Listing caches are cleared by prefix whenever the catalog changes.
const (
	CacheGetAll = "space:gets"
	CacheCount  = "space:count"
)

var Types = []string{TypeCoworking, TypeMeetingRoom, TypeEventVenue, TypeConferenceHall}

// SortableFields may be passed as sort_by on listings.
var SortableFields = []string{FieldName, FieldCapacity, FieldPricePerHour, FieldLocation}

type Space struct {
	ID           string         `db:"id"`
	Name         string         `db:"name"`
	Type         string         `db:"type"`
	Location     string         `db:"location"`
	Capacity     int            `db:"capacity"`
	Amenities    pq.StringArray `db:"amenities"`
	Description  string         `db:"description"`
	PricePerHour float64        `db:"price_per_hour"`
	Images       pq.StringArray `db:"images"`
	model.Metadata
}

// UniqueLabels trims labels and drops blanks and repeats, keeping first-seen order.
func UniqueLabels(labels []string) pq.StringArray {
	seen := make(map[string]struct{}, len(labels))
	out := make(pq.StringArray, 0, len(labels))

	for _, label := range labels {
		label = strings.Join(strings.Fields(label), " ")
		if label == "" {
			continue
		}

		if _, ok := seen[label]; ok {
			continue
		}

		seen[label] = struct{}{}
		out = append(out, label)
	}

	return out
}
