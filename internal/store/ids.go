package store

import (
	"slices"
	"strconv"

	"github.com/google/uuid"
)

// IDPolicy assigns the id of a new record given the ids already in use.
type IDPolicy interface {
	Next(existing []string) string
}

// SequentialIDs hands out the largest numeric id plus one. Non-numeric ids
// are ignored.
type SequentialIDs struct{}

func (SequentialIDs) Next(existing []string) string {
	var maxID int64
	for _, id := range existing {
		n, err := strconv.ParseInt(id, 10, 64)
		if err != nil {
			continue
		}
		maxID = max(maxID, n)
	}
	return strconv.FormatInt(maxID+1, 10)
}

// UUIDs hands out random opaque ids.
type UUIDs struct{}

func (UUIDs) Next(existing []string) string {
	for {
		id := uuid.NewString()
		if !slices.Contains(existing, id) {
			return id
		}
	}
}

// PolicyByName resolves the MOCK_ID_POLICY setting. Unknown names fall back
// to SequentialIDs.
func PolicyByName(name string) IDPolicy {
	if name == "uuid" {
		return UUIDs{}
	}
	return SequentialIDs{}
}
