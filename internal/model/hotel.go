package model

import "time"

// Hotel represents a property that owns a set of rooms.  Hotels are
// created and maintained by administrators.  This struct corresponds
// to a row in the `hotels` table.
//
// Fields:
//  ID          – primary key identifier.
//  Name        – display name of the hotel.
//  City        – city the hotel is located in; used by searches.
//  Address     – street address (may be empty).
//  Description – free text shown to guests (may be empty).
//  RoomCount   – number of rooms; populated by list queries only.
//  CreatedAt   – timestamp when the hotel was created.
type Hotel struct {
	ID          uint64    // hotels.id
	Name        string    // hotels.name
	City        string    // hotels.city
	Address     string    // hotels.address
	Description string    // hotels.description
	RoomCount   int       // COUNT(rooms.id)
	CreatedAt   time.Time // hotels.created_at
}
