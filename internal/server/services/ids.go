package services

import "github.com/google/uuid"

// validID reports whether id can be a primary key. Malformed ids are
// answered as not found instead of reaching the database.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
