package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Scanner is a member of verification staff. Lifecycle (creation,
// deactivation, permission grants) is managed outside this service; the core
// only reads IsActive, the event assignment and the override permission.
type Scanner struct {
	gorm.Model
	ID               uuid.UUID `gorm:"type:uuid;primary_key"`
	Name             string    `gorm:"not null"`
	Email            string    `gorm:"unique;not null"`
	Password         string    `gorm:"not null"`
	IsActive         bool      `gorm:"not null;default:true"`
	EventID          *uuid.UUID `gorm:"type:uuid"`
	Event            *Event
	CanOverrideScans bool `gorm:"not null;default:false"`
}

func (scanner *Scanner) BeforeCreate(tx *gorm.DB) (err error) {
	if scanner.ID == uuid.Nil {
		scanner.ID = uuid.New()
	}
	return
}

// Scope returns the scanner's event authorization as a tagged variant.
// A scanner without a fixed assignment is authorized for any event.
func (scanner *Scanner) Scope() EventScope {
	if scanner.EventID == nil {
		return EventScope{anyEvent: true}
	}
	return EventScope{eventID: *scanner.EventID}
}

// EventScope is either AnyEvent or AssignedTo(eventID).
type EventScope struct {
	anyEvent bool
	eventID  uuid.UUID
}

func (scope EventScope) Allows(eventID uuid.UUID) bool {
	return scope.anyEvent || scope.eventID == eventID
}

// AssignedEvent returns the fixed assignment, if any.
func (scope EventScope) AssignedEvent() (uuid.UUID, bool) {
	if scope.anyEvent {
		return uuid.Nil, false
	}
	return scope.eventID, true
}
