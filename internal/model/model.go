// Package model contains domain entities and DTOs used across layers.
// Input records are read-only views over tables owned by the membership portal;
// output shapes are built fresh for every report and never mutated afterwards.
package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Role is a portal user role.
type Role string

const (
	RoleAthlete   Role = "athlete"
	RoleCoach     Role = "coach"
	RoleJudge     Role = "judge"
	RoleClubOwner Role = "club_owner"
	RoleAdmin     Role = "admin"
)

// BreakdownRoles are the roles reported in UserStats.UsersByRole, in display order.
var BreakdownRoles = []Role{RoleAthlete, RoleCoach, RoleJudge, RoleClubOwner}

// CompetitionStatus is the lifecycle state of a competition.
type CompetitionStatus string

const (
	CompetitionDraft              CompetitionStatus = "draft"
	CompetitionPublished          CompetitionStatus = "published"
	CompetitionRegistrationOpen   CompetitionStatus = "registration_open"
	CompetitionRegistrationClosed CompetitionStatus = "registration_closed"
	CompetitionInProgress         CompetitionStatus = "in_progress"
	CompetitionCompleted          CompetitionStatus = "completed"
	CompetitionCancelled          CompetitionStatus = "cancelled"
)

// PaymentStatus is the payment outcome of a registration.
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
	PaymentFailed  PaymentStatus = "failed"
)

// UserRecord is a portal account.
type UserRecord struct {
	ID             int64      `json:"id"`
	Role           Role       `json:"role"`
	CreatedAt      time.Time  `json:"created_at"`
	LastActivityAt *time.Time `json:"last_activity_at,omitempty"`
}

// CompetitionRecord is a competition listing.
type CompetitionRecord struct {
	ID        int64             `json:"id"`
	Status    CompetitionStatus `json:"status"`
	CreatedAt time.Time         `json:"created_at"`
}

// RegistrationRecord is an athlete entry into a competition category.
// Fee is inherited from the owning competition.
type RegistrationRecord struct {
	ID            int64           `json:"id"`
	CompetitionID int64           `json:"competition_id"`
	Category      string          `json:"category"`
	PaymentStatus PaymentStatus   `json:"payment_status"`
	Fee           decimal.Decimal `json:"fee"`
	CreatedAt     time.Time       `json:"created_at"`
}

// ClubRecord is a registered club.
type ClubRecord struct {
	ID        int64     `json:"id"`
	City      string    `json:"city"`
	CreatedAt time.Time `json:"created_at"`
}

// AthleteMembershipRecord links an athlete to a club.
type AthleteMembershipRecord struct {
	ID     int64 `json:"id"`
	ClubID int64 `json:"club_id"`
}
