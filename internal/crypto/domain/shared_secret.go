package domain

import (
	"strconv"
	"time"
)

// ParticipantPair is the unordered pair of users sharing a secret.
// Low always sorts before or equal to High, so (A,B) and (B,A) compare equal.
type ParticipantPair struct {
	Low  string
	High string
}

// NewParticipantPair returns the normalized pair for a and b.
func NewParticipantPair(a, b string) ParticipantPair {
	if b < a {
		a, b = b, a
	}
	return ParticipantPair{Low: a, High: b}
}

// Contains reports whether userID is one of the participants.
func (p ParticipantPair) Contains(userID string) bool {
	return p.Low == userID || p.High == userID
}

// Key returns an unambiguous string form, length-prefixed so IDs containing
// separators cannot collide.
func (p ParticipantPair) Key() string {
	return strconv.Itoa(len(p.Low)) + ":" + p.Low + "|" + strconv.Itoa(len(p.High)) + ":" + p.High
}

// SharedSecret is the symmetric key agreed between two participants.
type SharedSecret struct {
	Pair      ParticipantPair
	Key       []byte
	CreatedAt time.Time
}
