package models

import "time"

// FriendshipStatus defines the state of a friendship between two users.
type FriendshipStatus string

const (
	// StatusPending means a friend request has been sent but not yet answered.
	StatusPending FriendshipStatus = "pending"

	// StatusAccepted means the receiver accepted; the edge is symmetric from now on.
	StatusAccepted FriendshipStatus = "accepted"

	// StatusBlocked means the receiver refused and blocked further requests.
	StatusBlocked FriendshipStatus = "blocked"
)

func (s FriendshipStatus) Valid() bool {
	switch s {
	case StatusPending, StatusAccepted, StatusBlocked:
		return true
	}
	return false
}

// FriendshipPairIndex makes (a, b) and (b, a) collide so only one record can
// exist per unordered pair. gorm tags cannot express expression indexes.
const FriendshipPairIndex = `CREATE UNIQUE INDEX IF NOT EXISTS idx_friendship_unordered_pair
	ON friendships (LEAST(sender_id, receiver_id), GREATEST(sender_id, receiver_id))`

// Friendship is a request from SenderID to ReceiverID. There is at most one
// record per unordered pair of users, enforced by FriendshipPairIndex.
type Friendship struct {
	ID         string           `gorm:"type:uuid;primaryKey"`
	SenderID   string           `gorm:"type:uuid;not null;uniqueIndex:idx_friendship_pair"`
	ReceiverID string           `gorm:"type:uuid;not null;uniqueIndex:idx_friendship_pair;index"`
	Status     FriendshipStatus `gorm:"type:varchar(20);not null;index"`
	CreatedAt  time.Time
	UpdatedAt  time.Time

	Sender   User `gorm:"foreignKey:SenderID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Receiver User `gorm:"foreignKey:ReceiverID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

// Other returns the id on the opposite side of the friendship from userID.
func (f Friendship) Other(userID string) string {
	if f.SenderID == userID {
		return f.ReceiverID
	}
	return f.SenderID
}
