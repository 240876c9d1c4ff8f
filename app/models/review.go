package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Opinion is a free-text product review. A user may leave any number of
// opinions per product; there is no edit or delete path.
type Opinion struct {
	CommentID uuid.UUID `gorm:"type:uuid;primaryKey" json:"comment_id"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;index" json:"product_id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Comment   string    `gorm:"size:500;not null" json:"comment"`
	DateTime  time.Time `gorm:"not null" json:"date_time"`
	Product   *Product  `gorm:"foreignKey:ProductID;references:ProductID" json:"-"`
}

func (o *Opinion) BeforeCreate(*gorm.DB) error {
	if o.CommentID == uuid.Nil {
		o.CommentID = uuid.New()
	}
	if o.DateTime.IsZero() {
		o.DateTime = time.Now()
	}
	return nil
}

// Score is a 0–100 rating. The composite unique index is the authority for
// the one-score-per-(user, product) invariant; the service's existence check
// only supplies the friendly error message.
type Score struct {
	ScoreID   uuid.UUID `gorm:"type:uuid;primaryKey" json:"score_id"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_score_user_product" json:"product_id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_score_user_product" json:"user_id"`
	Score     int       `gorm:"not null;check:score >= 0 AND score <= 100" json:"score"`
	Product   *Product  `gorm:"foreignKey:ProductID;references:ProductID" json:"-"`
}

func (s *Score) BeforeCreate(*gorm.DB) error {
	if s.ScoreID == uuid.Nil {
		s.ScoreID = uuid.New()
	}
	return nil
}
