package models

import "time"

type Member struct {
	ID        string    `json:"id" gorm:"primaryKey;size:36"`
	GroupID   string    `json:"groupId" gorm:"size:36;not null;index"`
	Name      string    `json:"name" gorm:"type:text;not null"`
	Email     string    `json:"email" gorm:"type:text;not null"`
	IsCreator bool      `json:"isCreator" gorm:"not null;default:false"`
	JoinedAt  time.Time `json:"joinedAt" gorm:"not null"`
}

func (Member) TableName() string { return "members" }
