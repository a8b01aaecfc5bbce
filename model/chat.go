package model

import "time"

type ChatMessage struct {
	ID         string    `gorm:"primaryKey;size:64" json:"id"`
	ChatId     string    `gorm:"index;not null" json:"chatId"`
	SenderId   uint      `json:"senderId"`
	SenderName string    `json:"senderName"`
	Text       string    `json:"text,omitempty"`
	ImageUrl   string    `json:"imageUrl,omitempty"`
	Type       string    `gorm:"not null;default:text" json:"type"`
	CreatedAt  time.Time `json:"timestamp"`
}

// SupportChat records a buyer support conversation opened on a project.
type SupportChat struct {
	ID        string `gorm:"primaryKey;size:96" json:"id"`
	ProjectId uint   `gorm:"index;not null" json:"projectId"`
	AccountId uint   `gorm:"index;not null" json:"userId"`
	CreatedAt time.Time
}

type ChatSession struct {
	ID        string `json:"id"`
	Type      string `json:"type"`
	Name      string `json:"name"`
	Subtext   string `json:"subtext"`
	ProjectId uint   `json:"projectId"`
}

type SendMessageInput struct {
	Text  string `json:"text" validate:"required_without=Image"`
	Image string `json:"image"`
}
